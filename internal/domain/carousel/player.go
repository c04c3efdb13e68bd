package carousel

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Player errors.
var (
	ErrPlayerStarted    = errors.New("carousel: player already started")
	ErrPlayerNotStarted = errors.New("carousel: player not started")
	ErrPlayerStopped    = errors.New("carousel: player stopped")
)

// Machine is a state machine a Player can drive on a timer.
type Machine interface {
	// Tick applies one timer step.
	Tick()
	// Running reports whether a timer should currently exist.
	Running() bool
}

type command struct {
	fn  func()
	ack chan struct{}
}

// Player owns a Machine and its recurring timer. Ticks and commands are
// applied on one goroutine, in the order they arrive, so the Machine never
// needs a lock.
//
// INVARIANT: at most one ticker exists per Player, and it exists only while
// the Machine reports Running and the Player has not stopped.
type Player struct {
	m        Machine
	clock    Clock
	interval time.Duration
	onChange func()

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	cmds    chan command
	done    chan struct{}
}

// NewPlayer creates a stopped player. onChange, if non-nil, runs on the
// player goroutine after every tick or command.
func NewPlayer(m Machine, clock Clock, interval time.Duration, onChange func()) *Player {
	if clock == nil {
		clock = RealClock{}
	}
	return &Player{
		m:        m,
		clock:    clock,
		interval: interval,
		onChange: onChange,
		cmds:     make(chan command),
		done:     make(chan struct{}),
	}
}

// Start runs the player until ctx is cancelled or Stop is called.
// PRE: Start has not been called before
// POST: the ticker reflects m.Running() when Start returns
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrPlayerStarted
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	ready := make(chan struct{})
	go p.run(ctx, ready)
	<-ready
	return nil
}

// Send applies fn to the machine on the player goroutine and waits for it.
// POST: on nil error, fn has run and the ticker has been resynced
func (p *Player) Send(fn func()) error {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return ErrPlayerNotStarted
	}
	cmd := command{fn: fn, ack: make(chan struct{})}
	select {
	case p.cmds <- cmd:
	case <-p.done:
		return ErrPlayerStopped
	}
	select {
	case <-cmd.ack:
		return nil
	case <-p.done:
		return ErrPlayerStopped
	}
}

// Stop tears the player down and waits for its goroutine to exit.
// Safe to call more than once and before Start.
func (p *Player) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	started := p.started
	p.started = true
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if !started {
		close(p.done)
		return
	}
	<-p.done
}

// Done is closed once the player goroutine has exited.
func (p *Player) Done() <-chan struct{} { return p.done }

func (p *Player) run(ctx context.Context, ready chan<- struct{}) {
	defer close(p.done)

	var ticker Ticker
	var tickC <-chan time.Time
	resync := func() {
		want := p.m.Running()
		switch {
		case want && ticker == nil:
			ticker = p.clock.NewTicker(p.interval)
			tickC = ticker.C()
		case !want && ticker != nil:
			ticker.Stop()
			ticker, tickC = nil, nil
		}
	}
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	resync()
	close(ready)

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-p.cmds:
			cmd.fn()
			resync()
			p.notify()
			close(cmd.ack)
		case <-tickC:
			p.m.Tick()
			resync()
			p.notify()
		}
	}
}

func (p *Player) notify() {
	if p.onChange != nil {
		p.onChange()
	}
}
