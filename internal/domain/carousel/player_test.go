package carousel

import (
	"context"
	"errors"
	"testing"
	"time"
)

// startPlayer starts a player over m with a fake clock and returns a channel
// fed with every onChange notification.
func startPlayer(t *testing.T, m Machine, interval time.Duration) (*Player, *FakeClock, chan struct{}) {
	t.Helper()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	changes := make(chan struct{}, 16)
	p := NewPlayer(m, clock, interval, func() { changes <- struct{}{} })
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(p.Stop)
	return p, clock, changes
}

func waitChange(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for player change")
	}
}

// TestPlayer_HeroAutoAdvance covers the fallback hero scenario: two slides,
// auto advance every interval and dot navigation still working.
func TestPlayer_HeroAutoAdvance(t *testing.T) {
	hero := New(2)
	p, clock, changes := startPlayer(t, hero, HeroInterval)

	if clock.ActiveTickers() != 1 {
		t.Fatalf("active tickers = %d, want 1", clock.ActiveTickers())
	}

	clock.Advance(HeroInterval)
	waitChange(t, changes)

	var active int
	_ = p.Send(func() { active = hero.Active() })
	waitChange(t, changes)
	if active != 1 {
		t.Fatalf("after one interval active = %d, want 1", active)
	}

	clock.Advance(HeroInterval)
	waitChange(t, changes)
	_ = p.Send(func() { active = hero.Active() })
	waitChange(t, changes)
	if active != 0 {
		t.Fatalf("after two intervals active = %d, want 0", active)
	}

	var goErr error
	if err := p.Send(func() { goErr = hero.GoTo(1); active = hero.Active() }); err != nil {
		t.Fatal(err)
	}
	waitChange(t, changes)
	if goErr != nil || active != 1 {
		t.Fatalf("dot navigation: err=%v active=%d", goErr, active)
	}

	if clock.CreatedTickers() != 1 {
		t.Errorf("created tickers = %d, want exactly one per mount", clock.CreatedTickers())
	}
}

func TestPlayer_EmptySequenceHasNoTimer(t *testing.T) {
	hero := New(0)
	ticks := 0
	m := &countingMachine{Carousel: hero, ticks: &ticks}
	_, clock, _ := startPlayer(t, m, HeroInterval)

	clock.Advance(10 * HeroInterval)
	if clock.CreatedTickers() != 0 {
		t.Errorf("created %d tickers for an empty sequence", clock.CreatedTickers())
	}
	if ticks != 0 {
		t.Errorf("tick invoked %d times on empty sequence", ticks)
	}
}

func TestPlayer_TimerFollowsSequence(t *testing.T) {
	hero := New(0)
	p, clock, changes := startPlayer(t, hero, HeroInterval)

	if err := p.Send(func() { hero.Reset(3) }); err != nil {
		t.Fatal(err)
	}
	waitChange(t, changes)
	if clock.ActiveTickers() != 1 {
		t.Fatalf("after data arrived: active tickers = %d", clock.ActiveTickers())
	}

	if err := p.Send(func() { hero.Reset(0) }); err != nil {
		t.Fatal(err)
	}
	waitChange(t, changes)
	if clock.ActiveTickers() != 0 {
		t.Fatalf("after sequence emptied: active tickers = %d", clock.ActiveTickers())
	}
}

func TestPlayer_StopReleasesTimer(t *testing.T) {
	clock := NewFakeClock(time.Now())
	p := NewPlayer(New(4), clock, HeroInterval, nil)
	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	p.Stop()
	p.Stop()
	if clock.ActiveTickers() != 0 {
		t.Errorf("active tickers after stop = %d", clock.ActiveTickers())
	}
	if err := p.Send(func() {}); !errors.Is(err, ErrPlayerStopped) {
		t.Errorf("Send after stop = %v, want ErrPlayerStopped", err)
	}
	if err := p.Start(context.Background()); !errors.Is(err, ErrPlayerStarted) {
		t.Errorf("restart error = %v", err)
	}
}

func TestPlayer_ContextCancelReleasesTimer(t *testing.T) {
	clock := NewFakeClock(time.Now())
	p := NewPlayer(New(4), clock, HeroInterval, nil)
	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("player did not exit on cancel")
	}
	if clock.ActiveTickers() != 0 {
		t.Errorf("active tickers after cancel = %d", clock.ActiveTickers())
	}
}

func TestPlayer_SendBeforeStart(t *testing.T) {
	p := NewPlayer(New(1), NewFakeClock(time.Now()), time.Second, nil)
	if err := p.Send(func() {}); !errors.Is(err, ErrPlayerNotStarted) {
		t.Errorf("Send before start = %v", err)
	}
	p.Stop()
}

func TestPlayer_StripStopsBelowBreakpoint(t *testing.T) {
	strip := NewStrip(DisplayCount(3), 1200, 300)
	p, clock, changes := startPlayer(t, strip, StripInterval)

	clock.Advance(StripInterval)
	waitChange(t, changes)

	var offset int
	_ = p.Send(func() { offset = strip.Offset() })
	waitChange(t, changes)
	if offset != 1 {
		t.Fatalf("offset = %d, want 1", offset)
	}

	_ = p.Send(func() { strip.Resize(480) })
	waitChange(t, changes)
	if clock.ActiveTickers() != 0 {
		t.Errorf("narrow viewport kept %d tickers", clock.ActiveTickers())
	}
}

type countingMachine struct {
	*Carousel
	ticks *int
}

func (m *countingMachine) Tick() {
	*m.ticks++
	m.Carousel.Tick()
}
