package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"flotenn/internal/application/projections"
	"flotenn/internal/domain/carousel"
)

// heroEvent is one hero slider update.
type heroEvent struct {
	Active int `json:"active"`
	Prev   int `json:"prev"`
	Next   int `json:"next"`
	Count  int `json:"count"`
}

// stripEvent is one testimonial strip update.
type stripEvent struct {
	Offset      int     `json:"offset"`
	PerView     int     `json:"perView"`
	Translation float64 `json:"translation"`
	Count       int     `json:"count"`
	Auto        bool    `json:"auto"`
}

// handleHeroStream streams the hero slider as Server-Sent Events, advancing
// every HeroInterval until the client goes away.
func handleHeroStream(w http.ResponseWriter, r *http.Request) {
	slides, _ := projections.QueryGetHeroSlides(r.Context(), stores.SlideStore)
	c := carousel.New(len(slides))
	if p := r.URL.Query().Get("slide"); p != "" {
		if err := goToParam(c, p); err != nil {
			slog.Debug("hero_slide_ignored", "slide", p, "error", err)
		}
	}
	streamMachine(w, r, c, carousel.HeroInterval, "slide", func() any {
		return heroEvent{Active: c.Active(), Prev: c.PeekPrev(), Next: c.PeekNext(), Count: c.Len()}
	})
}

// handleTestimonialStream streams the testimonial strip offsets for the
// client's viewport width and measured card width.
func handleTestimonialStream(w http.ResponseWriter, r *http.Request) {
	items := projections.QueryGetTestimonials(r.Context(), stores.TestimonialStore)
	width, ok := queryInt(r, "width")
	if !ok {
		width = carousel.WideViewport
	}
	card, err := strconv.ParseFloat(r.URL.Query().Get("card"), 64)
	if err != nil {
		card = carousel.DefaultCardWidth
	}
	s := carousel.NewStrip(carousel.DisplayCount(len(items)), width, card)
	streamMachine(w, r, s, carousel.StripInterval, "strip", func() any {
		return stripEvent{
			Offset:      s.Offset(),
			PerView:     s.PerView(),
			Translation: s.Translation(),
			Count:       s.Len(),
			Auto:        s.Running(),
		}
	})
}

// streamMachine sends the machine's state, then one event per tick, until the
// request ends. A machine that is not running gets one event and no timer.
// INVARIANT: snapshot runs only on the player goroutine once the player starts
func streamMachine(w http.ResponseWriter, r *http.Request, m carousel.Machine, interval time.Duration, event string, snapshot func() any) {
	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, event, snapshot()); err != nil {
		slog.Warn("stream_write_failed", "event", event, "error", err)
		return
	}
	if err := rc.Flush(); err != nil {
		slog.Warn("stream_flush_failed", "event", event, "error", err)
		return
	}
	if !m.Running() {
		return
	}
	// Streams outlive the server write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		slog.Debug("stream_deadline_unsupported", "error", err)
	}

	updates := make(chan any, 1)
	push := func() {
		ev := snapshot()
		select {
		case updates <- ev:
		default:
			// Replace the update the client has not taken yet.
			select {
			case <-updates:
			default:
			}
			updates <- ev
		}
	}
	p := carousel.NewPlayer(m, streamClock, interval, push)
	if err := p.Start(r.Context()); err != nil {
		slog.Error("stream_start_failed", "event", event, "error", err)
		return
	}
	defer p.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-p.Done():
			return
		case ev := <-updates:
			if err := writeEvent(w, event, ev); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
