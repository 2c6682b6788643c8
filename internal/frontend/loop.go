package frontend

import (
	"context"
	"time"

	"github.com/dshills/chonker/internal/app"
	"github.com/dshills/chonker/internal/input"
	"github.com/dshills/chonker/internal/logging"
)

// DefaultTick is the frame interval when no input arrives.
const DefaultTick = 100 * time.Millisecond

type runConfig struct {
	tick time.Duration
	now  func() time.Time
	log  *logging.Logger
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithTick sets the idle frame interval.
func WithTick(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RunOption {
	return func(c *runConfig) { c.now = now }
}

// WithRunLogger sets the logger for dropped actions.
func WithRunLogger(l *logging.Logger) RunOption {
	return func(c *runConfig) { c.log = l }
}

// Run drives s until the session ends, ctx is canceled or the backend
// stops delivering events. Each frame consumes one event, applies the
// dispatched action, advances the caret and repaints. The caller owns
// the backend and must Shutdown it afterwards to release the event
// reader.
func Run(ctx context.Context, b Backend, s *app.State, r *Renderer, opts ...RunOption) error {
	cfg := runConfig{tick: DefaultTick, now: time.Now, log: logging.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.log.WithComponent("loop")

	events := make(chan input.Event)
	go func() {
		defer close(events)
		for {
			ev := b.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(cfg.tick)
	defer ticker.Stop()

	w, h := b.Size()
	frame := func(ev input.Event) error {
		if err := s.Apply(app.Dispatch(ev, s.View())); err != nil {
			if !app.IsRecoverable(err) {
				return err
			}
			log.Warn("%v: %v", ev, err)
		}
		if _, ok := ev.(input.TickEvent); !ok {
			if err := s.Apply(app.Tick{Now: cfg.now()}); err != nil {
				return err
			}
		}
		r.Render(s)
		return nil
	}

	if err := frame(input.ResizeEvent{Width: w, Height: h}); err != nil {
		return err
	}
	for !s.Done() {
		var ev input.Event
		select {
		case <-ctx.Done():
			ev = input.InterruptEvent{}
		case e, ok := <-events:
			if !ok {
				log.Info("input closed")
				return nil
			}
			ev = e
		case <-ticker.C:
			ev = input.TickEvent{Now: cfg.now()}
		}
		if err := frame(ev); err != nil {
			return err
		}
	}
	return nil
}
