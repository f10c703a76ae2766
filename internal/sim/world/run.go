package world

import (
	"context"
	"time"

	"gridhunt.ai/internal/protocol"
)

// FrameFn observes one completed tick. It runs on the simulation goroutine;
// implementations must not block.
type FrameFn func(entry protocol.TickLogEntry)

// Run steps the world ticks times, invoking onFrame after each tick and
// sleeping delay between ticks when delay > 0. The context cancels the run
// between ticks; a tick in progress always completes.
func (w *World) Run(ctx context.Context, ticks int, delay time.Duration, onFrame FrameFn) error {
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		entry := w.Step()
		if onFrame != nil {
			onFrame(entry)
		}

		if delay > 0 && i < ticks-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil
}
