package host

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// stepper is the part of a hero view a headless loop needs.
type stepper interface {
	Step(now time.Time)
	Render()
	Closed() bool
}

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz     int
	Frames uint64 // stop after N frames (0 = run until cancelled)
}

// RunHeadless drives a view from a ticker instead of a window. It returns
// when the context is cancelled, the frame budget is reached, or the view is
// closed. A frame already in flight completes; no new frames are scheduled
// afterwards.
func RunHeadless(ctx context.Context, v stepper, cfg HeadlessConfig) error {
	if v == nil {
		return errors.New("host: nil view")
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("host: invalid tick rate: %d", cfg.Hz)
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var frames uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if v.Closed() {
				return nil
			}
			v.Step(now)
			v.Render()
			frames++
			if cfg.Frames > 0 && frames >= cfg.Frames {
				return nil
			}
		}
	}
}
