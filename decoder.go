package multitouch

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrMalformedEvent is wrapped by every RawEvent validation failure.
var ErrMalformedEvent = errors.New("malformed touch event")

// HistoricalSample is an intermediate sample the platform batched between
// the previous event and this one.
type HistoricalSample struct {
	Pointers  []PointerSample
	EventTime time.Duration
}

// RawEvent is one touch event as delivered by the platform.
//
// Pointers holds the live position of every pointer, including the one
// that just went up for ActionUp and ActionPointerUp. History holds the
// older samples in chronological order; each must list the same number of
// pointers as the live payload.
type RawEvent struct {
	Action    RawAction
	Pointers  []PointerSample
	History   []HistoricalSample
	EventTime time.Duration
}

// Validate reports why ev cannot be decoded, or nil.
func (ev *RawEvent) Validate() error {
	if ev == nil {
		return fmt.Errorf("%w: nil event", ErrMalformedEvent)
	}
	n := len(ev.Pointers)
	if n == 0 {
		return fmt.Errorf("%w: no pointers", ErrMalformedEvent)
	}
	switch a := ev.Action.Action(); a {
	case ActionDown, ActionUp, ActionMove, ActionCancel:
	case ActionPointerDown, ActionPointerUp:
		if idx := ev.Action.PointerIndex(); idx >= n {
			return fmt.Errorf("%w: %v pointer index %d out of range (%d pointers)",
				ErrMalformedEvent, a, idx, n)
		}
	default:
		return fmt.Errorf("%w: unknown action code %d", ErrMalformedEvent, uint8(a))
	}
	if err := validateSamples(ev.Pointers); err != nil {
		return err
	}
	for i, h := range ev.History {
		if len(h.Pointers) != n {
			return fmt.Errorf("%w: history sample %d has %d pointers, want %d",
				ErrMalformedEvent, i, len(h.Pointers), n)
		}
		if err := validateSamples(h.Pointers); err != nil {
			return fmt.Errorf("history sample %d: %w", i, err)
		}
	}
	return nil
}

func validateSamples(ps []PointerSample) error {
	for i, p := range ps {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Pressure) {
			return fmt.Errorf("%w: pointer %d has non-finite values", ErrMalformedEvent, i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// liveDown reports whether any pointer remains in contact after action.
func liveDown(a Action) bool {
	return a != ActionUp && a != ActionPointerUp && a != ActionCancel
}

// OnTouchEvent decodes ev and runs the state machine once per sample, oldest
// history first and the live payload last. It returns false when ev is
// malformed (no step runs) or when single-touch handling is disabled and
// ev is a lone pointer while idle.
func (e *Engine[T]) OnTouchEvent(ev *RawEvent) bool {
	if err := ev.Validate(); err != nil {
		e.debugf("OnTouchEvent failed: %v", err)
		return false
	}

	pointerCount := len(ev.Pointers)
	if !e.multiTouch {
		pointerCount = 1
	}
	if e.mode == ModeIdle && !e.cfg.HandleSingleTouch && pointerCount == 1 {
		return false
	}
	n := min(pointerCount, MaxPoints)

	for _, h := range ev.History {
		e.load(h.Pointers, n)
		e.decode(n, ActionMove, true, h.EventTime)
	}
	e.load(ev.Pointers, n)
	a := ev.Action.Action()
	e.decode(n, a, liveDown(a), ev.EventTime)
	return true
}

// load copies the first n samples into the scratch arrays.
func (e *Engine[T]) load(ps []PointerSample, n int) {
	for i := 0; i < n; i++ {
		p := ps[i]
		e.xs[i] = p.X
		e.ys[i] = p.Y
		e.pressures[i] = p.Pressure
		e.ids[i] = p.ID
	}
}

// decode swaps the frame buffers, fills the new current frame and steps the
// state machine.
func (e *Engine[T]) decode(n int, action Action, down bool, eventTime time.Duration) {
	e.prev, e.curr = e.curr, e.prev
	e.curr.set(n, &e.xs, &e.ys, &e.pressures, &e.ids, action, down, eventTime)
	e.step()
	if e.afterStep != nil {
		e.afterStep()
	}
}
