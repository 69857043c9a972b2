package multitouch

import (
	"io"
	"os"
	"time"
)

// Engine turns raw touch events into drag and stretch operations on objects
// supplied by a Canvas.
//
// An Engine is not safe for concurrent use. Deliver every event from the same
// goroutine (normally the one running the game or UI loop).
type Engine[T comparable] struct {
	canvas     Canvas[T]
	cfg        Config
	multiTouch bool
	debugOut   io.Writer

	// Two frames swapped on every step; prev holds the step before curr.
	frames     [2]TouchFrame
	curr, prev *TouchFrame

	mode    Mode
	dragged T

	// Anchor in object space and the scale-per-diameter ratio, both fixed at
	// the start of a segment.
	anchorX, anchorY float64
	startScaleRatio  float64
	pose             Transform

	dragStartTime  time.Duration
	settleDeadline time.Duration

	// afterStep, when set, runs after every state machine step, history
	// samples included.
	afterStep func()

	// Decode scratch, reused for every event.
	xs        [MaxPoints]float64
	ys        [MaxPoints]float64
	pressures [MaxPoints]float64
	ids       [MaxPoints]int
}

// NewEngine creates an engine driving canvas.
func NewEngine[T comparable](canvas Canvas[T], opts ...Option) *Engine[T] {
	o := engineOptions{
		cfg:      DefaultConfig(),
		platform: fullPlatform{},
		debugOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine[T]{
		canvas:     canvas,
		cfg:        o.config(),
		multiTouch: o.platform.Capabilities().MultiTouch,
		debugOut:   o.debugOut,
	}
	e.curr = &e.frames[0]
	e.prev = &e.frames[1]
	if o.cfgErr != nil {
		e.debugf("ignoring config: %v", o.cfgErr)
	}
	return e
}

// Mode returns the current gesture state.
func (e *Engine[T]) Mode() Mode { return e.mode }

// DraggedObject returns the object being manipulated, or the zero T when idle.
func (e *Engine[T]) DraggedObject() T { return e.dragged }

// Frame returns the most recently decoded frame. It is overwritten by the
// next event; use TouchFrame.CopyFrom to keep it.
func (e *Engine[T]) Frame() *TouchFrame { return e.curr }

// Config returns the engine's tuning.
func (e *Engine[T]) Config() Config { return e.cfg }

// MultiTouch reports whether the platform negotiated multi-touch support.
func (e *Engine[T]) MultiTouch() bool { return e.multiTouch }

// isNone reports whether obj is the "no object" handle.
func (e *Engine[T]) isNone(obj T) bool {
	var zero T
	return obj == zero
}

// setMode records a mode change and logs it in debug mode.
func (e *Engine[T]) setMode(m Mode) {
	if m != e.mode {
		e.debugf("mode %v -> %v at %v", e.mode, m, e.curr.eventTime)
	}
	e.mode = m
}

// endDrag returns to idle and tells the canvas the object was released.
func (e *Engine[T]) endDrag() {
	e.setMode(ModeIdle)
	var zero T
	e.dragged = zero
	e.canvas.SelectObject(zero, e.curr)
}

// restartSettle starts a new segment at the current frame and suppresses
// motion for the settle interval.
func (e *Engine[T]) restartSettle() {
	e.resetDrag()
	e.dragStartTime = e.curr.eventTime
	e.settleDeadline = e.dragStartTime + e.cfg.SettleInterval
}

// step runs the state machine once for the current frame.
func (e *Engine[T]) step() {
	curr := e.curr

	switch e.mode {
	case ModeIdle:
		// With single-touch pass-through, the first frame the engine sees
		// already has two points, so it may start the session.
		if !curr.down || (curr.multi && e.cfg.HandleSingleTouch) {
			return
		}
		obj := e.canvas.DraggableObjectAt(curr)
		if e.isNone(obj) {
			return
		}
		e.dragged = obj
		e.setMode(ModeDrag)
		e.canvas.SelectObject(obj, curr)
		e.resetDrag()
		// A lone first finger carries no multi-touch noise.
		e.dragStartTime = curr.eventTime
		e.settleDeadline = curr.eventTime

	case ModeDrag:
		switch {
		case !curr.down:
			e.endDrag()
		case curr.multi:
			e.setMode(ModeStretch)
			e.restartSettle()
		case curr.eventTime < e.settleDeadline:
			// The remaining finger may have been remapped to the other
			// pointer slot after a stretch ended.
			e.resetDrag()
		default:
			e.performDrag()
		}

	case ModeStretch:
		if !curr.multi || !curr.down {
			if !curr.down {
				e.endDrag()
				return
			}
			e.setMode(ModeDrag)
			e.restartSettle()
			return
		}
		prev := e.prev
		if e.isJump(curr, prev) {
			e.debugf("noise reset at %v", curr.eventTime)
			e.restartSettle()
		} else if curr.eventTime < e.settleDeadline {
			e.resetDrag()
		} else {
			e.performDrag()
		}
	}
}

// isJump reports whether the step from prev to curr is too large to be real
// finger motion.
func (e *Engine[T]) isJump(curr, prev *TouchFrame) bool {
	posJump := max(abs(curr.midX-prev.midX), abs(curr.midY-prev.midY))
	dimJump := max(abs(curr.width-prev.width), abs(curr.height-prev.height)) * 0.5
	return posJump > e.cfg.MaxPosJump || dimJump > e.cfg.MaxDimJump
}

// resetDrag re-reads the object's pose and pins the current touch midpoint
// to a fixed point in object space.
func (e *Engine[T]) resetDrag() {
	if e.isNone(e.dragged) {
		return
	}
	e.pose = e.canvas.PositionAndScale(e.dragged)

	e.anchorX, e.anchorY = e.pose.ScreenToObject(e.curr.midX, e.curr.midY)

	d := 1.0
	if e.curr.multi {
		if diam := e.curr.Diameter(); diam != 0 {
			d = diam
		}
	}
	e.startScaleRatio = e.pose.Scale / d
}

// performDrag proposes a pose that keeps the anchor under the touch midpoint
// and scales with the touch diameter.
func (e *Engine[T]) performDrag() {
	if e.isNone(e.dragged) {
		return
	}
	s := e.pose.safeScale()
	x := e.curr.midX - e.anchorX*s
	y := e.curr.midY - e.anchorY*s

	diam := 1.0
	if e.curr.multi {
		diam = clampSeparation(e.curr.Diameter(), e.cfg.MinSeparation)
	}

	e.pose = Transform{OffsetX: x, OffsetY: y, Scale: diam * e.startScaleRatio}
	if !e.canvas.SetPositionAndScale(e.dragged, e.pose, e.curr) {
		// The object stays put; the next accepted frame moves it again.
		e.debugf("pose rejected at %v: %+v", e.curr.eventTime, e.pose)
	}
}
