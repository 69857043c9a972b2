package multitouch

import "time"

// PointerSample is one touch point as delivered by the platform.
type PointerSample struct {
	X, Y     float64
	Pressure float64
	ID       int
}

// TouchFrame is a snapshot of every active touch point at one instant, plus
// the two-point geometry derived from it.
//
// The engine owns two frames and overwrites them on every event. A frame
// handed to a Canvas callback is borrowed for the duration of that call;
// use CopyFrom to keep it.
type TouchFrame struct {
	xs        [MaxPoints]float64
	ys        [MaxPoints]float64
	pressures [MaxPoints]float64
	ids       [MaxPoints]int
	count     int

	down      bool
	action    Action
	eventTime time.Duration

	// Derived on set.
	multi         bool
	midX, midY    float64
	midPressure   float64
	width, height float64

	// Derived lazily.
	diameterSq   float64
	diameter     float64
	angle        float64
	diameterSqOK bool
	diameterOK   bool
	angleOK      bool
}

// set overwrites the frame with n points and invalidates the cached geometry.
// n must not exceed MaxPoints.
func (f *TouchFrame) set(n int, xs, ys, pressures *[MaxPoints]float64, ids *[MaxPoints]int,
	action Action, down bool, eventTime time.Duration) {
	f.count = n
	for i := 0; i < n; i++ {
		f.xs[i] = xs[i]
		f.ys[i] = ys[i]
		f.pressures[i] = pressures[i]
		f.ids[i] = ids[i]
	}
	f.action = action
	f.down = down
	f.eventTime = eventTime
	f.multi = n >= 2

	if f.multi {
		f.midX = (xs[0] + xs[1]) * 0.5
		f.midY = (ys[0] + ys[1]) * 0.5
		f.midPressure = (pressures[0] + pressures[1]) * 0.5
		f.width = abs(xs[1] - xs[0])
		f.height = abs(ys[1] - ys[0])
	} else {
		f.midX = xs[0]
		f.midY = ys[0]
		f.midPressure = pressures[0]
		f.width, f.height = 0, 0
	}

	f.diameterSqOK = false
	f.diameterOK = false
	f.angleOK = false
}

// CopyFrom makes f a deep copy of other, including cached geometry.
func (f *TouchFrame) CopyFrom(other *TouchFrame) {
	*f = *other
}

// Count returns the number of touch points.
func (f *TouchFrame) Count() int { return f.count }

// Down reports whether at least one pointer is still in contact.
func (f *TouchFrame) Down() bool { return f.down }

// Action returns the action that produced this frame. Frames replayed from
// event history always report ActionMove.
func (f *TouchFrame) Action() Action { return f.action }

// EventTime returns the timestamp of the sample this frame was built from.
func (f *TouchFrame) EventTime() time.Duration { return f.eventTime }

// IsMultiTouch reports whether two or more points are present.
func (f *TouchFrame) IsMultiTouch() bool { return f.multi }

// Point returns touch point i. Only indices below Count are defined.
func (f *TouchFrame) Point(i int) PointerSample {
	return PointerSample{X: f.xs[i], Y: f.ys[i], Pressure: f.pressures[i], ID: f.ids[i]}
}

// X returns the first point's X, or the midpoint of the first two points
// when multi-touch.
func (f *TouchFrame) X() float64 { return f.midX }

// Y returns the first point's Y, or the midpoint of the first two points
// when multi-touch.
func (f *TouchFrame) Y() float64 { return f.midY }

// Pressure returns the first point's pressure, or the mean of the first two.
func (f *TouchFrame) Pressure() float64 { return f.midPressure }

// Width returns |x1-x0| of the first two points, 0 for single touch.
func (f *TouchFrame) Width() float64 { return f.width }

// Height returns |y1-y0| of the first two points, 0 for single touch.
func (f *TouchFrame) Height() float64 { return f.height }

// DiameterSquared returns the squared span of the first two points.
func (f *TouchFrame) DiameterSquared() float64 {
	if !f.diameterSqOK {
		if f.multi {
			f.diameterSq = f.width*f.width + f.height*f.height
		} else {
			f.diameterSq = 0
		}
		f.diameterSqOK = true
	}
	return f.diameterSq
}

// Diameter returns the span of the first two points at 1/16 unit precision.
// It is never smaller than Width or Height.
func (f *TouchFrame) Diameter() float64 {
	if !f.diameterOK {
		f.diameter = diameterFromSquared(f.DiameterSquared(), f.width, f.height)
		f.diameterOK = true
	}
	return f.diameter
}

// Angle returns the angle in radians of the line from point 0 to point 1,
// or 0 for single touch.
func (f *TouchFrame) Angle() float64 {
	if !f.angleOK {
		if f.multi {
			f.angle = spanAngle(f.xs[0], f.ys[0], f.xs[1], f.ys[1])
		} else {
			f.angle = 0
		}
		f.angleOK = true
	}
	return f.angle
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
