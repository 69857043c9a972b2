package multitouch

// Canvas is implemented by the application that owns the draggable objects.
// T is the object handle type; its zero value means "no object".
//
// The frame passed to each method is borrowed for the duration of the call.
type Canvas[T comparable] interface {
	// DraggableObjectAt returns the topmost object under the touch point, or
	// the zero T to start no drag. To stretch a whole canvas, always return
	// a non-zero handle.
	DraggableObjectAt(pt *TouchFrame) T

	// PositionAndScale returns the object's current pose. Called at every
	// anchor reset, so it must reflect the authoritative state.
	PositionAndScale(obj T) Transform

	// SetPositionAndScale proposes a new pose. Return false to reject it; the
	// object then stays where it was for this frame.
	SetPositionAndScale(obj T, t Transform, pt *TouchFrame) bool

	// SelectObject is called with the object when a drag starts and with the
	// zero T when it ends.
	SelectObject(obj T, pt *TouchFrame)
}

// CanvasFuncs adapts plain functions to the Canvas interface. Nil fields
// behave as "no object", a zero Transform, acceptance, and a no-op.
type CanvasFuncs[T comparable] struct {
	ObjectAt    func(pt *TouchFrame) T
	GetPose     func(obj T) Transform
	SetPose     func(obj T, t Transform, pt *TouchFrame) bool
	OnSelection func(obj T, pt *TouchFrame)
}

// DraggableObjectAt implements Canvas.
func (c CanvasFuncs[T]) DraggableObjectAt(pt *TouchFrame) T {
	if c.ObjectAt == nil {
		var zero T
		return zero
	}
	return c.ObjectAt(pt)
}

// PositionAndScale implements Canvas.
func (c CanvasFuncs[T]) PositionAndScale(obj T) Transform {
	if c.GetPose == nil {
		return Transform{}
	}
	return c.GetPose(obj)
}

// SetPositionAndScale implements Canvas.
func (c CanvasFuncs[T]) SetPositionAndScale(obj T, t Transform, pt *TouchFrame) bool {
	if c.SetPose == nil {
		return true
	}
	return c.SetPose(obj, t, pt)
}

// SelectObject implements Canvas.
func (c CanvasFuncs[T]) SelectObject(obj T, pt *TouchFrame) {
	if c.OnSelection != nil {
		c.OnSelection(obj, pt)
	}
}
