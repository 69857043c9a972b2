package multitouch

import "time"

// --- Constants ---

const (
	// MaxPoints is the number of touch points a TouchFrame can hold.
	MaxPoints = 10

	DefaultSettleInterval = 20 * time.Millisecond // quiet period after a mode change
	DefaultMaxPosJump     = 30.0                  // largest midpoint move accepted between stretch frames
	DefaultMaxDimJump     = 40.0                  // largest half-span change accepted between stretch frames
	DefaultMinSeparation  = 30.0                  // smallest diameter used in scale math
)

// Vec2 is a 2D vector used for touch positions.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Inset returns r shrunk by m on every side. A negative m grows it.
func (r Rect) Inset(m float64) Rect {
	return Rect{X: r.X + m, Y: r.Y + m, Width: r.Width - 2*m, Height: r.Height - 2*m}
}

// Action identifies what happened in a touch event.
type Action uint8

const (
	ActionDown        Action = 0 // first pointer went down
	ActionUp          Action = 1 // last pointer went up
	ActionMove        Action = 2 // one or more pointers moved
	ActionCancel      Action = 3 // the platform aborted the gesture
	ActionPointerDown Action = 5 // an additional pointer went down
	ActionPointerUp   Action = 6 // a non-last pointer went up
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionMove:
		return "move"
	case ActionCancel:
		return "cancel"
	case ActionPointerDown:
		return "pointer_down"
	case ActionPointerUp:
		return "pointer_up"
	default:
		return "unknown"
	}
}

// ParseAction converts an action name produced by Action.String back into an
// Action. The second result is false for unknown names.
func ParseAction(name string) (Action, bool) {
	switch name {
	case "down":
		return ActionDown, true
	case "up":
		return ActionUp, true
	case "move":
		return ActionMove, true
	case "cancel":
		return ActionCancel, true
	case "pointer_down":
		return ActionPointerDown, true
	case "pointer_up":
		return ActionPointerUp, true
	}
	return 0, false
}

const (
	// ActionMask selects the Action bits of a RawAction.
	ActionMask = 0xff
	// ActionPointerIndexShift is the bit offset of the pointer index embedded
	// in pointer-specific raw actions.
	ActionPointerIndexShift = 8
)

// RawAction is the encoded action code delivered by the platform. The low
// byte holds the Action; pointer-specific actions carry the index of the
// affected pointer above ActionPointerIndexShift.
type RawAction uint32

// PointerAction encodes a pointer-specific action for the pointer at index.
func PointerAction(a Action, index int) RawAction {
	return RawAction(a) | RawAction(index)<<ActionPointerIndexShift
}

// Action returns the decoded action.
func (r RawAction) Action() Action {
	return Action(r & ActionMask)
}

// PointerIndex returns the pointer index embedded in the raw action. Only
// meaningful for ActionPointerDown and ActionPointerUp.
func (r RawAction) PointerIndex() int {
	return int(r >> ActionPointerIndexShift)
}

// Mode is the gesture state.
type Mode uint8

const (
	ModeIdle    Mode = iota // no object is being manipulated
	ModeDrag                // one point moves the object
	ModeStretch             // two points move and scale the object
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrag:
		return "drag"
	case ModeStretch:
		return "stretch"
	default:
		return "unknown"
	}
}
