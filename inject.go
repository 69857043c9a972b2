package multitouch

import "time"

// DefaultInjectInterval is the time between consecutive synthetic events.
const DefaultInjectInterval = 16 * time.Millisecond

// Injector builds synthetic RawEvent sequences with a running clock. It is
// used to replay scripted gestures and to drive an Engine without hardware.
//
// Every call queues one or more events; Drain or Next deliver them.
type Injector struct {
	// Interval is added to the clock before each queued event.
	Interval time.Duration
	// Pressure is reported for every synthetic pointer.
	Pressure float64

	now      time.Duration
	nextID   int
	pointers []PointerSample
	queue    []RawEvent
}

// NewInjector returns an injector whose clock starts at zero.
func NewInjector() *Injector {
	return &Injector{Interval: DefaultInjectInterval, Pressure: 1}
}

// Now returns the timestamp of the most recently queued event.
func (in *Injector) Now() time.Duration { return in.now }

// Down returns the number of synthetic pointers in contact.
func (in *Injector) Down() int { return len(in.pointers) }

// Pending returns the number of queued events.
func (in *Injector) Pending() int { return len(in.queue) }

// Wait advances the clock without queueing an event.
func (in *Injector) Wait(d time.Duration) {
	in.now += d
}

// emit queues an event carrying a snapshot of the current pointers.
func (in *Injector) emit(action RawAction) {
	in.now += in.Interval
	ps := make([]PointerSample, len(in.pointers))
	copy(ps, in.pointers)
	in.queue = append(in.queue, RawEvent{Action: action, Pointers: ps, EventTime: in.now})
}

// Press puts a new pointer down at (x, y). The first pointer produces
// ActionDown; later ones produce ActionPointerDown. Presses beyond MaxPoints
// are ignored.
func (in *Injector) Press(x, y float64) {
	if len(in.pointers) >= MaxPoints {
		return
	}
	in.pointers = append(in.pointers, PointerSample{X: x, Y: y, Pressure: in.Pressure, ID: in.nextID})
	in.nextID++
	if len(in.pointers) == 1 {
		in.emit(RawAction(ActionDown))
		return
	}
	in.emit(PointerAction(ActionPointerDown, len(in.pointers)-1))
}

// Move moves the first pointer to (x, y). No-op when nothing is down.
func (in *Injector) Move(x, y float64) {
	if len(in.pointers) == 0 {
		return
	}
	in.pointers[0].X, in.pointers[0].Y = x, y
	in.emit(RawAction(ActionMove))
}

// MoveTwo moves the first two pointers. No-op unless two are down.
func (in *Injector) MoveTwo(x0, y0, x1, y1 float64) {
	if len(in.pointers) < 2 {
		return
	}
	in.pointers[0].X, in.pointers[0].Y = x0, y0
	in.pointers[1].X, in.pointers[1].Y = x1, y1
	in.emit(RawAction(ActionMove))
}

// Lift raises the pointer at index. The last pointer produces ActionUp;
// others produce ActionPointerUp. The lifted pointer is still reported in the
// event, as platforms do.
func (in *Injector) Lift(index int) {
	if index < 0 || index >= len(in.pointers) {
		return
	}
	if len(in.pointers) == 1 {
		in.emit(RawAction(ActionUp))
	} else {
		in.emit(PointerAction(ActionPointerUp, index))
	}
	in.pointers = append(in.pointers[:index], in.pointers[index+1:]...)
}

// Release lifts every pointer, highest index first.
func (in *Injector) Release() {
	for len(in.pointers) > 0 {
		in.Lift(len(in.pointers) - 1)
	}
}

// Cancel aborts the gesture: one ActionCancel event and every pointer is
// dropped.
func (in *Injector) Cancel() {
	if len(in.pointers) == 0 {
		return
	}
	in.emit(RawAction(ActionCancel))
	in.pointers = in.pointers[:0]
}

// Drag queues a full single-pointer drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate events, a final move to
// (toX, toY) and a release there. Minimum frames is 2.
func (in *Injector) Drag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.Press(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.Move(toX, toY)
	in.Release()
}

// Pinch queues a horizontal two-finger stretch centered on (cx, cy) whose
// span goes from d0 to d1 over frames moves. Both fingers are placed one
// after the other and lifted at the end.
func (in *Injector) Pinch(cx, cy, d0, d1 float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	in.Press(cx-d0/2, cy)
	in.Press(cx+d0/2, cy)
	for i := 1; i <= frames; i++ {
		d := d0 + (d1-d0)*float64(i)/float64(frames)
		in.MoveTwo(cx-d/2, cy, cx+d/2, cy)
	}
	in.Release()
}

// Batch runs fn and folds the ActionMove events it queued into a single event
// whose History carries all but the last of them, the way platforms batch
// high-rate samples. Non-move events and pointer-count changes end the batch
// early; events after that point are kept as they are.
func (in *Injector) Batch(fn func(in *Injector)) {
	mark := len(in.queue)
	fn(in)
	moves := in.queue[mark:]

	end := 0
	for end < len(moves) && moves[end].Action.Action() == ActionMove &&
		len(moves[end].Pointers) == len(moves[0].Pointers) {
		end++
	}
	if end < 2 {
		return
	}

	batched := moves[end-1]
	batched.History = make([]HistoricalSample, 0, end-1)
	for _, m := range moves[:end-1] {
		batched.History = append(batched.History, HistoricalSample{Pointers: m.Pointers, EventTime: m.EventTime})
	}

	rest := append([]RawEvent(nil), moves[end:]...)
	in.queue = append(append(in.queue[:mark], batched), rest...)
}

// Events returns a copy of the queued events without consuming them.
func (in *Injector) Events() []RawEvent {
	out := make([]RawEvent, len(in.queue))
	copy(out, in.queue)
	return out
}

// Next pops the oldest queued event. The second result is false when the
// queue is empty.
func (in *Injector) Next() (RawEvent, bool) {
	if len(in.queue) == 0 {
		return RawEvent{}, false
	}
	ev := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue[len(in.queue)-1] = RawEvent{}
	in.queue = in.queue[:len(in.queue)-1]
	return ev, true
}

// Drain delivers every queued event to handle in order and returns how many
// were reported handled.
func (in *Injector) Drain(handle func(*RawEvent) bool) int {
	handled := 0
	for {
		ev, ok := in.Next()
		if !ok {
			return handled
		}
		if handle(&ev) {
			handled++
		}
	}
}
