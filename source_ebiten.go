package multitouch

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// touchReader is the slice of ebiten's input API the source polls.
type touchReader interface {
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
	CursorPosition() (int, int)
	MousePressed() bool
}

type ebitenReader struct{}

func (ebitenReader) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenReader) TouchPosition(id ebiten.TouchID) (int, int) {
	return ebiten.TouchPosition(id)
}

func (ebitenReader) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenReader) MousePressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// touchSlot is one active contact, kept in the order it went down.
type touchSlot struct {
	id   ebiten.TouchID
	x, y float64
	seen bool
}

// EbitenSource turns ebiten's polled touch state into RawEvents. Call Update
// once per ebiten Update tick. Without multi-touch it reports the left mouse
// button as a single pointer.
type EbitenSource struct {
	reader     touchReader
	multiTouch bool
	now        func() time.Duration

	slots     []touchSlot
	idBuf     []ebiten.TouchID
	events    []RawEvent
	mouseDown bool
	mouseX    float64
	mouseY    float64
}

// NewEbitenSource creates a source. Pass multiTouch=false on platforms with
// only a mouse; the engine then negotiates single-point decoding.
func NewEbitenSource(multiTouch bool) *EbitenSource {
	start := time.Now()
	return &EbitenSource{
		reader:     ebitenReader{},
		multiTouch: multiTouch,
		now:        func() time.Duration { return time.Since(start) },
	}
}

// SetNowFunc overrides the clock used to timestamp events.
func (s *EbitenSource) SetNowFunc(fn func() time.Duration) {
	if fn != nil {
		s.now = fn
	}
}

// Capabilities implements Platform.
func (s *EbitenSource) Capabilities() Capabilities {
	return Capabilities{MultiTouch: s.multiTouch}
}

// Poll reads the current input state and returns the events describing the
// change since the previous Poll. The returned slice is reused by the next
// call.
func (s *EbitenSource) Poll() []RawEvent {
	s.events = s.events[:0]
	t := s.now()
	if s.multiTouch {
		s.pollTouches(t)
	} else {
		s.pollMouse(t)
	}
	return s.events
}

// Update polls and delivers every event to handle.
func (s *EbitenSource) Update(handle func(*RawEvent) bool) {
	evs := s.Poll()
	for i := range evs {
		handle(&evs[i])
	}
}

// snapshot queues an event listing every active slot.
func (s *EbitenSource) snapshot(action RawAction, t time.Duration) {
	ps := make([]PointerSample, len(s.slots))
	for i, sl := range s.slots {
		ps[i] = PointerSample{X: sl.x, Y: sl.y, Pressure: 1, ID: int(sl.id)}
	}
	s.events = append(s.events, RawEvent{Action: action, Pointers: ps, EventTime: t})
}

func (s *EbitenSource) pollTouches(t time.Duration) {
	s.idBuf = s.reader.AppendTouchIDs(s.idBuf[:0])

	for i := range s.slots {
		s.slots[i].seen = false
	}
	moved := false
	var fresh []ebiten.TouchID
	for _, id := range s.idBuf {
		idx := s.slotIndex(id)
		if idx < 0 {
			fresh = append(fresh, id)
			continue
		}
		s.slots[idx].seen = true
		tx, ty := s.reader.TouchPosition(id)
		x, y := float64(tx), float64(ty)
		if x != s.slots[idx].x || y != s.slots[idx].y {
			s.slots[idx].x, s.slots[idx].y = x, y
			moved = true
		}
	}

	// Lifts first, reported at their last known positions.
	for i := len(s.slots) - 1; i >= 0; i-- {
		if s.slots[i].seen {
			continue
		}
		if len(s.slots) == 1 {
			s.snapshot(RawAction(ActionUp), t)
		} else {
			s.snapshot(PointerAction(ActionPointerUp, i), t)
		}
		s.slots = append(s.slots[:i], s.slots[i+1:]...)
	}

	if moved && len(s.slots) > 0 {
		s.snapshot(RawAction(ActionMove), t)
	}

	for _, id := range fresh {
		if len(s.slots) >= MaxPoints {
			break
		}
		tx, ty := s.reader.TouchPosition(id)
		s.slots = append(s.slots, touchSlot{id: id, x: float64(tx), y: float64(ty), seen: true})
		if len(s.slots) == 1 {
			s.snapshot(RawAction(ActionDown), t)
		} else {
			s.snapshot(PointerAction(ActionPointerDown, len(s.slots)-1), t)
		}
	}
}

// slotIndex returns the slot holding id, or -1.
func (s *EbitenSource) slotIndex(id ebiten.TouchID) int {
	for i := range s.slots {
		if s.slots[i].id == id {
			return i
		}
	}
	return -1
}

func (s *EbitenSource) pollMouse(t time.Duration) {
	mx, my := s.reader.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := s.reader.MousePressed()

	var action Action
	switch {
	case pressed && !s.mouseDown:
		action = ActionDown
	case !pressed && s.mouseDown:
		action = ActionUp
	case pressed && (x != s.mouseX || y != s.mouseY):
		action = ActionMove
	default:
		return
	}
	s.mouseDown = pressed
	if action != ActionUp {
		s.mouseX, s.mouseY = x, y
	}
	s.events = append(s.events, RawEvent{
		Action:    RawAction(action),
		Pointers:  []PointerSample{{X: s.mouseX, Y: s.mouseY, Pressure: 1}},
		EventTime: t,
	})
}
