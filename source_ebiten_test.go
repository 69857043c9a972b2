package multitouch

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeReader is a scripted touchReader.
type fakeReader struct {
	touches map[ebiten.TouchID][2]int
	order   []ebiten.TouchID
	cx, cy  int
	pressed bool
}

func newFakeReader() *fakeReader {
	return &fakeReader{touches: map[ebiten.TouchID][2]int{}}
}

func (r *fakeReader) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return append(ids, r.order...)
}

func (r *fakeReader) TouchPosition(id ebiten.TouchID) (int, int) {
	p := r.touches[id]
	return p[0], p[1]
}

func (r *fakeReader) CursorPosition() (int, int) { return r.cx, r.cy }

func (r *fakeReader) MousePressed() bool { return r.pressed }

func (r *fakeReader) down(id ebiten.TouchID, x, y int) {
	if _, ok := r.touches[id]; !ok {
		r.order = append(r.order, id)
	}
	r.touches[id] = [2]int{x, y}
}

func (r *fakeReader) up(id ebiten.TouchID) {
	delete(r.touches, id)
	for i, x := range r.order {
		if x == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func newTestSource(multiTouch bool) (*EbitenSource, *fakeReader) {
	r := newFakeReader()
	s := NewEbitenSource(multiTouch)
	s.reader = r
	var now time.Duration
	s.SetNowFunc(func() time.Duration {
		now += 16 * time.Millisecond
		return now
	})
	return s, r
}

func TestEbitenSource_TouchLifecycle(t *testing.T) {
	s, r := newTestSource(true)

	if evs := s.Poll(); len(evs) != 0 {
		t.Fatalf("idle poll produced %d events", len(evs))
	}

	r.down(7, 100, 100)
	evs := s.Poll()
	if len(evs) != 1 || evs[0].Action != RawAction(ActionDown) {
		t.Fatalf("first touch = %+v, want one down", evs)
	}
	if evs[0].Pointers[0].ID != 7 || evs[0].Pointers[0].X != 100 {
		t.Errorf("down pointer = %+v", evs[0].Pointers[0])
	}

	r.down(9, 200, 100)
	evs = s.Poll()
	if len(evs) != 1 || evs[0].Action != PointerAction(ActionPointerDown, 1) || len(evs[0].Pointers) != 2 {
		t.Fatalf("second touch = %+v, want pointer down 1 with two pointers", evs)
	}

	r.down(7, 110, 100)
	evs = s.Poll()
	if len(evs) != 1 || evs[0].Action != RawAction(ActionMove) || evs[0].Pointers[0].X != 110 {
		t.Fatalf("move = %+v", evs)
	}

	// No change, no event.
	if evs := s.Poll(); len(evs) != 0 {
		t.Fatalf("unchanged poll produced %+v", evs)
	}

	r.up(7)
	evs = s.Poll()
	if len(evs) != 1 || evs[0].Action != PointerAction(ActionPointerUp, 0) || len(evs[0].Pointers) != 2 {
		t.Fatalf("first lift = %+v, want pointer up 0 listing both pointers", evs)
	}

	r.up(9)
	evs = s.Poll()
	if len(evs) != 1 || evs[0].Action != RawAction(ActionUp) || evs[0].Pointers[0].ID != 9 {
		t.Fatalf("last lift = %+v, want up for id 9", evs)
	}
}

func TestEbitenSource_LiftBeforeDownInOnePoll(t *testing.T) {
	s, r := newTestSource(true)
	r.down(1, 10, 10)
	s.Poll()

	// Finger 1 lifts and finger 2 lands between two polls.
	r.up(1)
	r.down(2, 50, 50)
	evs := s.Poll()
	if len(evs) != 2 {
		t.Fatalf("got %d events, want up then down", len(evs))
	}
	if evs[0].Action != RawAction(ActionUp) || evs[1].Action != RawAction(ActionDown) {
		t.Errorf("actions = %#x %#x, want up, down", uint32(evs[0].Action), uint32(evs[1].Action))
	}
	for i, ev := range evs {
		if err := ev.Validate(); err != nil {
			t.Errorf("event %d invalid: %v", i, err)
		}
	}
}

func TestEbitenSource_MouseFallback(t *testing.T) {
	s, r := newTestSource(false)
	if s.Capabilities().MultiTouch {
		t.Fatal("mouse source reported multi-touch")
	}

	r.cx, r.cy, r.pressed = 5, 6, true
	evs := s.Poll()
	if len(evs) != 1 || evs[0].Action != RawAction(ActionDown) {
		t.Fatalf("press = %+v", evs)
	}

	r.cx = 25
	evs = s.Poll()
	if len(evs) != 1 || evs[0].Action != RawAction(ActionMove) || evs[0].Pointers[0].X != 25 {
		t.Fatalf("move = %+v", evs)
	}

	// Hover without the button: nothing.
	r.pressed = false
	r.cx = 90
	evs = s.Poll()
	if len(evs) != 1 || evs[0].Action != RawAction(ActionUp) || evs[0].Pointers[0].X != 25 {
		t.Fatalf("release = %+v, want up at the last pressed position", evs)
	}
	r.cx = 91
	if evs := s.Poll(); len(evs) != 0 {
		t.Errorf("hover produced %+v", evs)
	}
}

func TestEbitenSource_DrivesEngine(t *testing.T) {
	s, r := newTestSource(true)
	b := NewBoard(Rect{Width: 800, Height: 600})
	card := &Item{Width: 100, Height: 100, Pose: Transform{OffsetX: 100, OffsetY: 100, Scale: 1}}
	b.Add(card)
	e := NewEngine[*Item](b, WithPlatform(s))

	r.down(3, 150, 150)
	s.Update(e.OnTouchEvent)
	r.down(3, 170, 160)
	s.Update(e.OnTouchEvent)
	r.up(3)
	s.Update(e.OnTouchEvent)

	if card.Pose != (Transform{OffsetX: 120, OffsetY: 110, Scale: 1}) {
		t.Errorf("card pose = %+v, want offset (120,110)", card.Pose)
	}
	if e.Mode() != ModeIdle {
		t.Errorf("mode = %v, want idle", e.Mode())
	}
}
