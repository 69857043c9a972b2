package multitouch

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPoseReachesTarget(t *testing.T) {
	it := &Item{Width: 10, Height: 10, Pose: Transform{OffsetX: 10, OffsetY: 20, Scale: 1}}
	to := Transform{OffsetX: 100, OffsetY: 200, Scale: 3}

	tw := TweenPose(it, to, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	tw.Update(0.5)
	if tw.Done {
		t.Fatal("Done after half the duration")
	}
	if math.Abs(it.Pose.OffsetX-55) > 0.5 || math.Abs(it.Pose.Scale-2) > 0.01 {
		t.Errorf("midway pose = %+v, want ~{55 110 2}", it.Pose)
	}
	tw.Update(0.5)

	if !tw.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(it.Pose.OffsetX-100) > 0.5 || math.Abs(it.Pose.OffsetY-200) > 0.5 {
		t.Errorf("offset = (%f, %f), want ~(100, 200)", it.Pose.OffsetX, it.Pose.OffsetY)
	}
	if math.Abs(it.Pose.Scale-3) > 0.01 {
		t.Errorf("Scale = %f, want ~3", it.Pose.Scale)
	}
}

func TestTweenPoseDoneStops(t *testing.T) {
	it := &Item{Pose: Transform{Scale: 1}}
	tw := TweenPose(it, Transform{OffsetX: 50, Scale: 1}, 0.25, ease.Linear)
	tw.Update(0.25)
	if !tw.Done {
		t.Fatal("expected Done")
	}

	// Further updates must not touch the item.
	it.Pose.OffsetX = -7
	tw.Update(0.25)
	if it.Pose.OffsetX != -7 {
		t.Errorf("OffsetX = %v after Done, want -7", it.Pose.OffsetX)
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	a := &Item{Pose: Transform{Scale: 1}}
	b := &Item{Pose: Transform{Scale: 1}}
	to := Transform{OffsetX: 100, Scale: 1}

	ta := TweenPose(a, to, 1.0, ease.Linear)
	tb := TweenPose(b, to, 1.0, ease.InQuad)
	ta.Update(0.5)
	tb.Update(0.5)

	if math.Abs(a.Pose.OffsetX-b.Pose.OffsetX) < 1 {
		t.Errorf("linear %v and in-quad %v should differ at the midpoint", a.Pose.OffsetX, b.Pose.OffsetX)
	}
}

func TestTweenIntoBoard(t *testing.T) {
	b := NewBoard(Rect{Width: 800, Height: 600})
	inner := b.Bounds.Inset(b.Margin)

	inside := &Item{Width: 100, Height: 100, Pose: Transform{OffsetX: 300, OffsetY: 200, Scale: 1}}
	if tw := TweenIntoBoard(b, inside, 0.3, ease.OutCubic); tw != nil {
		t.Error("item already inside should not need a tween")
	}

	// Center at (750, 50): outside both the right and top margins.
	outside := &Item{Width: 100, Height: 100, Pose: Transform{OffsetX: 700, OffsetY: 0, Scale: 1}}
	tw := TweenIntoBoard(b, outside, 0.3, ease.Linear)
	if tw == nil {
		t.Fatal("expected a tween for an item outside the margin")
	}
	tw.Update(0.15)
	tw.Update(0.15)
	if !tw.Done {
		t.Fatal("expected Done")
	}
	bounds := outside.Bounds()
	cx, cy := bounds.X+bounds.Width/2, bounds.Y+bounds.Height/2
	if math.Abs(cx-(inner.X+inner.Width)) > 0.5 || math.Abs(cy-inner.Y) > 0.5 {
		t.Errorf("center = (%v, %v), want ~(%v, %v)", cx, cy, inner.X+inner.Width, inner.Y)
	}
	if outside.Pose.Scale != 1 {
		t.Errorf("Scale = %v, want unchanged 1", outside.Pose.Scale)
	}
}

func TestTweenIntoBoard_GrabStopsTween(t *testing.T) {
	b := NewBoard(Rect{Width: 800, Height: 600})
	card := &Item{Width: 100, Height: 100, Pose: Transform{OffsetX: 0, OffsetY: 400, Scale: 1}}
	b.Add(card)
	e := NewEngine[*Item](b)

	tw := TweenIntoBoard(b, card, 1, ease.Linear)
	if tw == nil {
		t.Fatal("expected a tween for a card past the left margin")
	}
	if tw.Target() != card {
		t.Fatalf("Target() = %p, want the card", tw.Target())
	}

	in := NewInjector()
	in.Press(50, 450)
	in.Move(50, 450)

	start := card.Pose
	for i := 0; i < 2; i++ {
		ev, ok := in.Next()
		if !ok {
			t.Fatalf("event %d missing", i)
		}
		e.OnTouchEvent(&ev)
		tw.Update(0.1)
		if card.Pose != start {
			t.Fatalf("after event %d pose = %+v, want %+v under a still finger", i, card.Pose, start)
		}
	}
	if !tw.Done {
		t.Error("grabbing the card should stop its tween")
	}
	if len(b.tweens) != 0 {
		t.Errorf("board still tracks %d tweens", len(b.tweens))
	}
}

func TestTweenIntoBoard_ReplacesRunningTween(t *testing.T) {
	b := NewBoard(Rect{Width: 800, Height: 600})
	card := &Item{Width: 100, Height: 100, Pose: Transform{OffsetX: 0, OffsetY: 400, Scale: 1}}
	b.Add(card)

	first := TweenIntoBoard(b, card, 1, ease.Linear)
	second := TweenIntoBoard(b, card, 1, ease.Linear)
	if !first.Done || second.Done {
		t.Fatalf("Done = %v, %v; want the first stopped and the second running", first.Done, second.Done)
	}

	second.Stop()
	pose := card.Pose
	second.Update(0.5)
	if card.Pose != pose {
		t.Errorf("Update after Stop moved the card to %+v", card.Pose)
	}
	if len(b.tweens) != 0 {
		t.Errorf("board still tracks %d tweens after Stop", len(b.tweens))
	}
}

func TestClampRange(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{12, 0, 10, 10},
		{5, 10, 0, 5},
	}
	for _, tt := range tests {
		if got := clampRange(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clampRange(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
