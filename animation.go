package multitouch

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TransformTween animates an Item's pose toward a target Transform. Create
// one with TweenPose or TweenIntoBoard and call Update(dt) each frame.
//
// There is no global animation manager; callers drive Update themselves.
// Tweens started by TweenIntoBoard stop on their own when the board selects
// their item, so they never move an item a finger is holding.
type TransformTween struct {
	tweens [3]*gween.Tween
	target *Item
	board  *Board
	Done   bool
}

// TweenPose creates a tween moving it from its current pose to `to` over
// duration seconds.
func TweenPose(it *Item, to Transform, duration float32, fn ease.TweenFunc) *TransformTween {
	from := it.Pose
	return &TransformTween{
		target: it,
		tweens: [3]*gween.Tween{
			gween.New(float32(from.OffsetX), float32(to.OffsetX), duration, fn),
			gween.New(float32(from.OffsetY), float32(to.OffsetY), duration, fn),
			gween.New(float32(from.Scale), float32(to.Scale), duration, fn),
		},
	}
}

// Update advances the tween by dt seconds and writes the pose to the item.
func (t *TransformTween) Update(dt float32) {
	if t.Done {
		return
	}
	var vals [3]float64
	allDone := true
	for i, tw := range t.tweens {
		v, finished := tw.Update(dt)
		vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	t.target.Pose = Transform{OffsetX: vals[0], OffsetY: vals[1], Scale: vals[2]}
	if allDone {
		t.Stop()
	}
}

// Stop ends the tween where it is. Later Update calls do nothing.
func (t *TransformTween) Stop() {
	t.Done = true
	if t.board != nil {
		t.board.untrack(t)
		t.board = nil
	}
}

// Target returns the item the tween moves.
func (t *TransformTween) Target() *Item {
	return t.target
}

// TweenIntoBoard returns a tween that slides it back so its center lies
// inside the board's margin-inset bounds, or nil if no move is needed.
func TweenIntoBoard(b *Board, it *Item, duration float32, fn ease.TweenFunc) *TransformTween {
	inner := b.Bounds.Inset(b.Margin)
	bounds := it.Bounds()
	cx := bounds.X + bounds.Width/2
	cy := bounds.Y + bounds.Height/2
	tx := clampRange(cx, inner.X, inner.X+inner.Width)
	ty := clampRange(cy, inner.Y, inner.Y+inner.Height)
	if tx == cx && ty == cy {
		return nil
	}
	to := it.Pose
	to.OffsetX += tx - cx
	to.OffsetY += ty - cy
	tw := TweenPose(it, to, duration, fn)
	b.track(tw)
	return tw
}

func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
