package multitouch

import "github.com/google/uuid"

// --- Built-in HitShape types ---

// HitShape tests containment in an item's local (unscaled) coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon: every edge must
// see the point on the same side.
func (p HitPolygon) Contains(x, y float64) bool {
	if len(p.Points) < 3 {
		return false
	}
	side := 0.0
	prev := p.Points[len(p.Points)-1]
	for _, pt := range p.Points {
		cross := (pt.X-prev.X)*(y-prev.Y) - (pt.Y-prev.Y)*(x-prev.X)
		if cross != 0 {
			if side != 0 && (cross > 0) != (side > 0) {
				return false
			}
			side = cross
		}
		prev = pt
	}
	return true
}

// --- Board ---

// DefaultBoardMargin is how much of an item must stay on the board.
const DefaultBoardMargin = 100.0

// Item is a draggable, scalable rectangle on a Board. Its local coordinate
// space spans (0, 0) to (Width, Height); Pose maps it to the screen.
type Item struct {
	// ID identifies the item on its board. Add assigns a random UUID when
	// it is empty.
	ID            string
	Name          string
	Width, Height float64
	Pose          Transform
	// HitShape overrides the default full-rectangle hit area.
	HitShape HitShape
	// UserData is arbitrary application data.
	UserData any
}

// Bounds returns the item's screen-space bounding box.
func (it *Item) Bounds() Rect {
	s := it.Pose.Scale
	return Rect{X: it.Pose.OffsetX, Y: it.Pose.OffsetY, Width: it.Width * s, Height: it.Height * s}
}

// ContainsScreen reports whether the screen point (sx, sy) hits the item.
func (it *Item) ContainsScreen(sx, sy float64) bool {
	return it.Pose.Hits(it.hitShape(), sx, sy)
}

// hitShape returns HitShape, or the item's full rectangle.
func (it *Item) hitShape() HitShape {
	if it.HitShape != nil {
		return it.HitShape
	}
	return HitRect{Width: it.Width, Height: it.Height}
}

// CenterAt places the item so its center sits at (cx, cy) with scale s.
func (it *Item) CenterAt(cx, cy, s float64) {
	it.Pose = Transform{OffsetX: cx - it.Width*s/2, OffsetY: cy - it.Height*s/2, Scale: s}
}

// Board is a stack of items implementing Canvas[*Item]. The last item is
// drawn on top and hit first. Poses that would leave less than Margin of an
// item inside Bounds, or that have a non-positive scale, are rejected.
type Board struct {
	Bounds Rect
	Margin float64
	// MinScale and MaxScale bound accepted scales when non-zero.
	MinScale, MaxScale float64

	items    []*Item
	selected *Item
	last     TouchFrame
	hasLast  bool
	tweens   map[*Item]*TransformTween
}

// NewBoard creates an empty board covering bounds.
func NewBoard(bounds Rect) *Board {
	return &Board{Bounds: bounds, Margin: DefaultBoardMargin}
}

// Add pushes an item on top of the stack.
func (b *Board) Add(it *Item) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	b.items = append(b.items, it)
}

// Find returns the item with the given ID, or nil.
func (b *Board) Find(id string) *Item {
	for _, it := range b.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Remove takes an item off the board. Removing the selected item clears the
// selection.
func (b *Board) Remove(it *Item) bool {
	for i, x := range b.items {
		if x == it {
			copy(b.items[i:], b.items[i+1:])
			b.items[len(b.items)-1] = nil
			b.items = b.items[:len(b.items)-1]
			if b.selected == it {
				b.selected = nil
			}
			b.stopTween(it)
			return true
		}
	}
	return false
}

// Items returns the stack bottom to top. The slice is owned by the board.
func (b *Board) Items() []*Item {
	return b.items
}

// Selected returns the item being manipulated, or nil.
func (b *Board) Selected() *Item {
	return b.selected
}

// LastFrame returns a copy of the most recent touch frame the engine passed
// in, for debug drawing. The second result is false before any touch.
func (b *Board) LastFrame() (TouchFrame, bool) {
	return b.last, b.hasLast
}

// ItemAt returns the topmost item under the screen point, or nil.
func (b *Board) ItemAt(sx, sy float64) *Item {
	for i := len(b.items) - 1; i >= 0; i-- {
		if b.items[i].ContainsScreen(sx, sy) {
			return b.items[i]
		}
	}
	return nil
}

// Accepts reports whether it may take pose t.
func (b *Board) Accepts(it *Item, t Transform) bool {
	if t.Scale <= 0 {
		return false
	}
	if b.MinScale > 0 && t.Scale < b.MinScale {
		return false
	}
	if b.MaxScale > 0 && t.Scale > b.MaxScale {
		return false
	}
	inner := b.Bounds.Inset(b.Margin)
	minX, minY := t.OffsetX, t.OffsetY
	maxX, maxY := minX+it.Width*t.Scale, minY+it.Height*t.Scale
	return minX <= inner.X+inner.Width && maxX >= inner.X &&
		minY <= inner.Y+inner.Height && maxY >= inner.Y
}

// DraggableObjectAt implements Canvas.
func (b *Board) DraggableObjectAt(pt *TouchFrame) *Item {
	return b.ItemAt(pt.X(), pt.Y())
}

// PositionAndScale implements Canvas.
func (b *Board) PositionAndScale(it *Item) Transform {
	return it.Pose
}

// SetPositionAndScale implements Canvas.
func (b *Board) SetPositionAndScale(it *Item, t Transform, pt *TouchFrame) bool {
	b.remember(pt)
	if !b.Accepts(it, t) {
		return false
	}
	it.Pose = t
	return true
}

// SelectObject implements Canvas. A selected item moves to the top of the
// stack.
func (b *Board) SelectObject(it *Item, pt *TouchFrame) {
	b.remember(pt)
	b.selected = it
	if it == nil {
		return
	}
	b.stopTween(it)
	for i, x := range b.items {
		if x == it {
			copy(b.items[i:], b.items[i+1:])
			b.items[len(b.items)-1] = it
			return
		}
	}
}

// track makes tw the item's running board tween, stopping any previous one.
func (b *Board) track(tw *TransformTween) {
	b.stopTween(tw.target)
	if b.tweens == nil {
		b.tweens = make(map[*Item]*TransformTween)
	}
	b.tweens[tw.target] = tw
	tw.board = b
}

func (b *Board) untrack(tw *TransformTween) {
	if b.tweens[tw.target] == tw {
		delete(b.tweens, tw.target)
	}
}

// stopTween stops the tween moving it, if any.
func (b *Board) stopTween(it *Item) {
	if tw, ok := b.tweens[it]; ok {
		tw.Stop()
	}
}

func (b *Board) remember(pt *TouchFrame) {
	if pt == nil {
		return
	}
	b.last.CopyFrom(pt)
	b.hasLast = true
}
