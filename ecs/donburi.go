// Package ecs provides ECS adapters for multitouch.
package ecs

import (
	"github.com/phanxgames/multitouch"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Body is an entity's size in its own coordinate space and its stacking
// layer. Higher layers are hit first.
type Body struct {
	Width, Height float64
	Layer         int
}

var (
	// Pose holds the entity's object-to-screen transform.
	Pose = donburi.NewComponentType[multitouch.Transform]()
	// BodyComponent holds the entity's size and layer.
	BodyComponent = donburi.NewComponentType[Body]()
)

// GestureKind identifies a GestureEvent.
type GestureKind uint8

const (
	GestureSelect  GestureKind = iota // a drag started on the entity
	GestureMove                       // the entity took a new pose
	GestureRelease                    // the drag on the entity ended
)

// GestureEvent is published to GestureEventType for every change the engine
// makes to an entity.
type GestureEvent struct {
	Kind   GestureKind
	Entity donburi.Entity
	Pose   multitouch.Transform
	// Pinch is true when two or more points were down.
	Pinch bool
}

// GestureEventType is the Donburi event type for gesture events. Subscribe to
// this in your ECS systems and drain it with ProcessEvents.
var GestureEventType = events.NewEventType[GestureEvent]()

// EntityCanvas implements multitouch.Canvas over the entities of a Donburi
// world that carry both Pose and BodyComponent. Handles are *donburi.Entry;
// nil means none.
type EntityCanvas struct {
	// Bounds and Margin keep at least Margin of every entity on screen.
	Bounds multitouch.Rect
	Margin float64

	world     donburi.World
	query     *donburi.Query
	selected  *donburi.Entry
	nextLayer int
}

// NewEntityCanvas creates a canvas over world.
func NewEntityCanvas(world donburi.World, bounds multitouch.Rect) *EntityCanvas {
	return &EntityCanvas{
		Bounds: bounds,
		Margin: multitouch.DefaultBoardMargin,
		world:  world,
		query:  donburi.NewQuery(filter.Contains(Pose, BodyComponent)),
	}
}

// Spawn creates a draggable entity on top of every existing one.
func (c *EntityCanvas) Spawn(width, height float64, pose multitouch.Transform) donburi.Entity {
	e := c.world.Create(Pose, BodyComponent)
	entry := c.world.Entry(e)
	Pose.SetValue(entry, pose)
	BodyComponent.SetValue(entry, Body{Width: width, Height: height, Layer: c.raise()})
	return e
}

// Selected returns the entry being manipulated, or nil.
func (c *EntityCanvas) Selected() *donburi.Entry {
	return c.selected
}

func (c *EntityCanvas) raise() int {
	c.nextLayer++
	return c.nextLayer
}

// EntityAt returns the topmost entity under the screen point, or nil.
func (c *EntityCanvas) EntityAt(sx, sy float64) *donburi.Entry {
	var hit *donburi.Entry
	best := 0
	c.query.Each(c.world, func(entry *donburi.Entry) {
		body := BodyComponent.Get(entry)
		if hit != nil && body.Layer <= best {
			return
		}
		if Pose.Get(entry).Hits(multitouch.HitRect{Width: body.Width, Height: body.Height}, sx, sy) {
			hit, best = entry, body.Layer
		}
	})
	return hit
}

// DraggableObjectAt implements multitouch.Canvas.
func (c *EntityCanvas) DraggableObjectAt(pt *multitouch.TouchFrame) *donburi.Entry {
	return c.EntityAt(pt.X(), pt.Y())
}

// PositionAndScale implements multitouch.Canvas.
func (c *EntityCanvas) PositionAndScale(entry *donburi.Entry) multitouch.Transform {
	if !entry.Valid() {
		return multitouch.Transform{}
	}
	return *Pose.Get(entry)
}

// SetPositionAndScale implements multitouch.Canvas. Removed entities and
// poses that leave less than Margin on screen are rejected.
func (c *EntityCanvas) SetPositionAndScale(entry *donburi.Entry, t multitouch.Transform, pt *multitouch.TouchFrame) bool {
	if !entry.Valid() || t.Scale <= 0 {
		return false
	}
	body := BodyComponent.Get(entry)
	inner := c.Bounds.Inset(c.Margin)
	if t.OffsetX > inner.X+inner.Width || t.OffsetX+body.Width*t.Scale < inner.X ||
		t.OffsetY > inner.Y+inner.Height || t.OffsetY+body.Height*t.Scale < inner.Y {
		return false
	}
	Pose.SetValue(entry, t)
	GestureEventType.Publish(c.world, GestureEvent{
		Kind:   GestureMove,
		Entity: entry.Entity(),
		Pose:   t,
		Pinch:  pt.IsMultiTouch(),
	})
	return true
}

// SelectObject implements multitouch.Canvas. A selected entity is raised to
// the top layer.
func (c *EntityCanvas) SelectObject(entry *donburi.Entry, pt *multitouch.TouchFrame) {
	if entry == nil {
		if prev := c.selected; prev != nil && prev.Valid() {
			GestureEventType.Publish(c.world, GestureEvent{
				Kind:   GestureRelease,
				Entity: prev.Entity(),
				Pose:   *Pose.Get(prev),
			})
		}
		c.selected = nil
		return
	}
	c.selected = entry
	BodyComponent.Get(entry).Layer = c.raise()
	GestureEventType.Publish(c.world, GestureEvent{
		Kind:   GestureSelect,
		Entity: entry.Entity(),
		Pose:   *Pose.Get(entry),
		Pinch:  pt.IsMultiTouch(),
	})
}
