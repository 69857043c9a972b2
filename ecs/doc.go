// Package ecs provides ECS adapters for multitouch.
//
// The primary adapter is [EntityCanvas], which lets a multitouch engine drag
// and stretch entities in a [Donburi] world. Entities need the [Pose] and
// [BodyComponent] components; create them with [EntityCanvas.Spawn]. Every
// selection, move, and release is published as a typed event. Subscribe to
// [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	canvas := ecs.NewEntityCanvas(world, multitouch.Rect{Width: 1280, Height: 720})
//	canvas.Spawn(200, 150, multitouch.Transform{OffsetX: 100, OffsetY: 100, Scale: 1})
//	engine := multitouch.NewEngine[*donburi.Entry](canvas)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
