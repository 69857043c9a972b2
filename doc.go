// Package multitouch turns raw multi-touch events into drag and stretch
// gestures on application objects, for [Ebitengine] games and any other Go
// program that receives touch input.
//
// One finger drags an object. Two fingers drag it by their midpoint and
// scale it by the change in their separation. The engine filters the noise
// typical of cheap touch screens: a settle window after every mode change,
// and rejection of sudden jumps in the two-finger midpoint or span.
//
// # Quick start
//
// Implement [Canvas] for your objects (or use the ready-made [Board] of
// rectangular [Item] values), create an [Engine], and feed it events:
//
//	board := multitouch.NewBoard(multitouch.Rect{Width: 1280, Height: 720})
//	photo := &multitouch.Item{Name: "photo", Width: 320, Height: 240}
//	photo.CenterAt(640, 360, 1)
//	board.Add(photo)
//
//	source := multitouch.NewEbitenSource(true)
//	engine := multitouch.NewEngine[*multitouch.Item](board,
//		multitouch.WithPlatform(source))
//
// Then call source.Update(engine.OnTouchEvent) from your ebiten.Game Update
// and draw each item with [Transform.GeoM]:
//
//	op := &ebiten.DrawImageOptions{GeoM: photo.Pose.GeoM()}
//	screen.DrawImage(img, op)
//
// # The Canvas
//
// The engine never owns object state. It asks the [Canvas] for the object
// under the first finger, reads its [Transform] when a gesture segment
// starts, and proposes new transforms as fingers move. The canvas may reject
// a proposal (for example to keep an object on screen); the object then
// stays where it was for that frame. Object handles are any comparable type,
// with the zero value meaning "no object".
//
// [CanvasFuncs] adapts plain functions, [ViewportCanvas] pans and zooms a
// whole [Viewport], and the ecs subpackage drives entities in a [Donburi]
// world.
//
// # Event sources
//
// [EbitenSource] polls ebiten's touch state (or the mouse when multi-touch
// is unavailable). [RemoteServer] accepts touch events from a browser over a
// websocket. [Injector] and [TestRunner] synthesize gestures for tests and
// demos; scripts are JSON or YAML.
//
// # Configuration
//
// [DefaultConfig] holds the stock thresholds. [LoadConfig] reads overrides
// from a TOML file, and [WithDebug] logs mode changes and rejected frames.
// [DebugOverlay] draws the live touch points over a game screen.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package multitouch
