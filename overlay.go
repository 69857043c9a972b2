package multitouch

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay mark sizes, in screen pixels.
const (
	overlayBaseRadius     = 70.0
	overlayPressureRadius = 120.0
)

// overlayMark is one circle the overlay draws.
type overlayMark struct {
	X, Y, R float64
}

// touchMarks appends a circle per touch point, sized by pressure, and for
// multi-touch frames a circle spanning the two primary points.
func touchMarks(f *TouchFrame, dst []overlayMark) []overlayMark {
	if f == nil || !f.Down() {
		return dst
	}
	for i := 0; i < f.Count(); i++ {
		p := f.Point(i)
		dst = append(dst, overlayMark{X: p.X, Y: p.Y, R: overlayBaseRadius + p.Pressure*overlayPressureRadius})
	}
	if f.IsMultiTouch() {
		dst = append(dst, overlayMark{X: f.X(), Y: f.Y(), R: f.Diameter() / 2})
	}
	return dst
}

// overlayLabel describes the frame's gesture state.
func overlayLabel(f *TouchFrame, mode Mode) string {
	if f == nil || !f.Down() {
		return mode.String()
	}
	if !f.IsMultiTouch() {
		return fmt.Sprintf("%v (%.0f, %.0f)", mode, f.X(), f.Y())
	}
	return fmt.Sprintf("%v d=%.0f a=%.0f°", mode, f.Diameter(), f.Angle()*180/math.Pi)
}

// DebugOverlay draws touch points, the pinch span, and FPS/TPS on top of a
// frame.
type DebugOverlay struct {
	ShowFPS    bool
	PointColor color.Color
	SpanColor  color.Color

	marks []overlayMark
}

// NewDebugOverlay returns an overlay with the default colors.
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{
		ShowFPS:    true,
		PointColor: color.RGBA{255, 255, 0, 200},
		SpanColor:  color.RGBA{0, 200, 255, 200},
	}
}

// Draw renders f and mode onto screen. f may be nil.
func (o *DebugOverlay) Draw(screen *ebiten.Image, f *TouchFrame, mode Mode) {
	o.marks = touchMarks(f, o.marks[:0])
	for i, m := range o.marks {
		clr := o.PointColor
		if f.IsMultiTouch() && i == len(o.marks)-1 {
			clr = o.SpanColor
		}
		vector.StrokeCircle(screen, float32(m.X), float32(m.Y), float32(m.R), 2, clr, true)
	}
	if f != nil && f.Down() && f.IsMultiTouch() {
		a, b := f.Point(0), f.Point(1)
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, o.SpanColor, true)
	}

	label := overlayLabel(f, mode)
	if o.ShowFPS {
		label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s", ebiten.ActualFPS(), ebiten.ActualTPS(), label)
	}
	ebitenutil.DebugPrint(screen, label)
}
