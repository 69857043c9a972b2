package multitouch

import "github.com/hajimehoshi/ebiten/v2"

// Transform is an object's pose: the screen position of its origin and a
// uniform object-to-screen scale factor.
type Transform struct {
	OffsetX, OffsetY float64
	Scale            float64
}

// safeScale returns Scale, or 1 for a zero scale so freshly created objects
// never cause a division by zero.
func (t Transform) safeScale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// ScreenToObject converts a screen-space point into the object's own
// coordinate space.
func (t Transform) ScreenToObject(sx, sy float64) (ox, oy float64) {
	s := t.safeScale()
	return (sx - t.OffsetX) / s, (sy - t.OffsetY) / s
}

// Hits reports whether the screen point (sx, sy) falls inside shape, given
// in object space. Objects with a non-positive scale are never hit.
func (t Transform) Hits(shape HitShape, sx, sy float64) bool {
	if t.Scale <= 0 {
		return false
	}
	return shape.Contains(t.ScreenToObject(sx, sy))
}

// ObjectToScreen converts an object-space point to screen space.
func (t Transform) ObjectToScreen(ox, oy float64) (sx, sy float64) {
	s := t.safeScale()
	return ox*s + t.OffsetX, oy*s + t.OffsetY
}

// Matrix returns the object-to-screen affine matrix.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t Transform) Matrix() [6]float64 {
	return [6]float64{t.Scale, 0, 0, t.Scale, t.OffsetX, t.OffsetY}
}

// GeoM returns the transform as an ebiten.GeoM for drawing an object whose
// image is laid out in object coordinates.
func (t Transform) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	m := t.Matrix()
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return [6]float64{1, 0, 0, 1, 0, 0}
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
