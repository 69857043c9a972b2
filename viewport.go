package multitouch

// Viewport is a pannable, zoomable view onto a world. Dragging anywhere moves
// the whole world; stretching zooms around the fingers.
type Viewport struct {
	// Pose maps world coordinates to the screen. Scale is the zoom.
	Pose Transform
	// MinZoom and MaxZoom bound the zoom when non-zero.
	MinZoom, MaxZoom float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	matrixPose    Transform
	matrixValid   bool
}

// NewViewport returns a viewport with zoom 1 and no offset.
func NewViewport() *Viewport {
	return &Viewport{Pose: Transform{Scale: 1}}
}

// computeViewMatrix refreshes the cached matrices when the pose changed.
func (v *Viewport) computeViewMatrix() [6]float64 {
	if !v.matrixValid || v.matrixPose != v.Pose {
		v.viewMatrix = v.Pose.Matrix()
		v.invViewMatrix = invertAffine(v.viewMatrix)
		v.matrixPose = v.Pose
		v.matrixValid = true
	}
	return v.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(v.computeViewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates. A zero
// zoom maps screen coordinates through unchanged.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	v.computeViewMatrix()
	return transformPoint(v.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle shown on a screen of the
// given size.
func (v *Viewport) VisibleBounds(screenW, screenH float64) Rect {
	x0, y0 := v.ScreenToWorld(0, 0)
	x1, y1 := v.ScreenToWorld(screenW, screenH)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ViewportCanvas exposes a single Viewport as the only draggable object, so
// any touch pans and any pinch zooms.
type ViewportCanvas struct {
	View *Viewport
	// OnChange is called after every accepted pose and on select/deselect
	// with a borrowed frame.
	OnChange func(v *Viewport, pt *TouchFrame)
}

// DraggableObjectAt implements Canvas.
func (c *ViewportCanvas) DraggableObjectAt(*TouchFrame) *Viewport {
	return c.View
}

// PositionAndScale implements Canvas.
func (c *ViewportCanvas) PositionAndScale(v *Viewport) Transform {
	return v.Pose
}

// SetPositionAndScale implements Canvas. Zooms outside [MinZoom, MaxZoom]
// are rejected.
func (c *ViewportCanvas) SetPositionAndScale(v *Viewport, t Transform, pt *TouchFrame) bool {
	if v.MinZoom > 0 && t.Scale < v.MinZoom {
		return false
	}
	if v.MaxZoom > 0 && t.Scale > v.MaxZoom {
		return false
	}
	v.Pose = t
	if c.OnChange != nil {
		c.OnChange(v, pt)
	}
	return true
}

// SelectObject implements Canvas.
func (c *ViewportCanvas) SelectObject(v *Viewport, pt *TouchFrame) {
	if c.OnChange != nil {
		c.OnChange(c.View, pt)
	}
}
