package multitouch

import (
	"testing"
)

func TestViewportWorldScreenRoundtrip(t *testing.T) {
	v := NewViewport()
	v.Pose = Transform{OffsetX: 320, OffsetY: 240, Scale: 2}

	sx, sy := v.WorldToScreen(10, -5)
	assertNear(t, "sx", sx, 340)
	assertNear(t, "sy", sy, 230)

	wx, wy := v.ScreenToWorld(sx, sy)
	assertNear(t, "wx", wx, 10)
	assertNear(t, "wy", wy, -5)
}

func TestViewportRecomputesOnPoseChange(t *testing.T) {
	v := NewViewport()
	wx, _ := v.ScreenToWorld(100, 0)
	assertNear(t, "wx at zoom 1", wx, 100)

	v.Pose.Scale = 4
	wx, _ = v.ScreenToWorld(100, 0)
	assertNear(t, "wx at zoom 4", wx, 25)
}

func TestViewportZeroValue(t *testing.T) {
	var v Viewport
	// Zero zoom inverts to identity: screen maps through unchanged.
	wx, wy := v.ScreenToWorld(12, 34)
	assertNear(t, "wx", wx, 12)
	assertNear(t, "wy", wy, 34)
}

func TestViewportVisibleBounds(t *testing.T) {
	v := NewViewport()
	v.Pose = Transform{OffsetX: -100, OffsetY: -50, Scale: 0.5}
	r := v.VisibleBounds(640, 480)
	assertNear(t, "x", r.X, 200)
	assertNear(t, "y", r.Y, 100)
	assertNear(t, "width", r.Width, 1280)
	assertNear(t, "height", r.Height, 960)
}

func TestViewportCanvas_PinchZoomsAroundFingers(t *testing.T) {
	v := NewViewport()
	var changes int
	c := &ViewportCanvas{View: v, OnChange: func(*Viewport, *TouchFrame) { changes++ }}
	e := NewEngine[*Viewport](c)

	// World point under the pinch midpoint before zooming.
	beforeX, beforeY := v.ScreenToWorld(400, 300)

	in := NewInjector()
	in.Press(350, 300)
	in.Press(450, 300)
	for _, d := range []float64{100, 120, 140, 160, 180, 200, 200} {
		in.MoveTwo(400-d/2, 300, 400+d/2, 300)
	}
	in.Drain(e.OnTouchEvent)

	assertNear(t, "zoom", v.Pose.Scale, 2)
	afterX, afterY := v.ScreenToWorld(400, 300)
	assertNear(t, "anchor x", afterX, beforeX)
	assertNear(t, "anchor y", afterY, beforeY)
	if changes == 0 {
		t.Error("OnChange never called")
	}
}

func TestViewportCanvas_ZoomLimits(t *testing.T) {
	v := NewViewport()
	v.MinZoom, v.MaxZoom = 0.5, 3
	c := &ViewportCanvas{View: v}

	tests := []struct {
		name  string
		scale float64
		want  bool
	}{
		{"inside", 1.5, true},
		{"min", 0.5, true},
		{"below min", 0.49, false},
		{"above max", 3.01, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := c.SetPositionAndScale(v, Transform{Scale: tt.scale}, nil)
			if ok != tt.want {
				t.Errorf("SetPositionAndScale(scale %v) = %v, want %v", tt.scale, ok, tt.want)
			}
		})
	}
	if v.Pose.Scale != 0.5 {
		t.Errorf("zoom = %v, want the last accepted 0.5", v.Pose.Scale)
	}
}

func TestViewportCanvas_AlwaysHit(t *testing.T) {
	v := NewViewport()
	c := &ViewportCanvas{View: v}
	var f TouchFrame
	fillFrame(&f, ActionDown, true, 0, PointerSample{X: -5000, Y: 9000})
	if c.DraggableObjectAt(&f) != v {
		t.Error("viewport canvas should always return its view")
	}
}
