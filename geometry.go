package multitouch

import "math"

// isqrtLimit is the first value isqrt can no longer take as a uint64.
const isqrtLimit = 1 << 64

// isqrt returns floor(sqrt(v)) using the digit-by-digit method.
func isqrt(v uint64) uint64 {
	var res uint64
	bit := uint64(1) << 62
	for bit > v {
		bit >>= 2
	}
	for bit != 0 {
		if v >= res+bit {
			v -= res + bit
			res = res>>1 + bit
		} else {
			res >>= 1
		}
		bit >>= 2
	}
	return res
}

// diameterFromSquared turns a squared two-point span into a span length with
// 1/16 unit precision. The result is never smaller than dx or dy, so ratios
// and trig built on it stay well-defined when the points line up with an axis.
func diameterFromSquared(sq, dx, dy float64) float64 {
	var d float64
	switch {
	case sq <= 0:
	case 256*sq < isqrtLimit:
		d = float64(isqrt(uint64(256*sq))) / 16
	default:
		// Past the uint64 range the 1/16 rounding no longer matters.
		d = math.Sqrt(sq)
	}
	if d < dx {
		d = dx
	}
	if d < dy {
		d = dy
	}
	return d
}

// clampSeparation raises d to min when the touch points nearly coincide.
func clampSeparation(d, min float64) float64 {
	if d < min {
		return min
	}
	return d
}

// spanAngle returns the angle of the line from (x0, y0) to (x1, y1).
func spanAngle(x0, y0, x1, y1 float64) float64 {
	return math.Atan2(y1-y0, x1-x0)
}
