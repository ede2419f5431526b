package field

import "math"

// Easing control-point presets matching the CSS cubic-bezier keywords.
var EasingPresets = map[string][2]CurvePoint{
	"linear":      {{X: 0, Y: 0}, {X: 1, Y: 1}},
	"ease-in":     {{X: 0.42, Y: 0}, {X: 1, Y: 1}},
	"ease-out":    {{X: 0, Y: 0}, {X: 0.58, Y: 1}},
	"ease-in-out": {{X: 0.42, Y: 0}, {X: 0.58, Y: 1}},
}

// EvalEasing evaluates a CSS cubic-bezier timing function at progress x.
// The curve is parametric with fixed anchors (0,0) and (1,1), so the
// parameter t with X(t) = x is solved first and the Y polynomial
//
//	B(t) = 3(1-t)^2 t * p1.Y + 3(1-t) t^2 * p2.Y + t^3
//
// is evaluated there. The anchor terms make B(0)=0 and B(1)=1 for any
// control points. Input x is clamped to [0,1].
func EvalEasing(x float64, p1, p2 CurvePoint) float64 {
	x = clampF(x, 0, 1)
	return bezier01(solveBezierX(x, p1.X, p2.X), p1.Y, p2.Y)
}

// bezier01 evaluates one axis of the anchored cubic at parameter t.
func bezier01(t, c1, c2 float64) float64 {
	u := 1 - t
	return 3*u*u*t*c1 + 3*u*t*t*c2 + t*t*t
}

func bezier01Deriv(t, c1, c2 float64) float64 {
	u := 1 - t
	return 3*u*u*c1 + 6*u*t*(c2-c1) + 3*t*t*(1-c2)
}

// solveBezierX inverts X(t) = x. CSS constrains the control X coordinates
// to [0,1], which makes X monotone on [0,1]: a few Newton iterations from
// t=x almost always land, with bisection as the fallback for flat spots.
func solveBezierX(x, x1, x2 float64) float64 {
	t := x
	for i := 0; i < 8; i++ {
		diff := bezier01(t, x1, x2) - x
		if math.Abs(diff) < 1e-7 {
			return t
		}
		d := bezier01Deriv(t, x1, x2)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= diff / d
	}

	lo, hi := 0.0, 1.0
	t = x
	for hi-lo > 1e-7 {
		if bezier01(t, x1, x2) < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}
