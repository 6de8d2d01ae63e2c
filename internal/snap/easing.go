package snap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(p float64) float64

// Named curves understood by ParseEasing.
const (
	LinearName         = "linear"
	EaseName           = "ease"
	EaseInName         = "ease-in"
	EaseOutName        = "ease-out"
	EaseInOutName      = "ease-in-out"
	EaseOutCubicName   = "ease-out-cubic"
	EaseInOutCubicName = "ease-in-out-cubic"
)

var namedEasings = map[string]Easing{
	LinearName:         Linear,
	EaseName:           CubicBezier(0.25, 0.1, 0.25, 1),
	EaseInName:         CubicBezier(0.42, 0, 1, 1),
	EaseOutName:        CubicBezier(0, 0, 0.58, 1),
	EaseInOutName:      CubicBezier(0.42, 0, 0.58, 1),
	EaseOutCubicName:   EaseOutCubic,
	EaseInOutCubicName: EaseInOutCubic,
}

// EasingNames returns the names accepted by ParseEasing, besides cubic-bezier().
func EasingNames() []string {
	return []string{
		LinearName, EaseName, EaseInName, EaseOutName, EaseInOutName,
		EaseOutCubicName, EaseInOutCubicName,
	}
}

// Linear returns p unchanged.
func Linear(p float64) float64 { return clampUnit(p) }

// EaseOutCubic is 1 - (1-p)^3.
func EaseOutCubic(p float64) float64 {
	p = clampUnit(p)
	return 1 - math.Pow(1-p, 3)
}

// EaseInOutCubic accelerates over the first half and decelerates over the second.
func EaseInOutCubic(p float64) float64 {
	p = clampUnit(p)
	if p < 0.5 {
		return 4 * p * p * p
	}
	return 1 - math.Pow(-2*p+2, 3)/2
}

// ParseEasing resolves a curve name or a "cubic-bezier(x1, y1, x2, y2)"
// expression. An empty name selects ease-out-cubic.
func ParseEasing(name string) (Easing, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return EaseOutCubic, nil
	}
	if e, ok := namedEasings[name]; ok {
		return e, nil
	}
	if strings.HasPrefix(name, "cubic-bezier(") && strings.HasSuffix(name, ")") {
		args := strings.Split(strings.TrimSuffix(strings.TrimPrefix(name, "cubic-bezier("), ")"), ",")
		if len(args) != 4 {
			return nil, fmt.Errorf("cubic-bezier needs 4 arguments, got %d", len(args))
		}
		var v [4]float64
		for i, a := range args {
			f, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid cubic-bezier argument %q: %w", a, err)
			}
			v[i] = f
		}
		if v[0] < 0 || v[0] > 1 || v[2] < 0 || v[2] > 1 {
			return nil, fmt.Errorf("cubic-bezier x values must be within [0,1]: %s", name)
		}
		return CubicBezier(v[0], v[1], v[2], v[3]), nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}

// CubicBezier returns the timing function of a CSS cubic-bezier curve with
// control points (x1,y1) and (x2,y2). x1 and x2 must be within [0,1].
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solve := func(x float64) float64 {
		const epsilon = 1e-7
		t := x
		for i := 0; i < 8; i++ {
			dx := sampleX(t) - x
			if math.Abs(dx) < epsilon {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}
		// Newton did not converge, fall back to bisection
		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 64 && lo < hi; i++ {
			v := sampleX(t)
			if math.Abs(v-x) < epsilon {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return t
	}

	return func(p float64) float64 {
		p = clampUnit(p)
		if p == 0 || p == 1 {
			return p
		}
		return sampleY(solve(p))
	}
}

func clampUnit(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
