package poly

import (
	"fmt"
	"math"
	"strconv"
)

// exponentEpsilon guards the float drift accumulated by repeated
// differentiation when deciding whether an exponent has reached zero.
const exponentEpsilon = 1e-9

// Term is a single power-function term f(x) = Coefficient * x^Exponent.
// Intercept is nonzero only when Exponent is zero: a derivative that
// degenerates to a constant carries that constant in Intercept.
type Term struct {
	Exponent    float64 `yaml:"exponent" json:"exponent"`
	Coefficient float64 `yaml:"coefficient" json:"coefficient"`
	Intercept   float64 `yaml:"intercept" json:"intercept"`
}

// Point is an evaluated sample of a term.
type Point struct {
	X float64
	Y float64
}

// IsValid reports whether both coordinates are finite.
func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Eval samples t at x. The intercept is not added here; callers that
// need it (the tracer's bounds check) add it themselves.
//
// math.Pow follows IEEE semantics, so x=0 with a negative exponent
// yields +Inf rather than an error.
func Eval(t Term, x float64) Point {
	return Point{X: x, Y: t.Coefficient * math.Pow(x, t.Exponent)}
}

// Differentiate applies the power rule once: d/dx [c*x^e] = c*e*x^(e-1).
// When the resulting exponent is (numerically) zero the new constant is
// duplicated into Intercept, otherwise Intercept is zero.
func Differentiate(t Term) Term {
	d := Term{
		Coefficient: t.Exponent * t.Coefficient,
		Exponent:    t.Exponent - 1,
	}
	if math.Abs(d.Exponent) < exponentEpsilon {
		d.Intercept = d.Coefficient
	}
	return d
}

// String renders the term in conventional notation, e.g. "2x^3" or
// "12x^0 + 12".
func (t Term) String() string {
	c := strconv.FormatFloat(t.Coefficient, 'g', -1, 64)
	e := strconv.FormatFloat(t.Exponent, 'g', -1, 64)
	s := fmt.Sprintf("%sx^%s", c, e)
	if t.Intercept != 0 {
		s += " + " + strconv.FormatFloat(t.Intercept, 'g', -1, 64)
	}
	return s
}

// DerivativeN applies Differentiate n times starting from t.
// n <= 0 is normalized to 0 and returns t unchanged.
func DerivativeN(t Term, n int) Term {
	d := t
	for i := 0; i < n; i++ {
		d = Differentiate(d)
	}
	return d
}
