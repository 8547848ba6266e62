package stats

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/primer/pkg/errors"
)

// Polyfit は最小二乗法で次数degの多項式をあてはめ、
// 係数を最高次から順に返す（numpy.polyfitと同じ並び）
func Polyfit(x, y []float64, deg int) ([]float64, error) {
	if deg < 0 {
		return nil, errors.NewValidationError("deg", "must be non-negative", deg)
	}
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("Polyfit", len(x), len(y), 0)
	}
	if len(x) == 0 {
		return nil, errors.NewModelError("Polyfit", "empty data", errors.ErrEmptyData)
	}
	if len(x) <= deg {
		return nil, errors.NewValueError("Polyfit", "need more points than the polynomial degree")
	}
	if err := errors.CheckNumericalStability("Polyfit", x, 0); err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability("Polyfit", y, 0); err != nil {
		return nil, err
	}

	// ヴァンデルモンド行列（列は x^deg, ..., x^0）
	n := len(x)
	V := mat.NewDense(n, deg+1, nil)
	for i, xi := range x {
		p := 1.0
		for j := deg; j >= 0; j-- {
			V.Set(i, j, p)
			p *= xi
		}
	}

	var coef mat.VecDense
	if err := coef.SolveVec(V, mat.NewVecDense(n, append([]float64(nil), y...))); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, errors.NewModelError("Polyfit", "least squares solve failed", err)
		}
		if float64(cond) > 1e15 {
			return nil, errors.NewModelError("Polyfit", "x values do not determine the polynomial", errors.ErrSingularMatrix)
		}
	}

	out := make([]float64, deg+1)
	for j := range out {
		out[j] = coef.AtVec(j)
	}
	return out, nil
}

// Polyval evaluates a polynomial with coefficients ordered highest power first.
func Polyval(p []float64, x float64) float64 {
	var v float64
	for _, c := range p {
		v = v*x + c
	}
	return v
}
