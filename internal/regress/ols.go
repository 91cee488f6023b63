package regress

import (
	"fmt"
	"math"

	"econ-pipeline/internal/model"
)

// FitOLS fits the pooled cross-sectional OLS of the dependent variable on the
// predictors with an intercept, treating every country-year as an independent
// observation. Within-country structure is deliberately not modeled; that is
// what the fixed-effects specification is for.
//
// A singular or near-singular design (perfectly collinear predictors, too few
// observations) is a recovered failure reported as *model.ModelFitError.
func FitOLS(ds *model.Dataset, dependent string, predictors []string) (*model.ModelResult, error) {
	y, x, err := design(ds, dependent, predictors)
	if err != nil {
		return nil, err
	}

	n := len(y)
	k := len(predictors) + 1 // + intercept
	if n <= k {
		return nil, &model.ModelFitError{
			Model: model.ModelOLS,
			Cause: fmt.Sprintf("%d observations are too few for %d parameters", n, k),
		}
	}

	// Prepend the intercept column.
	xc := make([][]float64, n)
	for i, row := range x {
		xc[i] = append([]float64{1}, row...)
	}

	dof := n - k
	coefs, rss, singular := olsCore(y, xc, dof)
	if singular != nil {
		return nil, &model.ModelFitError{
			Model: model.ModelOLS,
			Cause: "design matrix is singular or near-singular; predictors may be perfectly collinear",
			Err:   singular,
		}
	}

	names := append([]string{"intercept"}, predictors...)
	for j := range coefs {
		coefs[j].Predictor = names[j]
	}

	tss := totalSumSquares(y)
	r2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}

	return &model.ModelResult{
		Model:        model.ModelOLS,
		Dependent:    dependent,
		Transform:    "level",
		Coefficients: coefs,
		NObs:         n,
		DF:           dof,
		RSquared:     r2,
		ResidualSE:   math.Sqrt(rss / float64(dof)),
	}, nil
}
