package regress

import (
	"fmt"
	"math"

	"econ-pipeline/internal/model"
)

// FitPanel fits the fixed-effects panel specification with the within
// estimator: dependent and predictors are demeaned per country, absorbing a
// per-country intercept that soaks up time-invariant heterogeneity, and OLS
// runs on the demeaned data over the (country × year) panel.
//
// Requires at least one country with two or more time periods; otherwise
// model.ErrInsufficientPanelData is returned and the cross-sectional model
// remains available. Degrees of freedom account for the absorbed entity
// means; the reported R² is the within-R².
func FitPanel(ds *model.Dataset, dependent string, predictors []string) (*model.ModelResult, error) {
	y, x, err := design(ds, dependent, predictors)
	if err != nil {
		return nil, err
	}

	n := len(y)
	k := len(predictors)
	records := ds.Records()

	// Entity index ranges; records are sorted by (country, year).
	type span struct{ start, end int }
	var spans []span
	multiPeriod := false
	for i := 0; i < n; {
		j := i
		for j < n && records[j].Country == records[i].Country {
			j++
		}
		spans = append(spans, span{start: i, end: j})
		if j-i >= 2 {
			multiPeriod = true
		}
		i = j
	}
	if !multiPeriod {
		return nil, model.ErrInsufficientPanelData
	}

	// Within transformation: subtract the entity mean from every column.
	// Single-observation entities demean to zero and contribute nothing.
	dy := make([]float64, n)
	dx := make([][]float64, n)
	for _, sp := range spans {
		cnt := float64(sp.end - sp.start)
		var yMean float64
		xMean := make([]float64, k)
		for i := sp.start; i < sp.end; i++ {
			yMean += y[i]
			for j := 0; j < k; j++ {
				xMean[j] += x[i][j]
			}
		}
		yMean /= cnt
		for j := 0; j < k; j++ {
			xMean[j] /= cnt
		}
		for i := sp.start; i < sp.end; i++ {
			dy[i] = y[i] - yMean
			row := make([]float64, k)
			for j := 0; j < k; j++ {
				row[j] = x[i][j] - xMean[j]
			}
			dx[i] = row
		}
	}

	nEntities := len(spans)
	dof := n - nEntities - k
	if dof <= 0 {
		return nil, &model.ModelFitError{
			Model: model.ModelPanelFE,
			Cause: fmt.Sprintf("%d observations leave no degrees of freedom after %d entity effects and %d predictors", n, nEntities, k),
		}
	}

	coefs, rss, singular := olsCore(dy, dx, dof)
	if singular != nil {
		return nil, &model.ModelFitError{
			Model: model.ModelPanelFE,
			Cause: "demeaned design matrix is singular or near-singular; predictors may be perfectly collinear or constant within countries",
			Err:   singular,
		}
	}
	for j := range coefs {
		coefs[j].Predictor = predictors[j]
	}

	tss := totalSumSquares(dy)
	r2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}

	return &model.ModelResult{
		Model:        model.ModelPanelFE,
		Dependent:    dependent,
		Transform:    "level",
		Coefficients: coefs,
		NObs:         n,
		NEntities:    nEntities,
		DF:           dof,
		RSquared:     r2, // within-R²
		ResidualSE:   math.Sqrt(rss / float64(dof)),
	}, nil
}
