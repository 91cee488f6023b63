// Package regress fits the two regression specifications over the engineered
// dataset: pooled cross-sectional OLS and the fixed-effects (within) panel
// estimator. Both report per-predictor estimates, standard errors and
// two-sided t-test p-values, and both are deterministic for identical input.
package regress

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"econ-pipeline/internal/model"
)

var accessors = map[string]func(model.EngineeredRecord) float64{
	model.VarGDPPerCapita:       func(r model.EngineeredRecord) float64 { return r.GDPPerCapita },
	model.VarGNIPerCapita:       func(r model.EngineeredRecord) float64 { return r.GNIPerCapita },
	model.VarAgricultureShare:   func(r model.EngineeredRecord) float64 { return r.AgricultureShare },
	model.VarManufacturingShare: func(r model.EngineeredRecord) float64 { return r.ManufacturingShare },
	model.VarTransportCommShare: func(r model.EngineeredRecord) float64 { return r.TransportCommShare },
}

// design extracts the dependent vector and predictor matrix from the dataset.
// Predictors enter in levels; no transform is applied here, and the fitted
// results are tagged accordingly so prediction uses the same scale.
func design(ds *model.Dataset, dependent string, predictors []string) (y []float64, x [][]float64, err error) {
	dep, ok := accessors[dependent]
	if !ok {
		return nil, nil, model.NewConfigurationError("dependent", "unknown variable %q", dependent)
	}
	preds := make([]func(model.EngineeredRecord) float64, len(predictors))
	for i, p := range predictors {
		fn, ok := accessors[p]
		if !ok {
			return nil, nil, model.NewConfigurationError("predictors", "unknown variable %q", p)
		}
		preds[i] = fn
	}

	n := ds.Len()
	y = make([]float64, n)
	x = make([][]float64, n)
	for i, rec := range ds.Records() {
		y[i] = dep(rec)
		row := make([]float64, len(preds))
		for j, fn := range preds {
			row[j] = fn(rec)
		}
		x[i] = row
	}
	return y, x, nil
}

// olsCore solves the normal equations for y = X*beta + e and returns the
// estimates with their standard errors, using dof residual degrees of
// freedom for the error variance and the t-tests. A singular or
// near-singular X'X is reported through the singular return value.
func olsCore(y []float64, x [][]float64, dof int) (coefs []model.Coefficient, rss float64, singular error) {
	n := len(y)
	k := len(x[0])

	xm := mat.NewDense(n, k, nil)
	for i, row := range x {
		xm.SetRow(i, row)
	}
	yv := mat.NewVecDense(n, y)

	var xtx mat.Dense
	xtx.Mul(xm.T(), xm)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, 0, err
	}

	var xty mat.VecDense
	xty.MulVec(xm.T(), yv)
	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	var fitted mat.VecDense
	fitted.MulVec(xm, &beta)
	for i := 0; i < n; i++ {
		resid := y[i] - fitted.AtVec(i)
		rss += resid * resid
	}

	sigma2 := rss / float64(dof)
	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}

	coefs = make([]model.Coefficient, k)
	for j := 0; j < k; j++ {
		est := beta.AtVec(j)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		t := est / se
		coefs[j] = model.Coefficient{
			Estimate: est,
			StdErr:   se,
			TStat:    t,
			PValue:   2 * tdist.CDF(-math.Abs(t)),
		}
	}
	return coefs, rss, nil
}

func totalSumSquares(y []float64) float64 {
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	var tss float64
	for _, v := range y {
		d := v - mean
		tss += d * d
	}
	return tss
}
