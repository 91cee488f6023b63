package pipeline

import (
	"errors"
	"fmt"
	"time"

	"econ-pipeline/internal/model"
	"econ-pipeline/internal/regress"
	"econ-pipeline/internal/store"
)

// Run executes the full analysis for one spec: ingest → clean → engineer →
// fit → export. The stages run synchronously, each fully consuming its input
// before the next begins; the workload is a bounded in-memory batch, not a
// service.
//
// Configuration problems (bad boundaries, unknown variables, schema mismatch)
// abort the run with an error. Row drops and model fit failures do not: they
// are recorded on the RunResult so every exclusion stays caller-visible.
func Run(runID string, spec model.AnalysisSpec) (*model.RunResult, error) {
	spec.Normalize()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	fmt.Printf("🚀 Starting analysis run %s\n", runID)
	store.UpdateRunStatus(runID, "running")

	result := &model.RunResult{RunID: runID, Spec: spec, StartedAt: start.UTC()}

	fail := func(err error) (*model.RunResult, error) {
		store.UpdateRunStatus(runID, "failed")
		store.SaveRunError(runID, err)
		return nil, err
	}

	// --- INGEST ---
	rows, err := LoadCSV(spec.Input, model.DefaultSchema().Merge(spec.Schema))
	if err != nil {
		return fail(err)
	}

	// --- CLEAN ---
	records, cleanAudit := Clean(rows)
	result.Audits = append(result.Audits, cleanAudit)
	store.SaveAudit(runID, cleanAudit)

	// --- FEATURE ENGINEERING ---
	ds, engineerAudit, err := Engineer(records, *spec.Boundaries)
	if err != nil {
		return fail(err)
	}
	result.Audits = append(result.Audits, engineerAudit)
	store.SaveAudit(runID, engineerAudit)
	result.Dataset = ds

	// --- MODEL FITTING ---
	for _, modelID := range spec.Models {
		var res *model.ModelResult
		var fitErr error
		switch modelID {
		case model.ModelOLS:
			res, fitErr = regress.FitOLS(ds, spec.Dependent, spec.Predictors)
		case model.ModelPanelFE:
			res, fitErr = regress.FitPanel(ds, spec.Dependent, spec.Predictors)
		}

		if fitErr != nil {
			var cfgErr *model.ConfigurationError
			if errors.As(fitErr, &cfgErr) {
				return fail(fitErr)
			}
			// Degenerate input is local to this model; keep going.
			result.Failures = append(result.Failures, model.ModelFailure{
				Model: modelID,
				Cause: fitErr.Error(),
			})
			store.SaveRunError(runID, fitErr)
			fmt.Printf("❌ Fit %s: %v\n", modelID, fitErr)
			continue
		}

		result.Models = append(result.Models, *res)
		store.SaveModelResult(runID, *res)
		fmt.Printf("📊 Fit %s: %d obs, R²=%.4f\n", modelID, res.NObs, res.RSquared)
	}

	// --- EXPORT ---
	exports, err := ExportRun(runID, spec, ds, result.Models, result.Failures)
	result.Exports = exports
	if err != nil {
		return fail(err)
	}
	for _, exp := range exports {
		fmt.Printf("💾 Export: %d records to %s (%s)\n", exp.RecordCount, exp.Path, exp.Type)
	}

	result.FinishedAt = time.Now().UTC()
	store.UpdateRunStatus(runID, "completed")
	fmt.Printf("🏁 Run %s completed in %v\n", runID, time.Since(start))
	return result, nil
}
