package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"econ-pipeline/internal/model"
	"econ-pipeline/internal/store"
	"econ-pipeline/pkg/utils"
)

// WriteDatasetCSV writes the engineered dataset to a CSV file. Sector shares
// are reported as percent of total GDP at this presentation boundary; the
// dataset itself keeps them as fractions.
func WriteDatasetCSV(path string, ds *model.Dataset) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{
		"country", "year", "gdp", "population", "gni_per_capita",
		"gdp_per_capita", "agriculture_share_pct", "manufacturing_share_pct",
		"transport_comm_share_pct", "income_group",
	}
	if err := w.Write(header); err != nil {
		return 0, err
	}

	for _, r := range ds.Records() {
		row := []string{
			r.Country,
			strconv.Itoa(r.Year),
			formatFloat(r.GDP),
			formatFloat(r.Population),
			formatFloat(r.GNIPerCapita),
			formatFloat(r.GDPPerCapita),
			formatFloat(r.AgricultureShare * 100),
			formatFloat(r.ManufacturingShare * 100),
			formatFloat(r.TransportCommShare * 100),
			string(r.IncomeGroup),
		}
		if err := w.Write(row); err != nil {
			return 0, err
		}
	}
	w.Flush()
	return ds.Len(), w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteModelSummary writes a plain-text regression summary for the fitted
// models and any recovered fit failures.
func WriteModelSummary(path string, results []model.ModelResult, failures []model.ModelFailure) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	for _, res := range results {
		fmt.Fprintf(file, "--- %s ---\n", modelTitle(res.Model))
		fmt.Fprintf(file, "Dependent: %s (predictors in %ss)\n", res.Dependent, res.Transform)
		fmt.Fprintf(file, "Observations: %d", res.NObs)
		if res.NEntities > 0 {
			fmt.Fprintf(file, "  Entities: %d", res.NEntities)
		}
		fmt.Fprintf(file, "  DF: %d\n", res.DF)
		if res.Model == model.ModelPanelFE {
			fmt.Fprintf(file, "Within-R²: %.4f  Residual SE: %.4f\n\n", res.RSquared, res.ResidualSE)
		} else {
			fmt.Fprintf(file, "R²: %.4f  Residual SE: %.4f\n\n", res.RSquared, res.ResidualSE)
		}
		fmt.Fprintf(file, "%-24s %14s %12s %10s %10s\n", "predictor", "coefficient", "std error", "t-stat", "p-value")
		for _, c := range res.Coefficients {
			fmt.Fprintf(file, "%-24s %14.6g %12.6g %10.4f %10.4f\n", c.Predictor, c.Estimate, c.StdErr, c.TStat, c.PValue)
		}
		fmt.Fprintln(file)
	}

	for _, f := range failures {
		fmt.Fprintf(file, "--- %s ---\n", modelTitle(f.Model))
		fmt.Fprintf(file, "fit failed: %s\n\n", f.Cause)
	}
	return nil
}

func modelTitle(id string) string {
	switch id {
	case model.ModelOLS:
		return "OLS Regression (pooled cross-section)"
	case model.ModelPanelFE:
		return "Fixed-Effects Panel Regression (within estimator)"
	}
	return id
}

// ExportRun writes the configured exports for a completed run into the run's
// output directory and, when a database target is configured, persists the
// engineered records through the store.
func ExportRun(runID string, spec model.AnalysisSpec, ds *model.Dataset, results []model.ModelResult, failures []model.ModelFailure) ([]model.ExportResult, error) {
	outDir := spec.OutputDir
	if outDir == "" {
		outDir = "output"
	}
	om := utils.NewOutputManager(outDir)

	var exports []model.ExportResult

	if spec.Export != nil && spec.Export.File != "" {
		path, err := om.OutputFilePath(runID, spec.Export.File)
		if err != nil {
			return exports, err
		}
		count, err := WriteDatasetCSV(path, ds)
		if err != nil {
			return exports, fmt.Errorf("dataset export failed: %w", err)
		}
		exports = append(exports, model.ExportResult{
			Type: "csv", Path: path, RecordCount: count, ExportedAt: time.Now().UTC(),
		})
	}

	summaryPath, err := om.OutputFilePath(runID, "regression_summary.txt")
	if err != nil {
		return exports, err
	}
	if err := WriteModelSummary(summaryPath, results, failures); err != nil {
		return exports, fmt.Errorf("summary export failed: %w", err)
	}
	exports = append(exports, model.ExportResult{
		Type: "summary", Path: summaryPath, RecordCount: len(results), ExportedAt: time.Now().UTC(),
	})

	if spec.Export != nil && spec.Export.DB != "" {
		if err := store.SaveEngineeredRecords(runID, ds.Records()); err != nil {
			return exports, fmt.Errorf("database export failed: %w", err)
		}
		exports = append(exports, model.ExportResult{
			Type: "database", Path: spec.Export.DB, RecordCount: ds.Len(), ExportedAt: time.Now().UTC(),
		})
	}

	return exports, nil
}
