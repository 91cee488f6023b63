package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"econ-pipeline/internal/model"
	"econ-pipeline/internal/pipeline"
	"econ-pipeline/internal/store"
)

// Operation is the enumerated analysis command. It replaces an interactive
// menu: each operation has one handler and runs to completion.
type Operation string

const (
	OpRun    Operation = "run"    // full pipeline, both models, export
	OpOLS    Operation = "ols"    // cross-sectional OLS only
	OpPanel  Operation = "panel"  // fixed-effects panel only
	OpGroups Operation = "groups" // grouped views + comparable countries
)

func main() {
	input := flag.String("input", "Global Economy Indicators.csv", "raw dataset CSV (path or URL)")
	op := flag.String("op", string(OpRun), "operation: run | ols | panel | groups")
	outDir := flag.String("out", "output", "base directory for run outputs")
	dbPath := flag.String("db", "", "optional sqlite database for run history")
	csvName := flag.String("export-csv", "engineered.csv", "engineered dataset export name (empty to skip)")
	flag.Parse()

	if *dbPath != "" {
		if err := store.InitDB(*dbPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	spec := model.AnalysisSpec{
		Input:     *input,
		OutputDir: *outDir,
		Export:    &model.Export{File: *csvName, DB: *dbPath},
	}

	switch Operation(*op) {
	case OpRun:
	case OpOLS:
		spec.Models = []string{model.ModelOLS}
	case OpPanel:
		spec.Models = []string{model.ModelPanelFE}
	case OpGroups:
		spec.Models = []string{model.ModelOLS}
	default:
		fmt.Fprintf(os.Stderr, "unknown operation %q\n", *op)
		os.Exit(1)
	}

	runID := uuid.New().String()
	if err := store.SaveRun(runID, spec); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save run: %v\n", err)
		os.Exit(1)
	}

	res, err := pipeline.Run(runID, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}

	printAudits(res)
	printModels(res)
	if Operation(*op) == OpGroups {
		printGroups(res.Dataset)
	}
}

func printAudits(res *model.RunResult) {
	for _, a := range res.Audits {
		fmt.Printf("stage %-10s in=%d kept=%d dropped=%d", a.Stage, a.InputCount, a.KeptCount, a.DroppedCount)
		for reason, n := range a.DropReasons {
			fmt.Printf(" %s=%d", reason, n)
		}
		fmt.Println()
	}
}

func printModels(res *model.RunResult) {
	for _, m := range res.Models {
		fmt.Printf("\n--- %s: %s ~ predictors (%s) ---\n", m.Model, m.Dependent, m.Transform)
		fmt.Printf("n=%d", m.NObs)
		if m.NEntities > 0 {
			fmt.Printf(" entities=%d", m.NEntities)
		}
		fmt.Printf(" R²=%.4f\n", m.RSquared)
		fmt.Printf("%-24s %14s %12s %10s\n", "predictor", "coefficient", "std error", "p-value")
		for _, c := range m.Coefficients {
			fmt.Printf("%-24s %14.6g %12.6g %10.4f\n", c.Predictor, c.Estimate, c.StdErr, c.PValue)
		}
	}
	for _, f := range res.Failures {
		fmt.Printf("\n--- %s ---\nfit failed: %s\n", f.Model, f.Cause)
	}
}

func printGroups(ds *model.Dataset) {
	fmt.Println("\n--- Mean GDP per capita by income group ---")
	for _, g := range pipeline.SummarizeByIncomeGroup(ds) {
		fmt.Printf("%-14s n=%-6d mean=%.2f\n", g.GroupValue, g.RecordCount, g.MeanGDPPerCap)
	}

	selected := pipeline.ComparableCountries(ds, 10_000_000, 50_000_000, 3)
	fmt.Println("\n--- Comparable countries (mean population 10M-50M, up to 3 per group) ---")
	for _, c := range selected {
		fmt.Println(c)
	}
}
