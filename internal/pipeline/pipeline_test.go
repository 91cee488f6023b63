package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"econ-pipeline/internal/model"
)

// writeSampleCSV writes a small panel of 4 countries × 5 years with varying
// sector outputs, plus a few rows the cleaner must drop.
func writeSampleCSV(t *testing.T, dir string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("Country,Year,Population,Gross Domestic Product (GDP),Per capita GNI," +
		"\"Agriculture, hunting, forestry, fishing (ISIC A-B)\",Manufacturing (ISIC D)," +
		"\"Transport, storage and communication (ISIC I)\",Total GDP\n")

	countries := []string{"Alphaland", "Betania", "Gammaria", "Deltia"}
	for ci, c := range countries {
		for y := 0; y < 5; y++ {
			gdp := float64(1000+200*ci) * float64(10+y)
			pop := float64(1_000_000 * (ci + 1))
			gni := float64(800 + 4000*ci + 100*y)
			// Modular patterns keep the three shares (plus intercept)
			// linearly independent in the pooled design.
			agri := gdp * (0.28 - 0.015*float64((2*y+ci)%5))
			manuf := gdp * (0.12 + 0.010*float64((y+y*y+2*ci)%7))
			transport := gdp * (0.05 + 0.004*float64((3*y+ci*ci)%4))
			fmt.Fprintf(&b, "%s,%d,%.0f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
				c, 2000+y, pop, gdp, gni, agri, manuf, transport, gdp)
		}
	}

	// Rows the cleaner must drop: zero population, missing GDP, duplicate.
	b.WriteString("Badland,2000,0,1000,500,100,100,100,1000\n")
	b.WriteString("Gapland,2000,1000000,,500,100,100,100,1000\n")
	b.WriteString("Alphaland,2000,1000000,9999,500,100,100,100,1000\n")

	path := filepath.Join(dir, "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestRunFullPipeline(t *testing.T) {
	dir := t.TempDir()
	spec := model.AnalysisSpec{
		Input:     writeSampleCSV(t, dir),
		OutputDir: filepath.Join(dir, "out"),
		Export:    &model.Export{File: "engineered.csv"},
	}

	res, err := Run("test-run", spec)
	require.NoError(t, err)

	clean, ok := res.Audit("clean")
	require.True(t, ok)
	assert.Equal(t, 23, clean.InputCount)
	assert.Equal(t, 20, clean.KeptCount)
	assert.Equal(t, 3, clean.DroppedCount)
	assert.Equal(t, clean.InputCount, clean.KeptCount+clean.DroppedCount)

	engineer, ok := res.Audit("engineer")
	require.True(t, ok)
	assert.Equal(t, 20, engineer.KeptCount)
	assert.Equal(t, 0, engineer.DroppedCount)

	require.NotNil(t, res.Dataset)
	assert.Equal(t, 20, res.Dataset.Len())

	// Both specifications fit on this panel.
	ols, ok := res.Result(model.ModelOLS)
	require.True(t, ok)
	assert.Equal(t, 20, ols.NObs)
	assert.Len(t, ols.Coefficients, 4) // intercept + 3 shares

	panel, ok := res.Result(model.ModelPanelFE)
	require.True(t, ok)
	assert.Equal(t, 4, panel.NEntities)
	assert.Empty(t, res.Failures)

	// Exports land in the run's output directory.
	require.Len(t, res.Exports, 2)
	for _, exp := range res.Exports {
		_, err := os.Stat(exp.Path)
		assert.NoError(t, err, "export %s missing", exp.Path)
	}
}

func TestRunRoundTripIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	spec := model.AnalysisSpec{
		Input:     writeSampleCSV(t, dir),
		OutputDir: filepath.Join(dir, "out"),
	}

	first, err := Run("run-1", spec)
	require.NoError(t, err)
	second, err := Run("run-2", spec)
	require.NoError(t, err)

	assert.Equal(t, first.Dataset.Records(), second.Dataset.Records())
	assert.Equal(t, first.Models, second.Models)

	fa, _ := first.Audit("clean")
	sa, _ := second.Audit("clean")
	fa.Duration, sa.Duration = 0, 0
	assert.Equal(t, fa, sa)
}

func TestRunRejectsBadConfiguration(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleCSV(t, dir)

	var cfgErr *model.ConfigurationError

	_, err := Run("r", model.AnalysisSpec{Input: input, Dependent: "nonsense"})
	require.ErrorAs(t, err, &cfgErr)

	_, err = Run("r", model.AnalysisSpec{
		Input:      input,
		Boundaries: &model.IncomeBoundaries{Low: 10, LowerMiddle: 5, UpperMiddle: 20},
	})
	require.ErrorAs(t, err, &cfgErr)

	_, err = Run("r", model.AnalysisSpec{})
	require.ErrorAs(t, err, &cfgErr)
}

func TestRunSchemaMismatchFailsFast(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wrong.csv")
	require.NoError(t, os.WriteFile(path, []byte("Country,Year\nA,2000\n"), 0644))

	_, err := Run("r", model.AnalysisSpec{Input: path})

	var cfgErr *model.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "schema", cfgErr.Field)
}

func TestRunPanelFailureKeepsOLS(t *testing.T) {
	// One year per country: panel is infeasible, OLS still fits.
	dir := t.TempDir()
	var b strings.Builder
	b.WriteString("Country,Year,Population,Gross Domestic Product (GDP),Per capita GNI," +
		"\"Agriculture, hunting, forestry, fishing (ISIC A-B)\",Manufacturing (ISIC D)," +
		"\"Transport, storage and communication (ISIC I)\",Total GDP\n")
	for i := 0; i < 8; i++ {
		gdp := float64(1000 + i*300)
		agri := gdp * (0.30 - 0.012*float64((i*i)%5))
		manuf := gdp * (0.10 + 0.013*float64((i*i+i)%7))
		transport := gdp * (0.04 + 0.004*float64((3*i)%5))
		fmt.Fprintf(&b, "C%d,2000,%d,%.0f,%.0f,%.2f,%.2f,%.2f,%.0f\n",
			i, 1_000_000+i, gdp, 500.0+float64(i)*700, agri, manuf, transport, gdp)
	}
	path := filepath.Join(dir, "crosssection.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

	res, err := Run("r", model.AnalysisSpec{Input: path, OutputDir: dir})
	require.NoError(t, err)

	_, ok := res.Result(model.ModelOLS)
	assert.True(t, ok)
	_, ok = res.Result(model.ModelPanelFE)
	assert.False(t, ok)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, model.ModelPanelFE, res.Failures[0].Model)
	assert.Contains(t, res.Failures[0].Cause, "insufficient panel data")
}
