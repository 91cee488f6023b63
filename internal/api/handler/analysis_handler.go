package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"econ-pipeline/internal/model"
	"econ-pipeline/internal/pipeline"
	"econ-pipeline/internal/store"
)

// Completed runs stay resident for the session so record/group reads do not
// round-trip through the store. The dataset inside is immutable.
var (
	runsMu sync.RWMutex
	runs   = make(map[string]*model.RunResult)
)

func rememberRun(res *model.RunResult) {
	runsMu.Lock()
	defer runsMu.Unlock()
	runs[res.RunID] = res
}

func residentRun(runID string) (*model.RunResult, bool) {
	runsMu.RLock()
	defer runsMu.RUnlock()
	res, ok := runs[runID]
	return res, ok
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}

// runIDFromPath extracts the run ID between the analyses prefix and an
// optional trailing segment like "/models".
func runIDFromPath(r *http.Request, suffix string) (string, bool) {
	path := r.URL.Path
	const prefix = "/api/v1/analyses/"
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	id := strings.TrimSuffix(path[len(prefix):], suffix)
	id = strings.Trim(id, "/")
	return id, id != "" && !strings.Contains(id, "/")
}

// CreateAnalysis creates and starts a new analysis run
// @Summary Create a new analysis run
// @Description Submit an analysis spec; the batch pipeline runs it and records results
// @Tags analyses
// @Accept json
// @Produce json
// @Param analysis body model.AnalysisSpec true "Analysis configuration"
// @Success 202 {object} map[string]interface{} "Run accepted"
// @Failure 400 {object} map[string]interface{} "Invalid spec"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [post]
func CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var spec model.AnalysisSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	spec.Normalize()
	if err := spec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runID := uuid.New().String()
	if err := store.SaveRun(runID, spec); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save run")
		return
	}

	// The pipeline itself is a synchronous batch; only the HTTP response
	// is decoupled from it.
	go func() {
		res, err := pipeline.Run(runID, spec)
		if err != nil {
			store.SaveRunError(runID, err)
			return
		}
		rememberRun(res)
	}()

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"runID":     runID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	})
}

// ListAnalyses retrieves all analysis runs
// @Summary List analysis runs
// @Tags analyses
// @Produce json
// @Success 200 {array} map[string]interface{} "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /analyses [get]
func ListAnalyses(w http.ResponseWriter, r *http.Request) {
	list, err := store.ListRuns()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch runs")
		return
	}
	if list == nil {
		list = []map[string]interface{}{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetAnalysis retrieves one analysis run
// @Summary Get an analysis run
// @Description Run status, spec, stage audits, fit failures
// @Tags analyses
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /analyses/{id} [get]
func GetAnalysis(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r, "")
	if !ok {
		writeError(w, http.StatusBadRequest, "run ID is required")
		return
	}

	if res, ok := residentRun(runID); ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":         res.RunID,
			"status":     "completed",
			"spec":       res.Spec,
			"audits":     res.Audits,
			"failures":   res.Failures,
			"exports":    res.Exports,
			"startedAt":  res.StartedAt,
			"finishedAt": res.FinishedAt,
		})
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// GetAnalysisModels retrieves the fitted models of a run
// @Summary Get model results
// @Description Per-predictor coefficients, standard errors, p-values and fit statistics
// @Tags analyses
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} model.ModelResult "Model results"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /analyses/{id}/models [get]
func GetAnalysisModels(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r, "/models")
	if !ok {
		writeError(w, http.StatusBadRequest, "run ID is required")
		return
	}

	if res, ok := residentRun(runID); ok {
		writeJSON(w, http.StatusOK, res.Models)
		return
	}

	results, err := store.GetModelResults(runID)
	if err != nil || results == nil {
		writeError(w, http.StatusNotFound, "no model results for run")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// GetAnalysisRecords retrieves engineered records of a run
// @Summary Get engineered records
// @Description Read-only page of the engineered dataset, ordered by (country, year)
// @Tags analyses
// @Produce json
// @Param id path string true "Run ID"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{} "Records page"
// @Failure 404 {object} map[string]interface{} "Run not resident"
// @Router /analyses/{id}/records [get]
func GetAnalysisRecords(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r, "/records")
	if !ok {
		writeError(w, http.StatusBadRequest, "run ID is required")
		return
	}

	res, ok := residentRun(runID)
	if !ok || res.Dataset == nil {
		writeError(w, http.StatusNotFound, "run not resident in this session")
		return
	}

	limit := 100
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}

	records := res.Dataset.Records()
	total := len(records)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   total,
		"offset":  offset,
		"limit":   limit,
		"records": records[offset:end],
	})
}

// GetAnalysisGroups retrieves grouped dataset views
// @Summary Get grouped views
// @Description Aggregated views for visualization consumers, grouped by income group or country
// @Tags analyses
// @Produce json
// @Param id path string true "Run ID"
// @Param by query string false "Grouping: income_group (default), country, income_group_year"
// @Success 200 {array} pipeline.GroupSummary "Group summaries"
// @Failure 400 {object} map[string]interface{} "Unknown grouping"
// @Failure 404 {object} map[string]interface{} "Run not resident"
// @Router /analyses/{id}/groups [get]
func GetAnalysisGroups(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r, "/groups")
	if !ok {
		writeError(w, http.StatusBadRequest, "run ID is required")
		return
	}

	res, ok := residentRun(runID)
	if !ok || res.Dataset == nil {
		writeError(w, http.StatusNotFound, "run not resident in this session")
		return
	}

	by := r.URL.Query().Get("by")
	var groups []pipeline.GroupSummary
	switch by {
	case "", "income_group":
		groups = pipeline.SummarizeByIncomeGroup(res.Dataset)
	case "country":
		groups = pipeline.SummarizeByCountry(res.Dataset)
	case "income_group_year":
		groups = pipeline.SummarizeByIncomeGroupYear(res.Dataset)
	default:
		writeError(w, http.StatusBadRequest, "unknown grouping: "+by)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}
