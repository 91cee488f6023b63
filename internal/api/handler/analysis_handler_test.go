package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"econ-pipeline/internal/model"
	"econ-pipeline/internal/pipeline"
)

func testRun(t *testing.T) *model.RunResult {
	t.Helper()
	var recs []model.EngineeredRecord
	for i := 0; i < 5; i++ {
		recs = append(recs, model.EngineeredRecord{
			Record:             model.Record{Country: "A", Year: 2000 + i, Population: 1e6},
			GDPPerCapita:       float64(100 + i),
			AgricultureShare:   0.3,
			ManufacturingShare: 0.4,
			TransportCommShare: 0.2,
			IncomeGroup:        model.IncomeLowerMiddle,
		})
	}
	res := &model.RunResult{
		RunID:   "run-1",
		Dataset: model.NewDataset(recs),
		Models: []model.ModelResult{
			{Model: model.ModelOLS, Dependent: model.VarGDPPerCapita, NObs: 5},
		},
	}
	rememberRun(res)
	return res
}

func TestGetAnalysisRecordsPaging(t *testing.T) {
	testRun(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/run-1/records?limit=2&offset=1", nil)
	rec := httptest.NewRecorder()
	GetAnalysisRecords(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total   int                      `json:"total"`
		Offset  int                      `json:"offset"`
		Records []model.EngineeredRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Total)
	assert.Equal(t, 1, body.Offset)
	require.Len(t, body.Records, 2)
	assert.Equal(t, 2001, body.Records[0].Year)
}

func TestGetAnalysisRecordsUnknownRun(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/missing/records", nil)
	rec := httptest.NewRecorder()
	GetAnalysisRecords(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAnalysisGroups(t *testing.T) {
	testRun(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/run-1/groups?by=income_group", nil)
	rec := httptest.NewRecorder()
	GetAnalysisGroups(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var groups []pipeline.GroupSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, string(model.IncomeLowerMiddle), groups[0].GroupValue)
	assert.Equal(t, 5, groups[0].RecordCount)
}

func TestGetAnalysisGroupsUnknownGrouping(t *testing.T) {
	testRun(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/run-1/groups?by=continent", nil)
	rec := httptest.NewRecorder()
	GetAnalysisGroups(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAnalysisModelsResident(t *testing.T) {
	testRun(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/run-1/models", nil)
	rec := httptest.NewRecorder()
	GetAnalysisModels(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var results []model.ModelResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, model.ModelOLS, results[0].Model)
}

func TestCreateAnalysisRejectsBadSpec(t *testing.T) {
	body := strings.NewReader(`{"input": "data.csv", "dependent": "nonsense"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	rec := httptest.NewRecorder()
	CreateAnalysis(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "dependent")
}

func TestRunIDFromPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/abc-123/models", nil)
	id, ok := runIDFromPath(req, "/models")
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analyses/abc-123", nil)
	id, ok = runIDFromPath(req, "")
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analyses/", nil)
	_, ok = runIDFromPath(req, "")
	assert.False(t, ok)
}
