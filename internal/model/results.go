package model

import "time"

// Coefficient is one estimated regression term.
type Coefficient struct {
	Predictor string  `json:"predictor"`
	Estimate  float64 `json:"estimate"`
	StdErr    float64 `json:"std_err"`
	TStat     float64 `json:"t_stat"`
	PValue    float64 `json:"p_value"`
}

// ModelResult holds the output of one fitted regression specification.
// For the panel model RSquared is the within-R² and NEntities the number of
// countries absorbed as fixed effects.
type ModelResult struct {
	Model        string        `json:"model"` // ols | panel_fe
	Dependent    string        `json:"dependent"`
	Transform    string        `json:"transform"` // predictor scale, "level"
	Coefficients []Coefficient `json:"coefficients"`
	NObs         int           `json:"n_obs"`
	NEntities    int           `json:"n_entities,omitempty"`
	DF           int           `json:"df"`
	RSquared     float64       `json:"r_squared"`
	ResidualSE   float64       `json:"residual_se"`
}

// Coefficient looks up a term by predictor name.
func (m *ModelResult) Coefficient(predictor string) (Coefficient, bool) {
	for _, c := range m.Coefficients {
		if c.Predictor == predictor {
			return c, true
		}
	}
	return Coefficient{}, false
}

// StageAudit records what a pipeline stage did with its input rows.
// InputCount = KeptCount + DroppedCount always holds.
type StageAudit struct {
	Stage        string         `json:"stage"`
	InputCount   int            `json:"input_count"`
	KeptCount    int            `json:"kept_count"`
	DroppedCount int            `json:"dropped_count"`
	DropReasons  map[string]int `json:"drop_reasons,omitempty"`
	Duration     time.Duration  `json:"duration_ns"`
}

// Drop counts one dropped row under a reason.
func (a *StageAudit) Drop(reason string) {
	if a.DropReasons == nil {
		a.DropReasons = make(map[string]int)
	}
	a.DropReasons[reason]++
	a.DroppedCount++
}

// ModelFailure is a recovered fit failure surfaced to the caller.
type ModelFailure struct {
	Model string `json:"model"`
	Cause string `json:"cause"`
}

// ExportResult describes one completed export operation.
type ExportResult struct {
	Type        string    `json:"type"` // "csv", "summary", "database"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	ExportedAt  time.Time `json:"exported_at"`
}

// RunResult is everything a completed analysis run produced. Every dropped
// row and every fit failure is visible here; nothing is only logged.
type RunResult struct {
	RunID      string         `json:"run_id"`
	Spec       AnalysisSpec   `json:"spec"`
	Audits     []StageAudit   `json:"audits"`
	Models     []ModelResult  `json:"models"`
	Failures   []ModelFailure `json:"failures,omitempty"`
	Exports    []ExportResult `json:"exports,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`

	// Dataset is the session cache of engineered records; not serialized.
	Dataset *Dataset `json:"-"`
}

// Audit returns the audit for a stage, if recorded.
func (r *RunResult) Audit(stage string) (StageAudit, bool) {
	for _, a := range r.Audits {
		if a.Stage == stage {
			return a, true
		}
	}
	return StageAudit{}, false
}

// Result returns the fitted result for a model identifier, if present.
func (r *RunResult) Result(modelID string) (*ModelResult, bool) {
	for i := range r.Models {
		if r.Models[i].Model == modelID {
			return &r.Models[i], true
		}
	}
	return nil, false
}
