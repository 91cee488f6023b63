package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"econ-pipeline/internal/model"
)

var db *sql.DB

// InitDB opens the sqlite database and creates the schema. The store is
// optional: when InitDB is never called (CLI without -db), every Save is a
// no-op and reads report sql.ErrConnDone.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_audits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			stage TEXT,
			input_count INTEGER,
			kept_count INTEGER,
			dropped_count INTEGER,
			drop_reasons TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS model_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			model TEXT,
			result TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS engineered_records (
			run_id TEXT,
			country TEXT,
			year INTEGER,
			gdp_per_capita REAL,
			agriculture_share REAL,
			manufacturing_share REAL,
			transport_comm_share REAL,
			income_group TEXT,
			PRIMARY KEY (run_id, country, year)
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database, if open.
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// SaveRun stores a new analysis run.
func SaveRun(runID string, spec model.AnalysisSpec) error {
	if db == nil {
		return nil
	}
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, specJSON, "pending", now, now)
	return err
}

// UpdateRunStatus updates a run's status.
func UpdateRunStatus(runID, status string) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), runID)
	return err
}

// SaveRunError records an error for a run.
func SaveRunError(runID string, runErr error) error {
	if db == nil || runErr == nil {
		return nil
	}
	_, err := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, runErr.Error(), time.Now().UTC())
	return err
}

// SaveAudit records a stage audit for a run.
func SaveAudit(runID string, audit model.StageAudit) error {
	if db == nil {
		return nil
	}
	reasons, err := json.Marshal(audit.DropReasons)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO run_audits (run_id, stage, input_count, kept_count, dropped_count, drop_reasons, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, audit.Stage, audit.InputCount, audit.KeptCount, audit.DroppedCount, reasons, time.Now().UTC())
	return err
}

// SaveModelResult records a fitted model for a run.
func SaveModelResult(runID string, result model.ModelResult) error {
	if db == nil {
		return nil
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO model_results (run_id, model, result, created_at) VALUES (?, ?, ?, ?)`,
		runID, result.Model, resultJSON, time.Now().UTC())
	return err
}

// SaveEngineeredRecords persists the engineered dataset for a run.
func SaveEngineeredRecords(runID string, records []model.EngineeredRecord) error {
	if db == nil {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO engineered_records
		(run_id, country, year, gdp_per_capita, agriculture_share, manufacturing_share, transport_comm_share, income_group)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(runID, r.Country, r.Year, r.GDPPerCapita,
			r.AgricultureShare, r.ManufacturingShare, r.TransportCommShare, string(r.IncomeGroup)); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// ListRuns returns all runs with basic info, newest first.
func ListRuns() ([]map[string]interface{}, error) {
	if db == nil {
		return nil, sql.ErrConnDone
	}
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches a run's spec and status.
func GetRun(runID string) (map[string]interface{}, error) {
	if db == nil {
		return nil, sql.ErrConnDone
	}
	var specJSON, status string
	var createdAt, updatedAt time.Time
	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.AnalysisSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":        runID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// GetModelResults fetches the fitted models recorded for a run.
func GetModelResults(runID string) ([]model.ModelResult, error) {
	if db == nil {
		return nil, sql.ErrConnDone
	}
	rows, err := db.Query(`SELECT result FROM model_results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.ModelResult
	for rows.Next() {
		var resultJSON string
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, err
		}
		var res model.ModelResult
		if err := json.Unmarshal([]byte(resultJSON), &res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
