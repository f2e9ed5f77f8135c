package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"newsdigest/internal/model"
)

// RunRepository persists the alert runs pulled from the upstream backend, one
// row per (alert, run) with the companies payload stored as jsonb.
type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun inserts a fetched run. Returns false when the run was already
// stored for the alert.
func (r *RunRepository) SaveRun(alertID string, run *model.AlertRun) (bool, error) {
	ts, err := time.Parse(time.RFC3339, run.Timestamp)
	if err != nil {
		return false, err
	}

	companies, err := json.Marshal(run.Companies)
	if err != nil {
		return false, err
	}

	var id int64
	err = r.db.QueryRow(`
		INSERT INTO alert_run(alert_id, run_id, run_date, run_timestamp, companies)
		VALUES($1, $2, $3, $4, $5)
		ON CONFLICT (alert_id, run_id) DO NOTHING
		RETURNING id
	`, alertID, run.RunID, run.Date, ts, companies).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// ReplaceRun overwrites the stored companies payload for a run. Used when the
// front-end submits an edited snapshot.
func (r *RunRepository) ReplaceRun(alertID string, run *model.AlertRun) error {
	companies, err := json.Marshal(run.Companies)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		UPDATE alert_run SET companies = $1
		WHERE alert_id = $2 AND run_id = $3
	`, companies, alertID, run.RunID)
	return err
}

func (r *RunRepository) GetRunsByDateRange(alertID string, start, end time.Time) ([]model.AlertRun, error) {
	rows, err := r.db.Query(`
		SELECT run_id, run_date, run_timestamp, companies
		FROM alert_run
		WHERE alert_id = $1 AND run_timestamp >= $2 AND run_timestamp <= $3
		ORDER BY run_timestamp DESC
	`, alertID, start, end)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.AlertRun
	for rows.Next() {
		var run model.AlertRun
		var ts time.Time
		var companies []byte
		if err := rows.Scan(&run.RunID, &run.Date, &ts, &companies); err != nil {
			return nil, err
		}
		run.Timestamp = ts.UTC().Format(time.RFC3339)
		if err := json.Unmarshal(companies, &run.Companies); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

func (r *RunRepository) GetRunTotal(alertID string) (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM alert_run WHERE alert_id = $1
	`, alertID).Scan(&total)
	return total, err
}
