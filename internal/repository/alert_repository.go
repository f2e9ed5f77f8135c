package repository

import (
	"database/sql"
	"encoding/json"
	"newsdigest/internal/model"

	"github.com/lib/pq"
)

type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) SaveAlert(alert *model.Alert) error {
	return r.db.QueryRow(`
		INSERT INTO alert(alert_id, user_id, cron_spec, title, email)
		VALUES($1, $2, $3, $4, $5)
		RETURNING created_at
	`, alert.AlertID, alert.UserID, alert.CronSpec, alert.Title, alert.Email).Scan(&alert.CreatedAt)
}

func (r *AlertRepository) GetAlertsByUser(userID string) ([]model.Alert, error) {
	rows, err := r.db.Query(`
		SELECT alert_id, user_id, cron_spec, title, email, created_at, deleted_at
		FROM alert
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, userID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

func (r *AlertRepository) GetActiveAlerts() ([]model.Alert, error) {
	rows, err := r.db.Query(`
		SELECT alert_id, user_id, cron_spec, title, email, created_at, deleted_at
		FROM alert
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC
	`)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

func (r *AlertRepository) GetAlertByID(alertID string) (*model.Alert, error) {
	row := r.db.QueryRow(`
		SELECT alert_id, user_id, cron_spec, title, email, created_at, deleted_at
		FROM alert
		WHERE alert_id = $1
	`, alertID)

	alert, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &alert, nil
}

func (r *AlertRepository) UpdateAlert(alertID string, title *string, cronSpec string, email string) error {
	_, err := r.db.Exec(`
		UPDATE alert SET title = $1, cron_spec = $2, email = $3
		WHERE alert_id = $4 AND deleted_at IS NULL
	`, title, cronSpec, email, alertID)
	return err
}

// SoftDeleteAlert marks the alert deleted without removing its rows; history
// stays queryable and the front-end keeps showing it until navigation away.
func (r *AlertRepository) SoftDeleteAlert(userID, alertID string) error {
	_, err := r.db.Exec(`
		UPDATE alert SET deleted_at = NOW()
		WHERE alert_id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, alertID, userID)
	return err
}

func (r *AlertRepository) GetAvailableCompanies() ([]model.Company, error) {
	rows, err := r.db.Query(`
		SELECT company_id, name, sector, logo, profiles
		FROM company
		ORDER BY name
	`)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		var logo sql.NullString
		var profiles []byte
		if err := rows.Scan(&c.CompanyID, &c.Name, &c.Sector, &logo, &profiles); err != nil {
			return nil, err
		}
		if logo.Valid {
			c.Logo = &logo.String
		}
		if len(profiles) > 0 {
			if err := json.Unmarshal(profiles, &c.Profiles); err != nil {
				return nil, err
			}
		}
		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return companies, nil
}

func (r *AlertRepository) GetCompaniesByAlert(alertID string) ([]model.CompanyWithAlertData, error) {
	rows, err := r.db.Query(`
		SELECT c.company_id, c.name, c.sector, c.logo, c.profiles, ac.alert_specific_data
		FROM company c
		JOIN alert_company ac ON ac.company_id = c.company_id
		WHERE ac.alert_id = $1
		ORDER BY c.name
	`, alertID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []model.CompanyWithAlertData
	for rows.Next() {
		var c model.CompanyWithAlertData
		var logo sql.NullString
		var profiles, specific []byte
		if err := rows.Scan(&c.CompanyID, &c.Name, &c.Sector, &logo, &profiles, &specific); err != nil {
			return nil, err
		}
		if logo.Valid {
			c.Logo = &logo.String
		}
		if len(profiles) > 0 {
			if err := json.Unmarshal(profiles, &c.Profiles); err != nil {
				return nil, err
			}
		}
		if len(specific) > 0 {
			if err := json.Unmarshal(specific, &c.AlertSpecificData); err != nil {
				return nil, err
			}
		}
		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return companies, nil
}

// LinkCompanies attaches companies to an alert, replacing nothing that is
// already linked.
func (r *AlertRepository) LinkCompanies(alertID string, companyIDs []string) error {
	if len(companyIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(`
		INSERT INTO alert_company(alert_id, company_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT DO NOTHING
	`, alertID, pq.Array(companyIDs))
	return err
}

// DeleteCompany detaches the company from every live alert of the user.
func (r *AlertRepository) DeleteCompany(userID, companyID string) error {
	_, err := r.db.Exec(`
		DELETE FROM alert_company ac
		USING alert a
		WHERE ac.alert_id = a.alert_id
		  AND a.user_id = $1
		  AND ac.company_id = $2
	`, userID, companyID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (model.Alert, error) {
	var a model.Alert
	var title sql.NullString
	var deletedAt sql.NullTime

	err := row.Scan(&a.AlertID, &a.UserID, &a.CronSpec, &title, &a.Email, &a.CreatedAt, &deletedAt)
	if err != nil {
		return model.Alert{}, err
	}

	if title.Valid {
		a.Title = &title.String
	}
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}
	return a, nil
}
