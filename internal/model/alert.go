package model

import "time"

// Field names in the json tags are the contract with the alerts backend and
// the web front-end. Do not rename them.

type Profiles struct {
	Twitter   *string `json:"twitter,omitempty"`
	Website   *string `json:"website,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Wikipedia *string `json:"wikipedia,omitempty"`
}

// Alert is one configured newsletter: which user owns it, the cron schedule
// it is delivered on and the address it is delivered to. Deletion is always
// soft; DeletedAt stays nil for live alerts.
type Alert struct {
	AlertID   string     `json:"alert_id"`
	UserID    string     `json:"user_id"`
	CronSpec  string     `json:"cron_spec"`
	Title     *string    `json:"title"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type Company struct {
	CompanyID string   `json:"company_id"`
	Name      string   `json:"name"`
	Sector    string   `json:"sector"`
	Logo      *string  `json:"logo"`
	Profiles  Profiles `json:"profiles"`
}

// AlertSpecificData is the query context a company carries inside one
// particular alert.
type AlertSpecificData struct {
	Query   string `json:"query"`
	Intent  string `json:"intent"`
	Context string `json:"context"`
}

// CompanyWithAlertData is a company scoped to one alert subscription.
type CompanyWithAlertData struct {
	Company
	AlertSpecificData AlertSpecificData `json:"alert_specific_data"`
}

// NewsItem is immutable once produced by the backend. The only client-side
// mutation is hiding and restoring whole items, never edits.
type NewsItem struct {
	Title     string   `json:"title"`
	KeyPoints []string `json:"keyPoints"`
	Sources   []string `json:"sources"`
}

// CompanyWithNews is a company plus its news items scoped to one alert run.
// News ordering is insertion order from the backend and is preserved across
// every filter and group operation.
type CompanyWithNews struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Sector   string     `json:"sector"`
	Logo     *string    `json:"logo"`
	Profiles Profiles   `json:"profiles"`
	News     []NewsItem `json:"news"`
}

// AlertRun is one execution of the backend's alert pipeline. Timestamp is the
// ISO-8601 instant of the run; Date is the backend's display date string.
type AlertRun struct {
	RunID     string            `json:"run_id"`
	Date      string            `json:"date"`
	Timestamp string            `json:"timestamp"`
	Companies []CompanyWithNews `json:"companies"`
}
