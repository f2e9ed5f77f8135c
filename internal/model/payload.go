package model

// Envelope and payload shapes exchanged with the alerts backend and served to
// the front-end. One canonical schema: every collaborator normalizes into
// these at the boundary.

type AlertList struct {
	UserID string  `json:"userId"`
	Count  int     `json:"count"`
	Alerts []Alert `json:"alerts"`
}

type AlertDetails struct {
	Alert          Alert                  `json:"alert"`
	Companies      []CompanyWithAlertData `json:"companies"`
	CompaniesCount int                    `json:"companies_count"`
}

type CompanyList struct {
	Count     int       `json:"count"`
	Companies []Company `json:"companies"`
}

// DeliveryDataRequest asks for the runs of one alert inside a date range,
// optionally narrowed to specific companies. Dates are "YYYY-MM-DD".
type DeliveryDataRequest struct {
	UserID     string   `json:"user_id"`
	AlertID    string   `json:"alert_id"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	CompanyIDs []string `json:"company_ids,omitempty"`
}

type DeliveryData struct {
	AlertID           string     `json:"alert_id"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	FilteredCompanies []string   `json:"filtered_companies,omitempty"`
	Runs              []AlertRun `json:"runs"`
}

// SubmitUpdatedDataPayload carries the full mutated runs snapshot for an
// alert after local delete/restore edits.
type SubmitUpdatedDataPayload struct {
	AlertID           string     `json:"alert_id"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	FilteredCompanies []string   `json:"filtered_companies"`
	Runs              []AlertRun `json:"runs"`
}

type BulkEmailPayload struct {
	Emails  []string `json:"emails"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}
