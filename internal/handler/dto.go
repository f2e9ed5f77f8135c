package handler

import (
	"newsdigest/internal/model"
	"newsdigest/pkg/cron"
	"newsdigest/pkg/history"
)

type RegisterAlertRequest struct {
	UserID     string   `json:"user_id"`
	Title      *string  `json:"title"`
	Email      string   `json:"email"`
	Frequency  string   `json:"frequency"`
	Hour       *int     `json:"hour"`
	Minute     *int     `json:"minute"`
	DayOfWeek  *int     `json:"day_of_week"`
	DayOfMonth *int     `json:"day_of_month"`
	CompanyIDs []string `json:"company_ids"`
}

type UpdateAlertRequest struct {
	Title      *string `json:"title"`
	Email      string  `json:"email"`
	Frequency  string  `json:"frequency"`
	Hour       *int    `json:"hour"`
	Minute     *int    `json:"minute"`
	DayOfWeek  *int    `json:"day_of_week"`
	DayOfMonth *int    `json:"day_of_month"`
}

func (r RegisterAlertRequest) cronParams() cron.Params {
	return cronParams(r.Hour, r.Minute, r.DayOfWeek, r.DayOfMonth)
}

func (r UpdateAlertRequest) cronParams() cron.Params {
	return cronParams(r.Hour, r.Minute, r.DayOfWeek, r.DayOfMonth)
}

func cronParams(hour, minute, dayOfWeek, dayOfMonth *int) cron.Params {
	p := cron.DefaultParams()
	if hour != nil {
		p.Hour = *hour
	}
	if minute != nil {
		p.Minute = *minute
	}
	if dayOfWeek != nil {
		p.DayOfWeek = *dayOfWeek
	}
	if dayOfMonth != nil {
		p.DayOfMonth = *dayOfMonth
	}
	return p
}

// AlertResponse is a stored alert plus the frequency classified from its cron
// spec, so the settings screen never re-derives it.
type AlertResponse struct {
	model.Alert
	Frequency cron.Frequency `json:"frequency"`
}

func toAlertResponse(a model.Alert) AlertResponse {
	return AlertResponse{Alert: a, Frequency: cron.Classify(a.CronSpec)}
}

type AlertListResponse struct {
	UserID string          `json:"userId"`
	Count  int             `json:"count"`
	Alerts []AlertResponse `json:"alerts"`
}

type AlertDetailsResponse struct {
	Alert          AlertResponse                `json:"alert"`
	Companies      []model.CompanyWithAlertData `json:"companies"`
	CompaniesCount int                          `json:"companies_count"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DeleteNewsItemRequest struct {
	AlertID   string `json:"alert_id"`
	Timestamp string `json:"timestamp"`
	CompanyID string `json:"company_id"`
	NewsIndex int    `json:"news_index"`
}

type RestoreNewsItemRequest struct {
	AlertID   string `json:"alert_id"`
	Timestamp string `json:"timestamp"`
	CompanyID string `json:"company_id"`
}

type GroupedHistoryResponse struct {
	AlertID string              `json:"alert_id"`
	Window  string              `json:"window"`
	Groups  []history.DateGroup `json:"groups"`
}
