package handler

import (
	"log/slog"
	"net/http"

	"newsdigest/internal/model"
	"newsdigest/pkg/cron"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AlertStore interface {
	SaveAlert(alert *model.Alert) error
	GetAlertsByUser(userID string) ([]model.Alert, error)
	GetAlertByID(alertID string) (*model.Alert, error)
	UpdateAlert(alertID string, title *string, cronSpec string, email string) error
	SoftDeleteAlert(userID, alertID string) error
	GetAvailableCompanies() ([]model.Company, error)
	GetCompaniesByAlert(alertID string) ([]model.CompanyWithAlertData, error)
	LinkCompanies(alertID string, companyIDs []string) error
	DeleteCompany(userID, companyID string) error
}

type AlertHandler struct {
	repository AlertStore
}

func NewAlertHandler(repository AlertStore) *AlertHandler {
	return &AlertHandler{repository: repository}
}

func (h *AlertHandler) RegisterAlert(c *gin.Context) {
	var req RegisterAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.UserID == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and email are required"})
		return
	}

	alert := model.Alert{
		AlertID:  uuid.NewString(),
		UserID:   req.UserID,
		CronSpec: cron.Build(cron.Frequency(req.Frequency), req.cronParams()),
		Title:    req.Title,
		Email:    req.Email,
	}

	if err := h.repository.SaveAlert(&alert); err != nil {
		slog.Error("error saving alert", "error", err, "user_id", req.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := h.repository.LinkCompanies(alert.AlertID, req.CompanyIDs); err != nil {
		slog.Error("error linking companies", "error", err, "alert_id", alert.AlertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"alert": toAlertResponse(alert)})
}

func (h *AlertHandler) GetAlerts(c *gin.Context) {
	userID := c.Param("userID")

	alerts, err := h.repository.GetAlertsByUser(userID)
	if err != nil {
		slog.Error("error fetching alerts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := AlertListResponse{
		UserID: userID,
		Count:  len(alerts),
		Alerts: []AlertResponse{},
	}
	for _, a := range alerts {
		res.Alerts = append(res.Alerts, toAlertResponse(a))
	}

	c.JSON(http.StatusOK, res)
}

func (h *AlertHandler) GetAlertDetails(c *gin.Context) {
	alertID := c.Param("alertID")

	alert, err := h.repository.GetAlertByID(alertID)
	if err != nil {
		slog.Error("error fetching alert", "error", err, "alert_id", alertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if alert == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}

	companies, err := h.repository.GetCompaniesByAlert(alertID)
	if err != nil {
		slog.Error("error fetching alert companies", "error", err, "alert_id", alertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if companies == nil {
		companies = []model.CompanyWithAlertData{}
	}

	c.JSON(http.StatusOK, AlertDetailsResponse{
		Alert:          toAlertResponse(*alert),
		Companies:      companies,
		CompaniesCount: len(companies),
	})
}

func (h *AlertHandler) UpdateAlert(c *gin.Context) {
	alertID := c.Param("alertID")

	var req UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	alert, err := h.repository.GetAlertByID(alertID)
	if err != nil {
		slog.Error("error fetching alert", "error", err, "alert_id", alertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if alert == nil || alert.DeletedAt != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}

	cronSpec := alert.CronSpec
	if req.Frequency != "" {
		cronSpec = cron.Build(cron.Frequency(req.Frequency), req.cronParams())
	}

	title := alert.Title
	if req.Title != nil {
		title = req.Title
	}

	email := alert.Email
	if req.Email != "" {
		email = req.Email
	}

	if err := h.repository.UpdateAlert(alertID, title, cronSpec, email); err != nil {
		slog.Error("error updating alert", "error", err, "alert_id", alertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	alert.Title = title
	alert.CronSpec = cronSpec
	alert.Email = email

	c.JSON(http.StatusOK, gin.H{"alert": toAlertResponse(*alert)})
}

func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	userID := c.Param("userID")
	alertID := c.Param("alertID")

	if err := h.repository.SoftDeleteAlert(userID, alertID); err != nil {
		slog.Error("error deleting alert", "error", err, "alert_id", alertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Newsletter deleted successfully"})
}

func (h *AlertHandler) GetAvailableCompanies(c *gin.Context) {
	companies, err := h.repository.GetAvailableCompanies()
	if err != nil {
		slog.Error("error fetching companies", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if companies == nil {
		companies = []model.Company{}
	}

	c.JSON(http.StatusOK, model.CompanyList{Count: len(companies), Companies: companies})
}

func (h *AlertHandler) DeleteCompany(c *gin.Context) {
	userID := c.Param("userID")
	companyID := c.Param("companyID")

	if err := h.repository.DeleteCompany(userID, companyID); err != nil {
		slog.Error("error deleting company", "error", err, "company_id", companyID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Company deleted successfully"})
}

func (h *AlertHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetAvailableCompanies()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
