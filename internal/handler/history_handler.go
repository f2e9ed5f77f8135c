package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"newsdigest/internal/model"
	"newsdigest/pkg/history"
	"newsdigest/pkg/runstore"

	"github.com/gin-gonic/gin"
)

// sessionWindowDays bounds how far back the server-held editing session
// loads runs. Edits older than this are not expected from the front-end.
const sessionWindowDays = 90

type RunStore interface {
	GetRunsByDateRange(alertID string, start, end time.Time) ([]model.AlertRun, error)
	ReplaceRun(alertID string, run *model.AlertRun) error
}

// SubmitQueue hands a serialized submission payload to the worker that pushes
// it to the alerts backend.
type SubmitQueue interface {
	Enqueue(payload []byte) error
}

type Mailer interface {
	SendBulkEmail(payload model.BulkEmailPayload) error
}

// HistoryHandler serves run history views and owns the per-alert editing
// sessions behind news-item delete/restore. Each session is a runstore.Store
// plus a debouncer that collapses rapid edits into one queued submission.
type HistoryHandler struct {
	repository RunStore
	queue      SubmitQueue
	mailer     Mailer
	debounce   time.Duration

	mu         sync.Mutex
	sessions   map[string]*runstore.Store
	debouncers map[string]*runstore.Debouncer
}

func NewHistoryHandler(repository RunStore, queue SubmitQueue, mailer Mailer, debounce time.Duration) *HistoryHandler {
	return &HistoryHandler{
		repository: repository,
		queue:      queue,
		mailer:     mailer,
		debounce:   debounce,
		sessions:   make(map[string]*runstore.Store),
		debouncers: make(map[string]*runstore.Debouncer),
	}
}

// Close cancels every pending debounced submission. Called on shutdown so no
// timer fires into a torn-down process.
func (h *HistoryHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, d := range h.debouncers {
		d.Cancel()
	}
}

func (h *HistoryHandler) FetchDeliveryData(c *gin.Context) {
	var req model.DeliveryDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.UserID == "" || req.AlertID == "" || req.StartDate == "" || req.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id, alert_id, start_date and end_date are required"})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
		return
	}

	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
		return
	}
	end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)

	runs, err := h.repository.GetRunsByDateRange(req.AlertID, start, end)
	if err != nil {
		slog.Error("error fetching runs", "error", err, "alert_id", req.AlertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	runs = history.FilterRunsByCompanies(runs, req.CompanyIDs)
	if runs == nil {
		runs = []model.AlertRun{}
	}

	c.JSON(http.StatusOK, model.DeliveryData{
		AlertID:           req.AlertID,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		FilteredCompanies: req.CompanyIDs,
		Runs:              runs,
	})
}

func (h *HistoryHandler) GetGroupedHistory(c *gin.Context) {
	alertID := c.Param("alertID")
	window := history.Window(c.DefaultQuery("window", string(history.AllAlerts)))

	now := time.Now()
	runs, err := h.repository.GetRunsByDateRange(alertID, now.AddDate(0, 0, -sessionWindowDays), now)
	if err != nil {
		slog.Error("error fetching runs", "error", err, "alert_id", alertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	runs = history.FilterRunsByDateWindow(runs, window, now)
	groups := history.GroupNewsByRunDate(runs)
	if groups == nil {
		groups = []history.DateGroup{}
	}

	c.JSON(http.StatusOK, GroupedHistoryResponse{
		AlertID: alertID,
		Window:  string(window),
		Groups:  groups,
	})
}

func (h *HistoryHandler) DeleteNewsItem(c *gin.Context) {
	var req DeleteNewsItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.AlertID == "" || req.Timestamp == "" || req.CompanyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alert_id, timestamp and company_id are required"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	session, err := h.sessionLocked(req.AlertID)
	if err != nil {
		slog.Error("error loading session", "error", err, "alert_id", req.AlertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// Stale targets are a no-op in the store; the response stays 200 either way.
	session.DeleteNewsItem(req.AlertID, req.Timestamp, req.CompanyID, req.NewsIndex)

	h.persistRunLocked(req.AlertID, req.Timestamp, session)
	h.scheduleSubmitLocked(req.AlertID)

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "News item deleted"})
}

func (h *HistoryHandler) RestoreNewsItem(c *gin.Context) {
	var req RestoreNewsItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.AlertID == "" || req.Timestamp == "" || req.CompanyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alert_id, timestamp and company_id are required"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	session, err := h.sessionLocked(req.AlertID)
	if err != nil {
		slog.Error("error loading session", "error", err, "alert_id", req.AlertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	session.RestoreNewsItem(req.AlertID, req.Timestamp, req.CompanyID)

	h.persistRunLocked(req.AlertID, req.Timestamp, session)
	h.scheduleSubmitLocked(req.AlertID)

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "News item restored"})
}

func (h *HistoryHandler) SubmitUpdatedData(c *gin.Context) {
	var payload model.SubmitUpdatedDataPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if payload.AlertID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alert_id is required"})
		return
	}

	for i := range payload.Runs {
		if err := h.repository.ReplaceRun(payload.AlertID, &payload.Runs[i]); err != nil {
			slog.Error("error replacing run", "error", err, "alert_id", payload.AlertID, "run_id", payload.Runs[i].RunID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.queue.Enqueue(encoded); err != nil {
		slog.Error("error enqueueing submission", "error", err, "alert_id", payload.AlertID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Queue error"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Data submitted successfully"})
}

func (h *HistoryHandler) SendBulkEmail(c *gin.Context) {
	var payload model.BulkEmailPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(payload.Emails) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "emails are required"})
		return
	}

	if err := h.mailer.SendBulkEmail(payload); err != nil {
		slog.Error("error sending bulk email", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Email delivery failed"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Emails sent successfully"})
}

// sessionLocked returns the editing session for the alert, loading the recent
// run window on first use. Caller holds h.mu.
func (h *HistoryHandler) sessionLocked(alertID string) (*runstore.Store, error) {
	if session, ok := h.sessions[alertID]; ok {
		return session, nil
	}

	now := time.Now()
	runs, err := h.repository.GetRunsByDateRange(alertID, now.AddDate(0, 0, -sessionWindowDays), now)
	if err != nil {
		return nil, err
	}

	session := runstore.New(runs)
	h.sessions[alertID] = session
	return session, nil
}

// persistRunLocked mirrors the session's current state of one run into the
// repository. Caller holds h.mu.
func (h *HistoryHandler) persistRunLocked(alertID, timestamp string, session *runstore.Store) {
	for i := range session.Runs() {
		run := &session.Runs()[i]
		if run.Timestamp != timestamp {
			continue
		}
		if err := h.repository.ReplaceRun(alertID, run); err != nil {
			slog.Error("error persisting run", "error", err, "alert_id", alertID, "run_id", run.RunID)
		}
		return
	}
}

// scheduleSubmitLocked arms (or re-arms) the debounced upstream submission
// for the alert. Caller holds h.mu.
func (h *HistoryHandler) scheduleSubmitLocked(alertID string) {
	d, ok := h.debouncers[alertID]
	if !ok {
		d = runstore.NewDebouncer(h.debounce, func() { h.submitSession(alertID) })
		h.debouncers[alertID] = d
	}
	d.Trigger()
}

// submitSession serializes the alert's current session snapshot and hands it
// to the queue. Runs on the debounce timer goroutine.
func (h *HistoryHandler) submitSession(alertID string) {
	h.mu.Lock()
	session, ok := h.sessions[alertID]
	if !ok {
		h.mu.Unlock()
		return
	}

	now := time.Now()
	payload := model.SubmitUpdatedDataPayload{
		AlertID:           alertID,
		StartDate:         now.AddDate(0, 0, -sessionWindowDays).Format("2006-01-02"),
		EndDate:           now.Format("2006-01-02"),
		FilteredCompanies: []string{},
		Runs:              session.Runs(),
	}

	encoded, err := json.Marshal(payload)
	h.mu.Unlock()

	if err != nil {
		slog.Error("error serializing submission", "error", err, "alert_id", alertID)
		return
	}

	if err := h.queue.Enqueue(encoded); err != nil {
		slog.Error("error enqueueing submission", "error", err, "alert_id", alertID)
	}
}
