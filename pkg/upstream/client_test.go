package upstream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsdigest/internal/model"

	"github.com/go-playground/assert/v2"
)

func TestFetchDeliveryData(t *testing.T) {
	var gotPath string
	var gotBody model.DeliveryDataRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.DeliveryData{
			AlertID:   "alert-1",
			StartDate: "2024-01-10",
			EndDate:   "2024-01-20",
			Runs: []model.AlertRun{
				{
					RunID:     "run-1",
					Timestamp: "2024-01-20T10:00:00Z",
					Companies: []model.CompanyWithNews{
						{ID: "c1", Name: "Acme", News: []model.NewsItem{{Title: "A"}}},
					},
				},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")

	data, err := client.FetchDeliveryData(model.DeliveryDataRequest{
		UserID:    "user-1",
		AlertID:   "alert-1",
		StartDate: "2024-01-10",
		EndDate:   "2024-01-20",
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, "/companySpecificAlerts/fetchDeliveryData", gotPath)
	assert.Equal(t, "alert-1", gotBody.AlertID)
	assert.Equal(t, 1, len(data.Runs))
	assert.Equal(t, "run-1", data.Runs[0].RunID)
	assert.Equal(t, "Acme", data.Runs[0].Companies[0].Name)
}

func TestSubmitUpdatedData_SendsAPIKey(t *testing.T) {
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, "secret")

	err := client.SubmitUpdatedData(model.SubmitUpdatedDataPayload{AlertID: "alert-1"})

	assert.Equal(t, nil, err)
	assert.Equal(t, "secret", gotKey)
}

func TestFetchAlerts_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, "")

	_, err := client.FetchAlerts("user-1")
	assert.NotEqual(t, nil, err)
}

func TestFetchAlerts_DecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"userId": "user-1",
			"count":  1,
			"alerts": []map[string]any{
				{
					"alert_id":   "alert-1",
					"user_id":    "user-1",
					"cron_spec":  "30 3 * * *",
					"email":      "a@example.com",
					"created_at": "2024-01-01T00:00:00Z",
				},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "")

	list, err := client.FetchAlerts("user-1")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "alert-1", list.Alerts[0].AlertID)
	assert.Equal(t, "30 3 * * *", list.Alerts[0].CronSpec)
}
