package main

import (
	"log"
	"log/slog"
	"newsdigest/db"
	"newsdigest/internal/model"
	"newsdigest/internal/repository"
	"newsdigest/pkg/upstream"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultSyncWindowDays = 10

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	client := upstream.New(os.Getenv("UPSTREAM_URL"), os.Getenv("UPSTREAM_API_KEY"))

	windowDays := defaultSyncWindowDays
	if raw := os.Getenv("SYNC_WINDOW_DAYS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			slog.Warn("invalid SYNC_WINDOW_DAYS, using default", "value", raw, "default", defaultSyncWindowDays)
		} else {
			windowDays = parsed
		}
	}

	alertRepo := repository.NewAlertRepository(db.DB)
	runRepo := repository.NewRunRepository(db.DB)

	alerts, err := alertRepo.GetActiveAlerts()
	if err != nil {
		log.Fatalf("error loading active alerts: %v", err)
	}

	now := time.Now().UTC()
	startDate := now.AddDate(0, 0, -windowDays).Format("2006-01-02")
	endDate := now.Format("2006-01-02")

	for _, alert := range alerts {
		delivery, err := client.FetchDeliveryData(model.DeliveryDataRequest{
			UserID:    alert.UserID,
			AlertID:   alert.AlertID,
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			slog.Error("error fetching delivery data", "alert_id", alert.AlertID, "error", err)
			continue
		}

		var saved, duplicated, errors int

		for i := range delivery.Runs {
			success, err := runRepo.SaveRun(alert.AlertID, &delivery.Runs[i])
			if err != nil {
				slog.Error("error saving run", "alert_id", alert.AlertID, "run_id", delivery.Runs[i].RunID, "error", err)
				errors++
				continue
			}

			if !success {
				duplicated++
				continue
			}

			saved++
		}

		slog.Info("sync complete", "alert_id", alert.AlertID, "saved", saved, "duplicated", duplicated, "errors", errors)
	}
}
