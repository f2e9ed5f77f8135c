package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"newsdigest/db"
	"newsdigest/internal/model"
	"newsdigest/pkg/upstream"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// queuedSubmission wraps the submission payload with a retry counter so
// failed submissions can be re-queued a bounded number of times before
// landing on the dead-letter key.
type queuedSubmission struct {
	Attempts int                            `json:"attempts"`
	Payload  model.SubmitUpdatedDataPayload `json:"payload"`
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	const maxRetries = 3

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	client := upstream.New(os.Getenv("UPSTREAM_URL"), os.Getenv("UPSTREAM_API_KEY"))

	for {
		raw, err := db.PopFromQueue(db.SubmitQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		// The API enqueues bare payloads; the retry envelope only appears
		// on re-queued items.
		var item queuedSubmission
		err = json.Unmarshal([]byte(raw), &item)
		if err != nil || item.Payload.AlertID == "" {
			var payload model.SubmitUpdatedDataPayload
			if err := json.Unmarshal([]byte(raw), &payload); err != nil {
				slog.Error("invalid submission in queue", "error", err)
				continue
			}
			item = queuedSubmission{Payload: payload}
		}

		if item.Payload.AlertID == "" {
			slog.Warn("submission without alert id, dropping")
			continue
		}

		err = client.SubmitUpdatedData(item.Payload)
		if err != nil {
			slog.Error("error submitting updated data", "alert_id", item.Payload.AlertID, "attempts", item.Attempts, "error", err)

			item.Attempts++

			requeued, marshalErr := json.Marshal(item)
			if marshalErr != nil {
				slog.Error("error marshaling submission for requeue", "alert_id", item.Payload.AlertID, "error", marshalErr)
				continue
			}

			if item.Attempts >= maxRetries {
				slog.Warn("submission exceeded max retries, moving to dead letter queue", "alert_id", item.Payload.AlertID)
				db.PushToQueue(db.DeadLetterKey, string(requeued))
				continue
			}

			db.PushToQueue(db.SubmitQueueKey, string(requeued))

			time.Sleep(5 * time.Second)
			continue
		}

		slog.Info("updated data submitted", "alert_id", item.Payload.AlertID, "runs", len(item.Payload.Runs))
	}

}
