package main

import (
	"log"
	"log/slog"
	"newsdigest/db"
	"newsdigest/internal/handler"
	"newsdigest/internal/repository"
	"newsdigest/pkg/runstore"
	"newsdigest/pkg/upstream"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// redisSubmitQueue hands debounced runs-snapshot submissions to the submitter
// worker.
type redisSubmitQueue struct{}

func (redisSubmitQueue) Enqueue(payload []byte) error {
	return db.PushToQueue(db.SubmitQueueKey, string(payload))
}

func main() {

	godotenv.Load()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	client := upstream.New(os.Getenv("UPSTREAM_URL"), os.Getenv("UPSTREAM_API_KEY"))

	alertRepo := repository.NewAlertRepository(db.DB)
	alertHandler := handler.NewAlertHandler(alertRepo)

	runRepo := repository.NewRunRepository(db.DB)
	historyHandler := handler.NewHistoryHandler(runRepo, redisSubmitQueue{}, client, runstore.DefaultDebounce)
	defer historyHandler.Close()

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.POST("/registerAlert", alertHandler.RegisterAlert)
	r.GET("/fetchAlerts/:userID", alertHandler.GetAlerts)
	r.GET("/fetchAlertDetails/:alertID", alertHandler.GetAlertDetails)
	r.PUT("/updateAlert/:alertID", alertHandler.UpdateAlert)
	r.DELETE("/deleteAlert/:userID/:alertID", alertHandler.DeleteAlert)
	r.GET("/companySpecificAlerts/fetchAvailableCompanies", alertHandler.GetAvailableCompanies)
	r.DELETE("/companySpecificAlerts/deleteCompany/:userID/:companyID", alertHandler.DeleteCompany)
	r.POST("/companySpecificAlerts/fetchDeliveryData", historyHandler.FetchDeliveryData)
	r.POST("/companySpecificAlerts/deleteNewsItem", historyHandler.DeleteNewsItem)
	r.POST("/companySpecificAlerts/restoreNewsItem", historyHandler.RestoreNewsItem)
	r.POST("/companySpecificAlerts/submitUpdatedData", historyHandler.SubmitUpdatedData)
	r.GET("/newsletterHistory/:alertID", historyHandler.GetGroupedHistory)
	r.POST("/sendBulkEmail", historyHandler.SendBulkEmail)
	r.GET("/health", alertHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
