package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-registration/internal/config"
	"github.com/harentsoaR/doctor-registration/internal/handlers"
	"github.com/harentsoaR/doctor-registration/internal/middleware"
	"github.com/harentsoaR/doctor-registration/internal/monitoring"
	"github.com/harentsoaR/doctor-registration/internal/registration"
	"github.com/harentsoaR/doctor-registration/internal/services"
	"github.com/harentsoaR/doctor-registration/internal/utils"
)

func main() {
	cfg := config.Load()
	cfg.LogSummary()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Sentry ---
	if cfg.SentryDSN != "" {
		flush, err := utils.InitSentry(cfg.SentryDSN, cfg.Environment, cfg.AppVersion)
		if err != nil {
			log.Printf("Sentry disabled: %v", err)
		} else {
			defer flush()
		}
	}

	monitoring.Init()

	// --- Audit log (optional) ---
	var audit services.AuditLog
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := services.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			cancel()
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer client.Disconnect(context.Background())

		mongoAudit := services.NewMongoAuditLog(client.Database(cfg.MongoDatabase))
		if err := mongoAudit.EnsureIndexes(ctx); err != nil {
			log.Printf("Failed to create audit indexes: %v", err)
		}
		cancel()
		audit = mongoAudit
	}

	// --- Events (optional) ---
	var events services.EventPublisher
	if cfg.KafkaBroker != "" {
		publisher := services.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		defer publisher.Close()
		events = publisher
		log.Printf("Publishing registration events to %s/%s", cfg.KafkaBroker, cfg.KafkaTopic)
	}

	// --- Handlers ---
	relay := services.NewRelay(cfg, nil)
	wizard := registration.NewController(nil)
	h := handlers.NewHandler(relay, audit, events, wizard)

	// --- Gin Router ---
	r := gin.Default()

	// --- Middleware ---
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.Sentry())
	r.Use(middleware.ErrorReporter())
	r.Use(middleware.PrometheusMetrics())

	// --- Routes ---
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))
	h.RegisterRoutes(r)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
