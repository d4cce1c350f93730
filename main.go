package main

import (
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"health-portal/handlers"
	"health-portal/middleware"
	"health-portal/models"
	"health-portal/monitoring"
	"health-portal/utils"
)

func main() {
	logger := log.New(os.Stdout, "PORTAL: ", log.LstdFlags|log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		logger.Printf("No .env file loaded: %v", err)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := utils.InitSentry(dsn); err != nil {
			logger.Printf("Sentry disabled: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Flash-хранилище обязательно, подключаемся к Redis с ретраями
	var flashStore utils.FlashStore
	var err error
	maxRetries := 5
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		flashStore, err = utils.NewRedisFlashStore()
		if err == nil {
			break
		}
		logger.Printf("Attempt %d: Failed to connect to Redis: %v", i+1, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		logger.Fatalf("Failed to initialize Redis after %d attempts: %v", maxRetries, err)
	}
	defer func() {
		if err := flashStore.Close(); err != nil {
			logger.Printf("Error closing Redis connection: %v", err)
		}
	}()

	// Kafka опциональна: без брокера аудит-события просто не шлются
	var producer utils.KafkaProducer
	if producer, err = utils.NewKafkaProducer(); err != nil {
		logger.Printf("Kafka disabled: %v", err)
		producer = nil
	} else {
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Printf("Error closing Kafka producer: %v", err)
			}
		}()
	}

	backend := models.NewRESTBackend()
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.PrometheusMetrics())
	router.Use(middleware.ErrorHandler())

	router.SetFuncMap(template.FuncMap{
		"displayDate": models.DisplayDate,
	})
	router.LoadHTMLGlob("templates/*.html")

	dashboard := handlers.NewDashboardHandler(backend, flashStore)
	clients := handlers.NewClientHandler(backend, flashStore, producer)
	programs := handlers.NewProgramHandler(backend, flashStore, producer)
	enrollments := handlers.NewEnrollmentHandler(backend, flashStore, producer)

	router.GET("/", dashboard.Show)

	router.GET("/clients", clients.List)
	router.GET("/clients/new", clients.NewForm)
	router.POST("/clients/new", clients.Create)
	router.GET("/clients/:id", clients.Detail)
	router.GET("/clients/edit/:id", clients.EditForm)
	router.POST("/clients/edit/:id", clients.Update)
	router.POST("/clients/:id/delete", clients.Delete)

	router.GET("/programs", programs.List)
	router.GET("/programs/new", programs.NewForm)
	router.POST("/programs/new", programs.Create)
	router.GET("/programs/edit/:id", programs.EditForm)
	router.POST("/programs/edit/:id", programs.Update)
	router.POST("/programs/:id/delete", programs.Delete)

	router.GET("/enrollments/new", enrollments.NewForm)
	router.POST("/enrollments/new", enrollments.Create)

	// Неизвестные пути уводим на дашборд
	router.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})

	router.GET("/metrics", gin.WrapH(monitoring.Handler()))
	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()
		token, err := flashStore.Put(ctx, "ping")
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "degraded",
				"details": gin.H{"redis": "unavailable"},
				"error":   err.Error(),
			})
			return
		}
		flashStore.Take(ctx, token)
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"details": gin.H{"redis": "available"},
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Printf("Server is running on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}
