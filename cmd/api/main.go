package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/VlaDexa/misisa/config"
	"github.com/VlaDexa/misisa/handlers"
	"github.com/VlaDexa/misisa/middleware"
	"github.com/VlaDexa/misisa/services"
)

func main() {
	log.Println("Start service")
	// Загружаем .env файл (игнорируем ошибку для продакшн)
	_ = godotenv.Load()

	cfg := config.Load()

	log.Println("init services")
	minioService, err := services.NewMinIOService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	cacheService := services.NewCacheService(cfg.CacheTTL, 2*cfg.CacheTTL)
	parserService := services.NewParserService()

	// Конвертируем локальные сырые книги до запуска сервера
	if cfg.RawDir != "" {
		converter := services.NewConverterService(parserService)
		if err := converter.ConvertDir(cfg.RawDir, cfg.ParsedDir); err != nil {
			log.Printf("Ошибки конвертации расписаний: %v", err)
		}
	}

	log.Println("init handlers")
	scheduleHandler := handlers.NewScheduleHandler(minioService, cacheService)
	convertHandler := handlers.NewConvertHandler(minioService, parserService, cacheService, cfg.SourceBucket, cfg.TargetBucket)
	alisaHandler := handlers.NewAlisaHandler()

	// Настраиваем Gin
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Println("init router")
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(gin.Recovery())

	// API routes
	api := router.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now(),
			})
		})

		// Schedules
		api.GET("/schedules", scheduleHandler.GetSchedules)
		api.GET("/schedules/:file", scheduleHandler.GetSchedule)
		api.GET("/schedules/:file/courses", scheduleHandler.GetCourses)
		api.GET("/schedules/:file/courses/:course/groups/:group", scheduleHandler.GetGroup)
		api.GET("/schedules/:file/courses/:course/groups/:group/subgroups/:number", scheduleHandler.GetSubgroup)

		// Download presigned URL
		api.GET("/schedules/:file/download", scheduleHandler.GetPresignedDownloadURL)

		// Cache management
		api.POST("/cache/invalidate", scheduleHandler.InvalidateCache)

		// File processing
		api.POST("/files_uploaded", convertHandler.ProcessFiles)

		// Alisa webhook
		api.POST("/alisa-trigger", alisaHandler.Trigger)
	}

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
