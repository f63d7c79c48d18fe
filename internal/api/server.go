package api

import (
	"log"

	"github.com/atlasfin/backoffice/config"
	"github.com/atlasfin/backoffice/infra/queue"
	"github.com/atlasfin/backoffice/internal/api/rest/handlers"
	"github.com/atlasfin/backoffice/internal/api/rest/middleware"
	"github.com/atlasfin/backoffice/internal/domain"
	"github.com/atlasfin/backoffice/internal/helper"
	"github.com/atlasfin/backoffice/internal/notify"
	"github.com/atlasfin/backoffice/internal/repository"
	"github.com/atlasfin/backoffice/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ResetBaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.OwnerCredential{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	notifier := notify.NewKafkaNotifier(kafkaProducer)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, authHelper)
	credSvc := services.NewCredentialService(userRepo, notifier, authHelper, cfg.ResetBaseURL)

	// ---------- Handlers ----------
	apiGroup := app.Group("/api")

	authHandler := handlers.NewAuthHandler(userSvc, credSvc, authHelper)
	authHandler.SetupRoutes(apiGroup)

	apiGroup.Use(middleware.AuthMiddleware(authHelper))

	userHandler := handlers.NewUserHandler(userSvc, authHelper)
	userHandler.SetupRoutes(apiGroup)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
