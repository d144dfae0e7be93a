package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"partner-growth-system/cache"
	appconfig "partner-growth-system/config"
	"partner-growth-system/handlers"
	"partner-growth-system/seed"
	"partner-growth-system/services"
	"partner-growth-system/store"
	"partner-growth-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatal(err)
	}

	var st store.Store
	switch cfg.StoreBackend {
	case appconfig.BackendPostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatal("failed to connect to database: ", err)
		}
		if err := store.Migrate(db); err != nil {
			log.Fatal("failed to migrate database: ", err)
		}
		st = store.NewGormStore(db)
	case appconfig.BackendMemory:
		st = store.NewMemoryStore()
	}
	log.Printf("store backend: %s", cfg.StoreBackend)

	achievementService := services.NewAchievementService(st)
	if err := achievementService.EnsureCatalog(); err != nil {
		log.Fatal("failed to ensure achievement catalog: ", err)
	}
	if cfg.SeedDemoData {
		if err := seed.Run(st); err != nil {
			log.Fatal("failed to seed demo data: ", err)
		}
	}

	var leaderboardCache *cache.LeaderboardCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		leaderboardCache = cache.NewLeaderboardCache(rdb, cfg.LeaderboardCacheTTL)
		log.Printf("leaderboard cache enabled at %s", cfg.RedisAddr)
	}

	uploads, err := utils.NewR2Client(cfg)
	if err != nil {
		log.Fatal("failed to initialize R2 client: ", err)
	}

	authService := services.NewAuthService(st, cfg.JWTSecret, cfg.TokenTTL)
	partnerService := services.NewPartnerService(st, achievementService)
	coachService := services.NewCoachService(st, services.NewCannedResponder())
	communityService := services.NewCommunityService(st, leaderboardCache)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if leaderboardCache != nil {
		sched, err := services.StartLeaderboardRebuild(ctx, communityService, cfg.LeaderboardRebuildPeriod)
		if err != nil {
			log.Fatal("failed to start leaderboard rebuild job: ", err)
		}
		defer func() { _ = sched.Shutdown() }()
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupPartnerRoutes(app, authService, partnerService, uploads)
	handlers.SetupCoachRoutes(app, authService, coachService)
	handlers.SetupCommunityRoutes(app, authService, communityService)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("server error: %v", err)
			stop()
		}
	}()
	log.Printf("server running on http://localhost:%s", cfg.Port)

	<-ctx.Done()
	log.Println("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
