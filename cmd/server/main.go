package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/armanhn/office-seat-reservation/internal/config"
	"github.com/armanhn/office-seat-reservation/internal/database"
	"github.com/armanhn/office-seat-reservation/internal/handler"
	"github.com/armanhn/office-seat-reservation/internal/middleware"
	"github.com/armanhn/office-seat-reservation/internal/queue"
	"github.com/armanhn/office-seat-reservation/internal/repository"
	"github.com/armanhn/office-seat-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Redis backs rate limiting and the public response cache.  When it is
	// unreachable both middlewares degrade to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	buildingRepo := repository.NewBuildingRepo(db)
	floorRepo := repository.NewFloorRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := &handler.PublicHandler{
		BuildingRepo: buildingRepo,
		FloorRepo:    floorRepo,
		SeatRepo:     seatRepo,
	}
	reservationHandler := handler.NewReservationHandler(cfg, seatRepo, reservationRepo, floorRepo, buildingRepo)
	adminHandler := handler.NewAdminHandler(buildingRepo, floorRepo, seatRepo)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterEmployee(e, reservationHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Consume reservation events in the background; the consumer keeps its
	// own reconnect loop so a broker restart never takes the API down.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
