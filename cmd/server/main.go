package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/cosmoruler/Summerbuild/internal/config"
	"github.com/cosmoruler/Summerbuild/internal/database"
	"github.com/cosmoruler/Summerbuild/internal/handler"
	"github.com/cosmoruler/Summerbuild/internal/middleware"
	"github.com/cosmoruler/Summerbuild/internal/notify"
	"github.com/cosmoruler/Summerbuild/internal/places"
	"github.com/cosmoruler/Summerbuild/internal/queue"
	"github.com/cosmoruler/Summerbuild/internal/repository"
	"github.com/cosmoruler/Summerbuild/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the proxy rate limiter; without it we fall back to an
	// in-process counter so a single instance still enforces the quota.
	var counters middleware.CounterStore = middleware.NewMemoryCounter()
	if rdb := config.NewRedisClient(); rdb != nil {
		counters = &middleware.RedisCounter{RDB: rdb}
	} else {
		log.Println("redis unavailable, using in-memory rate-limit counters")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	profiles := repository.NewProfileRepo(db)
	saved := repository.NewSavedRepo(db)
	restaurants := repository.NewRestaurantRepo(db)

	hub := notify.NewHub()

	authH := handler.NewAuthHandler(cfg, users, tokens, profiles)
	recH := handler.NewRecommendHandler(places.NewOverpassClient(cfg.OverpassURL))
	proxyH := handler.NewProxyHandler(places.NewNearbyClient(cfg.PlacesAPIURL, cfg.PlacesAPIKey), restaurants)
	profH := handler.NewProfileHandler(profiles)
	savedH := handler.NewSavedHandler(saved, hub)
	adminH := handler.NewAdminUsersHandler(cfg, users, profiles)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterAPI(e, recH, proxyH, profH, config.LoadRateLimitConfig(), counters)
	router.RegisterSaved(e, savedH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.AdminSecret, cfg.JWTSecret, profiles)

	go func() {
		if err := queue.StartSavedConsumer(); err != nil {
			log.Printf("saved consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
