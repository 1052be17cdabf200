package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Blank129/BookingCar/internal/adapter/geocode"
	"github.com/Blank129/BookingCar/internal/adapter/handler"
	"github.com/Blank129/BookingCar/internal/adapter/logger"
	"github.com/Blank129/BookingCar/internal/adapter/routing"
	"github.com/Blank129/BookingCar/internal/adapter/storage/postgres"
	redisadapter "github.com/Blank129/BookingCar/internal/adapter/storage/redis"
	ws "github.com/Blank129/BookingCar/internal/adapter/websocket"
	"github.com/Blank129/BookingCar/internal/config"
	"github.com/Blank129/BookingCar/internal/core/service"
	"github.com/Blank129/BookingCar/internal/core/service/pricing"
	"github.com/Blank129/BookingCar/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, _ := logger.New(cfg.LogLevel)
	defer appLogger.Sync()

	dbConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		appLogger.Fatal("unable to parse db config", zap.Error(err))
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		appLogger.Fatal("unable to create db pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		appLogger.Fatal("cannot connect to db", zap.Error(err))
	}
	appLogger.Info("connected to database via pgxpool")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("cannot connect to redis", zap.Error(err))
	}

	store := postgres.NewStore(pool)
	presence := redisadapter.NewPresenceStore(rdb)

	hub := ws.NewHub(presence, appLogger)
	go hub.Run()

	trackerCfg := service.TrackerConfig{
		FoundDelay:     cfg.SimFoundDelay,
		ArrivingDelay:  cfg.SimArrivingDelay,
		CountdownStart: cfg.SimCountdownStart,
		TickInterval:   cfg.SimTickInterval,
	}

	prices := pricing.NewStandardStrategy()
	catalog := service.NewVehicleCatalog(store, prices, appLogger)
	trips := service.NewTripService(store, catalog, presence, hub, hub, prices, trackerCfg, appLogger)
	drivers := service.NewDriverService(store, store, presence, hub, appLogger)
	hub.SetService(drivers)

	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.JWTTTL)

	geocoder := geocode.NewNominatimClient(cfg.NominatimURL)
	router := routing.NewOSRMClient(cfg.OSRMURL)

	authHandler := handler.NewAuthHandler(authSvc, store)
	bookingHandler := handler.NewBookingHandler(trips, catalog)
	locationHandler := handler.NewLocationHandler(geocoder, router, appLogger)
	driverHandler := handler.NewDriverHandler(drivers)
	wsHandler := handler.NewWSHandler(hub, appLogger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.Middleware())

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "UP", "env": cfg.Env})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", wsHandler.Attach)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/vehicles", bookingHandler.ListVehicles)
		api.POST("/bookings", bookingHandler.CreateBooking)
		api.GET("/bookings/active", bookingHandler.ActiveBooking)
		api.POST("/bookings/:id/cancel", bookingHandler.CancelBooking)
		api.GET("/locations/search", locationHandler.Search)
		api.GET("/route", locationHandler.Route)

		driverAPI := api.Group("/drivers", handler.AuthMiddleware(authSvc))
		{
			driverAPI.POST("/status", driverHandler.SetStatus)
			driverAPI.GET("/requests", driverHandler.OpenRequests)
			driverAPI.POST("/requests/:id/accept", driverHandler.Accept)
			driverAPI.POST("/requests/:id/reject", driverHandler.Reject)
			driverAPI.POST("/trips/:id/complete", driverHandler.Complete)
			driverAPI.GET("/trips", driverHandler.History)
			driverAPI.GET("/earnings", driverHandler.Earnings)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		appLogger.Info("starting server", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("listen: %s\n", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("server forced to shutdown:", zap.Error(err))
	}

	appLogger.Info("server exiting")
}
