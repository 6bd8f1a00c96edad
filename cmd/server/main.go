package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/fyyur-directory/internal/config"
	"github.com/iliyamo/fyyur-directory/internal/database"
	"github.com/iliyamo/fyyur-directory/internal/handler"
	"github.com/iliyamo/fyyur-directory/internal/logging"
	"github.com/iliyamo/fyyur-directory/internal/middleware"
	"github.com/iliyamo/fyyur-directory/internal/queue"
	"github.com/iliyamo/fyyur-directory/internal/router"
	"github.com/iliyamo/fyyur-directory/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logging.New(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.WithError(err).Fatal("migrate database")
		}
	}

	// Redis is optional: without it caching and rate limiting are skipped.
	rdb := config.NewRedisClient(ctx, cfg.Redis)
	if rdb == nil {
		log.WithField("addr", cfg.Redis.Address()).Warn("redis unavailable; cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	var pub service.EventPublisher = service.NopPublisher{}
	if cfg.Queue.URL != "" {
		pub = service.NewAMQPPublisher(cfg.Queue.URL, cfg.Queue.Name)
		if cfg.Queue.ConsumerEnabled {
			consumer := queue.NewConsumer(cfg.Queue.URL, cfg.Queue.Name, cfg.Queue.LogFile, log)
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.WithError(err).Error("listing consumer stopped")
				}
			}()
		}
	}

	dir := service.NewDirectory(db, nil)
	listings := service.NewListings(db, pub, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.NewRedisCache(cfg.Cache, rdb, log))
	handlers := router.Handlers{
		Health:  &handler.HealthHandler{DB: db},
		Venues:  &handler.VenueHandler{Directory: dir, Listings: listings},
		Artists: &handler.ArtistHandler{Directory: dir, Listings: listings},
		Shows:   &handler.ShowHandler{Directory: dir, Listings: listings},
	}
	router.RegisterRoutes(e, handlers,
		middleware.NewTokenBucket(cfg.RateLimit, rdb, log),
		middleware.NewCacheInvalidator(cfg.Cache, rdb, log),
	)

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
