package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/config"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/handler"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/intent"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/logger"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/provider"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging)
	log.WithField("version", Version).Info("toura search engine starting")

	gin.SetMode(cfg.Server.GinMode)

	// Adapter order matters: the curated dataset goes first so its
	// entries win dedup ties against the remote providers.
	var adapters []provider.Adapter
	var curated *provider.Curated

	if cfg.Providers.Curated.Enabled {
		curated, err = provider.NewCurated(provider.CuratedConfig{
			DSN:                cfg.Providers.Curated.DSN,
			MaxConnections:     cfg.Providers.Curated.MaxConnections,
			MaxIdleConnections: cfg.Providers.Curated.MaxIdleConnections,
		}, log)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to curated places database")
		}
		defer curated.Close()
		adapters = append(adapters, curated)
		log.Info("curated places provider enabled")
	}
	if cfg.Providers.GooglePlaces.Enabled {
		adapters = append(adapters, provider.NewGooglePlaces(provider.GooglePlacesConfig{
			APIKey:         cfg.Providers.GooglePlaces.APIKey,
			BaseURL:        cfg.Providers.GooglePlaces.BaseURL,
			Timeout:        cfg.Providers.GooglePlaces.Timeout,
			RequestsPerSec: cfg.Providers.GooglePlaces.RequestsPerSec,
		}, log))
		log.Info("google places provider enabled")
	}
	if cfg.Providers.OpenTripMap.Enabled {
		adapters = append(adapters, provider.NewOpenTripMap(provider.OpenTripMapConfig{
			APIKey:         cfg.Providers.OpenTripMap.APIKey,
			BaseURL:        cfg.Providers.OpenTripMap.BaseURL,
			Timeout:        cfg.Providers.OpenTripMap.Timeout,
			RequestsPerSec: cfg.Providers.OpenTripMap.RequestsPerSec,
		}, log))
		log.Info("opentripmap provider enabled")
	}
	if cfg.Providers.Mapbox.Enabled {
		adapters = append(adapters, provider.NewMapbox(provider.MapboxConfig{
			AccessToken:    cfg.Providers.Mapbox.AccessToken,
			BaseURL:        cfg.Providers.Mapbox.BaseURL,
			Timeout:        cfg.Providers.Mapbox.Timeout,
			RequestsPerSec: cfg.Providers.Mapbox.RequestsPerSec,
		}, log))
		log.Info("mapbox provider enabled")
	}
	if len(adapters) == 0 {
		log.Warn("no providers configured, every search will come back empty")
	}

	classifier := intent.NewClassifier(cfg.Intent.DefaultRegion)
	aggregator := service.NewAggregator(classifier, adapters, service.AggregatorConfig{
		DefaultRadiusM: cfg.Search.DefaultRadiusM,
		FetchLimit:     cfg.Search.DefaultLimit,
		MaxLimit:       cfg.Search.MaxLimit,
		AdapterTimeout: cfg.Search.AdapterTimeout,
	}, log)

	searchHandler := handler.NewSearchHandler(aggregator, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.RequestID())
	router.Use(handler.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = strings.Split(cfg.Server.AllowedMethods, ",")
	corsConfig.AllowHeaders = strings.Split(cfg.Server.AllowedHeaders, ",")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "toura-search-engine",
			"version": Version,
		})
	})
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/search", searchHandler.Search)
		apiV1.GET("/places/nearby", searchHandler.Nearby)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("server stopped")
}
