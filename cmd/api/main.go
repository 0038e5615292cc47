package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"provider-match-api/docs"
	"provider-match-api/internal/cache"
	"provider-match-api/internal/config"
	"provider-match-api/internal/handler"
	"provider-match-api/internal/location"
	"provider-match-api/internal/observability"
	"provider-match-api/internal/repository"
	"provider-match-api/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	observability.InitLogger(config.ServiceName, config.Environment, config.LogLevel)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database connection
	conn, err := pgxpool.New(ctx, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot prepare schema")
	}

	var geocoder location.Geocoder
	if config.GeocoderEnabled {
		geocoder = repo
		if config.RedisAddress != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     config.RedisAddress,
				Password: config.RedisPassword,
				DB:       config.RedisDB,
			})
			defer rdb.Close()

			redisCache := cache.NewRedisCache(rdb, config.ServiceName+":")
			if err := redisCache.Ping(ctx); err != nil {
				log.Warn().Err(err).Msg("geocode cache unreachable, continuing without it")
			} else {
				geocoder = location.NewCachedGeocoder(repo, redisCache, config.GeocodeCacheTTL, metrics)
			}
		}
	}

	matchingService := service.NewMatchingService(repo, repo, geocoder, nil, metrics, service.MatchingOptions{
		TieBandKm:       config.TieBandKm,
		RatingBatchSize: config.RatingBatchSize,
		LocationTimeout: config.LocationTimeout,
		LocationMaxAge:  config.LocationMaxAge,
	})
	providerHandler := handler.NewProviderHandler(matchingService)

	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger())

	corsConfig := cors.DefaultConfig()
	origins := config.AllowedOrigins()
	if slices.Contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, handler.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{handler.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		if err := repo.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs.SwaggerInfo.BasePath = "/api/v1"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	providerHandler.RegisterRoutes(r.Group("/api/v1"))

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: r,
	}

	go func() {
		log.Info().Str("address", config.ServerAddress).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
