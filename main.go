package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentorhub/config"
	"mentorhub/cron"
	"mentorhub/database"
	activityRepo "mentorhub/database/repository/activity"
	"mentorhub/database/sessionstore"
	"mentorhub/handlers"
	"mentorhub/models"
	"mentorhub/routes"
	"mentorhub/services/activity"
	"mentorhub/services/availability"
	"mentorhub/services/reference"
	"mentorhub/services/schedulerequest"
	"mentorhub/services/week"
	"mentorhub/upstream"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.AppConfig.JWTSecret == "" {
		logger.Fatal("main: JWT_SECRET is required")
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cacheClient := utils.GetCacheClient()
	sessionClient := utils.GetSessionClient()

	// Activity feed: MongoDB when configured, in-process otherwise.
	var (
		feedRepo    activityRepo.ActivityRepository
		mongoClient *mongo.Client
	)
	if config.AppConfig.DatabaseURL != "" {
		database.InitDB()
		mongoClient = database.MongoClient
		if err := activityRepo.EnsureIndexes(database.Database()); err != nil {
			logger.Warn("main: failed to ensure activity indexes", zap.Error(err))
		}
		feedRepo = activityRepo.NewMongoActivityRepo(database.Database())
	} else {
		logger.Warn("main: DATABASE_URL not set, activity feed is kept in memory")
		feedRepo = activityRepo.NewMemoryActivityRepo()
	}
	recorder := activity.NewRecorder(feedRepo, logger)

	api := upstream.NewClient(upstream.Options{
		BaseURL:      config.AppConfig.UpstreamBaseURL,
		Timeout:      config.UpstreamTimeout(),
		ServiceToken: config.AppConfig.UpstreamServiceToken,
		Logger:       logger.Named("upstream"),
	})

	loc := config.Location()
	weeks := week.NewCalculator(loc)
	ttl := config.SessionTTL()

	// services.
	availabilityService := availability.NewDefaultAvailabilityService(
		api,
		sessionstore.New[models.GridSession](sessionClient, utils.GridSessionPrefix, ttl),
		recorder,
	)
	requestService := schedulerequest.NewDefaultScheduleRequestService(
		api,
		sessionstore.New[models.RequestSnapshot](sessionClient, utils.RequestListPrefix, ttl),
		sessionstore.New[models.RequestDraft](sessionClient, utils.DraftPrefix, ttl),
		recorder,
		loc,
	)
	referenceService := reference.NewDefaultReferenceService(
		api,
		reference.NewRedisReferenceCache(cacheClient, config.ReferenceCacheTTL()),
		logger.Named("reference"),
	)

	stopWorker := cron.InitReferenceWorker(referenceService)
	defer stopWorker()

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, []*redis.Client{cacheClient, sessionClient}, mongoClient, api.BaseURL())

	handlerBundle := &handlers.HandlerBundle{
		JWTSecret:         []byte(config.AppConfig.JWTSecret),
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,
		TrustedProxies:    config.AppConfig.TrustedProxies,
		Availability:      handlers.NewAvailabilityHandler(availabilityService, weeks),
		ScheduleRequest:   handlers.NewScheduleRequestHandler(requestService),
		Reference:         handlers.NewReferenceHandler(referenceService),
		Week:              handlers.NewWeekHandler(weeks),
		Admin:             handlers.NewAdminHandler(recorder),
	}

	router := gin.New()
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(ctx)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
