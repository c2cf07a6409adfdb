// File: librarium/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"librarium/config"
	"librarium/cron"
	"librarium/database"
	borrowRepo "librarium/database/repository/borrow"
	couponRepo "librarium/database/repository/coupon"
	ledgerRepo "librarium/database/repository/ledger"
	"librarium/database/repository/memory"
	settingsRepo "librarium/database/repository/settings"
	spinRepo "librarium/database/repository/spin"
	wheelRepo "librarium/database/repository/wheel"
	"librarium/handlers"
	"librarium/middleware"
	"librarium/routes"
	"librarium/services/coupon"
	"librarium/services/fine"
	"librarium/services/ledger"
	"librarium/services/notification"
	"librarium/services/settings"
	"librarium/services/spin"
	"librarium/services/wheel"
	"librarium/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// repositories is the storage surface every service is built on.
type repositories struct {
	borrows  borrowRepo.BorrowRepository
	coupons  couponRepo.CouponRepository
	wheels   wheelRepo.WheelRepository
	spinData spinRepo.SpinDataRepository
	spinLogs spinRepo.SpinLogRepository
	ledger   ledgerRepo.TransactionRepository
	settings settingsRepo.SettingsRepository
	tx       database.Transactor
}

func openStorage(logger *zap.Logger) repositories {
	if config.AppConfig.StorageDriver == "memory" {
		logger.Warn("main: using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			borrows:  store.Borrows(),
			coupons:  store.Coupons(),
			wheels:   store.Wheels(),
			spinData: store.SpinData(),
			spinLogs: store.SpinLogs(),
			ledger:   store.Transactions(),
			settings: store.Settings(),
			tx:       store,
		}
	}

	database.InitDB()
	return repositories{
		borrows:  borrowRepo.NewMongoBorrowRepo(),
		coupons:  couponRepo.NewMongoCouponRepo(),
		wheels:   wheelRepo.NewMongoWheelRepo(),
		spinData: spinRepo.NewMongoSpinDataRepo(),
		spinLogs: spinRepo.NewMongoSpinLogRepo(),
		ledger:   ledgerRepo.NewMongoTransactionRepo(),
		settings: settingsRepo.NewMongoSettingsRepo(),
		tx:       database.NewMongoTransactor(),
	}
}

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	repos := openStorage(logger)
	useRedis := cfg.StorageDriver != "memory"

	utils.FirebaseInit()
	var sender notification.Sender
	if utils.FCMClient != nil {
		sender = utils.FCMClient
	}
	notificationService := notification.NewDefaultNotificationService(sender)

	// services.
	settingsService := settings.NewDefaultSettingsService(repos.settings, cfg.DefaultFinePerDay, cfg.DefaultWheelID)
	couponService := coupon.NewDefaultCouponService(repos.coupons, cfg.CouponExpiryDays)

	var wheelCache wheel.WheelCache
	var locker spin.Locker
	if useRedis {
		utils.InitCache()
		wheelCache = wheel.NewRedisWheelCache(utils.GetCacheClient(), cfg.WheelCacheTTL)
		locker = spin.NewRedisLocker(utils.GetCacheClient(), 10*time.Second)
	}
	wheelService := wheel.NewDefaultWheelService(repos.wheels, wheelCache, settingsService, cfg.DefaultWheelID)

	directRecorder := ledger.NewDirectRecorder(repos.ledger)
	var recorder ledger.Recorder = directRecorder
	var ledgerWorker *asynq.Server
	var queueClient *asynq.Client
	if useRedis && cfg.LedgerQueueEnabled {
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		recorder = ledger.NewAsynqRecorder(queueClient)
		ledgerWorker = cron.InitLedgerWorker(directRecorder)
	}

	fineService := fine.NewDefaultFineService(repos.borrows, couponService, repos.tx, recorder, notificationService)

	spinService := spin.NewDefaultSpinService(
		wheelService,
		repos.spinData,
		repos.spinLogs,
		repos.borrows,
		couponService,
		repos.tx,
		cfg.SpinCategories,
		config.SpinLocation(),
	)
	spinService.Locker = locker
	spinService.Notifier = notificationService

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		FineHandler:     handlers.NewFineHandler(fineService, settingsService),
		CouponHandler:   handlers.NewCouponHandler(couponService),
		SpinHandler:     handlers.NewSpinHandler(spinService),
		WheelHandler:    handlers.NewWheelHandler(wheelService),
		SettingsHandler: handlers.NewSettingsHandler(settingsService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
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
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if ledgerWorker != nil {
		ledgerWorker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Warn("main: closing ledger queue client", zap.Error(err))
		}
	}
	if database.MongoClient != nil {
		if err := database.MongoClient.Disconnect(ctx); err != nil {
			logger.Warn("main: closing mongo client", zap.Error(err))
		}
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
