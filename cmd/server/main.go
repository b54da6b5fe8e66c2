package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"examportal/config"
	"examportal/internal/repository"
	"examportal/internal/service"
	"examportal/internal/store"
	"examportal/internal/transport/rest"
	"examportal/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.Load()

	log.SetFormatter(&log.JSONFormatter{})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	ctx := context.Background()

	// MongoDB connection (export archive)
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.WithError(err).Fatal("failed to ping MongoDB")
	}
	log.Info("connected to MongoDB")

	db := mongoClient.Database("examportal")

	// Redis connection (primary store)
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.WithError(err).Fatal("failed to ping Redis")
	}
	log.Info("connected to Redis")

	kv := store.NewRedisKV(rdb)

	// WebSocket hub
	wsHub := ws.NewHub()
	log.Info("websocket hub started")

	// Repositories
	testRepo := repository.NewTestRepo(kv)
	submissionRepo := repository.NewSubmissionRepo(kv)
	outcomeRepo := repository.NewOutcomeRepo(kv)
	archiveRepo := repository.NewArchiveRepo(db)

	// Services
	authSvc := service.NewAuthService()
	evaluator := service.NewEvalService()
	testSvc := service.NewTestService(testRepo)
	leaderboardSvc := service.NewLeaderboardService(submissionRepo)
	proctorSvc := service.NewProctorService(submissionRepo)
	outcomeSvc := service.NewOutcomeService(testRepo, submissionRepo, outcomeRepo)
	exportSvc := service.NewExportService(testRepo, submissionRepo, archiveRepo, leaderboardSvc, proctorSvc, outcomeSvc)
	attemptSvc := service.NewAttemptService(testRepo, submissionRepo, evaluator)

	// wsHub implements service.Alerter
	attemptSvc.SetAlerter(wsHub)

	container := &rest.Container{
		AuthService:        authSvc,
		TestService:        testSvc,
		AttemptService:     attemptSvc,
		LeaderboardService: leaderboardSvc,
		ProctorService:     proctorSvc,
		OutcomeService:     outcomeSvc,
		ExportService:      exportSvc,
		SubmissionRepo:     submissionRepo,
		OutcomeRepo:        outcomeRepo,
		WSHub:              wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen and serve")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}
