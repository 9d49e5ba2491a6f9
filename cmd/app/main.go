package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/becketto/xscheduler/config"
	"github.com/becketto/xscheduler/internal/api"
	"github.com/becketto/xscheduler/internal/cache"
	"github.com/becketto/xscheduler/internal/repository"
	"github.com/becketto/xscheduler/internal/services"
	"github.com/becketto/xscheduler/internal/worker"
	"github.com/becketto/xscheduler/internal/xapi"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// @title           Post Scheduler Service
// @version         1.0
// @description     Schedules X posts and dispatches them at their scheduled times

// @host      localhost:8080
// @BasePath  /api
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	cfg := config.LoadConfig()
	dbPool, redisClient, err := setupDependencies(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to setup dependencies: %v", err)
	}
	defer dbPool.Close()
	defer redisClient.Close()

	jobManager, server := buildApplication(dbPool, redisClient, &wg, ctx, cfg)

	startBackgroundJob(jobManager, ctx)
	startServer(server)

	waitForShutdown(server, cancel, &wg)

	log.Println("Server gracefully stopped")
}

func setupDependencies(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, *redis.Client, error) {
	dbPool, err := repository.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to establish database connection: %w", err)
	}
	log.Println("Database connection established.")

	redisClient, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to establish Redis connection: %w", err)
	}
	log.Println("Redis connection established.")

	return dbPool, redisClient, nil
}

func buildApplication(dbPool *pgxpool.Pool, redisClient *redis.Client, wg *sync.WaitGroup, appCtx context.Context, cfg *config.Config) (*worker.JobManager, *http.Server) {
	postRepository := repository.NewPostRepository(dbPool)
	credentialRepository := repository.NewCredentialRepository(dbPool)
	quotaRepository := repository.NewQuotaRepository(dbPool)
	lockRepository := repository.NewLockRepository(dbPool)
	postCache := cache.NewPostCache(redisClient)

	xClient := xapi.NewClient(cfg.XAPIBaseURL, cfg.XClientID, cfg.XClientSecret)

	credentialService := services.NewCredentialService(credentialRepository, xClient)
	postService := services.NewPostService(postRepository, quotaRepository, postCache, cfg.MonthlyPostLimit)
	dispatchService := services.NewDispatchService(
		postRepository,
		quotaRepository,
		lockRepository,
		credentialService,
		postCache,
		xClient,
		cfg.DispatchBatchLimit,
		cfg.MonthlyPostLimit,
		2*cfg.DispatchInterval,
	)

	jobManager := worker.NewJobManager(dispatchService, cfg.DispatchInterval, wg)
	apiHandler := api.NewHandler(postService, credentialService, jobManager, appCtx)

	router := api.NewRouter(apiHandler)
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	log.Println("Application components built successfully.")
	return jobManager, server
}

func startBackgroundJob(jobManager *worker.JobManager, ctx context.Context) {
	if err := jobManager.Start(ctx); err != nil {
		log.Printf("Unexpected error while starting job: %v", err)
		return
	}
	log.Println("Background dispatch job started.")
}

func startServer(server *http.Server) {
	go func() {
		log.Printf("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Unexpected error while starting server: %v", err)
		}
	}()
}

func waitForShutdown(server *http.Server, cancelApp context.CancelFunc, wg *sync.WaitGroup) {
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	<-shutdownChan

	log.Println("Shutting down gracefully...")

	// wait HTTP server 15 seconds to shut down
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Unexpected error while shutting down server: %v", err)
	}

	cancelApp()
	wg.Wait()
}
