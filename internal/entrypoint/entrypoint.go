package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vrajpatel/book-keeper/internal/config"
	"github.com/vrajpatel/book-keeper/internal/database"
	"github.com/vrajpatel/book-keeper/internal/database/books"
	"github.com/vrajpatel/book-keeper/internal/database/settings"
	http_controllers "github.com/vrajpatel/book-keeper/internal/http"
	"github.com/vrajpatel/book-keeper/internal/prefs"
	"github.com/vrajpatel/book-keeper/internal/remote"
	"github.com/vrajpatel/book-keeper/internal/scheduler"
	"github.com/vrajpatel/book-keeper/internal/shelves"
	"github.com/vrajpatel/book-keeper/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 1 second.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscanll.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall. SIGKILL but can"t be catch, so don't need add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the push queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Keeper v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	booksRepo := books.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(db.DB)
	viewPrefs := prefs.New(settingsRepo, prefs.GroupShelves)
	userPrefs := prefs.New(settingsRepo, prefs.GroupUser)
	registry := shelves.NewRegistry(viewPrefs)

	var remoteClient *remote.Client
	if cfg.Remote.BaseURL != "" {
		remoteClient = remote.NewClient(cfg.Remote.BaseURL)
	} else {
		log.Printf("WARNING: Remote catalog URL is not set. Login and sync will be disabled. Set 'REMOTE_URL' environment variable to enable.")
	}

	// Initialize the push queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled && remoteClient != nil {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			MaxRetries:      cfg.Tasks.MaxRetries,
			RetryDelay:      cfg.Tasks.RetryDelay,
			TaskTimeout:     cfg.Tasks.TaskTimeout,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize push queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewPushBookQueue(booksRepo, remoteClient),
			tasks.NewPushShelfQueue(remoteClient),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Start the full-catalog sync scheduler (no-op unless enabled)
	syncScheduler := scheduler.NewCatalogSyncScheduler(booksRepo, registry, userPrefs, remoteClient, cfg.Remote)
	if err := syncScheduler.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start catalog sync scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:     db,
		BooksRepo:    booksRepo,
		Registry:     registry,
		ViewPrefs:    viewPrefs,
		UserPrefs:    userPrefs,
		RemoteClient: remoteClient,
		TaskClient:   taskClient,
		Version:      version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		syncScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
