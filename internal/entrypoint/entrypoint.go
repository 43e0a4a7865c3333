package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/clippings/internal/config"
	"github.com/mrlokans/clippings/internal/database"
	"github.com/mrlokans/clippings/internal/exporters"
	http_controllers "github.com/mrlokans/clippings/internal/http"
	"github.com/mrlokans/clippings/internal/kindle"
	"github.com/mrlokans/clippings/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := cfg.Global.ShutdownTimeout()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill sends SIGTERM; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Clippings v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	parser := kindle.NewParser()

	syncScheduler := scheduler.NewClippingsSyncScheduler(db, parser, cfg.ClippingsSync)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := syncScheduler.Start(schedulerCtx); err != nil {
		log.Printf("WARNING: Failed to start clippings sync scheduler: %v", err)
	} else if syncScheduler.IsRunning() {
		// Pick up the current file right away instead of waiting for the first tick.
		syncScheduler.RunNow()
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Parser:        parser,
		Store:         db,
		Health:        db,
		Sync:          syncScheduler,
		Template:      exporters.NewTemplate(cfg.Export.Template),
		Delimiter:     cfg.Export.Delimiter,
		MaxUploadSize: cfg.HTTP.MaxUploadSize,
		Version:       version,
	})

	onShutdown := func(ctx context.Context) {
		schedulerCancel()
		syncScheduler.Stop()
	}

	Serve(router, cfg, onShutdown)
}
