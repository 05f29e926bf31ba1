package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/velikanov/thumbgrid/internal/annotation"
	"github.com/velikanov/thumbgrid/internal/config"
	"github.com/velikanov/thumbgrid/internal/domain"
	"github.com/velikanov/thumbgrid/internal/gallery"
	httpHandler "github.com/velikanov/thumbgrid/internal/handler/http"
	"github.com/velikanov/thumbgrid/internal/handler/middleware"
	"github.com/velikanov/thumbgrid/internal/pool"
	"github.com/velikanov/thumbgrid/internal/producer"
)

func main() {
	zlog.Init()
	zlog.Logger.Info().Msg("Starting Thumbgrid Gallery Server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to load config")
	}

	paths, err := gallery.ListImages(cfg.Gallery.ImagesDir, cfg.Gallery.SupportedFormats)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Str("dir", cfg.Gallery.ImagesDir).Msg("failed to list images")
	}
	if len(paths) == 0 {
		zlog.Logger.Warn().Str("dir", cfg.Gallery.ImagesDir).Msg("no images found, serving empty gallery")
	}

	// Pipeline: producer (pure), pool (bounded workers), gallery core and
	// its owning loop goroutine.
	prod := producer.New(cfg.Gallery.DrawLabels)
	workerPool := pool.New(cfg.Gallery.Workers, cfg.Gallery.CacheCapacity)
	defer workerPool.Close()

	g := gallery.New(gallery.Options{
		IconSize:      cfg.Gallery.IconSize,
		MinIconSize:   cfg.Gallery.MinIconSize,
		MaxIconSize:   cfg.Gallery.MaxIconSize,
		CacheCapacity: cfg.Gallery.CacheCapacity,
		BufferPx:      cfg.Gallery.ViewportBufferPx,
		BorderWidth:   cfg.Gallery.BorderWidth,
		AltDir:        cfg.Annotations.Dir,
	}, workerPool, prod.Produce)

	loop := gallery.NewLoop(g, workerPool, time.Duration(cfg.Gallery.DeferDelayMs)*time.Millisecond)
	loopCtx, cancelLoop := context.WithCancel(context.Background())
	defer cancelLoop()
	go loop.Run(loopCtx)

	if err := loop.SetImages(paths); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to populate gallery")
	}

	// Seed review statuses from the on-disk annotations; clients can
	// override them through the API afterwards.
	statuses := make(map[string]domain.AnnotationStatus, len(paths))
	for _, path := range paths {
		statuses[path] = annotation.Status(path, cfg.Annotations.Dir)
	}
	if err := loop.SetStatuses(statuses); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to seed statuses")
	}
	zlog.Logger.Info().Int("images", len(paths)).Msg("statuses seeded from annotations")

	engine := ginext.New("gallery")
	engine.Use(
		middleware.ErrorHandlerMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.CORSMiddleware(),
	)

	engine.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	galleryHandler := httpHandler.NewGalleryHandler(loop)
	galleryHandler.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	go func() {
		zlog.Logger.Info().Str("addr", cfg.Server.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Logger.Fatal().Err(err).Msg("Failed to start gallery server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	} else {
		zlog.Logger.Info().Msg("HTTP server stopped gracefully")
	}

	cancelLoop()
	workerPool.Close()

	zlog.Logger.Info().Msg("Gallery shutdown complete")
}
