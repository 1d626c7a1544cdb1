package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-odds/internal/config"
	"github.com/yourusername/draw-odds/internal/database"
	"github.com/yourusername/draw-odds/internal/draw"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/repository"
	"github.com/yourusername/draw-odds/internal/snapshot"
)

// Options carries the optional collaborators main wires in. Nil fields
// disable the corresponding sink.
type Options struct {
	Repos     *repository.Repositories
	DB        *database.DB
	Writer    *snapshot.FileWriter
	Publisher *snapshot.Publisher
}

// Server assembles the estimation HTTP service: router, dataset holder,
// estimate cache, snapshot hub, and the scheduled refresher.
type Server struct {
	cfg       *config.Config
	logger    *logrus.Logger
	loader    *draw.Loader
	engine    *draw.Engine
	holder    *DatasetHolder
	cache     *EstimateCache
	hub       *snapshot.Hub
	refresher *Refresher
	opts      Options
	httpSrv   *http.Server
	hubCancel context.CancelFunc
}

// New creates a server around a loader and engine
func New(cfg *config.Config, loader *draw.Loader, engine *draw.Engine, logger *logrus.Logger, opts Options) *Server {
	if logger == nil {
		logger = logrus.New()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		loader: loader,
		engine: engine,
		holder: NewDatasetHolder(),
		cache:  NewEstimateCache(cfg.CacheTTL()),
		hub:    snapshot.NewHub(logger),
		opts:   opts,
	}
	s.refresher = NewRefresher(s.ReloadDataset, logger)
	return s
}

// ReloadDataset loads a fresh dataset and swaps it in, flushing the
// estimate cache. On failure the previous dataset stays active.
func (s *Server) ReloadDataset(ctx context.Context) error {
	ds, err := s.loader.Load(ctx, draw.RequestFromConfig(s.cfg))
	if err != nil {
		return err
	}

	s.holder.Set(ds)
	s.cache.Clear()
	return nil
}

// Router builds the gin engine with all routes attached
func (s *Server) Router() *gin.Engine {
	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	handler := NewHandler(HandlerDeps{
		Engine:    s.engine,
		Holder:    s.holder,
		Cache:     s.cache,
		Hub:       s.hub,
		Repos:     s.opts.Repos,
		DB:        s.opts.DB,
		Writer:    s.opts.Writer,
		Publisher: s.opts.Publisher,
		Reload:    s.ReloadDataset,
		Logger:    s.logger,
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/estimate", handler.Estimate)
		apiV1.GET("/estimates/recent", handler.RecentEstimates)
		apiV1.GET("/dataset", handler.GetDataset)
		apiV1.POST("/dataset/refresh", handler.RefreshDataset)
	}

	router.GET("/ws", s.hub.HandleWebSocket)
	router.GET("/health", handler.GetHealth)
	router.GET("/ready", handler.GetReady)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}

// Start loads the initial dataset, starts the hub and refresher, and serves
// HTTP until Shutdown is called
func (s *Server) Start(ctx context.Context) error {
	if err := s.ReloadDataset(ctx); err != nil {
		return fmt.Errorf("initial dataset load failed: %w", err)
	}

	hubCtx, cancel := context.WithCancel(context.Background())
	s.hubCancel = cancel
	go s.hub.Run(hubCtx)

	if schedule := s.cfg.Server.RefreshSchedule; schedule != "" {
		if err := s.refresher.Schedule(schedule); err != nil {
			return err
		}
		if err := s.refresher.Start(); err != nil {
			return err
		}
	}

	port := s.cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}

	s.logger.WithField("port", port).Info("Draw odds server started")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the refresher, the snapshot stream, and the HTTP listener
func (s *Server) Shutdown(ctx context.Context) error {
	s.refresher.Stop()
	if s.hubCancel != nil {
		s.hubCancel()
	}
	if s.opts.Publisher != nil {
		s.opts.Publisher.Close()
	}
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
