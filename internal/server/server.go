package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pfdash/finance-dashboard/internal/calculation"
	"github.com/pfdash/finance-dashboard/internal/config"
	"github.com/pfdash/finance-dashboard/internal/store"
)

// ShutdownTimeout is how long outstanding requests get to complete on shutdown.
const ShutdownTimeout = 5 * time.Second

// Server exposes the projections and the stored profiles over HTTP
type Server struct {
	engine *calculation.CalculationEngine
	store  store.ProfileStore
	parser *config.InputParser
	logger *log.Logger
	router *gin.Engine
}

// New wires the handlers around the engine and the profile store.
func New(engine *calculation.CalculationEngine, profiles store.ProfileStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	s := &Server{
		engine: engine,
		store:  profiles,
		parser: config.NewInputParser(),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the gin router.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(s.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/projections/savings", s.projectSavings)
	router.POST("/projections/pea", s.projectPEA)
	router.POST("/dashboard", s.dashboard)

	router.POST("/profiles", s.createProfile)
	router.GET("/profiles/:id", s.getProfile)
	router.PUT("/profiles/:id", s.replaceProfile)
	router.PATCH("/profiles/:id", s.updateProfile)
	router.DELETE("/profiles/:id", s.deleteProfile)
	router.GET("/profiles/:id/dashboard", s.profileDashboard)

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Infof("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
