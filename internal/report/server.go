// Package report serves the generated build and coverage reports over HTTP so
// they can be reviewed without leaving the terminal workflow.
package report

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	healthEndpointPathConstant        = "/healthz"
	reportsRoutePrefixConstant        = "/reports"
	coverageEndpointPathConstant      = "/coverage"
	healthStatusFieldNameConstant     = "status"
	healthStatusValueConstant         = "ok"
	serverAddressMissingMessage       = "server listen address is required"
	reportsDirectoryMissingMessage    = "reports directory is required"
	shutdownGracePeriodConstant       = 5 * time.Second
	serverStartedMessageConstant      = "report server started"
	serverStoppedMessageConstant      = "report server stopped"
	listenAddressLogFieldNameConstant = "address"
)

var (
	// ErrListenAddressMissing indicates the server was configured without a listen address.
	ErrListenAddressMissing = errors.New(serverAddressMissingMessage)
	// ErrReportsDirectoryMissing indicates the server was configured without a reports directory.
	ErrReportsDirectoryMissing = errors.New(reportsDirectoryMissingMessage)
)

// ServerConfiguration describes the report server inputs.
type ServerConfiguration struct {
	ListenAddress    string
	ReportsDirectory string
	CoverageFile     string
}

// Server exposes the reports directory and coverage file over HTTP.
type Server struct {
	configuration ServerConfiguration
	logger        *zap.Logger
	router        *gin.Engine
}

// NewServer validates the configuration and assembles the routing engine.
func NewServer(logger *zap.Logger, configuration ServerConfiguration) (*Server, error) {
	if len(strings.TrimSpace(configuration.ListenAddress)) == 0 {
		return nil, ErrListenAddressMissing
	}
	if len(strings.TrimSpace(configuration.ReportsDirectory)) == 0 {
		return nil, ErrReportsDirectoryMissing
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET(healthEndpointPathConstant, func(requestContext *gin.Context) {
		requestContext.JSON(http.StatusOK, gin.H{healthStatusFieldNameConstant: healthStatusValueConstant})
	})
	router.Static(reportsRoutePrefixConstant, configuration.ReportsDirectory)
	if len(strings.TrimSpace(configuration.CoverageFile)) > 0 {
		coveragePath := filepath.Clean(configuration.CoverageFile)
		router.GET(coverageEndpointPathConstant, func(requestContext *gin.Context) {
			requestContext.File(coveragePath)
		})
	}

	return &Server{configuration: configuration, logger: logger, router: router}, nil
}

// Handler exposes the routing engine for embedding and tests.
func (server *Server) Handler() http.Handler {
	return server.router
}

// Serve runs the HTTP server until the context is cancelled.
func (server *Server) Serve(executionContext context.Context) error {
	httpServer := &http.Server{
		Addr:    server.configuration.ListenAddress,
		Handler: server.router,
	}

	serveErrors := make(chan error, 1)
	go func() {
		serveErrors <- httpServer.ListenAndServe()
	}()
	server.logger.Info(serverStartedMessageConstant,
		zap.String(listenAddressLogFieldNameConstant, server.configuration.ListenAddress))

	select {
	case <-executionContext.Done():
		shutdownContext, cancelShutdown := context.WithTimeout(context.Background(), shutdownGracePeriodConstant)
		defer cancelShutdown()
		shutdownError := httpServer.Shutdown(shutdownContext)
		server.logger.Info(serverStoppedMessageConstant)
		if shutdownError != nil {
			return shutdownError
		}
		return nil
	case serveError := <-serveErrors:
		if errors.Is(serveError, http.ErrServerClosed) {
			return nil
		}
		return serveError
	}
}
