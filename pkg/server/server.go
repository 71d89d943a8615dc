// Package server exposes the stories of one ingestion run over a read-only
// JSON API.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/naveego/storyreader/pkg/ingest"
	"github.com/sirupsen/logrus"
)

// Loader runs an ingestion. It is called again when a refresh is requested.
type Loader func(ctx context.Context) (ingest.Result, error)

type Server struct {
	load Loader
	log  *logrus.Entry

	mu       sync.RWMutex
	result   ingest.Result
	loadedAt time.Time
}

// New creates a server over an initial result. load may be nil, in which
// case the data can't be refreshed.
func New(initial ingest.Result, load Loader, log *logrus.Entry) *Server {
	return &Server{
		load:     load,
		log:      log.WithField("cmp", "server"),
		result:   initial,
		loadedAt: time.Now(),
	}
}

func (s *Server) snapshot() (ingest.Result, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.loadedAt
}

// Refresh replaces the served stories with a new ingestion run.
func (s *Server) Refresh(ctx context.Context) (ingest.Result, error) {
	if s.load == nil {
		return ingest.Result{}, errRefreshUnsupported
	}
	result, err := s.load(ctx)
	if err != nil {
		return ingest.Result{}, err
	}
	s.mu.Lock()
	s.result = result
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return result, nil
}

// NewRouter constructs a Gin engine with the API routes registered.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/stories", s.handleListStories)
	api.GET("/stories/:id", s.handleGetStory)
	api.GET("/epics", s.handleListEpics)
	api.GET("/report", s.handleReport)
	api.POST("/refresh", s.handleRefresh)
	return r
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.NewRouter(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Listening on %s.", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("Shutting down.")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", c.Writer.Status()).
			WithField("elapsed", time.Since(start)).
			Debug("Handled request.")
	}
}
