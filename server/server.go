// Package server exposes the registry and the search engines over HTTP and
// WebSocket.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Nav/finder"
	"Nav/registry"
)

const (
	maxBodySize   = 4 << 20
	maxGridCells  = 1 << 24
	acquireWait   = 5 * time.Second
	shutdownGrace = 10 * time.Second
)

type Options struct {
	Strategy    finder.Strategy
	CellSize    float64
	CORSOrigins []string
	// MapsDir confines the file source of POST /maps. Empty disables it.
	MapsDir     string
}

type Server struct {
	log      *zap.Logger
	reg      *registry.Registry
	pool     *finder.Pool
	opts     Options
	engine   *gin.Engine
	upgrader websocket.Upgrader
}

func New(reg *registry.Registry, pool *finder.Pool, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Strategy == "" {
		opts.Strategy = finder.AStar
	}
	s := &Server{
		log:  logger.Named("server"),
		reg:  reg,
		pool: pool,
		opts: opts,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.engine = s.router()
	return s
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil) //nolint:errcheck
	r.Use(requestID(s.log))
	r.Use(ginLogger(s.log))
	r.Use(gin.Recovery())
	r.Use(bodyLimit(maxBodySize))
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: s.opts.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       time.Hour,
		}))
	}
	r.Use(prometheusMiddleware())

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", s.serveWs)

	maps := r.Group("/maps")
	maps.GET("", s.listMaps)
	maps.POST("/:name", s.createMap)
	maps.DELETE("/:name", s.deleteMap)
	maps.PUT("/:name/cells", s.setCell)
	maps.GET("/:name/path", s.getPath)
	maps.GET("/:name/dump", s.dumpMap)
	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.opts.CORSOrigins) == 0 {
		return true
	}
	for _, o := range s.opts.CORSOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func (s *Server) health(c *gin.Context) {
	ok(c, gin.H{"status": "ok", "grids": s.reg.Len()})
}
