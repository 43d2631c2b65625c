package companion

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muurk/textwatch/internal/discovery"
	"github.com/muurk/textwatch/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config holds the companion service configuration
type Config struct {
	Addr      string // Listen address, e.g. ":8080"
	Path      string // WebSocket path (default discovery.DefaultPath)
	Advertise bool   // Register over mDNS
	Instance  string // mDNS instance name
}

// Server runs the companion HTTP API and advertises it on the network
type Server struct {
	config *Config
	hub    *Hub
	server *http.Server
}

// New creates a companion server around hub
func New(config *Config, hub *Hub) *Server {
	if config.Path == "" {
		config.Path = discovery.DefaultPath
	}
	if config.Instance == "" {
		config.Instance = "textwatch-companion"
	}

	gin.SetMode(gin.ReleaseMode)
	return &Server{
		config: config,
		hub:    hub,
		server: &http.Server{
			Handler:           hub.Router(config.Path),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled or the listener fails
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port

	logging.Info("Starting textwatch companion",
		zap.String("addr", listener.Addr().String()),
		zap.String("ws_path", s.config.Path),
		zap.Bool("mdns", s.config.Advertise),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if s.config.Advertise {
		g.Go(func() error {
			mdns, err := discovery.Advertise(s.config.Instance, port, []string{"path=" + s.config.Path})
			if err != nil {
				// Faces can still connect with an explicit address
				logging.Warn("mDNS advertisement failed", zap.Error(err))
				return nil
			}
			logging.Info("Advertising companion",
				zap.String("instance", s.config.Instance),
				zap.String("service", discovery.ServiceType),
				zap.Int("port", port),
			)
			<-gctx.Done()
			mdns.Shutdown()
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down companion...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.server.Shutdown(shutdownCtx)
		s.hub.Close()
		return err
	})

	err = g.Wait()
	logging.Sync()
	return err
}
