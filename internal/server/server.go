// Package server exposes the order service over HTTP. Every request and
// response body is a GalacticBuf message (application/x-galacticbuf),
// optionally wrapped in a zstd, s2 or lz4 content coding.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/galacticbuf/encoding"
	"github.com/arloliu/galacticbuf/internal/auth"
	"github.com/arloliu/galacticbuf/internal/config"
	"github.com/arloliu/galacticbuf/internal/observability"
	"github.com/arloliu/galacticbuf/internal/options"
	"github.com/arloliu/galacticbuf/internal/orders"
)

const (
	ContentType     = "application/x-galacticbuf"
	shutdownTimeout = 5 * time.Second
)

// Server owns the stores and the gin router of one service instance.
type Server struct {
	cfg     config.ServerConfig
	logger  zerolog.Logger
	router  *gin.Engine
	decoder *encoding.Decoder

	users      *auth.UserStore
	tokens     auth.Validator
	issuer     *auth.TokenIssuer
	book       *orders.Book
	bcryptCost int
}

// Option configures a Server.
type Option = options.Option[*Server]

// WithBook replaces the empty order book created by New.
func WithBook(book *orders.Book) Option {
	return options.NoError(func(s *Server) {
		s.book = book
	})
}

// WithUserStore replaces the empty user store created by New.
func WithUserStore(users *auth.UserStore) Option {
	return options.NoError(func(s *Server) {
		s.users = users
	})
}

// WithBcryptCost sets the cost of the default user store.
func WithBcryptCost(cost int) Option {
	return options.NoError(func(s *Server) {
		s.bcryptCost = cost
	})
}

// WithValidator overrides bearer token validation. Issued login tokens are
// still produced by the configured TokenIssuer.
func WithValidator(v auth.Validator) Option {
	return options.NoError(func(s *Server) {
		s.tokens = v
	})
}

// New builds a Server from a validated config and registers its routes.
func New(cfg config.ServerConfig, logger zerolog.Logger, opts ...Option) (*Server, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, logger: logger}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	decoder, err := encoding.NewDecoder(encoding.WithMaxDepth(cfg.MaxDepth))
	if err != nil {
		return nil, err
	}
	s.decoder = decoder

	issuer, err := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	s.issuer = issuer
	if s.tokens == nil {
		s.tokens = issuer
	}
	if s.users == nil {
		s.users = auth.NewUserStore(s.bcryptCost)
	}
	if s.book == nil {
		s.book = orders.NewBook()
	}

	s.router = s.newRouter()
	s.registerRoutes()

	return s, nil
}

// Handler returns the HTTP handler of the service.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, child := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-child.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	err := group.Wait()
	if err != nil {
		s.logger.Error().Err(err).Msg("http server stopped with error")
		return err
	}
	s.logger.Info().Msg("http server stopped")

	return nil
}

func (s *Server) newRouter() *gin.Engine {
	observability.RegisterMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(s.logger))
	r.Use(observability.RequestMetricsMiddleware(s.cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  corsOrigins(s.cfg.CorsOrigins),
		AllowMethods:  []string{"GET", "POST", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Encoding", "Accept-Encoding", "Authorization", "If-None-Match"},
		ExposeHeaders: []string{"ETag", "Content-Encoding"},
		MaxAge:        12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return r
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/register", s.handleRegister)
	s.router.POST("/login", s.handleLogin)

	s.router.GET("/orders", s.handleListOrders)
	authed := s.router.Group("/orders", s.requireBearer)
	authed.POST("", s.handleCreateOrder)
	authed.DELETE("/:id", s.handleDeleteOrder)
}

// corsOrigins falls back to the local dev origin when none are configured.
func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}

	return origins
}
