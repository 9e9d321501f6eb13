package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
	"webook-smoke/internal/configs"
	"webook-smoke/internal/database"
	"webook-smoke/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	reuseport "github.com/kavu/go_reuseport"
	zlog "github.com/rs/zerolog/log"
)

var Server = &server{}

type server struct {
	server_instance *http.Server
	router          *gin.Engine
	listener        net.Listener
	cancel          context.CancelFunc

	cfg      *configs.ServerConfig
	accounts *database.Accounts
	sessions *sessionStore
	tokens   *tokenIssuer
	limiter  *ipRateLimiter
	metrics  *requestMetrics
}

func (s *server) Init(cfg *configs.ServerConfig, accounts *database.Accounts) {
	s.cfg = cfg
	s.accounts = accounts
	s.sessions = newSessionStore(cfg.SessionCacheSize, cfg.SessionTTL)
	s.tokens = newTokenIssuer(cfg.TokenKey, cfg.TokenTTL, cfg.RefreshTokenTTL)
	s.limiter = newIPRateLimiter(&cfg.RateLimit)
	s.metrics = newRequestMetrics()

	if cfg.DeployProduction {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s.router = gin.New()

	s.router.Use(logger.GinLogger()) // zerolog instead of the gin default
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.router.Use(s.limiter.middleware())
	if cfg.MetricsEnabled {
		s.router.Use(s.metrics.middleware())
	}

	s.initMainRoutes()

	s.server_instance = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.AcceptTimeout,
		WriteTimeout: cfg.ResponseTimeout,
	}
}

// Handler exposes the router for in-process use, without a listener.
func (s *server) Handler() http.Handler {
	return s.router
}

// Start returns once the listener is bound.
func (s *server) Start() {
	zlog.Info().Msg("starting server")

	ln, err := reuseport.Listen("tcp", s.server_instance.Addr)
	if err != nil {
		zlog.Error().Err(err).Msg("Failed to create listener")
		panic(err)
	}
	s.listener = ln

	zlog.Info().
		Str("addr", ln.Addr().String()).
		Msg("Server listens")

	var ctx context.Context
	ctx, s.cancel = context.WithCancel(context.Background())
	go s.limiter.cleanup(ctx)

	go func() {
		if err := s.server_instance.Serve(ln); err != nil && err != http.ErrServerClosed {
			zlog.Error().Err(err).Msg("failure while server working")
			panic(err)
		}
	}()
}

// Addr is the bound address, valid after Start.
func (s *server) Addr() string {
	if s.listener == nil {
		return s.server_instance.Addr
	}
	return s.listener.Addr().String()
}

func (s *server) Stop() {
	zlog.Info().Msg("stopping server with timeout 5 seconds")
	if s.cancel != nil {
		s.cancel()
	}

	timeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server_instance.Shutdown(timeout); err != nil {
		zlog.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return strings.HasPrefix(origin, "http://localhost") ||
				strings.HasPrefix(origin, "http://127.0.0.1")
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{tokenHeader, refreshTokenHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func (s *server) initMainRoutes() {
	api := s.router.Group("api")

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, "pong")
	})

	if s.cfg.MetricsEnabled {
		s.router.GET("/metrics", s.metrics.handler())
	}

	s.initUsersApi()

	s.initNoRoute()
}
