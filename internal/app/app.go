// Package app wires the invite form server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_invite/internal/config"
	"github.com/festy23/team_invite/internal/database"
	"github.com/festy23/team_invite/internal/health"
	"github.com/festy23/team_invite/internal/invite/handler"
	"github.com/festy23/team_invite/internal/invite/reducer"
	"github.com/festy23/team_invite/internal/invite/router"
	"github.com/festy23/team_invite/internal/middleware"
	"github.com/festy23/team_invite/internal/session/repository"
	"github.com/festy23/team_invite/internal/session/service"
)

const apiPrefix = "/api/"

// App owns the database, the session service and the HTTP server.
type App struct {
	cfg      config.Config
	db       *gorm.DB
	sessions service.Service
	server   *http.Server
	logger   *zap.SugaredLogger
}

// NewReducer builds the form reducer for the given switches.
func NewReducer(cfg config.InviteConfig) *reducer.Reducer {
	var opts []reducer.Option
	if cfg.ValidateEmailFormat {
		opts = append(opts, reducer.WithFormatCheck())
	}
	return reducer.New(opts...)
}

// New opens the session store and builds the HTTP server.
func New(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*App, error) {
	gin.SetMode(cfg.GinMode)

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	rdc := NewReducer(cfg.Invite)
	repo := repository.New(db, logger)
	sessions := service.New(repo, db, rdc, cfg.Session.TTL, logger)

	engine, err := NewEngine(db, sessions, handler.CookieConfig{
		MaxAge: cfg.Session.TTL,
		Secure: cfg.Session.CookieSecure,
	}, logger, handler.WithMessages(rdc.Messages()))
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	return &App{
		cfg:      cfg,
		db:       db,
		sessions: sessions,
		logger:   logger,
		server: &http.Server{
			Addr:         cfg.Server.GetAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}, nil
}

// NewEngine builds the gin engine with middleware, invite routes and health.
func NewEngine(
	db *gorm.DB,
	sessions service.Service,
	cookie handler.CookieConfig,
	logger *zap.SugaredLogger,
	opts ...handler.Option,
) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.Recovery(logger, apiPrefix))
	r.Use(middleware.Logger(logger, handler.CookieName))

	if err := router.RegisterRoutes(r, sessions, cookie, logger, opts...); err != nil {
		return nil, err
	}
	r.GET("/health", health.New(db, logger).Check)

	return r, nil
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP and sweeps expired sessions until ctx ends.
func (a *App) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if a.cfg.Session.TTL > 0 {
		go a.sessions.RunSweeper(sweepCtx, a.cfg.Session.SweepInterval)
	}

	serveErr := make(chan error, 1)
	a.logger.Infow("server listening", "addr", a.server.Addr, "store", a.cfg.Database.Driver)
	go func() {
		serveErr <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		a.logger.Infow("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the database connection.
func (a *App) Close() error {
	return database.Close(a.db)
}
