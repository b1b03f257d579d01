package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benjisbeans/kapaiputea-app/internal/api"
	"github.com/benjisbeans/kapaiputea-app/internal/app/gamification"
	"github.com/benjisbeans/kapaiputea-app/internal/app/hustle"
	"github.com/benjisbeans/kapaiputea-app/internal/app/market"
	"github.com/benjisbeans/kapaiputea-app/internal/app/profile"
	"github.com/benjisbeans/kapaiputea-app/internal/health"
	_ "github.com/benjisbeans/kapaiputea-app/internal/infra/metrics" // Register Prometheus metrics
	"github.com/benjisbeans/kapaiputea-app/internal/infra/sqlite"
)

// Daemon is the Ka Pai Putea runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server
	cancel context.CancelFunc

	Gamification *gamification.Service
	Profiles     *profile.Service
	Market       *market.Service
	Hustle       *hustle.Service
	Health       *health.Checker
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(kapaiHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	gam := gamification.NewService(db)
	profiles := profile.NewService(db, gam, nil)
	mkt := market.NewService(db)
	biz := hustle.NewService(db)

	srv := api.NewServer(gam, profiles, mkt, biz)

	// Enable Prometheus /metrics if configured
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:       cfg,
		DB:           db,
		Server:       srv,
		Gamification: gam,
		Profiles:     profiles,
		Market:       mkt,
		Hustle:       biz,
		Health:       health.NewChecker(db, kapaiHome()),
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Ka Pai Putea serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
