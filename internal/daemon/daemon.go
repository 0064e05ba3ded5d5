package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"curator/internal/api"
	"curator/internal/config"
	"curator/internal/logging"
)

// Daemon owns the scan loop and the HTTP API server.
type Daemon struct {
	cfg     *config.Config
	service *api.Service
	logger  *slog.Logger

	lock    *flock.Flock
	running atomic.Bool
}

// New constructs a daemon. A nil logger is replaced with a no-op.
func New(cfg *config.Config, service *api.Service, logger *slog.Logger) *Daemon {
	return &Daemon{
		cfg:     cfg,
		service: service,
		logger:  logging.NewComponentLogger(logger, "daemon"),
	}
}

// Run acquires the single-instance lock and blocks until ctx is cancelled,
// scanning on the configured interval and serving the HTTP API.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.acquireLock(); err != nil {
		return err
	}
	defer d.releaseLock()

	d.running.Store(true)
	defer d.running.Store(false)

	server := newAPIServer(d.cfg.Server.Bind, d.service, d.logger, d.Healthy)

	serverErr := make(chan error, 1)
	go func() {
		d.logger.Info("api server listening", logging.String("bind", d.cfg.Server.Bind))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	loopErr := d.scanLoop(ctx, serverErr)

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(d.cfg.Workflow.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		d.logger.Warn("api server shutdown", logging.Error(err))
	}

	return loopErr
}

// Healthy reports whether the daemon loop is active.
func (d *Daemon) Healthy() bool {
	return d.running.Load()
}

// scanLoop scans immediately, then on every tick, until ctx is cancelled or
// the HTTP server fails.
func (d *Daemon) scanLoop(ctx context.Context, serverErr <-chan error) error {
	interval := time.Duration(d.cfg.Workflow.ScanInterval) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.scanOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("shutdown requested")
			return nil
		case err, ok := <-serverErr:
			if !ok {
				return nil
			}
			return fmt.Errorf("api server: %w", err)
		case <-ticker.C:
			d.scanOnce(ctx)
		}
	}
}

func (d *Daemon) scanOnce(ctx context.Context) {
	result, err := d.service.Scan(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		d.logger.Error("scheduled scan failed", logging.Error(err))
		return
	}
	d.logger.Info("scheduled scan complete",
		logging.Int("items", result.Items),
		logging.Int("suggestions", result.Suggestions))
}

func (d *Daemon) acquireLock() error {
	d.lock = flock.New(d.cfg.LockPath())
	locked, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire daemon lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another curatord instance holds %s", d.cfg.LockPath())
	}
	return nil
}

func (d *Daemon) releaseLock() {
	if d.lock == nil {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release daemon lock", logging.Error(err))
	}
}
