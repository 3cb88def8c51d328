package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/inkwell-app/inkwell/internal/api"
	"github.com/inkwell-app/inkwell/internal/app/journal"
	"github.com/inkwell-app/inkwell/internal/app/progression"
	"github.com/inkwell-app/inkwell/internal/app/prompt"
	"github.com/inkwell-app/inkwell/internal/app/streak"
	"github.com/inkwell-app/inkwell/internal/health"
	_ "github.com/inkwell-app/inkwell/internal/infra/metrics" // Register Prometheus metrics
	"github.com/inkwell-app/inkwell/internal/infra/sqlite"
)

// Daemon is the core Inkwell runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server

	Journal     *journal.Service
	Streaks     *streak.Service
	Prompts     *prompt.Service
	Progression *progression.Service
	Health      *health.Checker

	scheduler gocron.Scheduler
	cancel    context.CancelFunc
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
	db, err := sqlite.Open(inkwellHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	loc := cfg.DayBoundary()

	d := &Daemon{
		Config:      cfg,
		DB:          db,
		Journal:     journal.NewService(db),
		Streaks:     streak.NewService(db, loc),
		Prompts:     prompt.NewService(db, loc),
		Progression: progression.NewService(db, loc),
		Health:      health.NewChecker(db, inkwellHome()),
	}

	journalAPI := api.NewJournalAPI(d.Journal, d.Streaks, d.Prompts, d.Progression)
	srv := api.NewServer(journalAPI)
	srv.SetHealthFn(d.Health.IsHealthy)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	if err := d.startReconciler(); err != nil {
		log.Printf("[daemon] WARNING: reconciliation job not scheduled: %v", err)
	}

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

		if d.scheduler != nil {
			_ = d.scheduler.Shutdown()
		}
		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Inkwell serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// startReconciler schedules the nightly all-user streak reconciliation
// sweep. Recompute-on-read already self-heals hot users; the sweep covers
// accounts nobody queried.
func (d *Daemon) startReconciler() error {
	sched, err := gocron.NewScheduler(gocron.WithLocation(d.Config.DayBoundary()))
	if err != nil {
		return err
	}

	hour := d.Config.Journal.ReconcileHour
	if hour < 0 || hour > 23 {
		hour = 3
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), 0, 0))),
		gocron.NewTask(func() {
			corrected, err := d.Streaks.ReconcileAll(time.Now())
			if err != nil {
				log.Printf("[reconciler] sweep error: %v", err)
				return
			}
			if corrected > 0 {
				log.Printf("[reconciler] corrected %d stale writing streaks", corrected)
			}
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	d.scheduler = sched
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.scheduler != nil {
		_ = d.scheduler.Shutdown()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
