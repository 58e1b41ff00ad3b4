package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/logging"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	repos, err := openStore(cfg, log)
	if err != nil {
		return err
	}

	availability, closeCache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	notifier, closeNotifier := openNotifier(cfg, log)
	defer closeNotifier()

	notifications := notify.NewDispatcher(notifier, log)
	defer notifications.Close()

	auditDispatcher := audit.NewDispatcher(audit.New(repos.AuditLogs), log)
	defer auditDispatcher.Close()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.Default()

	routes.RegisterRoutes(r, routes.Infra{
		Repositories:  repos,
		Cache:         availability,
		Audit:         auditDispatcher,
		Notifications: notifications,
		Metrics:       metrics.New(),
		Log:           log,
		Now:           time.Now,
	}, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running",
			"addr", cfg.Addr(),
			"store", cfg.StoreDriver,
			"notifier", cfg.Notifier,
			"timezone", cfg.Timezone,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(cfg *config.Config, log *slog.Logger) (routes.Repositories, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("using in-memory store; data is lost on restart")
		return routes.MemoryRepositories(memory.NewStore()), nil
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return routes.Repositories{}, err
	}
	return routes.GormRepositories(db), nil
}

func openCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (routes.AvailabilityCache, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("availability cache disabled")
		return cache.Noop{}, func() {}, nil
	}

	rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewAvailabilityRedisCache(rdb, cfg.AvailabilityCacheTTL), func() { _ = rdb.Close() }, nil
}

func openNotifier(cfg *config.Config, log *slog.Logger) (notify.Notifier, func()) {
	switch cfg.Notifier {
	case config.NotifierEmail:
		return notify.NewEmailNotifier(notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)), func() {}
	case config.NotifierKafka:
		k := notify.NewKafkaNotifier(notify.SplitBrokers(cfg.KafkaBrokers), cfg.KafkaTopic)
		return k, closer(k, log)
	default:
		return notify.NewLogNotifier(log), func() {}
	}
}

func closer(c io.Closer, log *slog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn("close failed", "err", err)
		}
	}
}
