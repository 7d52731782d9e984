package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/javadocs/internal/config"
	"github.com/MrSnakeDoc/javadocs/internal/content"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/index"
	"github.com/MrSnakeDoc/javadocs/internal/logger"
	"github.com/MrSnakeDoc/javadocs/internal/metrics"
	"github.com/MrSnakeDoc/javadocs/internal/redis"
	"github.com/MrSnakeDoc/javadocs/internal/scheduler"
	"github.com/MrSnakeDoc/javadocs/internal/session"
	redisstore "github.com/MrSnakeDoc/javadocs/internal/store/redis"
	"github.com/MrSnakeDoc/javadocs/internal/version"
	"github.com/MrSnakeDoc/javadocs/internal/views"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	index       *index.ContentIndex
	reloader    *scheduler.ContentReloader
	watcher     *scheduler.ContentWatcher
	sessionGC   *scheduler.SessionCollector
	viewSyncer  *scheduler.ViewSyncer
}

// NewLoader returns the dataset loader for cfg: ContentDir when set, the
// embedded dataset otherwise.
func NewLoader(cfg *config.Config) *content.Loader {
	renderer := content.NewRenderer(cfg.HighlightStyle)
	if cfg.ContentDir == "" {
		return content.NewLoader(content.Embedded(), "embedded", renderer)
	}
	return content.NewLoader(os.DirFS(cfg.ContentDir), cfg.ContentDir, renderer)
}

// New wires every component. Redis is connected here so that a configured
// but unreachable Redis fails the start.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: loggerClient,
		index:  index.NewContentIndex(),
	}

	var (
		sessions  session.Store
		storeKind string
	)
	if cfg.UseRedis() {
		loggerClient.Info("connecting to redis", logger.String("addr", cfg.RedisAddr))
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient.Named("redis"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisClient = client

		store := redisstore.NewStore(client, cfg.SessionTTL)
		sessions, storeKind = store, "redis"
		a.viewSyncer = scheduler.NewViewSyncer(store, a.index, loggerClient.Named("views"), cfg.ViewsSyncInterval)
	} else {
		loggerClient.Info("redis not configured, sessions and view counters stay in memory")
		mem := session.NewMemoryStore()
		sessions, storeKind = mem, "memory"
		a.sessionGC = scheduler.NewSessionCollector(mem, loggerClient.Named("session-gc"), cfg.SessionGCInterval, cfg.SessionTTL)
	}

	var (
		rec            metrics.Recorder = metrics.NoopRecorder{}
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		pr := metrics.NewPrometheusRecorder(nil)
		rec, metricsHandler = pr, pr.Handler()
	}

	reloadTrigger := make(chan struct{}, 1)
	a.reloader = scheduler.NewContentReloader(
		NewLoader(cfg),
		a.index,
		rec,
		loggerClient.Named("content"),
		cfg.StrictContent,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	if cfg.WatchContent {
		w, err := scheduler.NewContentWatcher(cfg.ContentDir, reloadTrigger, loggerClient.Named("watcher"), scheduler.DefaultWatchDebounce)
		if err != nil {
			a.closeRedis()
			return nil, fmt.Errorf("failed to create content watcher: %w", err)
		}
		a.watcher = w
	}

	renderer, err := views.New()
	if err != nil {
		a.closeRedis()
		return nil, err
	}

	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		CORSOrigins:      cfg.CORSOrigins,
		Index:            a.index,
		Sessions:         sessions,
		SessionStoreKind: storeKind,
		SessionCookie:    cfg.SessionCookie,
		SessionSecure:    cfg.SessionSecure,
		SessionTTL:       cfg.SessionTTL,
		RedisClient:      a.redisClient,
		Views:            renderer,
		Metrics:          rec,
		MetricsHandler:   metricsHandler,
		ReloadTrigger:    reloadTrigger,
		LiveEnabled:      cfg.LiveEnabled,
		LiveBurst:        cfg.LiveBurst,
		LiveRefillPerIP:  cfg.LiveRefillPerIP,
	}

	a.server = httpserver.New(cfg, loggerClient, d)
	return a, nil
}

// Run starts the background workers and the HTTP server, and blocks until
// SIGINT/SIGTERM or a server error.
func (a *App) Run() error {
	a.logger.Info("🚀 starting javadocs",
		logger.String("version", version.Version),
		logger.String("commit", version.Commit),
		logger.String("built", version.BuildDate),
		logger.String("go", version.GoVersion),
		logger.String("addr", a.cfg.ListenAddr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.reloader.Start(ctx); err != nil {
		a.closeRedis()
		return fmt.Errorf("failed to start content reloader: %w", err)
	}
	a.logger.Info("content loaded",
		logger.Int("topics", a.index.TopicCount()),
		logger.Duration("reload_interval", a.cfg.ReloadInterval))

	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			a.logger.Warn("content watcher disabled", logger.Error(err))
			a.watcher = nil
		}
	}
	if a.sessionGC != nil {
		if err := a.sessionGC.Start(ctx); err != nil {
			return fmt.Errorf("failed to start session collector: %w", err)
		}
	}
	if a.viewSyncer != nil {
		if err := a.viewSyncer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start view syncer: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ shutting down gracefully")
	case runErr = <-errCh:
	}

	a.stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeRedis()
	if runErr == nil {
		a.logger.Info("✅ javadocs stopped cleanly")
	}
	return runErr
}

// stopWorkers stops the background goroutines. The view syncer flushes its
// counters on stop, so it runs before Redis is closed.
func (a *App) stopWorkers() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.reloader.Stop()
	if a.sessionGC != nil {
		a.sessionGC.Stop()
	}
	if a.viewSyncer != nil {
		a.viewSyncer.Stop()
	}
}

func (a *App) closeRedis() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warn("failed to close redis", logger.Error(err))
		return
	}
	a.logger.Info("✅ redis closed cleanly")
	a.redisClient = nil
}
