package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lead-call-relay/internal/config"
	"lead-call-relay/internal/leads"
	"lead-call-relay/internal/metrics"
	"lead-call-relay/internal/relay"
	"lead-call-relay/internal/reporting"
	"lead-call-relay/internal/telephony"
	"lead-call-relay/internal/tts"
	"lead-call-relay/pkg/logger"
	"lead-call-relay/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := backing{}
	defer deps.Close()

	store, err := openLeadStore(rootCtx, cfg, &deps)
	if err != nil {
		log.Error("lead store init failed", "kind", string(cfg.LeadStore.Kind), "err", err)
		os.Exit(1)
	}

	dialer, err := telephony.NewExotelProvider(telephony.ExotelConfig{
		SID:      cfg.Exotel.SID,
		Token:    cfg.Exotel.Token,
		CallerID: cfg.Exotel.CallerID,
		APIHost:  cfg.Exotel.APIHost,
		CallType: cfg.Exotel.CallType,
	}, nil)
	if err != nil {
		log.Error("telephony init failed", "err", err)
		os.Exit(1)
	}

	log.Info("telephony provider ready", "provider", dialer.Name(), "caller_id", cfg.Exotel.CallerID)

	voice, err := openSynthesizer(rootCtx, cfg, &deps)
	if err != nil {
		log.Error("tts init failed", "err", err)
		os.Exit(1)
	}

	m := metrics.New()
	svc := relay.NewService(store, dialer, voice, cfg.App.PublicBaseURL, m)

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, routeDeps{
		Relay:     svc,
		Reporting: reporting.NewService(store),
		Metrics:   m,
		Ready:     deps.Ready,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// The script webhook waits on TTS synthesis.
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("api listening",
			"addr", srv.Addr,
			"env", cfg.App.Env,
			"lead_store", string(cfg.LeadStore.Kind),
			"tts", cfg.TTSEnabled(),
			"tts_cache", cfg.CacheEnabled(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}

// backing holds optional process-wide connections.
type backing struct {
	db  *sql.DB
	rdb *redis.Client
}

func (b *backing) Ready(ctx context.Context) error {
	if b.db != nil {
		if err := utils.HealthCheck(ctx, b.db, 2*time.Second); err != nil {
			return err
		}
	}
	if b.rdb != nil {
		if err := b.rdb.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (b *backing) Close() {
	if b.db != nil {
		_ = b.db.Close()
	}
	if b.rdb != nil {
		_ = b.rdb.Close()
	}
}

func openLeadStore(ctx context.Context, cfg config.Config, b *backing) (leads.Store, error) {
	switch cfg.LeadStore.Kind {
	case config.LeadStorePostgres:
		db, err := utils.OpenPostgres(ctx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			return nil, err
		}
		b.db = db
		return leads.NewPostgresStore(db, cfg.LeadStore.Table)
	case config.LeadStoreMemory:
		slog.Warn("using in-memory lead store; data is lost on restart")
		repo := leads.NewMemoryRepo()
		if cfg.LeadStore.SeedFile == "" {
			return repo, nil
		}
		f, err := os.Open(cfg.LeadStore.SeedFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		n, err := repo.Seed(f)
		if err != nil {
			return nil, err
		}
		slog.Info("lead store seeded", "file", cfg.LeadStore.SeedFile, "leads", n)
		return repo, nil
	default:
		return leads.NewRESTStore(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.LeadStore.Table)
	}
}

func openSynthesizer(ctx context.Context, cfg config.Config, b *backing) (relay.Synthesizer, error) {
	if !cfg.TTSEnabled() {
		slog.Info("tts not configured; scripts use spoken-text fallback")
		return tts.Disabled{}, nil
	}
	nari := tts.NewNariClient(cfg.TTS.BaseURL, cfg.TTS.APIKey, cfg.TTS.Voice, nil)
	if !cfg.CacheEnabled() {
		return nari, nil
	}

	rdb, err := utils.OpenRedis(ctx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		return nil, err
	}
	b.rdb = rdb
	return tts.NewCachedSynthesizer(nari, tts.NewRedisCache(rdb, "relay:tts:"), cfg.TTS.Voice, cfg.TTS.CacheTTL), nil
}
