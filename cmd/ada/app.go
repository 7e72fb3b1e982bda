package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jaredlewiswechs/AdanAgent/internal/cache"
	"github.com/jaredlewiswechs/AdanAgent/internal/codec"
	"github.com/jaredlewiswechs/AdanAgent/internal/config"
	"github.com/jaredlewiswechs/AdanAgent/internal/eval"
	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/logging"
	"github.com/jaredlewiswechs/AdanAgent/internal/orchestrator"
	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
	"github.com/jaredlewiswechs/AdanAgent/internal/repair"
	"github.com/jaredlewiswechs/AdanAgent/internal/resolver"
	"github.com/jaredlewiswechs/AdanAgent/internal/store"
	"github.com/jaredlewiswechs/AdanAgent/internal/websearch"
)

// #region app

// app holds the wired collaborators for one process.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	codec    *codec.CodecClient
	store    *store.Store
	engine   *orchestrator.Engine
	resolver *resolver.Resolver
	metrics  *http.Server
}

func newApp(f *rootFlags) (*app, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Logger(os.Stderr))
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log}

	if cfg.Codec.Addr != "" {
		cc, err := codec.NewCodecClient(cfg.Codec.Addr)
		if err != nil {
			return nil, fmt.Errorf("connect codec %s: %w", cfg.Codec.Addr, err)
		}
		a.codec = cc
	}

	if cfg.Store.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			a.close()
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		st, err := store.NewStore(cfg.Store.Path)
		if err != nil {
			a.close()
			return nil, err
		}
		a.store = st
	}

	rs, err := a.buildReasoner()
	if err != nil {
		a.close()
		return nil, err
	}
	patterns, err := cfg.PatternTable()
	if err != nil {
		a.close()
		return nil, err
	}

	opts := []orchestrator.Option{
		orchestrator.WithGate(governance.NewGate(cfg.Thresholds())),
		orchestrator.WithPatternTable(patterns),
		orchestrator.WithLocalKnowledge(repair.NewStaticKnowledge()),
		orchestrator.WithEval(eval.NewEvalHarness(engineEvalConfig())),
		orchestrator.WithCache(cfg.Cache.Enabled),
		orchestrator.WithLogger(logging.Component(log, "engine")),
	}
	if a.store != nil {
		opts = append(opts, orchestrator.WithHistory(a.store), orchestrator.WithSink(a.store))
	}
	if a.codec != nil {
		opts = append(opts, orchestrator.WithGrounding(websearch.NewCodecSearcher(a.codec), cfg.WebSearch()))
	}
	a.engine = orchestrator.NewEngine(rs, opts...)
	a.resolver = resolver.New(rs, resolver.WithLogger(log))

	if f.metricsAddr != "" {
		a.serveMetrics(f.metricsAddr)
	}
	return a, nil
}

func (a *app) buildReasoner() (*reasoner.Client, error) {
	bopts := reasoner.BuildOptions{
		HTTPClient: &http.Client{},
		Sleep:      reasoner.SleepContext,
		Logger:     logging.Component(a.log, "reasoner"),
	}
	if a.codec != nil {
		bopts.Binding = a.codec
	}
	providers, err := reasoner.BuildProviders(a.cfg.Descriptors(), bopts)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		a.log.Warn().Msg("no usable providers; delegated reasoning will fall back")
	}

	copts := []reasoner.Option{reasoner.WithLogger(bopts.Logger)}
	if a.cfg.Cache.Enabled {
		c, err := cache.New(a.cfg.Cache.MaxSize, a.cfg.CacheTTL())
		if err != nil {
			return nil, err
		}
		copts = append(copts, reasoner.WithCache(c))
	}
	return reasoner.NewClient(providers, copts...), nil
}

func (a *app) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	a.metrics = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	a.log.Info().Str("addr", addr).Msg("serving metrics")
}

func (a *app) close() {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = a.metrics.Shutdown(ctx)
		cancel()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("close store")
		}
	}
	if a.codec != nil {
		if err := a.codec.Close(); err != nil {
			a.log.Warn().Err(err).Msg("close codec")
		}
	}
}

func engineEvalConfig() eval.EvalConfig {
	cfg := eval.DefaultEvalConfig()
	cfg.RequiredStages = eval.EngineStages()
	return cfg
}

// #endregion app
