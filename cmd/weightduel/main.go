package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	adapthttp "weightduel/internal/adapter/http"
	"weightduel/internal/adapter/memory"
	"weightduel/internal/adapter/postgres"
	"weightduel/internal/app"
	"weightduel/internal/config"
	"weightduel/internal/domain"
	"weightduel/internal/metrics"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	loggingSetup(cfg.LogLevel, cfg.LogJSON)

	var (
		weightRepo  domain.WeightRepository
		goalRepo    domain.GoalRepository
		battleRepo  domain.BattleRepository
		userRepo    domain.UserRepository
		sessionRepo domain.SessionRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open: %s", err)
		}
		defer func() { _ = db.Close() }()
		weightRepo, goalRepo, battleRepo, userRepo = db, db, db, db
		sessionRepo = postgres.NewSessionRepo(db)
		log.Info("using postgres storage")
	} else {
		db := memory.New()
		weightRepo, goalRepo, battleRepo, userRepo = db, db, db, db
		sessionRepo = db.NewSessionRepo()
		log.Warn("DATABASE_URL not set, using in-memory storage, all data is lost on restart")
	}

	oidcConfig := adapthttp.OIDCConfig{}
	if cfg.OIDC.Enabled {
		provider, err := oidc.NewProvider(ctx, cfg.OIDC.IssuerURL)
		if err != nil {
			log.Fatalf("oidc provider: %s", err)
		}
		oidcConfig = adapthttp.OIDCConfig{
			Enabled:  true,
			Provider: provider,
			OAuth2Config: &oauth2.Config{
				ClientID:     cfg.OIDC.ClientID,
				ClientSecret: cfg.OIDC.ClientSecret,
				RedirectURL:  cfg.OIDC.RedirectURL,
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
		}
		log.Infof("sso login enabled, issuer: %s", cfg.OIDC.IssuerURL)
	}

	m := metrics.NewManager("weightduel", "server", prometheus.DefaultRegisterer)
	m.GaugeLifeSignal.Set(1)

	weightSvc := app.NewWeightService(weightRepo)
	goalSvc := app.NewGoalService(goalRepo)
	battleSvc := app.NewBattleService(battleRepo, userRepo)
	statsSvc := app.NewStatsService(weightRepo, userRepo, goalSvc, battleSvc)
	authSvc := app.NewAuthService(userRepo, sessionRepo)

	go sessionCleanupLoop(ctx, sessionRepo)

	srv := adapthttp.New(weightSvc, goalSvc, battleSvc, statsSvc, authSvc, m, oidcConfig)
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-chOsInterrupt
		log.Warnf("signal [%s] received, shutting down", sig)
		m.GaugeLifeSignal.Set(0)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown: %s", err)
		}
		cancel()
	}()

	log.Infof("listening on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("listen and serve: %s", err)
	}
}

func loggingSetup(level string, logJSON bool) {
	if logJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
	}

	logLevel, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("unknown log level %q, falling back to info", level)
		logLevel = log.InfoLevel
	}
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
}

// sessionCleanupLoop periodically purges expired sessions.
func sessionCleanupLoop(ctx context.Context, sessions domain.SessionRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.DeleteExpired(ctx); err != nil {
				log.Errorf("delete expired sessions: %s", err)
			}
		}
	}
}
