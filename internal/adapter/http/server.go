package adapthttp

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"

	"weightduel/internal/app"
	"weightduel/internal/metrics"
)

// OIDCConfig carries the optional SSO provider wiring.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	weight  *app.WeightService
	goals   *app.GoalService
	battles *app.BattleService
	stats   *app.StatsService
	authSvc *app.AuthService

	metrics     *metrics.Manager
	oidcConfig  OIDCConfig
	validate    *validator.Validate
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(
	weight *app.WeightService,
	goals *app.GoalService,
	battles *app.BattleService,
	stats *app.StatsService,
	authSvc *app.AuthService,
	m *metrics.Manager,
	oidcConfig OIDCConfig,
) *Server {
	return &Server{
		weight:     weight,
		goals:      goals,
		battles:    battles,
		stats:      stats,
		authSvc:    authSvc,
		metrics:    m,
		oidcConfig: oidcConfig,
		validate:   validator.New(),
	}
}

// WithoutAuth disables session validation; requests run as user 1. Test use
// only.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.panicRecovery, s.logRequest, s.requestMetrics)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/setup", s.handleSetupUser).Methods(http.MethodPost)
	api.HandleFunc("/auth/config", s.handleConfig).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(s.authMiddleware)

	protected.HandleFunc("/profile/height", s.handleSetHeight).Methods(http.MethodPut)

	protected.HandleFunc("/weights", s.handleWeightsList).Methods(http.MethodGet)
	protected.HandleFunc("/weights", s.handleWeightRecord).Methods(http.MethodPut)
	protected.HandleFunc("/weights/recent", s.handleWeightsRecent).Methods(http.MethodGet)
	protected.HandleFunc("/weights/{day}", s.handleWeightDay).Methods(http.MethodGet, http.MethodDelete)

	protected.HandleFunc("/goals", s.handleGoalsList).Methods(http.MethodGet)
	protected.HandleFunc("/goals", s.handleGoalCreate).Methods(http.MethodPost)
	protected.HandleFunc("/goals/{id}", s.handleGoalDelete).Methods(http.MethodDelete)

	protected.HandleFunc("/battles", s.handleBattleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/battles/join", s.handleBattleJoin).Methods(http.MethodPost)
	protected.HandleFunc("/battles/active", s.handleBattlesActive).Methods(http.MethodGet)
	protected.HandleFunc("/battles/ended", s.handleBattlesEnded).Methods(http.MethodGet)
	protected.HandleFunc("/battles/{id}/weigh-in", s.handleBattleWeighIn).Methods(http.MethodPost)
	protected.HandleFunc("/battles/{id}/finish", s.handleBattleFinish).Methods(http.MethodPost)

	protected.HandleFunc("/stats/dashboard", s.handleDashboard).Methods(http.MethodGet)
	protected.HandleFunc("/stats/battles", s.handleBattleStats).Methods(http.MethodGet)

	return r
}
