package adapthttp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"weightduel/internal/app"
)

type createBattleRequest struct {
	StartWeight      float64 `json:"startWeight" validate:"gt=0"`
	TargetWeightLoss float64 `json:"targetWeightLoss" validate:"gt=0"`
	EndDate          string  `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type joinBattleRequest struct {
	EntryCode   string  `json:"entryCode" validate:"required,len=6"`
	StartWeight float64 `json:"startWeight" validate:"gt=0"`
}

type battleWeighInRequest struct {
	WeightKg float64 `json:"weightKg" validate:"gt=0"`
}

func (s *Server) handleBattleCreate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body createBattleRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// The battle runs until the end of the given local day.
	endDate, _ := time.ParseInLocation("2006-01-02", body.EndDate, time.Local)
	endDate = endDate.Add(24*time.Hour - time.Second)

	battle, err := s.battles.Create(r.Context(), user.ID, body.StartWeight, body.TargetWeightLoss, endDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.metrics.CounterBattlesStarted.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"battle": battle})
}

func (s *Server) handleBattleJoin(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body joinBattleRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	battle, err := s.battles.Join(r.Context(), user.ID, body.EntryCode, body.StartWeight)
	switch {
	case errors.Is(err, app.ErrBattleNotFound):
		writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, app.ErrBattleNotJoinable):
		writeError(w, http.StatusConflict, err)
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"battle": battle})
}

func (s *Server) handleBattleWeighIn(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var body battleWeighInRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	battle, err := s.battles.WeighIn(r.Context(), user.ID, id, body.WeightKg)
	if writeBattleError(w, err) {
		return
	}

	s.metrics.CounterWeighIns.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"battle": battle})
}

func (s *Server) handleBattleFinish(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	battle, err := s.battles.Finish(r.Context(), user.ID, id)
	if writeBattleError(w, err) {
		return
	}

	s.metrics.CounterBattlesFinished.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"battle": battle})
}

func (s *Server) handleBattlesActive(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := s.battles.ListActive(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleBattlesEnded(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := s.battles.ListEnded(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// writeBattleError maps battle use-case errors onto HTTP statuses. It reports
// whether an error response was written.
func writeBattleError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, app.ErrBattleNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, app.ErrNotParticipant):
		writeError(w, http.StatusForbidden, err)
	default:
		writeError(w, http.StatusBadRequest, err)
	}
	return true
}
