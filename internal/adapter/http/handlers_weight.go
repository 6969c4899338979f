package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"weightduel/internal/app"
)

type recordWeightRequest struct {
	Value float64 `json:"value" validate:"gt=0"`
	Unit  string  `json:"unit" validate:"oneof=kg lb"`
	Day   string  `json:"day,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (s *Server) handleWeightRecord(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body recordWeightRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	day := body.Day
	if day == "" {
		day = localDayString(time.Now())
	}
	overwrite := boolQuery(r, "overwrite")

	record, err := s.weight.Record(r.Context(), user.ID, body.Value, body.Unit, day, overwrite)
	if errors.Is(err, app.ErrDuplicateDay) {
		writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.metrics.CounterWeighIns.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"record": record})
}

func (s *Server) handleWeightsList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := s.weight.ListAll(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWeightsRecent(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	limit := intQuery(r, "limit", 14)
	items, err := s.weight.ListRecent(r.Context(), user.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWeightDay(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	day := mux.Vars(r)["day"]

	switch r.Method {
	case http.MethodGet:
		record, err := s.weight.GetDay(r.Context(), user.ID, day)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if record == nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": record})

	case http.MethodDelete:
		deleted, err := s.weight.Delete(r.Context(), user.ID, day)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
	}
}
