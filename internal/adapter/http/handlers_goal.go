package adapthttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"weightduel/internal/domain"
)

type createGoalRequest struct {
	Title        string  `json:"title" validate:"required,max=120"`
	StartDate    string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	StartWeight  float64 `json:"startWeight" validate:"gt=0"`
	TargetWeight float64 `json:"targetWeight" validate:"gt=0"`
}

func (s *Server) handleGoalCreate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body createGoalRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	startDate, _ := time.ParseInLocation("2006-01-02", body.StartDate, time.Local)
	endDate, _ := time.ParseInLocation("2006-01-02", body.EndDate, time.Local)

	goal, err := s.goals.Create(r.Context(), domain.Goal{
		UserID:       user.ID,
		Title:        body.Title,
		StartDate:    startDate,
		EndDate:      endDate,
		StartWeight:  body.StartWeight,
		TargetWeight: body.TargetWeight,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"goal": goal})
}

func (s *Server) handleGoalsList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := s.goals.List(r.Context(), user.ID, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleGoalDelete(w http.ResponseWriter, r *http.Request) {
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

	deleted, err := s.goals.Delete(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
