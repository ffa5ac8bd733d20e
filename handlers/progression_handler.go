package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/tournament-progression/services"
	"github.com/go-chi/chi/v5"
)

type ProgressionHandler struct {
	progression services.ProgressionService
}

func NewProgressionHandler(ps services.ProgressionService) *ProgressionHandler {
	return &ProgressionHandler{progression: ps}
}

type createCompetitorRequest struct {
	Name string `json:"name"`
}

func (h *ProgressionHandler) CreateCompetitor(w http.ResponseWriter, r *http.Request) {
	var input createCompetitorRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	competitor, err := h.progression.CreateCompetitor(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"competitor": competitor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type addRosterEntryRequest struct {
	CompetitorID int `json:"competitor_id"`
}

func (h *ProgressionHandler) AddRosterEntry(w http.ResponseWriter, r *http.Request) {
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input addRosterEntryRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.progression.AddRosterEntry(r.Context(), participantID, input.CompetitorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"roster_entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetProgress godoc
// @Summary Competitor progress with level and achievements
// @Tags progression
// @Produce json
// @Param competitorID path int true "Competitor ID"
// @Success 200 {object} services.CompetitorProfile
// @Failure 404 {object} map[string]string
// @Router /competitors/{competitorID}/progress [get]
func (h *ProgressionHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profile, err := h.progression.GetProgress(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, profile, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProgressionHandler) Level(w http.ResponseWriter, r *http.Request) {
	xp, err := strconv.Atoi(chi.URLParam(r, "xp"))
	if err != nil {
		badRequestResponse(w, r, errors.New("xp must be an integer"))
		return
	}

	if err := writeJSON(w, http.StatusOK, h.progression.LevelOf(xp), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProgressionHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"achievements": h.progression.Catalog()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
