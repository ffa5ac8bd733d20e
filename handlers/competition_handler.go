package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-progression/models"
	"github.com/Dosada05/tournament-progression/services"
)

type CompetitionHandler struct {
	competitions services.CompetitionService
	schedules    services.ScheduleService
	matches      services.MatchService
}

func NewCompetitionHandler(cs services.CompetitionService, ss services.ScheduleService, ms services.MatchService) *CompetitionHandler {
	return &CompetitionHandler{
		competitions: cs,
		schedules:    ss,
		matches:      ms,
	}
}

// Create godoc
// @Summary Create a competition
// @Tags competitions
// @Accept json
// @Produce json
// @Param input body services.CreateCompetitionInput true "Competition"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /competitions [post]
func (h *CompetitionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCompetitionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	competition, err := h.competitions.CreateCompetition(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"competition": competition}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary List competitions
// @Tags competitions
// @Produce json
// @Param status query string false "draft, active, completed or canceled"
// @Success 200 {object} map[string]interface{}
// @Router /competitions [get]
func (h *CompetitionHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *models.CompetitionStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.CompetitionStatus(raw)
		switch s {
		case models.CompetitionDraft, models.CompetitionActive, models.CompetitionCompleted, models.CompetitionCanceled:
			status = &s
		default:
			badRequestResponse(w, r, errors.New("invalid status filter"))
			return
		}
	}

	competitions, err := h.competitions.ListCompetitions(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competitions": competitions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Overview godoc
// @Summary Competition with participants, matches and standings
// @Tags competitions
// @Produce json
// @Param competitionID path int true "Competition ID"
// @Success 200 {object} services.CompetitionOverview
// @Failure 404 {object} map[string]string
// @Router /competitions/{competitionID} [get]
func (h *CompetitionHandler) Overview(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	overview, err := h.competitions.GetOverview(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitionHandler) Standings(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.competitions.GetStandings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// @Summary Competition leaderboards: scorers, assisters, fair play, XP and a summary
// @Tags competitions
// @Produce json
// @Param competitionID path int true "Competition ID"
// @Success 200 {object} map[string]services.CompetitionStats
// @Failure 404 {object} map[string]string
// @Router /competitions/{competitionID}/stats [get]
func (h *CompetitionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.competitions.GetStats(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type addParticipantRequest struct {
	Name string `json:"name"`
}

func (h *CompetitionHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input addParticipantRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.competitions.AddParticipant(r.Context(), id, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateSchedule godoc
// @Summary Generate the full match schedule
// @Tags competitions
// @Produce json
// @Param competitionID path int true "Competition ID"
// @Success 201 {object} services.ScheduleResult
// @Failure 400 {object} map[string]string "Not enough participants or invalid settings"
// @Failure 409 {object} map[string]string "Schedule already generated"
// @Security BearerAuth
// @Router /competitions/{competitionID}/schedule [post]
func (h *CompetitionHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.schedules.GenerateSchedule(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, schedule, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitionHandler) AdvanceByes(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	resolved, err := h.matches.AdvanceByes(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"advanced_byes": resolved}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitionHandler) SeedKnockout(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	seeded, err := h.matches.SeedKnockout(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": seeded}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
