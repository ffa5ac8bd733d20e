package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-progression/middleware"
	"github.com/Dosada05/tournament-progression/services"
)

type MatchHandler struct {
	matches services.MatchService
	scoring services.ScoringService
	logger  *slog.Logger
}

func NewMatchHandler(ms services.MatchService, ss services.ScoringService, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{matches: ms, scoring: ss, logger: logger}
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matches.GetMatch(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type finalizeRequest struct {
	ScoreA *int `json:"score_a"`
	ScoreB *int `json:"score_b"`
}

// Finalize godoc
// @Summary Finalize a match
// @Description Scores are optional and must be sent together. Recorded scoring events take precedence.
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body finalizeRequest false "Final score"
// @Success 200 {object} services.FinalizeResult
// @Failure 400 {object} map[string]string "Invalid scores, draw not allowed or slots not filled"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Match already finished"
// @Security BearerAuth
// @Router /matches/{matchID}/finalize [post]
func (h *MatchHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input finalizeRequest
	if err := readOptionalJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.matches.FinalizeMatch(r.Context(), id, input.ScoreA, input.ScoreB)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if subject, err := middleware.GetSubjectFromContext(r.Context()); err == nil {
		h.logger.Info("match finalized by", slog.Int("match_id", id), slog.String("subject", subject))
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
