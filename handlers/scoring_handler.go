package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-progression/services"
)

// Ledger routes live on MatchHandler since every entry belongs to a match.

func (h *MatchHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ledger, err := h.scoring.ListMatchEvents(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, ledger, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordEvent godoc
// @Summary Record a scoring event
// @Tags ledger
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body services.RecordEventInput true "Event"
// @Success 201 {object} services.RecordEventResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Match closed"
// @Security BearerAuth
// @Router /matches/{matchID}/events [post]
func (h *MatchHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.MatchID = id

	result, err := h.scoring.RecordEvent(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReverseEvent godoc
// @Summary Reverse a scoring event
// @Tags ledger
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} services.ReverseResult
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Match closed"
// @Security BearerAuth
// @Router /events/{eventID} [delete]
func (h *MatchHandler) ReverseEvent(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scoring.ReverseEvent(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) RecordCard(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordCardInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.MatchID = id

	result, err := h.scoring.RecordCard(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ReverseCard(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "cardID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scoring.ReverseCard(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
