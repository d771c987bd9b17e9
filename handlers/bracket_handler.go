package handlers

import (
	"net/http"

	"github.com/spikeline/tournament-system/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

// Generate godoc
// @Summary Generate the playoff bracket from pool standings
// @Tags brackets
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param divisionID path int true "Division ID"
// @Success 201 {object} services.BracketView
// @Router /tournaments/{tournamentID}/divisions/{divisionID}/bracket [post]
func (h *BracketHandler) Generate(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID, err := urlParamInt(r, "divisionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		IncludeBronze bool `json:"includeBronze"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.Generate(r.Context(), tournamentID, divisionID, input.IncludeBronze)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) Get(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID, err := urlParamInt(r, "divisionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.Get(r.Context(), tournamentID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Reset wipes the division's bracket so it can be regenerated.
func (h *BracketHandler) Reset(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID, err := urlParamInt(r, "divisionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.bracketService.Reset(r.Context(), tournamentID, divisionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BracketHandler) SubmitAdminScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := input.validate(); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.SubmitAdminScore(r.Context(), matchID, *input.ScoreA, *input.ScoreB)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) SubmitPlayerScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := input.validate(); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.SubmitPlayerScore(r.Context(), matchID, *input.ScoreA, *input.ScoreB)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
