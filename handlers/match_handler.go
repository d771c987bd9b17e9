package handlers

import (
	"errors"
	"net/http"

	"github.com/spikeline/tournament-system/services"
)

type MatchHandler struct {
	matchService     services.MatchService
	standingsService services.StandingsService
}

func NewMatchHandler(matchService services.MatchService, standingsService services.StandingsService) *MatchHandler {
	return &MatchHandler{
		matchService:     matchService,
		standingsService: standingsService,
	}
}

type scoreInput struct {
	ScoreA *int `json:"scoreA"`
	ScoreB *int `json:"scoreB"`
}

func (in *scoreInput) validate() error {
	if in.ScoreA == nil || in.ScoreB == nil {
		return errors.New("both scoreA and scoreB are required")
	}
	return nil
}

// GenerateSchedule rebuilds the division's pool schedule from current
// registrations.
func (h *MatchHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
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

	matches, err := h.matchService.GenerateSchedule(r.Context(), tournamentID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListByDivision(w http.ResponseWriter, r *http.Request) {
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

	matches, err := h.matchService.ListByDivision(r.Context(), tournamentID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), tournamentID, divisionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitAdminScore records the official score and locks the match.
func (h *MatchHandler) SubmitAdminScore(w http.ResponseWriter, r *http.Request) {
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

	match, err := h.matchService.SubmitAdminScore(r.Context(), matchID, *input.ScoreA, *input.ScoreB)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitPlayerScore records a participant-entered score. Only allowed on the
// event date and while no admin lock is in place.
func (h *MatchHandler) SubmitPlayerScore(w http.ResponseWriter, r *http.Request) {
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

	match, err := h.matchService.SubmitPlayerScore(r.Context(), matchID, *input.ScoreA, *input.ScoreB)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Resequence reorders the division's pool schedule to the given id order.
func (h *MatchHandler) Resequence(w http.ResponseWriter, r *http.Request) {
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
		OrderedIDs []int `json:"orderedIds"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.Resequence(r.Context(), tournamentID, divisionID, input.OrderedIDs); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Standings godoc
// @Summary Pool-play standings for a division
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param divisionID path int true "Division ID"
// @Success 200 {object} services.DivisionStandings
// @Router /tournaments/{tournamentID}/divisions/{divisionID}/standings [get]
func (h *MatchHandler) Standings(w http.ResponseWriter, r *http.Request) {
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

	standings, err := h.standingsService.GetStandings(r.Context(), tournamentID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, standings, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
