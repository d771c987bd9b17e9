package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spikeline/tournament-system/services"
)

const maxPhotoSize = 10 << 20 // 10MB

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(registrationService services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Register godoc
// @Summary Register a team for a division
// @Tags registrations
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param divisionID path int true "Division ID"
// @Param input body services.RegisterTeamInput true "Team registration"
// @Success 201 {object} models.Registration
// @Router /tournaments/{tournamentID}/divisions/{divisionID}/registrations [post]
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
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

	var input services.RegisterTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	registration, err := h.registrationService.Register(r.Context(), tournamentID, divisionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"registration": registration}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RegistrationHandler) ListByDivision(w http.ResponseWriter, r *http.Request) {
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

	registrations, err := h.registrationService.ListByDivision(r.Context(), tournamentID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registrations": registrations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RegistrationHandler) Update(w http.ResponseWriter, r *http.Request) {
	registrationID, err := urlParamInt(r, "registrationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateRegistrationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	registration, err := h.registrationService.Update(r.Context(), registrationID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registration": registration}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetSeed assigns or clears the admin seed used as the standings tiebreak.
func (h *RegistrationHandler) SetSeed(w http.ResponseWriter, r *http.Request) {
	registrationID, err := urlParamInt(r, "registrationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Seed *int `json:"seed"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.registrationService.SetSeed(r.Context(), registrationID, input.Seed); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *RegistrationHandler) SetFinish(w http.ResponseWriter, r *http.Request) {
	registrationID, err := urlParamInt(r, "registrationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Finish *int `json:"finish"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.registrationService.SetFinish(r.Context(), registrationID, input.Finish); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto accepts a multipart team photo and stores it in object storage.
func (h *RegistrationHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	registrationID, err := urlParamInt(r, "registrationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		badRequestResponse(w, r, errors.New("photo must not exceed 10MB"))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequestResponse(w, r, errors.New("photo file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		badRequestResponse(w, r, errors.New("photo must be an image"))
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}

	registration, err := h.registrationService.UploadPhoto(r.Context(), registrationID, contentType, ext, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registration": registration}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	registrationID, err := urlParamInt(r, "registrationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.registrationService.Delete(r.Context(), registrationID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
