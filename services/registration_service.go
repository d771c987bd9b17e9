package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spikeline/tournament-system/models"
	"github.com/spikeline/tournament-system/repositories"
	"github.com/spikeline/tournament-system/storage"
)

type RegistrationService interface {
	Register(ctx context.Context, tournamentID, divisionID int, input RegisterTeamInput) (*models.Registration, error)
	GetByID(ctx context.Context, id int) (*models.Registration, error)
	ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.Registration, error)
	Update(ctx context.Context, id int, input UpdateRegistrationInput) (*models.Registration, error)
	SetSeed(ctx context.Context, id int, seed *int) error
	SetFinish(ctx context.Context, id int, finish *int) error
	UploadPhoto(ctx context.Context, id int, contentType string, ext string, file io.Reader) (*models.Registration, error)
	Delete(ctx context.Context, id int) error
}

type RegisterTeamInput struct {
	TeamName       string   `json:"teamName"`
	Players        []string `json:"players"`
	CaptainPhone   string   `json:"captainPhone"`
	WaiverAccepted bool     `json:"waiverAccepted"`
	CreatedBy      string   `json:"created_by"`
}

type UpdateRegistrationInput struct {
	TeamName     *string   `json:"teamName"`
	Players      *[]string `json:"players"`
	CaptainPhone *string   `json:"captainPhone"`
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	uploader         storage.FileUploader
}

// NewRegistrationService builds the service. The uploader may be nil, in
// which case photo uploads are rejected.
func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		uploader:         uploader,
	}
}

func (s *registrationService) Register(ctx context.Context, tournamentID, divisionID int, input RegisterTeamInput) (*models.Registration, error) {
	division, err := s.tournamentRepo.GetDivisionByID(ctx, divisionID)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to get division %d: %w", divisionID, err)
	}
	if division.TournamentID != tournamentID {
		return nil, ErrDivisionMismatch
	}

	players := trimPlayers(input.Players)
	if len(players) == 0 {
		return nil, ErrPlayersRequired
	}
	teamName := strings.TrimSpace(input.TeamName)
	if teamName == "" {
		return nil, ErrTeamNameRequired
	}
	if !input.WaiverAccepted {
		return nil, ErrWaiverRequired
	}

	registration := &models.Registration{
		TournamentID:   tournamentID,
		DivisionID:     divisionID,
		TeamName:       teamName,
		Players:        players,
		CaptainPhone:   strings.TrimSpace(input.CaptainPhone),
		WaiverAccepted: true,
		CreatedBy:      input.CreatedBy,
	}

	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrRegistrationDivisionInvalid) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	s.attachPhotoURL(registration)
	return registration, nil
}

func (s *registrationService) GetByID(ctx context.Context, id int) (*models.Registration, error) {
	registration, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration %d: %w", id, err)
	}
	s.attachPhotoURL(registration)
	return registration, nil
}

func (s *registrationService) ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.Registration, error) {
	registrations, err := s.registrationRepo.ListByDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for division %d: %w", divisionID, err)
	}
	for _, registration := range registrations {
		s.attachPhotoURL(registration)
	}
	return registrations, nil
}

func (s *registrationService) Update(ctx context.Context, id int, input UpdateRegistrationInput) (*models.Registration, error) {
	registration, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.TeamName != nil {
		teamName := strings.TrimSpace(*input.TeamName)
		if teamName == "" {
			return nil, ErrTeamNameRequired
		}
		registration.TeamName = teamName
	}
	if input.Players != nil {
		players := trimPlayers(*input.Players)
		if len(players) == 0 {
			return nil, ErrPlayersRequired
		}
		registration.Players = players
	}
	if input.CaptainPhone != nil {
		registration.CaptainPhone = strings.TrimSpace(*input.CaptainPhone)
	}

	if err := s.registrationRepo.Update(ctx, registration); err != nil {
		return nil, fmt.Errorf("failed to update registration %d: %w", id, err)
	}
	return registration, nil
}

func (s *registrationService) SetSeed(ctx context.Context, id int, seed *int) error {
	if seed != nil && *seed < 1 {
		return ErrValidationFailed
	}
	if err := s.registrationRepo.UpdateSeed(ctx, id, seed); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to update seed for registration %d: %w", id, err)
	}
	return nil
}

func (s *registrationService) SetFinish(ctx context.Context, id int, finish *int) error {
	if finish != nil && *finish < 1 {
		return ErrValidationFailed
	}
	if err := s.registrationRepo.UpdateFinish(ctx, id, finish); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to update finish for registration %d: %w", id, err)
	}
	return nil
}

func (s *registrationService) UploadPhoto(ctx context.Context, id int, contentType string, ext string, file io.Reader) (*models.Registration, error) {
	if s.uploader == nil {
		return nil, ErrForbiddenOperation
	}

	registration, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := path.Join("teams", fmt.Sprintf("%d%s", registration.ID, ext))
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team photo: %w", err)
	}

	oldKey := registration.PhotoKey
	if err := s.registrationRepo.UpdatePhotoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to persist photo key for registration %d: %w", id, err)
	}

	if oldKey != nil && *oldKey != result.Key {
		// Best effort; a stale object is harmless.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	registration.PhotoKey = &result.Key
	s.attachPhotoURL(registration)
	return registration, nil
}

func (s *registrationService) Delete(ctx context.Context, id int) error {
	registration, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to delete registration %d: %w", id, err)
	}

	if registration.PhotoKey != nil && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *registration.PhotoKey)
	}
	return nil
}

func (s *registrationService) attachPhotoURL(registration *models.Registration) {
	if registration == nil || registration.PhotoKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*registration.PhotoKey)
	if url != "" {
		registration.PhotoURL = &url
	}
}

func trimPlayers(players []string) []string {
	trimmed := make([]string, 0, len(players))
	for _, player := range players {
		if p := strings.TrimSpace(player); p != "" {
			trimmed = append(trimmed, p)
		}
	}
	return trimmed
}
