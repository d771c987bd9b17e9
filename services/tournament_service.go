package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spikeline/tournament-system/models"
	"github.com/spikeline/tournament-system/repositories"
)

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id int) error

	CreateDivision(ctx context.Context, tournamentID int, input CreateDivisionInput) (*models.Division, error)
	GetDivision(ctx context.Context, tournamentID, divisionID int) (*models.Division, error)
	DeleteDivision(ctx context.Context, tournamentID, divisionID int) error

	AutoUpdateStatuses(ctx context.Context, now time.Time) error
}

type CreateTournamentInput struct {
	Name      string    `json:"name"`
	Location  *string   `json:"location"`
	EventDate time.Time `json:"event_date"`
}

type UpdateTournamentInput struct {
	Name      *string                  `json:"name"`
	Location  *string                  `json:"location"`
	EventDate *time.Time               `json:"event_date"`
	Status    *models.TournamentStatus `json:"status"`
}

type CreateDivisionInput struct {
	Name     string `json:"name"`
	TeamSize int    `json:"team_size"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidationFailed
	}
	if input.EventDate.IsZero() {
		return nil, ErrValidationFailed
	}

	tournament := &models.Tournament{
		Name:      name,
		Location:  input.Location,
		EventDate: input.EventDate,
		Status:    models.StatusUpcoming,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	divisions, err := s.tournamentRepo.ListDivisions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions for tournament %d: %w", id, err)
	}
	tournament.Divisions = divisions

	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrValidationFailed
		}
		tournament.Name = name
	}
	if input.Location != nil {
		tournament.Location = input.Location
	}
	if input.EventDate != nil {
		if input.EventDate.IsZero() {
			return nil, ErrValidationFailed
		}
		tournament.EventDate = *input.EventDate
	}
	if input.Status != nil {
		switch *input.Status {
		case models.StatusUpcoming, models.StatusActive, models.StatusCompleted:
			tournament.Status = *input.Status
		default:
			return nil, ErrValidationFailed
		}
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return nil
}

// AutoUpdateStatuses moves tournaments along upcoming -> active -> completed
// based on the event date. Active on the event date itself, completed after.
func (s *tournamentService) AutoUpdateStatuses(ctx context.Context, now time.Time) error {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{})
	if err != nil {
		return fmt.Errorf("failed to list tournaments for status update: %w", err)
	}

	for _, tournament := range tournaments {
		if tournament.Status == models.StatusCompleted {
			continue
		}

		want := tournament.Status
		switch {
		case tournament.IsToday(now):
			want = models.StatusActive
		case now.After(tournament.EventDate) && !tournament.IsToday(now):
			want = models.StatusCompleted
		default:
			want = models.StatusUpcoming
		}

		if want == tournament.Status {
			continue
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, tournament.ID, want); err != nil {
			return fmt.Errorf("failed to update status for tournament %d: %w", tournament.ID, err)
		}
	}
	return nil
}

func (s *tournamentService) CreateDivision(ctx context.Context, tournamentID int, input CreateDivisionInput) (*models.Division, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidationFailed
	}
	if input.TeamSize < 2 || input.TeamSize > 6 {
		return nil, ErrValidationFailed
	}

	division := &models.Division{
		TournamentID: tournamentID,
		Name:         name,
		TeamSize:     input.TeamSize,
	}

	if err := s.tournamentRepo.CreateDivision(ctx, division); err != nil {
		if errors.Is(err, repositories.ErrDivisionNameConflict) {
			return nil, ErrDivisionNameConflict
		}
		return nil, fmt.Errorf("failed to create division: %w", err)
	}
	return division, nil
}

func (s *tournamentService) GetDivision(ctx context.Context, tournamentID, divisionID int) (*models.Division, error) {
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
	return division, nil
}

func (s *tournamentService) DeleteDivision(ctx context.Context, tournamentID, divisionID int) error {
	if _, err := s.GetDivision(ctx, tournamentID, divisionID); err != nil {
		return err
	}
	if err := s.tournamentRepo.DeleteDivision(ctx, divisionID); err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return ErrDivisionNotFound
		}
		return fmt.Errorf("failed to delete division %d: %w", divisionID, err)
	}
	return nil
}
