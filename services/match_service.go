package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spikeline/tournament-system/brackets"
	"github.com/spikeline/tournament-system/models"
	"github.com/spikeline/tournament-system/repositories"
)

type MatchService interface {
	GenerateSchedule(ctx context.Context, tournamentID, divisionID int) ([]*models.PoolMatch, error)
	CreateMatch(ctx context.Context, tournamentID, divisionID int, input CreateMatchInput) (*models.PoolMatch, error)
	ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.PoolMatch, error)
	SubmitAdminScore(ctx context.Context, matchID int, scoreA, scoreB int) (*models.PoolMatch, error)
	SubmitPlayerScore(ctx context.Context, matchID int, scoreA, scoreB int) (*models.PoolMatch, error)
	Resequence(ctx context.Context, tournamentID, divisionID int, orderedIDs []int) error
	Delete(ctx context.Context, matchID int) error
}

type CreateMatchInput struct {
	Pool  string `json:"pool"`
	TeamA string `json:"teamA"`
	TeamB string `json:"teamB"`
}

type matchService struct {
	poolMatchRepo    repositories.PoolMatchRepository
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	hub              *brackets.Hub
	now              func() time.Time
}

func NewMatchService(
	poolMatchRepo repositories.PoolMatchRepository,
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	hub *brackets.Hub,
) MatchService {
	return &matchService{
		poolMatchRepo:    poolMatchRepo,
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		hub:              hub,
		now:              time.Now,
	}
}

// GenerateSchedule wipes the division's pool schedule and rebuilds it from
// the current registrations: teams split into pools by seed, then paired
// round-robin with the small-pool extras.
func (s *matchService) GenerateSchedule(ctx context.Context, tournamentID, divisionID int) ([]*models.PoolMatch, error) {
	registrations, err := s.registrationRepo.ListByDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for division %d: %w", divisionID, err)
	}
	if len(registrations) < 2 {
		return nil, ErrNotEnoughTeams
	}

	if err := s.poolMatchRepo.DeleteByDivision(ctx, tournamentID, divisionID); err != nil {
		return nil, fmt.Errorf("failed to clear pool schedule for division %d: %w", divisionID, err)
	}

	pools := brackets.GeneratePools(registrations)
	created := make([]*models.PoolMatch, 0)
	sequence := 0
	for _, pool := range pools {
		for _, pairing := range brackets.GeneratePoolMatches(pool.Teams) {
			sequence++
			seq := sequence
			teamA := strconv.Itoa(pairing.TeamA.ID)
			teamB := strconv.Itoa(pairing.TeamB.ID)
			match := &models.PoolMatch{
				TournamentID: tournamentID,
				DivisionID:   divisionID,
				Pool:         pool.Name,
				TeamA:        &teamA,
				TeamB:        &teamB,
				TeamAPlayers: pairing.TeamA.Players,
				TeamBPlayers: pairing.TeamB.Players,
				Status:       models.MatchStatusPending,
				Sequence:     &seq,
			}
			if err := s.poolMatchRepo.Create(ctx, match); err != nil {
				return nil, fmt.Errorf("failed to create pool match: %w", err)
			}
			created = append(created, match)
		}
	}

	s.broadcast(divisionID, brackets.EventBracketUpdated, created)
	return created, nil
}

func (s *matchService) CreateMatch(ctx context.Context, tournamentID, divisionID int, input CreateMatchInput) (*models.PoolMatch, error) {
	if input.TeamA == "" || input.TeamB == "" || input.TeamA == input.TeamB {
		return nil, ErrValidationFailed
	}

	registrations, err := s.registrationRepo.ListByDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for division %d: %w", divisionID, err)
	}
	resolver := brackets.NewTeamResolver(registrations)

	match := &models.PoolMatch{
		TournamentID: tournamentID,
		DivisionID:   divisionID,
		Pool:         input.Pool,
		TeamA:        &input.TeamA,
		TeamB:        &input.TeamB,
		TeamAPlayers: []string{},
		TeamBPlayers: []string{},
		Status:       models.MatchStatusPending,
	}
	if reg, ok := resolver.Resolve(input.TeamA); ok {
		match.TeamAPlayers = reg.Players
	}
	if reg, ok := resolver.Resolve(input.TeamB); ok {
		match.TeamBPlayers = reg.Players
	}

	if err := s.poolMatchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrPoolMatchDivisionInvalid) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to create pool match: %w", err)
	}

	s.broadcast(divisionID, brackets.EventMatchUpdated, match)
	return match, nil
}

func (s *matchService) ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.PoolMatch, error) {
	matches, err := s.poolMatchRepo.ListByDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool matches for division %d: %w", divisionID, err)
	}
	return matches, nil
}

func (s *matchService) SubmitAdminScore(ctx context.Context, matchID int, scoreA, scoreB int) (*models.PoolMatch, error) {
	if scoreA < 0 || scoreB < 0 {
		return nil, ErrInvalidScore
	}

	if err := s.poolMatchRepo.UpdateAdminScore(ctx, matchID, scoreA, scoreB); err != nil {
		if errors.Is(err, repositories.ErrPoolMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to record admin score for match %d: %w", matchID, err)
	}

	return s.reloadAndBroadcast(ctx, matchID)
}

func (s *matchService) SubmitPlayerScore(ctx context.Context, matchID int, scoreA, scoreB int) (*models.PoolMatch, error) {
	if scoreA < 0 || scoreB < 0 {
		return nil, ErrInvalidScore
	}

	match, err := s.poolMatchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrPoolMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get pool match %d: %w", matchID, err)
	}
	if match.AdminLocked {
		return nil, ErrMatchLocked
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament %d: %w", match.TournamentID, err)
	}
	if !tournament.IsToday(s.now()) {
		return nil, ErrScoreEntryClosed
	}

	if err := s.poolMatchRepo.UpdatePlayerScore(ctx, matchID, scoreA, scoreB); err != nil {
		if errors.Is(err, repositories.ErrPoolMatchNotFound) {
			// The guarded update also hits zero rows when an admin locked
			// the match between our read and the write.
			return nil, ErrMatchLocked
		}
		return nil, fmt.Errorf("failed to record player score for match %d: %w", matchID, err)
	}

	return s.reloadAndBroadcast(ctx, matchID)
}

func (s *matchService) Resequence(ctx context.Context, tournamentID, divisionID int, orderedIDs []int) error {
	if len(orderedIDs) == 0 {
		return ErrValidationFailed
	}
	if err := s.poolMatchRepo.Resequence(ctx, tournamentID, divisionID, orderedIDs); err != nil {
		if errors.Is(err, repositories.ErrPoolMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to resequence pool matches for division %d: %w", divisionID, err)
	}

	matches, err := s.poolMatchRepo.ListByDivision(ctx, tournamentID, divisionID)
	if err == nil {
		s.broadcast(divisionID, brackets.EventBracketUpdated, matches)
	}
	return nil
}

func (s *matchService) Delete(ctx context.Context, matchID int) error {
	match, err := s.poolMatchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrPoolMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to get pool match %d: %w", matchID, err)
	}

	if err := s.poolMatchRepo.Delete(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrPoolMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete pool match %d: %w", matchID, err)
	}

	s.broadcast(match.DivisionID, brackets.EventMatchUpdated, match)
	return nil
}

func (s *matchService) reloadAndBroadcast(ctx context.Context, matchID int) (*models.PoolMatch, error) {
	match, err := s.poolMatchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload pool match %d: %w", matchID, err)
	}
	s.broadcast(match.DivisionID, brackets.EventMatchUpdated, match)
	return match, nil
}

func (s *matchService) broadcast(divisionID int, event string, payload interface{}) {
	if s.hub == nil {
		return
	}
	room := divisionRoom(divisionID)
	s.hub.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    event,
		Payload: payload,
		RoomID:  room,
	})
}
