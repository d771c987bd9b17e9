package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spikeline/tournament-system/brackets"
	"github.com/spikeline/tournament-system/models"
	"github.com/spikeline/tournament-system/repositories"
)

// BracketView is the bracket as the client renders it: the match list plus
// the team count the advancement tables were derived from.
type BracketView struct {
	Matches   []*models.BracketMatch `json:"matches"`
	TeamCount int                    `json:"teamCount"`
}

type BracketService interface {
	Generate(ctx context.Context, tournamentID, divisionID int, includeBronze bool) (*BracketView, error)
	Reset(ctx context.Context, tournamentID, divisionID int) error
	Get(ctx context.Context, tournamentID, divisionID int) (*BracketView, error)
	SubmitAdminScore(ctx context.Context, matchID int, scoreA, scoreB int) (*BracketView, error)
	SubmitPlayerScore(ctx context.Context, matchID int, scoreA, scoreB int) (*BracketView, error)
}

type bracketService struct {
	db               *sql.DB
	bracketMatchRepo repositories.BracketMatchRepository
	registrationRepo repositories.RegistrationRepository
	poolMatchRepo    repositories.PoolMatchRepository
	tournamentRepo   repositories.TournamentRepository
	hub              *brackets.Hub
	logger           *slog.Logger
	now              func() time.Time
}

func NewBracketService(
	db *sql.DB,
	bracketMatchRepo repositories.BracketMatchRepository,
	registrationRepo repositories.RegistrationRepository,
	poolMatchRepo repositories.PoolMatchRepository,
	tournamentRepo repositories.TournamentRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		db:               db,
		bracketMatchRepo: bracketMatchRepo,
		registrationRepo: registrationRepo,
		poolMatchRepo:    poolMatchRepo,
		tournamentRepo:   tournamentRepo,
		hub:              hub,
		logger:           logger,
		now:              time.Now,
	}
}

// Generate ranks the division's teams from pool results and replaces any
// existing bracket with a fresh one, atomically: either the old bracket is
// wiped and every new match saved, or nothing changes.
func (s *bracketService) Generate(ctx context.Context, tournamentID, divisionID int, includeBronze bool) (*BracketView, error) {
	registrations, err := s.registrationRepo.ListByDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for division %d: %w", divisionID, err)
	}
	poolMatches, err := s.poolMatchRepo.ListByDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool matches for division %d: %w", divisionID, err)
	}

	standings := brackets.ComputeStandings(poolMatches, registrations)

	generated, err := brackets.GenerateBracket(standings, includeBronze)
	if err != nil {
		switch {
		case errors.Is(err, brackets.ErrNotEnoughTeams):
			return nil, ErrNotEnoughTeams
		case errors.Is(err, brackets.ErrUnsupportedTeamCount):
			return nil, ErrTooManyTeams
		}
		return nil, fmt.Errorf("failed to generate bracket for division %d: %w", divisionID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.bracketMatchRepo.DeleteByDivision(ctx, tx, tournamentID, divisionID); err != nil {
		return nil, fmt.Errorf("failed to clear bracket for division %d: %w", divisionID, err)
	}
	for _, match := range generated {
		match.TournamentID = tournamentID
		match.DivisionID = divisionID
		if err := s.bracketMatchRepo.Create(ctx, tx, match); err != nil {
			return nil, fmt.Errorf("failed to create bracket match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bracket for division %d: %w", divisionID, err)
	}

	s.logger.Info("bracket generated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("division_id", divisionID),
		slog.Int("teams", len(standings)),
		slog.Bool("bronze", includeBronze),
	)

	view := &BracketView{Matches: generated, TeamCount: brackets.TeamCount(generated)}
	s.broadcast(divisionID, brackets.EventBracketUpdated, view)
	return view, nil
}

func (s *bracketService) Reset(ctx context.Context, tournamentID, divisionID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.bracketMatchRepo.DeleteByDivision(ctx, tx, tournamentID, divisionID); err != nil {
		return fmt.Errorf("failed to reset bracket for division %d: %w", divisionID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bracket reset for division %d: %w", divisionID, err)
	}

	s.logger.Info("bracket reset",
		slog.Int("tournament_id", tournamentID),
		slog.Int("division_id", divisionID),
	)
	s.broadcast(divisionID, brackets.EventBracketReset, nil)
	return nil
}

func (s *bracketService) Get(ctx context.Context, tournamentID, divisionID int) (*BracketView, error) {
	matches, err := s.bracketMatchRepo.ListByDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bracket matches for division %d: %w", divisionID, err)
	}
	if len(matches) == 0 {
		return &BracketView{Matches: matches}, nil
	}
	return &BracketView{Matches: matches, TeamCount: brackets.TeamCount(matches)}, nil
}

func (s *bracketService) SubmitAdminScore(ctx context.Context, matchID int, scoreA, scoreB int) (*BracketView, error) {
	if scoreA < 0 || scoreB < 0 {
		return nil, ErrInvalidScore
	}

	if err := s.bracketMatchRepo.UpdateAdminScore(ctx, matchID, scoreA, scoreB); err != nil {
		if errors.Is(err, repositories.ErrBracketMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to record admin score for bracket match %d: %w", matchID, err)
	}

	return s.advanceAndBroadcast(ctx, matchID)
}

func (s *bracketService) SubmitPlayerScore(ctx context.Context, matchID int, scoreA, scoreB int) (*BracketView, error) {
	if scoreA < 0 || scoreB < 0 {
		return nil, ErrInvalidScore
	}

	match, err := s.bracketMatchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get bracket match %d: %w", matchID, err)
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

	if err := s.bracketMatchRepo.UpdatePlayerScore(ctx, matchID, scoreA, scoreB); err != nil {
		if errors.Is(err, repositories.ErrBracketMatchNotFound) {
			// Zero rows from the guarded update means an admin locked the
			// match after our read.
			return nil, ErrMatchLocked
		}
		return nil, fmt.Errorf("failed to record player score for bracket match %d: %w", matchID, err)
	}

	return s.advanceAndBroadcast(ctx, matchID)
}

// advanceAndBroadcast reloads the bracket, runs the advancement engine for
// the scored match, applies its slot mutations, and pushes the refreshed
// bracket to the division room.
func (s *bracketService) advanceAndBroadcast(ctx context.Context, matchID int) (*BracketView, error) {
	match, err := s.bracketMatchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload bracket match %d: %w", matchID, err)
	}

	all, err := s.bracketMatchRepo.ListByDivision(ctx, match.TournamentID, match.DivisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bracket matches for division %d: %w", match.DivisionID, err)
	}

	assignments, err := brackets.AdvanceWinner(match, all)
	if err != nil {
		return nil, fmt.Errorf("failed to advance winner of bracket match %d: %w", matchID, err)
	}
	for _, assignment := range assignments {
		if err := s.bracketMatchRepo.FillSlot(ctx, assignment); err != nil {
			return nil, fmt.Errorf("failed to apply advancement to match %d: %w", assignment.MatchID, err)
		}
	}

	if len(assignments) > 0 {
		all, err = s.bracketMatchRepo.ListByDivision(ctx, match.TournamentID, match.DivisionID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload bracket for division %d: %w", match.DivisionID, err)
		}
	}

	view := &BracketView{Matches: all, TeamCount: brackets.TeamCount(all)}
	s.broadcast(match.DivisionID, brackets.EventBracketUpdated, view)
	return view, nil
}

func (s *bracketService) broadcast(divisionID int, event string, payload interface{}) {
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
