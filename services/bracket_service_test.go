package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spikeline/tournament-system/brackets"
	"github.com/spikeline/tournament-system/models"
)

func newTestBracketService(bracketRepo *mockBracketMatchRepo, tourRepo *mockTournamentRepo, now time.Time) *bracketService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewBracketService(nil, bracketRepo, new(mockRegistrationRepo), new(mockPoolMatchRepo), tourRepo, nil, logger).(*bracketService)
	svc.now = func() time.Time { return now }
	return svc
}

// fiveTeamBracket is the persisted shape right after generation for five
// teams: one play-in quarterfinal, two semifinals, and the final.
func fiveTeamBracket() []*models.BracketMatch {
	return []*models.BracketMatch{
		{ID: 101, Round: models.RoundQuarterfinal, Slot: 1, TeamA: strPtr("4"), TeamB: strPtr("5"), Status: models.MatchStatusPending},
		{ID: 102, Round: models.RoundSemifinal, Slot: 1, TeamA: strPtr("2"), TeamB: strPtr("3"), Status: models.MatchStatusPending},
		{ID: 103, Round: models.RoundSemifinal, Slot: 2, TeamA: strPtr("1"), Status: models.MatchStatusPending},
		{ID: 104, Round: models.RoundFinal, Slot: 1, Status: models.MatchStatusPending},
	}
}

func TestBracketService_SubmitAdminScore_AdvancesWinner(t *testing.T) {
	ctx := context.Background()

	all := fiveTeamBracket()
	completed := &models.BracketMatch{
		ID: 101, TournamentID: 1, DivisionID: 2,
		Round: models.RoundQuarterfinal, Slot: 1,
		TeamA: strPtr("4"), TeamB: strPtr("5"),
		TeamAPlayers: []string{"Dee", "Dan"},
		ScoreA:       intPtr(21), ScoreB: intPtr(15),
		Status: models.MatchStatusFinal, AdminLocked: true,
	}
	all[0] = completed

	bracketRepo := new(mockBracketMatchRepo)
	bracketRepo.On("UpdateAdminScore", ctx, 101, 21, 15).Return(nil)
	bracketRepo.On("GetByID", ctx, 101).Return(completed, nil)
	bracketRepo.On("ListByDivision", ctx, 1, 2).Return(all, nil)
	bracketRepo.On("FillSlot", ctx, brackets.SlotAssignment{
		MatchID: 103,
		Side:    brackets.SideB,
		TeamKey: "4",
		Players: []string{"Dee", "Dan"},
	}).Return(nil)

	svc := newTestBracketService(bracketRepo, new(mockTournamentRepo), time.Now())

	view, err := svc.SubmitAdminScore(ctx, 101, 21, 15)
	require.NoError(t, err)
	assert.Equal(t, 5, view.TeamCount)
	bracketRepo.AssertExpectations(t)
}

func TestBracketService_SubmitAdminScore_FinalDoesNotAdvance(t *testing.T) {
	ctx := context.Background()

	all := fiveTeamBracket()
	final := &models.BracketMatch{
		ID: 104, TournamentID: 1, DivisionID: 2,
		Round: models.RoundFinal, Slot: 1,
		TeamA: strPtr("1"), TeamB: strPtr("2"),
		ScoreA: intPtr(25), ScoreB: intPtr(23),
		Status: models.MatchStatusFinal, AdminLocked: true,
	}
	all[3] = final

	bracketRepo := new(mockBracketMatchRepo)
	bracketRepo.On("UpdateAdminScore", ctx, 104, 25, 23).Return(nil)
	bracketRepo.On("GetByID", ctx, 104).Return(final, nil)
	bracketRepo.On("ListByDivision", ctx, 1, 2).Return(all, nil)

	svc := newTestBracketService(bracketRepo, new(mockTournamentRepo), time.Now())

	_, err := svc.SubmitAdminScore(ctx, 104, 25, 23)
	require.NoError(t, err)
	bracketRepo.AssertNotCalled(t, "FillSlot", mock.Anything, mock.Anything)
}

func TestBracketService_SubmitPlayerScore_ClosedWindow(t *testing.T) {
	ctx := context.Background()
	eventDate := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	bracketRepo := new(mockBracketMatchRepo)
	tourRepo := new(mockTournamentRepo)
	bracketRepo.On("GetByID", ctx, 55).Return(&models.BracketMatch{ID: 55, TournamentID: 9}, nil)
	tourRepo.On("GetByID", ctx, 9).Return(&models.Tournament{ID: 9, EventDate: eventDate}, nil)

	svc := newTestBracketService(bracketRepo, tourRepo, eventDate.AddDate(0, 0, 2))

	_, err := svc.SubmitPlayerScore(ctx, 55, 21, 19)
	assert.ErrorIs(t, err, ErrScoreEntryClosed)
	bracketRepo.AssertNotCalled(t, "UpdatePlayerScore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBracketService_SubmitPlayerScore_LockedMatch(t *testing.T) {
	ctx := context.Background()

	bracketRepo := new(mockBracketMatchRepo)
	bracketRepo.On("GetByID", ctx, 55).Return(&models.BracketMatch{ID: 55, AdminLocked: true}, nil)

	svc := newTestBracketService(bracketRepo, new(mockTournamentRepo), time.Now())

	_, err := svc.SubmitPlayerScore(ctx, 55, 21, 19)
	assert.ErrorIs(t, err, ErrMatchLocked)
}

func TestBracketService_Get_EmptyBracket(t *testing.T) {
	ctx := context.Background()

	bracketRepo := new(mockBracketMatchRepo)
	bracketRepo.On("ListByDivision", ctx, 1, 2).Return([]*models.BracketMatch{}, nil)

	svc := newTestBracketService(bracketRepo, new(mockTournamentRepo), time.Now())

	view, err := svc.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.Empty(t, view.Matches)
	assert.Zero(t, view.TeamCount)
}
