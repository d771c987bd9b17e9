package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spikeline/tournament-system/models"
	"github.com/spikeline/tournament-system/repositories"
)

func TestTournamentService_CreateDivision_Validation(t *testing.T) {
	ctx := context.Background()

	tourRepo := new(mockTournamentRepo)
	tourRepo.On("GetByID", ctx, 1).Return(&models.Tournament{ID: 1}, nil)

	svc := NewTournamentService(tourRepo)

	_, err := svc.CreateDivision(ctx, 1, CreateDivisionInput{Name: "Open", TeamSize: 1})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateDivision(ctx, 1, CreateDivisionInput{Name: "  ", TeamSize: 2})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestTournamentService_GetDivision_WrongTournament(t *testing.T) {
	ctx := context.Background()

	tourRepo := new(mockTournamentRepo)
	tourRepo.On("GetDivisionByID", ctx, 5).Return(&models.Division{ID: 5, TournamentID: 2}, nil)

	svc := NewTournamentService(tourRepo)

	_, err := svc.GetDivision(ctx, 1, 5)
	assert.ErrorIs(t, err, ErrDivisionMismatch)
}

func TestTournamentService_AutoUpdateStatuses(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)

	tournaments := []models.Tournament{
		{ID: 1, Status: models.StatusUpcoming, EventDate: now},                   // event day, should activate
		{ID: 2, Status: models.StatusActive, EventDate: now.AddDate(0, 0, -1)},  // event over, should complete
		{ID: 3, Status: models.StatusUpcoming, EventDate: now.AddDate(0, 0, 7)}, // future, untouched
		{ID: 4, Status: models.StatusCompleted, EventDate: now.AddDate(0, 0, -30)},
	}

	tourRepo := new(mockTournamentRepo)
	tourRepo.On("List", ctx, repositories.ListTournamentsFilter{}).Return(tournaments, nil)
	tourRepo.On("UpdateStatus", ctx, 1, models.StatusActive).Return(nil)
	tourRepo.On("UpdateStatus", ctx, 2, models.StatusCompleted).Return(nil)

	svc := NewTournamentService(tourRepo)

	require.NoError(t, svc.AutoUpdateStatuses(ctx, now))
	tourRepo.AssertExpectations(t)
	tourRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, 3, mock.Anything)
	tourRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, 4, mock.Anything)
}
