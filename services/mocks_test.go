package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spikeline/tournament-system/brackets"
	"github.com/spikeline/tournament-system/models"
	"github.com/spikeline/tournament-system/repositories"
)

type mockPoolMatchRepo struct {
	mock.Mock
}

func (m *mockPoolMatchRepo) Create(ctx context.Context, match *models.PoolMatch) error {
	return m.Called(ctx, match).Error(0)
}

func (m *mockPoolMatchRepo) GetByID(ctx context.Context, id int) (*models.PoolMatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PoolMatch), args.Error(1)
}

func (m *mockPoolMatchRepo) ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.PoolMatch, error) {
	args := m.Called(ctx, tournamentID, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PoolMatch), args.Error(1)
}

func (m *mockPoolMatchRepo) UpdateAdminScore(ctx context.Context, id int, scoreA, scoreB int) error {
	return m.Called(ctx, id, scoreA, scoreB).Error(0)
}

func (m *mockPoolMatchRepo) UpdatePlayerScore(ctx context.Context, id int, playerScoreA, playerScoreB int) error {
	return m.Called(ctx, id, playerScoreA, playerScoreB).Error(0)
}

func (m *mockPoolMatchRepo) Resequence(ctx context.Context, tournamentID, divisionID int, orderedIDs []int) error {
	return m.Called(ctx, tournamentID, divisionID, orderedIDs).Error(0)
}

func (m *mockPoolMatchRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPoolMatchRepo) DeleteByDivision(ctx context.Context, tournamentID, divisionID int) error {
	return m.Called(ctx, tournamentID, divisionID).Error(0)
}

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) Create(ctx context.Context, registration *models.Registration) error {
	return m.Called(ctx, registration).Error(0)
}

func (m *mockRegistrationRepo) GetByID(ctx context.Context, id int) (*models.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.Registration, error) {
	args := m.Called(ctx, tournamentID, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) Update(ctx context.Context, registration *models.Registration) error {
	return m.Called(ctx, registration).Error(0)
}

func (m *mockRegistrationRepo) UpdateSeed(ctx context.Context, id int, seed *int) error {
	return m.Called(ctx, id, seed).Error(0)
}

func (m *mockRegistrationRepo) UpdateFinish(ctx context.Context, id int, finish *int) error {
	return m.Called(ctx, id, finish).Error(0)
}

func (m *mockRegistrationRepo) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	return m.Called(ctx, id, photoKey).Error(0)
}

func (m *mockRegistrationRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockTournamentRepo struct {
	mock.Mock
}

func (m *mockTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	return m.Called(ctx, tournament).Error(0)
}

func (m *mockTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *mockTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tournament), args.Error(1)
}

func (m *mockTournamentRepo) Update(ctx context.Context, tournament *models.Tournament) error {
	return m.Called(ctx, tournament).Error(0)
}

func (m *mockTournamentRepo) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockTournamentRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTournamentRepo) CreateDivision(ctx context.Context, division *models.Division) error {
	return m.Called(ctx, division).Error(0)
}

func (m *mockTournamentRepo) GetDivisionByID(ctx context.Context, id int) (*models.Division, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Division), args.Error(1)
}

func (m *mockTournamentRepo) ListDivisions(ctx context.Context, tournamentID int) ([]models.Division, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Division), args.Error(1)
}

func (m *mockTournamentRepo) DeleteDivision(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockBracketMatchRepo struct {
	mock.Mock
}

func (m *mockBracketMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.BracketMatch) error {
	return m.Called(ctx, exec, match).Error(0)
}

func (m *mockBracketMatchRepo) GetByID(ctx context.Context, id int) (*models.BracketMatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BracketMatch), args.Error(1)
}

func (m *mockBracketMatchRepo) ListByDivision(ctx context.Context, tournamentID, divisionID int) ([]*models.BracketMatch, error) {
	args := m.Called(ctx, tournamentID, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BracketMatch), args.Error(1)
}

func (m *mockBracketMatchRepo) UpdateAdminScore(ctx context.Context, id int, scoreA, scoreB int) error {
	return m.Called(ctx, id, scoreA, scoreB).Error(0)
}

func (m *mockBracketMatchRepo) UpdatePlayerScore(ctx context.Context, id int, playerScoreA, playerScoreB int) error {
	return m.Called(ctx, id, playerScoreA, playerScoreB).Error(0)
}

func (m *mockBracketMatchRepo) FillSlot(ctx context.Context, assignment brackets.SlotAssignment) error {
	return m.Called(ctx, assignment).Error(0)
}

func (m *mockBracketMatchRepo) DeleteByDivision(ctx context.Context, exec repositories.SQLExecutor, tournamentID, divisionID int) error {
	return m.Called(ctx, exec, tournamentID, divisionID).Error(0)
}
