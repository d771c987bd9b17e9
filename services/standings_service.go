package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/spikeline/tournament-system/brackets"
	"github.com/spikeline/tournament-system/models"
	"github.com/spikeline/tournament-system/repositories"
)

// DivisionStandings bundles the ranked table with the lookup maps the
// scoreboard renders from.
type DivisionStandings struct {
	Standings  []models.TeamStanding `json:"standings"`
	TeamNames  map[string]string     `json:"teamNames"`
	TeamColors map[string]string     `json:"teamColors"`
	TeamSeeds  map[string]int        `json:"teamSeeds"`
}

type StandingsService interface {
	GetStandings(ctx context.Context, tournamentID, divisionID int) (*DivisionStandings, error)
}

type standingsService struct {
	registrationRepo repositories.RegistrationRepository
	poolMatchRepo    repositories.PoolMatchRepository
}

func NewStandingsService(
	registrationRepo repositories.RegistrationRepository,
	poolMatchRepo repositories.PoolMatchRepository,
) StandingsService {
	return &standingsService{
		registrationRepo: registrationRepo,
		poolMatchRepo:    poolMatchRepo,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, tournamentID, divisionID int) (*DivisionStandings, error) {
	var (
		registrations []*models.Registration
		matches       []*models.PoolMatch
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		registrations, err = s.registrationRepo.ListByDivision(gCtx, tournamentID, divisionID)
		if err != nil {
			return fmt.Errorf("failed to list registrations for division %d: %w", divisionID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.poolMatchRepo.ListByDivision(gCtx, tournamentID, divisionID)
		if err != nil {
			return fmt.Errorf("failed to list pool matches for division %d: %w", divisionID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DivisionStandings{
		Standings:  brackets.ComputeStandings(matches, registrations),
		TeamNames:  brackets.TeamNameMap(registrations),
		TeamColors: brackets.TeamColorMap(registrations),
		TeamSeeds:  brackets.TeamSeedMap(registrations),
	}, nil
}
