package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikeline/tournament-system/models"
)

func reg(id int, name string, seed *int, players ...string) *models.Registration {
	return &models.Registration{ID: id, TeamName: name, Seed: seed, Players: players}
}

func seedOf(n int) *int { return &n }

func finalMatch(teamA, teamB string, scoreA, scoreB int) *models.PoolMatch {
	return &models.PoolMatch{
		TeamA:       &teamA,
		TeamB:       &teamB,
		ScoreA:      &scoreA,
		ScoreB:      &scoreB,
		Status:      models.MatchStatusFinal,
		AdminLocked: true,
	}
}

func TestComputeStandingsIncludesEveryRegistration(t *testing.T) {
	regs := []*models.Registration{
		reg(1, "Aces", seedOf(1)),
		reg(2, "Blockers", seedOf(2)),
		reg(3, "Crushers", nil),
	}

	// No matches at all: everyone still appears, zeroed out.
	standings := ComputeStandings(nil, regs)
	require.Len(t, standings, 3)
	for _, s := range standings {
		assert.Zero(t, s.Wins)
		assert.Zero(t, s.Losses)
		assert.Zero(t, s.Diff)
	}

	// One match between two of the three: the third still appears.
	standings = ComputeStandings([]*models.PoolMatch{finalMatch("1", "2", 21, 15)}, regs)
	require.Len(t, standings, 3)
}

func TestComputeStandingsTally(t *testing.T) {
	regs := []*models.Registration{
		reg(1, "Aces", seedOf(1)),
		reg(2, "Blockers", seedOf(2)),
	}
	matches := []*models.PoolMatch{
		finalMatch("1", "2", 21, 15),
		finalMatch("2", "1", 21, 18),
	}

	standings := ComputeStandings(matches, regs)
	require.Len(t, standings, 2)

	// Diff accumulates additively across both meetings: Aces +6 then -3.
	var aces, blockers models.TeamStanding
	for _, s := range standings {
		switch s.TeamName {
		case "Aces":
			aces = s
		case "Blockers":
			blockers = s
		}
	}
	assert.Equal(t, 1, aces.Wins)
	assert.Equal(t, 1, aces.Losses)
	assert.Equal(t, 3, aces.Diff)
	assert.Equal(t, 1, blockers.Wins)
	assert.Equal(t, -3, blockers.Diff)
}

func TestComputeStandingsSortOrder(t *testing.T) {
	regs := []*models.Registration{
		reg(1, "OneWin", seedOf(3)),
		reg(2, "TwoWins", seedOf(4)),
		reg(3, "OneWinBetterDiff", seedOf(2)),
		reg(4, "Doormat", seedOf(1)),
		reg(5, "Unseeded", nil),
	}
	matches := []*models.PoolMatch{
		finalMatch("2", "4", 21, 10), // TwoWins over Doormat
		finalMatch("2", "5", 21, 15), // TwoWins over Unseeded
		finalMatch("1", "4", 21, 19), // OneWin over Doormat, diff +2
		finalMatch("3", "4", 21, 11), // OneWinBetterDiff over Doormat, diff +10
	}

	standings := ComputeStandings(matches, regs)
	require.Len(t, standings, 5)

	assert.Equal(t, "TwoWins", standings[0].TeamName)
	assert.Equal(t, "OneWinBetterDiff", standings[1].TeamName)
	assert.Equal(t, "OneWin", standings[2].TeamName)
	// Zero-win teams order by diff: Unseeded lost once (-6), Doormat three
	// times (-23).
	assert.Equal(t, "Unseeded", standings[3].TeamName)
	assert.Equal(t, "Doormat", standings[4].TeamName)
	assert.Equal(t, models.UnseededSentinel, standings[3].Seed)
}

func TestComputeStandingsSeedTiebreak(t *testing.T) {
	regs := []*models.Registration{
		reg(1, "SeedTwo", seedOf(2)),
		reg(2, "SeedOne", seedOf(1)),
	}

	standings := ComputeStandings(nil, regs)
	require.Len(t, standings, 2)
	assert.Equal(t, "SeedOne", standings[0].TeamName)
}

func TestComputeStandingsResolvesByName(t *testing.T) {
	regs := []*models.Registration{
		reg(7, "Setters", seedOf(1)),
		reg(8, "Diggers", seedOf(2)),
	}
	// Legacy record: teamA referenced by display name, teamB by id.
	standings := ComputeStandings([]*models.PoolMatch{finalMatch("Setters", "8", 21, 12)}, regs)
	require.Len(t, standings, 2)
	assert.Equal(t, "Setters", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Wins)
	assert.Equal(t, 1, standings[1].Losses)
}

func TestComputeStandingsSkipsUnknownTeam(t *testing.T) {
	regs := []*models.Registration{
		reg(1, "Known", seedOf(1)),
		reg(2, "AlsoKnown", seedOf(2)),
	}
	matches := []*models.PoolMatch{
		finalMatch("Known", "Ghost Team", 21, 5),
		finalMatch("1", "2", 21, 15),
	}

	standings := ComputeStandings(matches, regs)
	require.Len(t, standings, 2)
	// The ghost match is excluded entirely: Known gets credit only for the
	// real match, and no phantom entry shows up.
	assert.Equal(t, "Known", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Wins)
	assert.Equal(t, 6, standings[0].Diff)
}

func TestComputeStandingsAdminScoresTakePrecedence(t *testing.T) {
	a, b := "1", "2"
	adminA, adminB := 21, 15
	playerA, playerB := 10, 21
	m := &models.PoolMatch{
		TeamA: &a, TeamB: &b,
		ScoreA: &adminA, ScoreB: &adminB,
		PlayerScoreA: &playerA, PlayerScoreB: &playerB,
		Status:      models.MatchStatusFinal,
		AdminLocked: true,
	}
	regs := []*models.Registration{reg(1, "A", seedOf(1)), reg(2, "B", seedOf(2))}

	standings := ComputeStandings([]*models.PoolMatch{m}, regs)
	assert.Equal(t, "A", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Wins)

	// Without the admin lock the participant scores decide.
	m.AdminLocked = false
	standings = ComputeStandings([]*models.PoolMatch{m}, regs)
	assert.Equal(t, "B", standings[0].TeamName)
}

func TestComputeStandingsIgnoresPendingAndPartialScores(t *testing.T) {
	a, b := "1", "2"
	score := 21
	pending := &models.PoolMatch{
		TeamA: &a, TeamB: &b,
		ScoreA: &score, ScoreB: &score,
		Status:      models.MatchStatusPending,
		AdminLocked: true,
	}
	halfScored := &models.PoolMatch{
		TeamA: &a, TeamB: &b,
		ScoreA:      &score,
		Status:      models.MatchStatusFinal,
		AdminLocked: true,
	}
	regs := []*models.Registration{reg(1, "A", seedOf(1)), reg(2, "B", seedOf(2))}

	standings := ComputeStandings([]*models.PoolMatch{pending, halfScored}, regs)
	for _, s := range standings {
		assert.Zero(t, s.Wins)
		assert.Zero(t, s.Diff)
	}
}
