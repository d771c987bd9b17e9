package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikeline/tournament-system/models"
)

func manyRegs(n int) []*models.Registration {
	regs := make([]*models.Registration, 0, n)
	for i := 1; i <= n; i++ {
		seed := i
		regs = append(regs, &models.Registration{ID: i, TeamName: "Team", Seed: &seed})
	}
	return regs
}

func TestGeneratePoolsSingleSmallPool(t *testing.T) {
	pools := GeneratePools(manyRegs(6))
	require.Len(t, pools, 1)
	assert.Equal(t, "Pool A", pools[0].Name)
	assert.Len(t, pools[0].Teams, 6)
}

func TestGeneratePoolsSplitsLargeField(t *testing.T) {
	pools := GeneratePools(manyRegs(10))
	require.Len(t, pools, 2)
	assert.Equal(t, "Pool A", pools[0].Name)
	assert.Equal(t, "Pool B", pools[1].Name)
	assert.Len(t, pools[0].Teams, 5)
	assert.Len(t, pools[1].Teams, 5)

	// Seed order carries into pool assignment.
	assert.Equal(t, 1, *pools[0].Teams[0].Seed)
	assert.Equal(t, 6, *pools[1].Teams[0].Seed)
}

func TestGeneratePoolsUnseededLast(t *testing.T) {
	regs := manyRegs(3)
	regs[0].Seed = nil

	pools := GeneratePools(regs)
	require.Len(t, pools, 1)
	assert.Nil(t, pools[0].Teams[2].Seed)
}

func TestGeneratePoolMatchesGameCounts(t *testing.T) {
	tests := []struct {
		teams       int
		wantMatches int
	}{
		{3, 6},  // double round robin
		{4, 7},  // round robin plus one extra
		{5, 10}, // full round robin
		{6, 14}, // round robin minus the 1v2 pairing
	}
	for _, tt := range tests {
		matches := GeneratePoolMatches(manyRegs(tt.teams))
		assert.Len(t, matches, tt.wantMatches, "%d teams", tt.teams)
	}
}

func TestGeneratePoolMatchesSixTeamsSkipsTopPairing(t *testing.T) {
	teams := manyRegs(6)
	matches := GeneratePoolMatches(teams)
	for _, m := range matches {
		if m.TeamA.ID == teams[0].ID && m.TeamB.ID == teams[1].ID {
			t.Fatal("six-team schedule must not pair the top two seeds")
		}
	}
}

func TestGeneratePoolMatchesFourTeamsExtraGame(t *testing.T) {
	teams := manyRegs(4)
	matches := GeneratePoolMatches(teams)

	lowSeedGames := 0
	for _, m := range matches {
		if m.TeamA.ID == teams[2].ID && m.TeamB.ID == teams[3].ID {
			lowSeedGames++
		}
	}
	assert.Equal(t, 2, lowSeedGames, "two lowest seeds play each other twice")
}
