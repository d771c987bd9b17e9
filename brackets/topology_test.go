package brackets

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikeline/tournament-system/models"
)

// rankedTeams builds standings already in seed order: team "n" is seed n.
func rankedTeams(n int) []models.TeamStanding {
	teams := make([]models.TeamStanding, 0, n)
	for i := 1; i <= n; i++ {
		teams = append(teams, models.TeamStanding{
			TeamID:   strconv.Itoa(i),
			TeamName: fmt.Sprintf("Team %d", i),
			Players:  []string{fmt.Sprintf("P%da", i), fmt.Sprintf("P%db", i)},
			Wins:     n - i, // strictly decreasing so the sort keeps the order
			Seed:     i,
		})
	}
	return teams
}

func findSlot(t *testing.T, matches []*models.BracketMatch, round, slot int) *models.BracketMatch {
	t.Helper()
	for _, m := range matches {
		if m.Round == round && m.Slot == slot && !m.IsBronze() {
			return m
		}
	}
	t.Fatalf("no match at round %d slot %d", round, slot)
	return nil
}

func teamAt(m *models.BracketMatch, side Side) string {
	ref := m.TeamA
	if side == SideB {
		ref = m.TeamB
	}
	if ref == nil {
		return ""
	}
	return *ref
}

func TestGenerateBracketRejectsBadCounts(t *testing.T) {
	_, err := GenerateBracket(rankedTeams(1), false)
	assert.ErrorIs(t, err, ErrNotEnoughTeams)

	_, err = GenerateBracket(nil, false)
	assert.ErrorIs(t, err, ErrNotEnoughTeams)

	_, err = GenerateBracket(rankedTeams(11), false)
	assert.ErrorIs(t, err, ErrUnsupportedTeamCount)
}

func TestGenerateBracketMatchCounts(t *testing.T) {
	// Every supported topology creates exactly teamCount-1 matches, plus the
	// bronze when requested.
	for n := 2; n <= 10; n++ {
		t.Run(fmt.Sprintf("%d_teams", n), func(t *testing.T) {
			matches, err := GenerateBracket(rankedTeams(n), false)
			require.NoError(t, err)
			assert.Len(t, matches, n-1)
			assert.Equal(t, n, TeamCount(matches))

			withBronze, err := GenerateBracket(rankedTeams(n), true)
			require.NoError(t, err)
			assert.Len(t, withBronze, n)
			assert.Equal(t, n, TeamCount(withBronze))

			bronze := findBronze(withBronze)
			require.NotNil(t, bronze)
			assert.Equal(t, models.RoundBronze, bronze.Round)
			assert.Nil(t, bronze.TeamA)
			assert.Nil(t, bronze.TeamB)
		})
	}
}

func TestGenerateBracketEverySeedPlacedOnce(t *testing.T) {
	for n := 2; n <= 10; n++ {
		t.Run(fmt.Sprintf("%d_teams", n), func(t *testing.T) {
			matches, err := GenerateBracket(rankedTeams(n), false)
			require.NoError(t, err)

			placed := make(map[string]int)
			for _, m := range matches {
				if m.TeamA != nil {
					placed[*m.TeamA]++
				}
				if m.TeamB != nil {
					placed[*m.TeamB]++
				}
			}
			require.Len(t, placed, n)
			for seed, count := range placed {
				assert.Equal(t, 1, count, "seed %s placed %d times", seed, count)
			}
		})
	}
}

func TestGenerateBracketTwoTeams(t *testing.T) {
	matches, err := GenerateBracket(rankedTeams(2), false)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	final := findSlot(t, matches, models.RoundFinal, 1)
	assert.Equal(t, "1", teamAt(final, SideA))
	assert.Equal(t, "2", teamAt(final, SideB))
	assert.Equal(t, models.MatchStatusPending, final.Status)
}

func TestGenerateBracketThreeTeams(t *testing.T) {
	matches, err := GenerateBracket(rankedTeams(3), false)
	require.NoError(t, err)

	sf := findSlot(t, matches, models.RoundSemifinal, 1)
	assert.Equal(t, "2", teamAt(sf, SideA))
	assert.Equal(t, "3", teamAt(sf, SideB))

	// Seed 1 is byed straight into the final.
	final := findSlot(t, matches, models.RoundFinal, 1)
	assert.Equal(t, "1", teamAt(final, SideA))
	assert.Nil(t, final.TeamB)
}

func TestGenerateBracketFourTeams(t *testing.T) {
	matches, err := GenerateBracket(rankedTeams(4), false)
	require.NoError(t, err)

	sf1 := findSlot(t, matches, models.RoundSemifinal, 1)
	assert.Equal(t, "1", teamAt(sf1, SideA))
	assert.Equal(t, "4", teamAt(sf1, SideB))

	sf2 := findSlot(t, matches, models.RoundSemifinal, 2)
	assert.Equal(t, "2", teamAt(sf2, SideA))
	assert.Equal(t, "3", teamAt(sf2, SideB))

	final := findSlot(t, matches, models.RoundFinal, 1)
	assert.Nil(t, final.TeamA)
	assert.Nil(t, final.TeamB)
}

func TestGenerateBracketFiveTeams(t *testing.T) {
	matches, err := GenerateBracket(rankedTeams(5), false)
	require.NoError(t, err)

	qf := findSlot(t, matches, models.RoundQuarterfinal, 1)
	assert.Equal(t, "4", teamAt(qf, SideA))
	assert.Equal(t, "5", teamAt(qf, SideB))

	sf1 := findSlot(t, matches, models.RoundSemifinal, 1)
	assert.Equal(t, "2", teamAt(sf1, SideA))
	assert.Equal(t, "3", teamAt(sf1, SideB))

	sf2 := findSlot(t, matches, models.RoundSemifinal, 2)
	assert.Equal(t, "1", teamAt(sf2, SideA))
	assert.Nil(t, sf2.TeamB)
}

func TestGenerateBracketEightTeams(t *testing.T) {
	matches, err := GenerateBracket(rankedTeams(8), false)
	require.NoError(t, err)

	wantPairs := map[int][2]string{
		1: {"1", "8"},
		2: {"4", "5"},
		3: {"2", "7"},
		4: {"3", "6"},
	}
	for slot, pair := range wantPairs {
		qf := findSlot(t, matches, models.RoundQuarterfinal, slot)
		assert.Equal(t, pair[0], teamAt(qf, SideA), "QF slot %d teamA", slot)
		assert.Equal(t, pair[1], teamAt(qf, SideB), "QF slot %d teamB", slot)
	}

	for slot := 1; slot <= 2; slot++ {
		sf := findSlot(t, matches, models.RoundSemifinal, slot)
		assert.Nil(t, sf.TeamA)
		assert.Nil(t, sf.TeamB)
	}
}

func TestGenerateBracketNineTeams(t *testing.T) {
	matches, err := GenerateBracket(rankedTeams(9), false)
	require.NoError(t, err)

	playIn := findSlot(t, matches, models.RoundQuarterfinal, 1)
	assert.Equal(t, "8", teamAt(playIn, SideA))
	assert.Equal(t, "9", teamAt(playIn, SideB))

	// Seed 1 waits for the play-in winner.
	qf2 := findSlot(t, matches, models.RoundQuarterfinal, 2)
	assert.Equal(t, "1", teamAt(qf2, SideA))
	assert.Nil(t, qf2.TeamB)

	wantPairs := map[int][2]string{
		3: {"4", "5"},
		4: {"3", "6"},
		5: {"2", "7"},
	}
	for slot, pair := range wantPairs {
		qf := findSlot(t, matches, models.RoundQuarterfinal, slot)
		assert.Equal(t, pair[0], teamAt(qf, SideA))
		assert.Equal(t, pair[1], teamAt(qf, SideB))
	}
}

func TestGenerateBracketTenTeams(t *testing.T) {
	matches, err := GenerateBracket(rankedTeams(10), false)
	require.NoError(t, err)

	playIn1 := findSlot(t, matches, models.RoundQuarterfinal, 1)
	assert.Equal(t, "8", teamAt(playIn1, SideA))
	assert.Equal(t, "9", teamAt(playIn1, SideB))

	playIn2 := findSlot(t, matches, models.RoundQuarterfinal, 2)
	assert.Equal(t, "7", teamAt(playIn2, SideA))
	assert.Equal(t, "10", teamAt(playIn2, SideB))

	qf3 := findSlot(t, matches, models.RoundQuarterfinal, 3)
	assert.Equal(t, "1", teamAt(qf3, SideA))
	assert.Nil(t, qf3.TeamB)

	qf6 := findSlot(t, matches, models.RoundQuarterfinal, 6)
	assert.Equal(t, "2", teamAt(qf6, SideA))
	assert.Nil(t, qf6.TeamB)
}

func TestGenerateBracketReseedsUnsortedInput(t *testing.T) {
	teams := rankedTeams(4)
	// Shuffle: worst-ranked first. The generator must re-rank by the
	// wins/diff/seed comparator before placing anyone.
	shuffled := []models.TeamStanding{teams[3], teams[1], teams[0], teams[2]}

	matches, err := GenerateBracket(shuffled, false)
	require.NoError(t, err)

	sf1 := findSlot(t, matches, models.RoundSemifinal, 1)
	assert.Equal(t, "1", teamAt(sf1, SideA))
	assert.Equal(t, "4", teamAt(sf1, SideB))
}
