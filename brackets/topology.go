package brackets

import (
	"errors"

	"github.com/spikeline/tournament-system/models"
)

var (
	ErrNotEnoughTeams       = errors.New("not enough teams to generate a bracket (minimum 2)")
	ErrUnsupportedTeamCount = errors.New("bracket topology not defined for this team count (maximum 10)")
)

// matchSpec describes one slot of the initial bracket. seedA/seedB are
// 1-based seed numbers; 0 leaves the side empty, awaiting advancement.
type matchSpec struct {
	round int
	slot  int
	seedA int
	seedB int
}

// topologies is the fixed per-team-count seeding table. Round numbering is
// absolute (1 = QF/play-in, 2 = SF, 3 = final, 4 = bronze) regardless of how
// many rounds the bracket actually uses. For 9 and 10 teams the first one or
// two round-1 slots are play-ins whose winners feed other round-1 matches.
var topologies = map[int][]matchSpec{
	2: {
		{models.RoundFinal, 1, 1, 2},
	},
	3: {
		{models.RoundSemifinal, 1, 2, 3},
		{models.RoundFinal, 1, 1, 0},
	},
	4: {
		{models.RoundSemifinal, 1, 1, 4},
		{models.RoundSemifinal, 2, 2, 3},
		{models.RoundFinal, 1, 0, 0},
	},
	5: {
		{models.RoundQuarterfinal, 1, 4, 5},
		{models.RoundSemifinal, 1, 2, 3},
		{models.RoundSemifinal, 2, 1, 0},
		{models.RoundFinal, 1, 0, 0},
	},
	6: {
		{models.RoundQuarterfinal, 1, 3, 6},
		{models.RoundQuarterfinal, 2, 4, 5},
		{models.RoundSemifinal, 1, 2, 0},
		{models.RoundSemifinal, 2, 1, 0},
		{models.RoundFinal, 1, 0, 0},
	},
	7: {
		{models.RoundQuarterfinal, 1, 4, 5},
		{models.RoundQuarterfinal, 2, 2, 7},
		{models.RoundQuarterfinal, 3, 3, 6},
		{models.RoundSemifinal, 1, 1, 0},
		{models.RoundSemifinal, 2, 0, 0},
		{models.RoundFinal, 1, 0, 0},
	},
	8: {
		{models.RoundQuarterfinal, 1, 1, 8},
		{models.RoundQuarterfinal, 2, 4, 5},
		{models.RoundQuarterfinal, 3, 2, 7},
		{models.RoundQuarterfinal, 4, 3, 6},
		{models.RoundSemifinal, 1, 0, 0},
		{models.RoundSemifinal, 2, 0, 0},
		{models.RoundFinal, 1, 0, 0},
	},
	9: {
		{models.RoundQuarterfinal, 1, 8, 9}, // play-in
		{models.RoundQuarterfinal, 2, 1, 0}, // awaits play-in winner
		{models.RoundQuarterfinal, 3, 4, 5},
		{models.RoundQuarterfinal, 4, 3, 6},
		{models.RoundQuarterfinal, 5, 2, 7},
		{models.RoundSemifinal, 1, 0, 0},
		{models.RoundSemifinal, 2, 0, 0},
		{models.RoundFinal, 1, 0, 0},
	},
	10: {
		{models.RoundQuarterfinal, 1, 8, 9},  // play-in 1
		{models.RoundQuarterfinal, 2, 7, 10}, // play-in 2
		{models.RoundQuarterfinal, 3, 1, 0},  // awaits play-in 1 winner
		{models.RoundQuarterfinal, 4, 4, 5},
		{models.RoundQuarterfinal, 5, 3, 6},
		{models.RoundQuarterfinal, 6, 2, 0}, // awaits play-in 2 winner
		{models.RoundSemifinal, 1, 0, 0},
		{models.RoundSemifinal, 2, 0, 0},
		{models.RoundFinal, 1, 0, 0},
	},
}

// GenerateBracket builds the full initial match set for a division's playoff
// bracket from the ranked standings. The input is re-sorted with the seeding
// comparator so callers cannot accidentally pass an unranked list. The result
// carries no ids; the caller persists the records after wiping any previous
// bracket for the division.
func GenerateBracket(standings []models.TeamStanding, includeBronze bool) ([]*models.BracketMatch, error) {
	if len(standings) < 2 {
		return nil, ErrNotEnoughTeams
	}

	specs, ok := topologies[len(standings)]
	if !ok {
		return nil, ErrUnsupportedTeamCount
	}

	seeds := make([]models.TeamStanding, len(standings))
	copy(seeds, standings)
	sortStandings(seeds)

	matches := make([]*models.BracketMatch, 0, len(specs)+1)
	for _, spec := range specs {
		m := &models.BracketMatch{
			Round:        spec.round,
			Slot:         spec.slot,
			TeamAPlayers: []string{},
			TeamBPlayers: []string{},
			Status:       models.MatchStatusPending,
		}
		if spec.seedA > 0 {
			team := seeds[spec.seedA-1]
			m.TeamA = &team.TeamID
			m.TeamAPlayers = team.Players
		}
		if spec.seedB > 0 {
			team := seeds[spec.seedB-1]
			m.TeamB = &team.TeamID
			m.TeamBPlayers = team.Players
		}
		matches = append(matches, m)
	}

	if includeBronze {
		label := models.BronzeLabel
		matches = append(matches, &models.BracketMatch{
			Round:        models.RoundBronze,
			Slot:         1,
			Label:        &label,
			TeamAPlayers: []string{},
			TeamBPlayers: []string{},
			Status:       models.MatchStatusPending,
		})
	}

	return matches, nil
}

// SupportedTeamCounts lists the team counts the topology table covers.
func SupportedTeamCounts() (min, max int) {
	return 2, 10
}
