package brackets

import (
	"sort"
	"strconv"

	"github.com/spikeline/tournament-system/models"
)

type tally struct {
	wins          int
	losses        int
	pointsFor     int
	pointsAgainst int
}

// ComputeStandings converts pool-play results into a ranked team list:
// wins descending, point differential descending, seed ascending (unseeded
// teams carry the sentinel seed and sort last). Only matches with a final
// status and both authoritative scores recorded contribute; every registered
// team appears exactly once, even with nothing played. A match referencing an
// unknown team is skipped entirely so it cannot corrupt other tallies.
func ComputeStandings(matches []*models.PoolMatch, registrations []*models.Registration) []models.TeamStanding {
	resolver := NewTeamResolver(registrations)
	tallies := make(map[int]*tally, len(registrations))

	for _, reg := range registrations {
		tallies[reg.ID] = &tally{}
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusFinal {
			continue
		}
		scoreA, scoreB := authoritativeScores(m.AdminLocked, m.ScoreA, m.ScoreB, m.PlayerScoreA, m.PlayerScoreB)
		if scoreA == nil || scoreB == nil {
			continue
		}
		if m.TeamA == nil || m.TeamB == nil {
			continue
		}
		regA, okA := resolver.Resolve(*m.TeamA)
		regB, okB := resolver.Resolve(*m.TeamB)
		if !okA || !okB {
			continue
		}

		ta := tallies[regA.ID]
		tb := tallies[regB.ID]
		ta.pointsFor += *scoreA
		ta.pointsAgainst += *scoreB
		tb.pointsFor += *scoreB
		tb.pointsAgainst += *scoreA

		switch {
		case *scoreA > *scoreB:
			ta.wins++
			tb.losses++
		case *scoreB > *scoreA:
			tb.wins++
			ta.losses++
		}
	}

	colors := TeamColorMap(registrations)

	standings := make([]models.TeamStanding, 0, len(registrations))
	for _, reg := range registrations {
		t := tallies[reg.ID]
		seed := models.UnseededSentinel
		if reg.Seed != nil {
			seed = *reg.Seed
		}
		teamID := strconv.Itoa(reg.ID)
		standings = append(standings, models.TeamStanding{
			TeamID:        teamID,
			TeamName:      reg.TeamName,
			Players:       reg.Players,
			Wins:          t.wins,
			Losses:        t.losses,
			PointsFor:     t.pointsFor,
			PointsAgainst: t.pointsAgainst,
			Diff:          t.pointsFor - t.pointsAgainst,
			Seed:          seed,
			Color:         colors[teamID],
		})
	}

	sortStandings(standings)
	return standings
}

// sortStandings applies the seeding comparator: wins, then point diff,
// then the admin-assigned seed. sort.SliceStable keeps registration order
// for full ties.
func sortStandings(standings []models.TeamStanding) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Diff != b.Diff {
			return a.Diff > b.Diff
		}
		return a.Seed < b.Seed
	})
}

// authoritativeScores picks the pair the winner is computed from: admin
// scores once an admin has locked the match, participant scores until then.
func authoritativeScores(adminLocked bool, scoreA, scoreB, playerScoreA, playerScoreB *int) (*int, *int) {
	if adminLocked {
		return scoreA, scoreB
	}
	return playerScoreA, playerScoreB
}
