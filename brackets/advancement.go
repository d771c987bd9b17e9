package brackets

import (
	"errors"
	"fmt"

	"github.com/spikeline/tournament-system/models"
)

var ErrAdvancementGap = errors.New("no advancement mapping for this bracket position")

// Side identifies which half of a match a team occupies.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// SlotAssignment is one mutation the engine asks the persistence layer to
// apply: put this team (with roster) on this side of this match.
type SlotAssignment struct {
	MatchID int
	Side    Side
	TeamKey string
	Players []string
}

type advanceKey struct {
	teams int
	round int
	slot  int
}

type slotTarget struct {
	round int
	slot  int
	side  Side
}

// advanceTable forces the placement of every round-1 winner, keyed by team
// count and originating slot. The entries mirror the seeding laid down in the
// topology table and are not inferable from round/slot arithmetic: for 9 and
// 10 teams the play-in winners advance into other round-1 matches, and the
// remaining pairings follow the bracket's fixed wiring. A wrong entry here
// silently misseeds the bracket, so the table is covered literally by tests.
var advanceTable = map[advanceKey]slotTarget{
	// 5 teams: single quarterfinal feeds the semifinal where seed 1 waits.
	{5, 1, 1}: {2, 2, SideB},

	// 6 teams
	{6, 1, 1}: {2, 1, SideB},
	{6, 1, 2}: {2, 2, SideB},

	// 7 teams
	{7, 1, 1}: {2, 1, SideB},
	{7, 1, 2}: {2, 2, SideA},
	{7, 1, 3}: {2, 2, SideB},

	// 8 teams
	{8, 1, 1}: {2, 1, SideA},
	{8, 1, 2}: {2, 1, SideB},
	{8, 1, 3}: {2, 2, SideA},
	{8, 1, 4}: {2, 2, SideB},

	// 9 teams: slot 1 is the play-in, advancing within round 1.
	{9, 1, 1}: {1, 2, SideB},
	{9, 1, 2}: {2, 1, SideA},
	{9, 1, 3}: {2, 1, SideB},
	{9, 1, 4}: {2, 2, SideA},
	{9, 1, 5}: {2, 2, SideB},

	// 10 teams: slots 1 and 2 are play-ins, advancing within round 1.
	{10, 1, 1}: {1, 3, SideB},
	{10, 1, 2}: {1, 6, SideB},
	{10, 1, 3}: {2, 1, SideA},
	{10, 1, 4}: {2, 1, SideB},
	{10, 1, 5}: {2, 2, SideA},
	{10, 1, 6}: {2, 2, SideB},
}

// SideTeam is a resolved winner or loser of a completed match.
type SideTeam struct {
	Key     string
	Players []string
}

// WinnerLoser determines the winner and loser of a match from its
// authoritative score pair. Both are nil while either score is missing,
// and on a tie, which has no meaning in this sport and indicates a typo.
func WinnerLoser(m *models.BracketMatch) (winner, loser *SideTeam) {
	scoreA, scoreB := authoritativeScores(m.AdminLocked, m.ScoreA, m.ScoreB, m.PlayerScoreA, m.PlayerScoreB)
	if scoreA == nil || scoreB == nil || *scoreA == *scoreB {
		return nil, nil
	}
	if m.TeamA == nil || m.TeamB == nil {
		return nil, nil
	}
	a := &SideTeam{Key: *m.TeamA, Players: m.TeamAPlayers}
	b := &SideTeam{Key: *m.TeamB, Players: m.TeamBPlayers}
	if *scoreA > *scoreB {
		return a, b
	}
	return b, a
}

// TeamCount derives the bracket's team count from its match set. Every
// supported topology creates exactly teamCount-1 matches besides the bronze.
func TeamCount(all []*models.BracketMatch) int {
	n := 0
	for _, m := range all {
		if !m.IsBronze() {
			n++
		}
	}
	return n + 1
}

// AdvanceWinner computes the downstream mutations for a completed match:
// the winner into its next slot and, for semifinals with a bronze match
// present, the loser into the bronze. It never writes a team into a slot
// that already holds it, so re-saving the same result is a no-op.
func AdvanceWinner(completed *models.BracketMatch, all []*models.BracketMatch) ([]SlotAssignment, error) {
	winner, loser := WinnerLoser(completed)
	if winner == nil {
		return nil, nil
	}

	switch completed.Round {
	case models.RoundQuarterfinal:
		return advanceFromRoundOne(completed, winner, all)
	case models.RoundSemifinal:
		return advanceFromSemifinal(completed, winner, loser, all)
	case models.RoundFinal, models.RoundBronze:
		// Nothing downstream of the final or the bronze.
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: round %d slot %d", ErrAdvancementGap, completed.Round, completed.Slot)
	}
}

// advanceFromRoundOne places a quarterfinal or play-in winner via the forced
// mapping table. Play-in winners land in another round-1 match, everything
// else in its semifinal. A missing table entry means the bracket shape does
// not match any supported topology and must not be guessed at.
func advanceFromRoundOne(completed *models.BracketMatch, winner *SideTeam, all []*models.BracketMatch) ([]SlotAssignment, error) {
	teams := TeamCount(all)
	target, ok := advanceTable[advanceKey{teams: teams, round: completed.Round, slot: completed.Slot}]
	if !ok {
		return nil, fmt.Errorf("%w: %d teams, round %d slot %d", ErrAdvancementGap, teams, completed.Round, completed.Slot)
	}

	next := findMatch(all, target.round, target.slot)
	if next == nil {
		return nil, fmt.Errorf("%w: target round %d slot %d missing from bracket", ErrAdvancementGap, target.round, target.slot)
	}

	if sideHolds(next, target.side, winner.Key) {
		return nil, nil
	}
	return []SlotAssignment{{
		MatchID: next.ID,
		Side:    target.side,
		TeamKey: winner.Key,
		Players: winner.Players,
	}}, nil
}

// advanceFromSemifinal fills the final (and the bronze with the loser, when a
// bronze match exists) using the first-empty-side convention.
func advanceFromSemifinal(completed *models.BracketMatch, winner, loser *SideTeam, all []*models.BracketMatch) ([]SlotAssignment, error) {
	var assignments []SlotAssignment

	final := findMatch(all, models.RoundFinal, 1)
	if final != nil {
		if a, ok := fillFirstEmpty(final, winner); ok {
			assignments = append(assignments, a)
		}
	}

	if loser != nil {
		if bronze := findBronze(all); bronze != nil {
			if a, ok := fillFirstEmpty(bronze, loser); ok {
				assignments = append(assignments, a)
			}
		}
	}

	return assignments, nil
}

// fillFirstEmpty places the team on the first open side of the target match.
// No-op when the team already occupies either side. Both sides occupied by
// other teams should not occur with a correct topology; nothing is written.
func fillFirstEmpty(target *models.BracketMatch, team *SideTeam) (SlotAssignment, bool) {
	if teamOn(target.TeamA, team.Key) || teamOn(target.TeamB, team.Key) {
		return SlotAssignment{}, false
	}
	switch {
	case target.TeamA == nil:
		return SlotAssignment{MatchID: target.ID, Side: SideA, TeamKey: team.Key, Players: team.Players}, true
	case target.TeamB == nil:
		return SlotAssignment{MatchID: target.ID, Side: SideB, TeamKey: team.Key, Players: team.Players}, true
	default:
		return SlotAssignment{}, false
	}
}

func findMatch(all []*models.BracketMatch, round, slot int) *models.BracketMatch {
	for _, m := range all {
		if m.Round == round && m.Slot == slot && !m.IsBronze() {
			return m
		}
	}
	return nil
}

func findBronze(all []*models.BracketMatch) *models.BracketMatch {
	for _, m := range all {
		if m.IsBronze() {
			return m
		}
	}
	return nil
}

func sideHolds(m *models.BracketMatch, side Side, key string) bool {
	if side == SideA {
		return teamOn(m.TeamA, key)
	}
	return teamOn(m.TeamB, key)
}

func teamOn(ref *string, key string) bool {
	return ref != nil && *ref == key
}
