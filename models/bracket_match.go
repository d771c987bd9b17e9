package models

import "time"

// Bracket round numbering is fixed regardless of bracket size:
// 1 = quarterfinal / play-in tier, 2 = semifinal, 3 = final, 4 = bronze.
const (
	RoundQuarterfinal = 1
	RoundSemifinal    = 2
	RoundFinal        = 3
	RoundBronze       = 4
)

const BronzeLabel = "Bronze"

// BracketMatch is one slot of a division's playoff bracket. A nil TeamA/TeamB
// side is awaiting advancement from an upstream match.
type BracketMatch struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	DivisionID   int         `json:"division_id" db:"division_id"`
	Round        int         `json:"round" db:"round"`
	Slot         int         `json:"slot" db:"slot"`
	Label        *string     `json:"label,omitempty" db:"label"`
	TeamA        *string     `json:"teamA" db:"team_a"`
	TeamB        *string     `json:"teamB" db:"team_b"`
	TeamAPlayers []string    `json:"teamAPlayers" db:"team_a_players"`
	TeamBPlayers []string    `json:"teamBPlayers" db:"team_b_players"`
	ScoreA       *int        `json:"scoreA" db:"score_a"`
	ScoreB       *int        `json:"scoreB" db:"score_b"`
	PlayerScoreA *int        `json:"playerScoreA" db:"player_score_a"`
	PlayerScoreB *int        `json:"playerScoreB" db:"player_score_b"`
	Status       MatchStatus `json:"status" db:"status"`
	AdminLocked  bool        `json:"adminLocked" db:"admin_locked"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

func (m *BracketMatch) IsBronze() bool {
	return m.Round == RoundBronze || (m.Label != nil && *m.Label == BronzeLabel)
}
