package models

import "time"

type MatchStatus string

const (
	MatchStatusPending MatchStatus = "pending"
	MatchStatusFinal   MatchStatus = "final"
)

// PoolMatch is a pool-play match. TeamA/TeamB hold a registration id rendered
// as a string, or a legacy team name; resolution goes through brackets.TeamResolver.
type PoolMatch struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	DivisionID   int         `json:"division_id" db:"division_id"`
	Pool         string      `json:"pool" db:"pool"`
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
	Sequence     *int        `json:"sequence,omitempty" db:"sequence"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}
