package models

import "time"

// Registration is a team's entry into a division. Seed is the admin-assigned
// tiebreak value; nil until the admin seeds the division. Finish is the final
// placement recorded after the tournament.
type Registration struct {
	ID             int       `json:"id" db:"id"`
	TournamentID   int       `json:"tournament_id" db:"tournament_id"`
	DivisionID     int       `json:"division_id" db:"division_id"`
	TeamName       string    `json:"teamName" db:"team_name"`
	Players        []string  `json:"players" db:"players"`
	CaptainPhone   string    `json:"captainPhone" db:"captain_phone"`
	WaiverAccepted bool      `json:"waiverAccepted" db:"waiver_accepted"`
	Seed           *int      `json:"seed" db:"seed"`
	Finish         *int      `json:"finish" db:"finish"`
	CreatedBy      string    `json:"created_by" db:"created_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`
}

// DisplayName is how the team shows up in brackets and standings:
// the joined player list when present, otherwise the team name.
func (r *Registration) DisplayName() string {
	if len(r.Players) == 0 {
		return r.TeamName
	}
	name := r.Players[0]
	for _, p := range r.Players[1:] {
		name += " / " + p
	}
	return name
}
