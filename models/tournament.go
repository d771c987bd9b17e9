package models

import "time"

type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
)

type Tournament struct {
	ID        int              `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Location  *string          `json:"location,omitempty" db:"location"`
	EventDate time.Time        `json:"event_date" db:"event_date"`
	Status    TournamentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`

	Divisions []Division `json:"divisions,omitempty" db:"-"`
}

// IsToday reports whether the tournament's event date is the current date,
// which is the window in which participants may enter scores themselves.
func (t *Tournament) IsToday(now time.Time) bool {
	y1, m1, d1 := t.EventDate.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

type Division struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	TeamSize     int       `json:"team_size" db:"team_size"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
