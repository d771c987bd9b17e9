package models

// UnseededSentinel sorts teams without an assigned seed after every seeded team.
const UnseededSentinel = 9999

// TeamStanding is derived from pool-play results, never persisted.
type TeamStanding struct {
	TeamID        string   `json:"teamId"`
	TeamName      string   `json:"teamName"`
	Players       []string `json:"players"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	PointsFor     int      `json:"pointsFor"`
	PointsAgainst int      `json:"pointsAgainst"`
	Diff          int      `json:"diff"`
	Seed          int      `json:"seed"`
	Color         string   `json:"color"`
}
