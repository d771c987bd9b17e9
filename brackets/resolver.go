package brackets

import (
	"strconv"

	"github.com/spikeline/tournament-system/models"
)

// TeamResolver normalizes a stored team reference to its registration.
// Match records may carry either a registration id or a raw team name
// (legacy documents used names before ids were introduced), so resolution
// tries the id first and falls back to the display name.
type TeamResolver interface {
	Resolve(key string) (*models.Registration, bool)
}

type registrationResolver struct {
	byID   map[string]*models.Registration
	byName map[string]*models.Registration
}

func NewTeamResolver(registrations []*models.Registration) TeamResolver {
	r := &registrationResolver{
		byID:   make(map[string]*models.Registration, len(registrations)),
		byName: make(map[string]*models.Registration, len(registrations)),
	}
	for _, reg := range registrations {
		r.byID[strconv.Itoa(reg.ID)] = reg
		r.byName[reg.TeamName] = reg
	}
	return r
}

func (r *registrationResolver) Resolve(key string) (*models.Registration, bool) {
	if key == "" {
		return nil, false
	}
	if reg, ok := r.byID[key]; ok {
		return reg, true
	}
	if reg, ok := r.byName[key]; ok {
		return reg, true
	}
	return nil, false
}
