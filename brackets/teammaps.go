package brackets

import (
	"strconv"

	"github.com/spikeline/tournament-system/models"
)

// Fixed palette so a team keeps its color across standings and bracket views.
var teamPalette = []string{
	"#e6194b", "#3cb44b", "#ffd700", "#4363d8",
	"#ff8c00", "#911eb4", "#46f0f0", "#f032e6",
	"#8b4513", "#fabebe", "#008080", "#e6beff",
	"#9a6324", "#fffac8", "#800000", "#aaffc3",
	"#808000", "#ffd8b1", "#000075", "#808080",
}

const neutralColor = "#999"

// TeamNameMap maps registration id to the bracket display name.
func TeamNameMap(registrations []*models.Registration) map[string]string {
	names := make(map[string]string, len(registrations))
	for _, reg := range registrations {
		names[strconv.Itoa(reg.ID)] = reg.DisplayName()
	}
	return names
}

// TeamColorMap assigns palette colors by registration order.
func TeamColorMap(registrations []*models.Registration) map[string]string {
	colors := make(map[string]string, len(registrations))
	for i, reg := range registrations {
		colors[strconv.Itoa(reg.ID)] = teamPalette[i%len(teamPalette)]
	}
	return colors
}

// TeamSeedMap maps registration id to the assigned seed, falling back to
// registration order when the admin has not seeded the team yet.
func TeamSeedMap(registrations []*models.Registration) map[string]int {
	seeds := make(map[string]int, len(registrations))
	for i, reg := range registrations {
		seed := i + 1
		if reg.Seed != nil {
			seed = *reg.Seed
		}
		seeds[strconv.Itoa(reg.ID)] = seed
	}
	return seeds
}
