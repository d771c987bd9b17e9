package brackets

import (
	"fmt"
	"sort"

	"github.com/spikeline/tournament-system/models"
)

// Pool is a pool-play group with its teams in seed order.
type Pool struct {
	Name  string
	Teams []*models.Registration
}

// Pairing is a generated pool matchup, before persistence.
type Pairing struct {
	TeamA *models.Registration
	TeamB *models.Registration
}

// GeneratePools splits registrations into pools: a single pool for up to six
// teams, otherwise pools of four to six named "Pool A", "Pool B", and so on,
// filled in seed order (unseeded teams last).
func GeneratePools(registrations []*models.Registration) []Pool {
	teams := make([]*models.Registration, len(registrations))
	copy(teams, registrations)
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i].Seed, teams[j].Seed
		if a == nil && b == nil {
			return false
		}
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	if len(teams) <= 6 {
		return []Pool{{Name: "Pool A", Teams: teams}}
	}

	numPools := (len(teams) + 5) / 6
	poolSize := (len(teams) + numPools - 1) / numPools

	pools := make([]Pool, 0, numPools)
	for i := 0; i < numPools; i++ {
		start := i * poolSize
		end := start + poolSize
		if end > len(teams) {
			end = len(teams)
		}
		pools = append(pools, Pool{
			Name:  fmt.Sprintf("Pool %c", 'A'+i),
			Teams: teams[start:end],
		})
	}
	return pools
}

// GeneratePoolMatches produces the pool's schedule, targeting roughly four
// games per team: three teams play a double round robin, four teams get one
// extra game between the two lowest seeds, six teams skip the 1-vs-2 pairing,
// everything else is a plain round robin.
func GeneratePoolMatches(teams []*models.Registration) []Pairing {
	n := len(teams)
	matches := make([]Pairing, 0)

	switch n {
	case 3:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				matches = append(matches, Pairing{TeamA: teams[i], TeamB: teams[j]})
				matches = append(matches, Pairing{TeamA: teams[i], TeamB: teams[j]})
			}
		}
	case 4:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				matches = append(matches, Pairing{TeamA: teams[i], TeamB: teams[j]})
			}
		}
		matches = append(matches, Pairing{TeamA: teams[2], TeamB: teams[3]})
	case 6:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if i == 0 && j == 1 {
					continue
				}
				matches = append(matches, Pairing{TeamA: teams[i], TeamB: teams[j]})
			}
		}
	default:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				matches = append(matches, Pairing{TeamA: teams[i], TeamB: teams[j]})
			}
		}
	}

	return matches
}
