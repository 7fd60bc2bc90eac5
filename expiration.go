package holdings

import (
	"github.com/etnz/holdings/date"
)

// NearestExpiration returns the available expiration closest to requested.
//
// Distance is the absolute number of days. Among equally distant candidates
// the earliest date wins, whatever the order of available. It returns false
// when available is empty.
func NearestExpiration(requested date.Date, available []date.Date) (date.Date, bool) {
	var best date.Date
	found := false
	bestDist := 0
	for _, exp := range available {
		dist := date.AbsDays(requested, exp)
		switch {
		case !found, dist < bestDist:
			best, bestDist, found = exp, dist, true
		case dist == bestDist && exp.Before(best):
			best = exp
		}
	}
	return best, found
}
