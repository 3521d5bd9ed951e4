package confidence

import (
	"math"
	"time"
)

const (
	daysPerMonth = 30.0
	day          = 24 * time.Hour
)

// Freshness maps the time since a skill was last used to a decay score of
// 0, 20, 50, 80 or 100. Months are counted as 30-day blocks.
func Freshness(lastUsed *time.Time, now time.Time) float64 {
	if lastUsed == nil || lastUsed.IsZero() {
		return 0
	}

	elapsed := now.Sub(*lastUsed)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	days := math.Ceil(float64(elapsed) / float64(day))
	months := days / daysPerMonth

	switch {
	case months < 1:
		return 100
	case months < 6:
		return 80
	case months < 12:
		return 50
	default:
		return 20
	}
}
