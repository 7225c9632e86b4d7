// Package conflict renders schedule conflicts reported by a failed grid save.
package conflict

import (
	"fmt"

	"mentorhub/models"
)

// Describe returns the display line for one conflict. Kinds the dashboard does
// not know get a generic line so new server-side kinds stay visible.
func Describe(c models.ScheduleConflict) string {
	switch c.Type {
	case models.ConflictDoubleBooking:
		return fmt.Sprintf("Double booking at %s session %s", c.Tanggal, c.Sesi)
	case models.ConflictSameClassTwice:
		return fmt.Sprintf("Same class twice on the same day (%s)", c.Tanggal)
	default:
		return fmt.Sprintf("Unrecognized conflict %q at %s session %s", c.Type, c.Tanggal, c.Sesi)
	}
}

// Report renders conflicts in order, one line each.
func Report(conflicts []models.ScheduleConflict) []string {
	lines := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		lines = append(lines, Describe(c))
	}
	return lines
}
