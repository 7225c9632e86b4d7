package availability

import (
	"fmt"
	"sort"

	"mentorhub/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// BuildDefaultGrid returns all 35 (hari, sesi) cells marked available, days
// Senin..Minggu, sessions "1".."5".
func BuildDefaultGrid() []models.AvailabilitySlot {
	grid := make([]models.AvailabilitySlot, 0, models.GridSize)
	for _, hari := range models.Days {
		for _, sesi := range models.Sessions {
			grid = append(grid, models.AvailabilitySlot{
				Hari:        hari,
				Sesi:        models.FlexString(sesi),
				IsAvailable: true,
				Reason:      "",
				KelasID:     nil,
			})
		}
	}
	return grid
}

// MergeGrid overlays the sparse rows the platform stores onto the default grid.
// Rows are matched on exact (hari, sesi); rows outside the grid are ignored.
func MergeGrid(server []models.AvailabilitySlot) []models.AvailabilitySlot {
	grid := BuildDefaultGrid()
	if len(server) == 0 {
		return grid
	}
	index := make(map[string]int, len(grid))
	for i, slot := range grid {
		index[cellKey(slot.Hari, string(slot.Sesi))] = i
	}
	for _, row := range server {
		i, ok := index[cellKey(row.Hari, string(row.Sesi))]
		if !ok {
			continue
		}
		grid[i] = copySlot(row)
	}
	return grid
}

// Toggle returns a copy of grid with the (hari, sesi) cell's availability set.
// An unknown cell leaves the copy unchanged.
func Toggle(grid []models.AvailabilitySlot, hari, sesi string, available bool) []models.AvailabilitySlot {
	out := cloneGrid(grid)
	for i := range out {
		if out[i].Hari == hari && string(out[i].Sesi) == sesi {
			out[i].IsAvailable = models.FlexBool(available)
			break
		}
	}
	return out
}

// IsCell reports whether (hari, sesi) is inside the grid's key space.
func IsCell(hari, sesi string) bool {
	return dayIndex(hari) >= 0 && sessionIndex(sesi) >= 0
}

// ValidateGrid checks that grid is a complete submission: exactly one valid
// slot per (hari, sesi).
func ValidateGrid(grid []models.AvailabilitySlot) error {
	if len(grid) != models.GridSize {
		return &ValidationError{Field: "data", Message: fmt.Sprintf("grid must have %d slots, got %d", models.GridSize, len(grid))}
	}
	seen := make(map[string]bool, len(grid))
	for i := range grid {
		if err := validate.Struct(&grid[i]); err != nil {
			return &ValidationError{Field: fmt.Sprintf("data[%d]", i), Message: err.Error()}
		}
		key := cellKey(grid[i].Hari, string(grid[i].Sesi))
		if seen[key] {
			return &ValidationError{Field: fmt.Sprintf("data[%d]", i), Message: "duplicate slot " + key}
		}
		seen[key] = true
	}
	return nil
}

// SortGrid returns grid in day-then-session order.
func SortGrid(grid []models.AvailabilitySlot) []models.AvailabilitySlot {
	out := make([]models.AvailabilitySlot, len(grid))
	copy(out, grid)
	pos := func(s models.AvailabilitySlot) int {
		return dayIndex(s.Hari)*len(models.Sessions) + sessionIndex(string(s.Sesi))
	}
	sort.SliceStable(out, func(i, j int) bool { return pos(out[i]) < pos(out[j]) })
	return out
}

func cellKey(hari, sesi string) string {
	return hari + "/" + sesi
}

func dayIndex(hari string) int {
	for i, d := range models.Days {
		if d == hari {
			return i
		}
	}
	return -1
}

func sessionIndex(sesi string) int {
	for i, s := range models.Sessions {
		if s == sesi {
			return i
		}
	}
	return -1
}

func copySlot(s models.AvailabilitySlot) models.AvailabilitySlot {
	if s.KelasID != nil {
		id := *s.KelasID
		s.KelasID = &id
	}
	return s
}

func cloneGrid(grid []models.AvailabilitySlot) []models.AvailabilitySlot {
	out := make([]models.AvailabilitySlot, len(grid))
	for i, s := range grid {
		out[i] = copySlot(s)
	}
	return out
}
