package models

import "time"

// Teaching days in grid order.
const (
	Senin  = "Senin"
	Selasa = "Selasa"
	Rabu   = "Rabu"
	Kamis  = "Kamis"
	Jumat  = "Jumat"
	Sabtu  = "Sabtu"
	Minggu = "Minggu"
)

// Days is the fixed row order of an availability grid.
var Days = []string{Senin, Selasa, Rabu, Kamis, Jumat, Sabtu, Minggu}

// Sessions is the fixed column order of an availability grid.
var Sessions = []string{"1", "2", "3", "4", "5"}

// GridSize is the number of (hari, sesi) cells in a full grid.
const GridSize = 7 * 5

// AvailabilitySlot is one (hari, sesi) cell of a mentor's weekly availability.
type AvailabilitySlot struct {
	Hari        string     `json:"hari" validate:"required,oneof=Senin Selasa Rabu Kamis Jumat Sabtu Minggu"`
	Sesi        FlexString `json:"sesi" validate:"required,oneof=1 2 3 4 5"`
	IsAvailable FlexBool   `json:"is_available"`
	Reason      string     `json:"reason"`
	KelasID     *int64     `json:"kelas_id"`
}

// SaveAvailabilityRequest is the wholesale grid submission body.
type SaveAvailabilityRequest struct {
	MentorID int64              `json:"mentor_id"`
	MingguKe int                `json:"minggu_ke"`
	Data     []AvailabilitySlot `json:"data"`
}

// ScheduleConflict is reported by the platform when a grid save collides with
// existing sessions. It is never stored.
type ScheduleConflict struct {
	Type    string     `json:"type"`
	Tanggal string     `json:"tanggal"`
	Sesi    FlexString `json:"sesi"`
}

const (
	ConflictDoubleBooking  = "double_booking"
	ConflictSameClassTwice = "same_class_twice"
)

// GridState is the lifecycle of one grid editing session.
type GridState string

const (
	GridLoading GridState = "loading"
	GridReady   GridState = "ready"
	GridSaving  GridState = "saving"
)

// Outcome of the most recent save of a grid session.
const (
	SaveResultSuccess   = "success"
	SaveResultConflicts = "conflicts"
	SaveResultError     = "error"
)

// GridSession holds one user's in-progress edit of a (mentor, week) grid.
type GridSession struct {
	SessionID     string             `json:"sessionId"`
	OwnerID       int64              `json:"ownerId"`
	MentorID      int64              `json:"mentorId"`
	MingguKe      int                `json:"mingguKe"`
	State         GridState          `json:"state"`
	Grid          []AvailabilitySlot `json:"grid"`
	Dirty         bool               `json:"dirty"`
	LastResult    string             `json:"lastResult,omitempty"`
	Conflicts     []ScheduleConflict `json:"conflicts,omitempty"`
	ConflictLines []string           `json:"conflictLines,omitempty"`
	Message       string             `json:"message,omitempty"`
	LoadedAt      time.Time          `json:"loadedAt"`
	SavedAt       *time.Time         `json:"savedAt,omitempty"`
}

// SlotToggle is one requested change to a grid session.
type SlotToggle struct {
	Hari        string `json:"hari" binding:"required"`
	Sesi        string `json:"sesi" binding:"required"`
	IsAvailable *bool  `json:"is_available" binding:"required"`
}
