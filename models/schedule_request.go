package models

import "time"

// Schedule request statuses.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// ScheduleRequest is a student's request for a tutoring session, pending admin
// approval.
type ScheduleRequest struct {
	ID              int64      `json:"id" validate:"required"`
	UserID          int64      `json:"user_id"`
	MentorID        int64      `json:"mentor_id"`
	KelasID         int64      `json:"kelas_id"`
	MataPelajaranID int64      `json:"mata_pelajaran_id"`
	Tanggal         string     `json:"tanggal"`
	Sesi            FlexString `json:"sesi"`
	Status          string     `json:"status" validate:"required,oneof=pending approved rejected"`
}

func (r *ScheduleRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsTerminal reports whether no further transition is possible.
func (r *ScheduleRequest) IsTerminal() bool {
	return r.Status == RequestStatusApproved || r.Status == RequestStatusRejected
}

// ScheduleRequestInput is what a student submits. Status is always sent as pending.
type ScheduleRequestInput struct {
	UserID          int64  `json:"user_id"`
	MentorID        int64  `json:"mentor_id"`
	KelasID         int64  `json:"kelas_id"`
	MataPelajaranID int64  `json:"mata_pelajaran_id"`
	Tanggal         string `json:"tanggal"`
	Sesi            string `json:"sesi"`
}

// CreateScheduleRequestBody is the upstream POST /permintaan-jadwal body.
type CreateScheduleRequestBody struct {
	UserID          int64  `json:"user_id"`
	MentorID        int64  `json:"mentor_id"`
	KelasID         int64  `json:"kelas_id"`
	MataPelajaranID int64  `json:"mata_pelajaran_id,omitempty"`
	Tanggal         string `json:"tanggal"`
	Sesi            string `json:"sesi"`
	Status          string `json:"status"`
}

// StatusUpdate is the upstream response to approve/reject.
type StatusUpdate struct {
	ID     int64  `json:"id"`
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// DirectScheduleInput is an admin's direct "add schedule" form.
type DirectScheduleInput struct {
	MentorID        int64  `json:"mentor_id"`
	KelasID         int64  `json:"kelas_id"`
	MataPelajaranID int64  `json:"mata_pelajaran_id"`
	Tanggal         string `json:"tanggal"`
	Sesi            string `json:"sesi"`
}

// MentorQuery keys the platform's available-mentors lookup.
type MentorQuery struct {
	MapelID int64  `json:"mapel_id"`
	Tanggal string `json:"tanggal"`
	Sesi    string `json:"sesi"`
	KelasID int64  `json:"kelas_id"`
}

// Complete reports whether every key is set.
func (q MentorQuery) Complete() bool {
	return q.MapelID > 0 && q.Tanggal != "" && q.Sesi != "" && q.KelasID > 0
}

// MentorOption is one eligible mentor returned by the lookup.
type MentorOption struct {
	ID   int64  `json:"id" validate:"required"`
	Nama string `json:"nama"`
}

// RequestDraft is a student's in-progress request form.
type RequestDraft struct {
	DraftID    string         `json:"draftId"`
	OwnerID    int64          `json:"ownerId"`
	Query      MentorQuery    `json:"query"`
	MentorID   int64          `json:"mentorId,omitempty"`
	Options    []MentorOption `json:"options"`
	Generation int64          `json:"generation"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// DraftChange carries the fields a student edited; nil means unchanged.
type DraftChange struct {
	MapelID  *int64  `json:"mapel_id"`
	Tanggal  *string `json:"tanggal"`
	Sesi     *string `json:"sesi"`
	KelasID  *int64  `json:"kelas_id"`
	MentorID *int64  `json:"mentor_id"`
}

// RequestSnapshot is the request list an actor last fetched, patched in place by
// approve/reject.
type RequestSnapshot struct {
	Items     []ScheduleRequest `json:"items"`
	FetchedAt time.Time         `json:"fetchedAt"`
}
