package models

import "time"

// Activity actions recorded for the admin feed.
const (
	ActivityAvailabilitySaved = "availability.saved"
	ActivityRequestSubmitted  = "request.submitted"
	ActivityRequestApproved   = "request.approved"
	ActivityRequestRejected   = "request.rejected"
	ActivityScheduleAdded     = "schedule.added"
)

// ActivityRecord is one successful dashboard action.
type ActivityRecord struct {
	ID        string    `bson:"id" json:"id"`
	ActorID   int64     `bson:"actorId" json:"actorId"`
	ActorRole string    `bson:"actorRole" json:"actorRole"`
	Action    string    `bson:"action" json:"action"`
	TargetID  string    `bson:"targetId" json:"targetId"`
	Detail    string    `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
