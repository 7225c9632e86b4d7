package models

// Actor is the authenticated dashboard user behind a request.
type Actor struct {
	UserID   int64  `json:"userId"`
	Role     string `json:"role"`
	MentorID int64  `json:"mentorId,omitempty"`
}

func (a Actor) IsAdmin() bool { return a.Role == "admin" }

// CanManageMentor reports whether the actor may view or edit mentorID's grid.
func (a Actor) CanManageMentor(mentorID int64) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == "mentor" && a.MentorID != 0 && a.MentorID == mentorID
}
