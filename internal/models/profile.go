package models

import "time"

// UserProfile is the per-student document keyed by the identity provider uid.
type UserProfile struct {
	UID                string     `json:"-"`
	Name               string     `json:"name"`
	EnrollmentNumber   string     `json:"enrollmentNumber,omitempty"`
	Semester           string     `json:"semester,omitempty"`
	Branch             string     `json:"branch,omitempty"`
	ProfileImageURL    string     `json:"profileImageURL,omitempty"`
	IsAdmin            bool       `json:"isAdmin,omitempty"`
	LastSemesterUpdate *time.Time `json:"lastSemesterUpdate,omitempty"`
}

// AdminRequest records a user's ask for moderator rights. Status is mutated
// only by an external admin process.
type AdminRequest struct {
	ID            string           `json:"-"`
	UserID        string           `json:"userId"`
	Status        SubmissionStatus `json:"status"`
	RequestedDate time.Time        `json:"requestedDate"`
}
