package dto

// UpdateProfileRequest merges profile fields into the caller's user document.
type UpdateProfileRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	EnrollmentNumber string `json:"enrollmentNumber" validate:"max=50"`
	Semester         string `json:"semester" validate:"omitempty,oneof=1 2 3 4 5 6 7 8"`
	Branch           string `json:"branch" validate:"max=100"`
	ProfileImageURL  string `json:"profileImageURL" validate:"omitempty,url"`
}
