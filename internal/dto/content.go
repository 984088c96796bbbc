package dto

// SubmitContentRequest is the payload for contributing a resource.
type SubmitContentRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	URL         string `json:"url" validate:"required,url"`
	Semester    string `json:"semester" validate:"required,oneof=1 2 3 4 5 6 7 8"`
	Subject     string `json:"subject" validate:"max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// ContentFilter selects either a single semester or a cross-semester keyword
// search. An empty Semester falls back to the caller's profile semester.
type ContentFilter struct {
	Semester string
	Keyword  string
}
