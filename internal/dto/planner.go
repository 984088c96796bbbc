package dto

import "time"

// PersonalNoteRequest creates or updates a private note.
type PersonalNoteRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Subject  string `json:"subject" validate:"max=100"`
	Semester string `json:"semester" validate:"omitempty,oneof=1 2 3 4 5 6 7 8"`
}

// TodoRequest creates or updates a task.
type TodoRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=1000"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate"`
}
