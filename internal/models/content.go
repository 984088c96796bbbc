package models

import "time"

// ContentKind identifies one of the moderated resource types.
type ContentKind string

const (
	KindNotes          ContentKind = "notes"
	KindVideoLinks     ContentKind = "videos"
	KindQuestionPapers ContentKind = "question-papers"
)

// Semesters enumerates every content partition suffix.
var Semesters = []string{"1", "2", "3", "4", "5", "6", "7", "8"}

// KindSpec describes how a content kind maps onto store collections and the
// asset host. An empty AssetFolder means the submitted URL is promoted as-is
// with no upload step (video links).
type KindSpec struct {
	PartitionPrefix   string
	Submissions       string
	AssetFolder       string
	FileExtension     string
	SearchDescription bool
}

var kindSpecs = map[ContentKind]KindSpec{
	KindNotes: {
		PartitionPrefix: "Notes",
		Submissions:     "NotesSubmissions",
		AssetFolder:     "notes",
		FileExtension:   ".pdf",
	},
	KindVideoLinks: {
		PartitionPrefix:   "YouTubeLinks",
		Submissions:       "YouTubeLinkSubmissions",
		SearchDescription: true,
	},
	KindQuestionPapers: {
		PartitionPrefix: "Questionpaperspdf",
		Submissions:     "QuestionPaperSubmissions",
		AssetFolder:     "question-papers",
		FileExtension:   ".pdf",
	},
}

// ParseContentKind maps a route segment onto a known kind.
func ParseContentKind(raw string) (ContentKind, bool) {
	kind := ContentKind(raw)
	_, ok := kindSpecs[kind]
	return kind, ok
}

// Spec returns the descriptor for the kind.
func (k ContentKind) Spec() KindSpec {
	return kindSpecs[k]
}

// Partition names the approved-content collection for one semester.
func (k ContentKind) Partition(semester string) string {
	return kindSpecs[k].PartitionPrefix + semester
}

// SubmissionStatus tracks the moderation state machine.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s SubmissionStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ContentItem is an approved resource living in a semester partition.
type ContentItem struct {
	ID           string    `json:"-"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Semester     string    `json:"semester"`
	Subject      string    `json:"subject,omitempty"`
	Description  string    `json:"description,omitempty"`
	UploadedBy   string    `json:"uploadedBy,omitempty"`
	UploadedDate time.Time `json:"uploadedDate,omitempty"`
	IsApproved   bool      `json:"isApproved"`
}

// Submission is a user-contributed record awaiting moderation. It is never
// deleted; Status is the permanent audit trail.
type Submission struct {
	ID           string           `json:"-"`
	Name         string           `json:"name"`
	URL          string           `json:"url"`
	Semester     string           `json:"semester"`
	Subject      string           `json:"subject,omitempty"`
	Description  string           `json:"description,omitempty"`
	UploadedBy   string           `json:"uploadedBy"`
	UploadedDate time.Time        `json:"uploadedDate"`
	IsApproved   bool             `json:"isApproved"`
	Status       SubmissionStatus `json:"status"`
}
