package models

// QuizQuestion is one generated multiple-choice question. CorrectAnswer is a
// 0-indexed position into Options.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// GeneratedPaper bundles a generation result. Fallback is set when the
// external API failed and the deterministic local set was returned instead.
type GeneratedPaper struct {
	Subject    string         `json:"subject"`
	Topic      string         `json:"topic,omitempty"`
	Difficulty string         `json:"difficulty"`
	Questions  []QuizQuestion `json:"questions"`
	Fallback   bool           `json:"fallback"`
}
