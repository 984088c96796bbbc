package dto

// GenerateQuizRequest asks for multiple-choice questions on a subject.
type GenerateQuizRequest struct {
	Subject    string `json:"subject" validate:"required,max=100"`
	Topic      string `json:"topic" validate:"max=200"`
	Count      int    `json:"count" validate:"required,min=1,max=25"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// GeneratePaperRequest additionally carries optional reference text so the
// generator can match the style of a previous paper.
type GeneratePaperRequest struct {
	GenerateQuizRequest
	ReferenceText string `json:"referenceText" validate:"max=20000"`
}
