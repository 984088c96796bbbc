package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentres/resources-api/internal/client"
	"github.com/studentres/resources-api/internal/dto"
	"github.com/studentres/resources-api/internal/models"
	appErrors "github.com/studentres/resources-api/pkg/errors"
	"github.com/studentres/resources-api/pkg/export"
)

type questionGenerator interface {
	Generate(ctx context.Context, req client.GenerationRequest) ([]models.QuizQuestion, error)
}

// QuizService produces quizzes and question papers, falling back to a
// deterministic local question set when the external generator is down so
// students always get something to practice on.
type QuizService struct {
	generator questionGenerator
	exporter  *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuizService builds a QuizService with sane defaults.
func NewQuizService(generator questionGenerator, exporter *export.PDFExporter, validate *validator.Validate, logger *zap.Logger) *QuizService {
	if exporter == nil {
		exporter = export.NewPDFExporter()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{generator: generator, exporter: exporter, validator: validate, logger: logger}
}

// GenerateQuiz returns multiple-choice questions for interactive practice.
func (s *QuizService) GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) (*models.GeneratedPaper, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quiz request")
	}
	return s.generate(ctx, req, ""), nil
}

// GeneratePaper returns exam-style questions, optionally matching the style
// of a previous paper supplied as reference text.
func (s *QuizService) GeneratePaper(ctx context.Context, req dto.GeneratePaperRequest) (*models.GeneratedPaper, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid paper request")
	}
	return s.generate(ctx, req.GenerateQuizRequest, req.ReferenceText), nil
}

// ExportPaperPDF renders a generated paper for download.
func (s *QuizService) ExportPaperPDF(paper models.GeneratedPaper) ([]byte, error) {
	data, err := s.exporter.QuestionPaper(paper)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render question paper")
	}
	return data, nil
}

func (s *QuizService) generate(ctx context.Context, req dto.GenerateQuizRequest, referenceText string) *models.GeneratedPaper {
	paper := &models.GeneratedPaper{
		Subject:    req.Subject,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
	}

	questions, err := s.generator.Generate(ctx, client.GenerationRequest{
		Subject:       req.Subject,
		Topic:         req.Topic,
		Count:         req.Count,
		Difficulty:    req.Difficulty,
		ReferenceText: referenceText,
		PaperStyle:    referenceText != "",
	})
	if err != nil || len(questions) == 0 {
		s.logger.Warn("question generation failed, serving fallback set",
			zap.String("subject", req.Subject),
			zap.Error(err))
		paper.Questions = fallbackQuestions(req.Subject, req.Count)
		paper.Fallback = true
		return paper
	}

	paper.Questions = questions
	return paper
}

// fallbackQuestions yields a small study-skills set, repeated as needed to
// honor the requested count. IDs are stable so clients can de-duplicate.
func fallbackQuestions(subject string, count int) []models.QuizQuestion {
	base := []models.QuizQuestion{
		{
			Question:      fmt.Sprintf("Which study technique is most effective for mastering %s?", subject),
			Options:       []string{"Passive re-reading", "Active recall with spaced repetition", "Highlighting everything", "Cramming the night before"},
			CorrectAnswer: 1,
			Explanation:   "Active recall combined with spaced repetition consistently outperforms passive review.",
		},
		{
			Question:      fmt.Sprintf("When solving a difficult problem in %s, what is the best first step?", subject),
			Options:       []string{"Guess an answer", "Break the problem into smaller parts", "Skip it permanently", "Memorize the final answer"},
			CorrectAnswer: 1,
			Explanation:   "Decomposing a problem exposes the known sub-problems inside it.",
		},
		{
			Question:      "What is the recommended way to review past question papers?",
			Options:       []string{"Read the answers only", "Attempt them under timed conditions", "Ignore them", "Copy solutions verbatim"},
			CorrectAnswer: 1,
			Explanation:   "Timed attempts simulate exam conditions and reveal real gaps.",
		},
	}

	if count <= 0 {
		count = len(base)
	}
	questions := make([]models.QuizQuestion, 0, count)
	for i := 0; i < count; i++ {
		q := base[i%len(base)]
		q.ID = fmt.Sprintf("fallback-%d", i+1)
		questions = append(questions, q)
	}
	return questions
}
