package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studentres/resources-api/internal/models"
	"github.com/studentres/resources-api/pkg/config"
)

// QuestionGen calls the chat-completions style question-generation API.
type QuestionGen struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// GenerationRequest parameterizes one generation call. PaperStyle switches
// the prompt from short quiz questions to exam-paper questions and allows
// reference text.
type GenerationRequest struct {
	Subject       string
	Topic         string
	Count         int
	Difficulty    string
	ReferenceText string
	PaperStyle    bool
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// NewQuestionGen constructs a question generation client.
func NewQuestionGen(cfg config.QuestionGenConfig, timeout time.Duration, logger *zap.Logger) *QuestionGen {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionGen{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Generate requests questions and decodes the JSON array the model returns.
func (c *QuestionGen) Generate(ctx context.Context, req GenerationRequest) ([]models.QuizQuestion, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("question generation API key not configured")
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(req.PaperStyle)},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call question generator: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var hostErr hostErrorResponse
		if err := json.Unmarshal(raw, &hostErr); err == nil && hostErr.Error.Message != "" {
			return nil, fmt.Errorf("question generator rejected request (%d): %s", resp.StatusCode, hostErr.Error.Message)
		}
		return nil, fmt.Errorf("question generator failed with status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("question generator returned no choices")
	}

	var generated []generatedQuestion
	content := extractJSON(chat.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &generated); err != nil {
		c.logger.Warn("unparseable generation content", zap.Error(err))
		return nil, fmt.Errorf("parse generated questions: %w", err)
	}

	questions := make([]models.QuizQuestion, 0, len(generated))
	for _, q := range generated {
		questions = append(questions, models.QuizQuestion{
			ID:            uuid.NewString(),
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return questions, nil
}

func systemPrompt(paperStyle bool) string {
	if paperStyle {
		return "You are an educational question paper generator. Always respond with valid JSON only."
	}
	return "You are an educational quiz generator. Always respond with valid JSON only."
}

func buildPrompt(req GenerationRequest) string {
	var b strings.Builder

	kind := "multiple-choice quiz questions"
	if req.PaperStyle {
		kind = "question paper questions"
	}
	fmt.Fprintf(&b, "Generate %d %s for the subject: %s", req.Count, kind, req.Subject)
	if req.Topic != "" {
		fmt.Fprintf(&b, " on the topic: %s", req.Topic)
	}
	fmt.Fprintf(&b, ".\nDifficulty level: %s\n", req.Difficulty)
	if req.PaperStyle && req.ReferenceText != "" {
		fmt.Fprintf(&b, "\nUse the following previous question paper as a reference for style and difficulty:\n%s\n", req.ReferenceText)
	}

	b.WriteString(`
For each question, provide:
1. A clear, concise question
2. Four answer options (A, B, C, D)
3. The correct answer (0-indexed: 0=A, 1=B, 2=C, 3=D)
4. A brief explanation

Format the response as a JSON array with this structure:
[
  {
    "question": "Question text here",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0,
    "explanation": "Explanation text here"
  }
]
`)
	fmt.Fprintf(&b, "\nMake sure the questions are relevant to %s and appropriate for %s difficulty level.", req.Subject, req.Difficulty)
	return b.String()
}

// extractJSON strips the markdown code fences models often wrap JSON in.
func extractJSON(text string) string {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}

	return strings.TrimSpace(cleaned)
}
