package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentres/resources-api/pkg/config"
)

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	payload := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func TestGenerateParsesQuestionsFromFencedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "Operating Systems")

		chatReply(t, w, "```json\n[{\"question\":\"What is a mutex?\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correctAnswer\":1,\"explanation\":\"sync primitive\"}]\n```")
	}))
	defer srv.Close()

	gen := NewQuestionGen(config.QuestionGenConfig{URL: srv.URL, APIKey: "test-key", Model: "gpt-3.5-turbo"}, 0, nil)

	questions, err := gen.Generate(context.Background(), GenerationRequest{
		Subject:    "Operating Systems",
		Count:      1,
		Difficulty: "medium",
	})

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "What is a mutex?", questions[0].Question)
	assert.Equal(t, 1, questions[0].CorrectAnswer)
	assert.NotEmpty(t, questions[0].ID)
}

func TestGenerateIncludesReferenceTextForPapers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Messages[1].Content, "previous question paper")
		assert.Contains(t, req.Messages[1].Content, "Q1. Derive the formula")

		chatReply(t, w, `[{"question":"q","options":["a","b","c","d"],"correctAnswer":0,"explanation":"e"}]`)
	}))
	defer srv.Close()

	gen := NewQuestionGen(config.QuestionGenConfig{URL: srv.URL, APIKey: "k"}, 0, nil)

	_, err := gen.Generate(context.Background(), GenerationRequest{
		Subject:       "Physics",
		Count:         1,
		Difficulty:    "hard",
		ReferenceText: "Q1. Derive the formula",
		PaperStyle:    true,
	})

	require.NoError(t, err)
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	gen := NewQuestionGen(config.QuestionGenConfig{URL: "http://localhost"}, 0, nil)

	_, err := gen.Generate(context.Background(), GenerationRequest{Subject: "Maths", Count: 1})

	assert.Error(t, err)
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached"}}`))
	}))
	defer srv.Close()

	gen := NewQuestionGen(config.QuestionGenConfig{URL: srv.URL, APIKey: "k"}, 0, nil)

	_, err := gen.Generate(context.Background(), GenerationRequest{Subject: "Maths", Count: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rate limit reached")
}

func TestGenerateRejectsUnparseableContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		chatReply(t, w, "Sorry, I cannot help with that.")
	}))
	defer srv.Close()

	gen := NewQuestionGen(config.QuestionGenConfig{URL: srv.URL, APIKey: "k"}, 0, nil)

	_, err := gen.Generate(context.Background(), GenerationRequest{Subject: "Maths", Count: 1})

	assert.Error(t, err)
}

func TestExtractJSONStripsFences(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, extractJSON("```json\n[{\"a\":1}]\n```"))
	assert.Equal(t, `[{"a":1}]`, extractJSON("```\n[{\"a\":1}]\n```"))
	assert.Equal(t, `[{"a":1}]`, extractJSON(`[{"a":1}]`))
}
