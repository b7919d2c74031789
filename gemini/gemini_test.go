package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuizJSON = `[
  {
    "question": "What process do cells divide by?",
    "options": ["Mitosis", "Osmosis", "Diffusion", "Photosynthesis"],
    "answer": "Mitosis"
  }
]`

func TestParseQuiz(t *testing.T) {
	questions, err := ParseQuiz(validQuizJSON)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Mitosis", questions[0].Answer)
}

func TestParseQuizMarkdownFences(t *testing.T) {
	questions, err := ParseQuiz("```json\n" + validQuizJSON + "\n```")
	require.NoError(t, err)
	require.Len(t, questions, 1)
}

func TestParseQuizBareFences(t *testing.T) {
	questions, err := ParseQuiz("```\n" + validQuizJSON + "\n```")
	require.NoError(t, err)
	require.Len(t, questions, 1)
}

func TestParseQuizAcceptsShortQuiz(t *testing.T) {
	// The prompt asks for 20 questions but models under-deliver on short
	// content; any well-formed, non-empty quiz is accepted.
	short := `[
	  {"question":"q1?","options":["a","b","c","d"],"answer":"a"},
	  {"question":"q2?","options":["a","b","c","d"],"answer":"d"}
	]`
	questions, err := ParseQuiz(short)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseQuizRejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"not json":          "here are your questions!",
		"empty array":       "[]",
		"too few options":   `[{"question":"q?","options":["a","b"],"answer":"a"}]`,
		"answer not option": `[{"question":"q?","options":["a","b","c","d"],"answer":"e"}]`,
		"missing question":  `[{"options":["a","b","c","d"],"answer":"a"}]`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseQuiz(text)
			assert.Error(t, err)
		})
	}
}

func testServer(t *testing.T, replyText string, status int) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")

		w.WriteHeader(status)
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": replyText}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key", "gemini-1.5-flash")
	c.baseURL = srv.URL
	return c
}

func TestBeautifyNote(t *testing.T) {
	c := testServer(t, "  A concise note.\n", http.StatusOK)
	out, err := c.BeautifyNote(context.Background(), "raw lecture rambling")
	require.NoError(t, err)
	assert.Equal(t, "A concise note.", out)
}

func TestGenerateQuizEndToEnd(t *testing.T) {
	c := testServer(t, "```json\n"+validQuizJSON+"\n```", http.StatusOK)
	quiz, err := c.GenerateQuiz(context.Background(), "cells divide by mitosis")
	require.NoError(t, err)
	require.Len(t, quiz, 1)
	assert.Equal(t, "Mitosis", quiz[0].Answer)
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key invalid"}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("bad-key", "")
	c.baseURL = srv.URL
	_, err := c.BeautifyNote(context.Background(), "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key invalid")
}

func TestGenerateNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key", "")
	c.baseURL = srv.URL
	_, err := c.BeautifyNote(context.Background(), "content")
	assert.Error(t, err)
}
