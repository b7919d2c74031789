// Package gemini is a thin client for the Google generative-language
// generateContent REST endpoint, used to beautify transcribed notes and to
// generate quizzes from stored notes.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/unish6123/StuNotes/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const quizPrompt = `Generate exactly 20 multiple choice questions from the given content. Return ONLY a JSON array with this exact format:
[
  {
    "question": "Your question here?",
    "options": ["Actual answer choice 1", "Actual answer choice 2", "Actual answer choice 3", "Actual answer choice 4"],
    "answer": "Actual answer choice 1"
  }
]

IMPORTANT RULES:
- Each "options" array must contain 4 REAL answer choices, not letters like A, B, C, D
- The "answer" field must contain the exact text of the correct option
- Make sure all options are plausible and related to the content
- Return only the JSON array, no other text or markdown

Content: `

const beautifyPrompt = "I have this following content. I want you to make the concise note i.e. easy to study without not much extra text, just the response: "

// Generator is the AI surface the note handlers depend on.
type Generator interface {
	BeautifyNote(ctx context.Context, content string) (string, error)
	GenerateQuiz(ctx context.Context, content string) ([]models.QuizQuestion, error)
}

// Client calls the generative-language API over HTTP.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type part struct {
	Text string `json:"text"`
}

type message struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []message `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content message `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{Contents: []message{{Parts: []part{{Text: prompt}}}}}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call generative api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("generative api error %d: %s", out.Error.Code, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generative api returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// BeautifyNote rewrites raw lecture content into a concise study note.
func (c *Client) BeautifyNote(ctx context.Context, content string) (string, error) {
	text, err := c.generate(ctx, beautifyPrompt+content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateQuiz asks the model for 20 multiple-choice questions about the
// content and parses them into a typed slice.
func (c *Client) GenerateQuiz(ctx context.Context, content string) ([]models.QuizQuestion, error) {
	text, err := c.generate(ctx, quizPrompt+content)
	if err != nil {
		return nil, err
	}
	return ParseQuiz(text)
}

// ParseQuiz decodes the model's quiz JSON. Models sometimes wrap the array
// in markdown fences despite the prompt, so those are stripped first, and
// each question is checked for four options containing the answer. The
// count is not checked against the 20 the prompt asks for: models routinely
// return fewer on short content, and a shorter quiz is still usable.
func ParseQuiz(text string) ([]models.QuizQuestion, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return nil, fmt.Errorf("parse quiz json: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz is empty")
	}
	for i, q := range questions {
		if q.Question == "" || len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d is malformed", i+1)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("question %d: answer is not one of the options", i+1)
		}
	}
	return questions, nil
}
