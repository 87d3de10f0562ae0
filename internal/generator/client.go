package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/estudia-labs/estudia-eval/internal/quiz"
	"github.com/estudia-labs/estudia-eval/internal/session"
)

// Client talks to the upstream content-generation service, which returns
// question lists in its Spanish wire shape.
type Client struct {
	baseURL string
	apiKey  string
	count   int
	http    *http.Client
}

func NewClient(baseURL, apiKey string, questionCount int) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		count:   questionCount,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Curso    string `json:"curso"`
	Libro    string `json:"libro"`
	Tema     string `json:"tema"`
	Cantidad int    `json:"cantidad"`
}

type generateResponse struct {
	Preguntas []quiz.RawQuestion `json:"preguntas"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) Generate(ctx context.Context, ref session.CourseRef) ([]quiz.RawQuestion, error) {
	body, err := json.Marshal(generateRequest{
		Curso:    ref.Course,
		Libro:    ref.Book,
		Tema:     ref.Topic,
		Cantidad: c.count,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/evaluaciones", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generator: %w", err)
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode generator response: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("generator error: %s", out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}
	return out.Preguntas, nil
}
