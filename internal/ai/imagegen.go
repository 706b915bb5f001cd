package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNoImage means the provider stream ended without a terminal event.
var ErrNoImage = errors.New("no image returned by provider")

// UpstreamError carries the provider's failure message, either from a
// transport failure or an explicit error event in the stream.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return "upstream error: " + e.Message
}

const (
	// The provider's turbo model is disallowed; requests naming it are
	// silently remapped to the preferred default.
	preferredModel = "flux"
	forbiddenModel = "turbo"

	artisticGuardrails = "Create an artistic, stylized, non-photorealistic image. " +
		"Avoid realism and photographic rendering. Favor illustration, painting, watercolor, " +
		"digital art, brush strokes, stylized textures, and artistic composition. " +
		"No photo-realism."
)

// Model is one entry of the provider's model list.
type Model struct {
	Model       string `json:"model"`
	Provider    string `json:"provider,omitempty"`
	Description string `json:"description,omitempty"`
}

// ImageClient calls the free image-generation API. Responses arrive as an
// SSE stream; the first terminal event (complete or error) ends the read.
type ImageClient struct {
	baseURL string
	http    *http.Client
}

func NewImageClient(baseURL string) *ImageClient {
	return &ImageClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Generation can take a while; the per-request context still
		// bounds the wait.
		http: &http.Client{Timeout: 5 * time.Minute},
	}
}

// NormalizeModel maps empty and forbidden model names to the default.
func NormalizeModel(model string) string {
	model = strings.TrimSpace(model)
	if model == "" || strings.EqualFold(model, forbiddenModel) {
		return preferredModel
	}
	return model
}

// streamEvent is one decoded SSE payload. Status is the state machine:
// anything other than complete or error is progress and is skipped.
type streamEvent struct {
	Status      string `json:"status"`
	ImageURL    string `json:"imageUrl"`
	ImageURLAlt string `json:"image_url"`
	Message     string `json:"message"`
}

func (e *streamEvent) url() string {
	if e.ImageURL != "" {
		return e.ImageURL
	}
	return e.ImageURLAlt
}

// Synthesize generates an image for the prompt and returns its URL.
func (c *ImageClient) Synthesize(ctx context.Context, prompt, model string) (string, error) {
	model = NormalizeModel(model)
	effectivePrompt := artisticGuardrails + "\n\nSubject: " + prompt

	body, err := json.Marshal(map[string]string{"prompt": effectivePrompt, "model": model})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var event streamEvent
		if err := json.Unmarshal([]byte(line[len("data: "):]), &event); err != nil {
			// Malformed payloads are skipped, matching a lenient SSE read.
			continue
		}
		switch event.Status {
		case "complete":
			if event.url() == "" {
				return "", ErrNoImage
			}
			return event.url(), nil
		case "error":
			msg := event.Message
			if msg == "" {
				msg = "Generation failed"
			}
			return "", &UpstreamError{Message: msg}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", &UpstreamError{Message: err.Error()}
	}
	return "", ErrNoImage
}

// Models fetches the provider's model list with the forbidden model
// filtered out.
func (c *ImageClient) Models(ctx context.Context) ([]Model, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Message: fmt.Sprintf("models list returned %d", resp.StatusCode)}
	}

	var payload struct {
		Models []Model `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}

	filtered := make([]Model, 0, len(payload.Models))
	for _, m := range payload.Models {
		if strings.EqualFold(m.Model, forbiddenModel) {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered, nil
}
