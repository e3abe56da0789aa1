// Package llm implements the hosted vision-model client used for menu
// extraction: one blocking chat-completions request per page image.
package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/VJd357/Happyplates/internal/config"
	"github.com/VJd357/Happyplates/internal/domain"
	"github.com/VJd357/Happyplates/internal/observability"
)

const (
	defaultBaseURL = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"
)

// Client handles communication with the chat-completions API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	retry      config.RetryConfig
	httpClient *http.Client
	logger     *observability.Logger
}

// Message represents a chat message.
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart represents a part of message content (text or image).
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL represents an inline image in the message.
type ImageURL struct {
	URL string `json:"url"`
}

// Request represents the API request structure.
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Response represents the API response structure.
type Response struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
}

// Choice represents a single completion choice.
type Choice struct {
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// ChoiceMessage carries the reply content of a choice.
type ChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ClientConfig holds client construction options.
type ClientConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Retry   config.RetryConfig
	Logger  *observability.Logger
}

// NewClient creates a new vision-model client.
func NewClient(cfg ClientConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	retry := cfg.Retry
	if retry.MaxRetries == 0 && retry.InitialBackoff == 0 {
		retry = config.Default().LLM.Retry
	}
	logger := cfg.Logger
	if logger == nil {
		logger = observability.Nop()
	}

	return &Client{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    baseURL,
		retry:      retry,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.WithComponent("llm"),
	}
}

// Complete submits the instruction text plus one inline image to the hosted
// model and returns the first choice's reply content. The call blocks for the
// duration of the request; auth, network and rate-limit failures come back as
// APIError after the bounded retry policy is exhausted.
func (c *Client) Complete(ctx context.Context, system, prompt, imagePath string) (string, error) {
	req, err := c.buildRequest(system, prompt, imagePath)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", domain.APIError("failed to marshal request", err)
	}

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		return c.httpClient.Do(httpReq)
	})
	if err != nil {
		return "", domain.APIError("failed to send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", domain.APIError(fmt.Sprintf("API returned status %d: %s", resp.StatusCode, string(bodyBytes)), nil)
	}

	return c.parseResponse(resp.Body)
}

// buildRequest constructs the API request with the image inlined as a data URL.
func (c *Client) buildRequest(system, prompt, imagePath string) (*Request, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, domain.IOError("failed to read image", err)
	}

	imageURL := fmt.Sprintf("data:%s;base64,%s",
		mimeTypeFor(imagePath), base64.StdEncoding.EncodeToString(imageData))

	messages := make([]Message, 0, 2)
	if system != "" {
		messages = append(messages, Message{
			Role:    "system",
			Content: []ContentPart{{Type: "text", Text: system}},
		})
	}
	messages = append(messages, Message{
		Role: "user",
		Content: []ContentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
		},
	})

	return &Request{
		Model:    c.model,
		Messages: messages,
	}, nil
}

// parseResponse extracts the reply content from the API response body.
func (c *Client) parseResponse(body io.Reader) (string, error) {
	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return "", domain.APIError("failed to read response body", err)
	}

	var apiResp Response
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return "", domain.APIError("failed to parse API response", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", domain.APIError("no choices in API response", nil)
	}

	content := apiResp.Choices[0].Message.Content
	if content == "" {
		return "", domain.APIError("empty reply content from API", nil)
	}

	return content, nil
}

func mimeTypeFor(imagePath string) string {
	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}
