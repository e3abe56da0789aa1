package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/VJd357/Happyplates/internal/config"
)

func testRetry() config.RetryConfig {
	return config.RetryConfig{
		MaxRetries:     2,
		InitialBackoff: config.Duration(time.Millisecond),
		MaxBackoff:     config.Duration(5 * time.Millisecond),
	}
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu_section_page_1.png")
	if err := os.WriteFile(path, []byte("not-a-real-png"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func successBody(content string) string {
	resp := Response{
		ID: "chatcmpl-test",
		Choices: []Choice{
			{Message: ChoiceMessage{Role: "assistant", Content: content}, FinishReason: "stop"},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: "sk-test"})
	if client.model != defaultModel {
		t.Errorf("expected default model %s, got %s", defaultModel, client.model)
	}
	if client.baseURL != defaultBaseURL {
		t.Errorf("expected default base URL, got %s", client.baseURL)
	}
	if client.retry.MaxRetries == 0 {
		t.Error("expected default retry policy, got zero retries")
	}
}

func TestCompleteSendsPromptAndImage(t *testing.T) {
	imagePath := writeTestImage(t)

	var gotAuth string
	var gotReq Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(successBody("```json\n[]\n```")))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		APIKey:  "sk-test",
		Model:   "gpt-4o-mini",
		BaseURL: srv.URL,
		Retry:   testRetry(),
	})

	reply, err := client.Complete(context.Background(), "You are a data analyst.", "Read this menu.", imagePath)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "```json\n[]\n```" {
		t.Errorf("unexpected reply: %q", reply)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("expected model in payload, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("expected first message role system, got %q", gotReq.Messages[0].Role)
	}

	user := gotReq.Messages[1]
	if user.Role != "user" {
		t.Errorf("expected user role, got %q", user.Role)
	}
	if len(user.Content) != 2 {
		t.Fatalf("expected text + image content parts, got %d", len(user.Content))
	}
	if user.Content[0].Type != "text" || user.Content[0].Text != "Read this menu." {
		t.Errorf("unexpected text part: %+v", user.Content[0])
	}
	if user.Content[1].Type != "image_url" || user.Content[1].ImageURL == nil {
		t.Fatalf("unexpected image part: %+v", user.Content[1])
	}
	if !strings.HasPrefix(user.Content[1].ImageURL.URL, "data:image/png;base64,") {
		t.Errorf("expected base64 PNG data URL, got %q", user.Content[1].ImageURL.URL[:32])
	}
}

func TestCompleteOmitsEmptySystemMessage(t *testing.T) {
	imagePath := writeTestImage(t)

	var gotReq Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(successBody("ok")))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{APIKey: "sk-test", BaseURL: srv.URL, Retry: testRetry()})
	if _, err := client.Complete(context.Background(), "", "Read this menu.", imagePath); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if len(gotReq.Messages) != 1 {
		t.Fatalf("expected only the user message, got %d", len(gotReq.Messages))
	}
}

func TestCompleteRetriesRateLimit(t *testing.T) {
	imagePath := writeTestImage(t)

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(successBody("recovered")))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{APIKey: "sk-test", BaseURL: srv.URL, Retry: testRetry()})
	reply, err := client.Complete(context.Background(), "", "prompt", imagePath)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if reply != "recovered" {
		t.Errorf("unexpected reply: %q", reply)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestCompleteDoesNotRetryClientError(t *testing.T) {
	imagePath := writeTestImage(t)

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{APIKey: "sk-bad", BaseURL: srv.URL, Retry: testRetry()})
	_, err := client.Complete(context.Background(), "", "prompt", imagePath)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt for a non-retryable status, got %d", attempts)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestCompleteGivesUpAfterBoundedRetries(t *testing.T) {
	imagePath := writeTestImage(t)

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	retry := testRetry()
	client := NewClient(ClientConfig{APIKey: "sk-test", BaseURL: srv.URL, Retry: retry})
	_, err := client.Complete(context.Background(), "", "prompt", imagePath)
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if attempts != retry.MaxRetries+1 {
		t.Errorf("expected %d attempts, got %d", retry.MaxRetries+1, attempts)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	imagePath := writeTestImage(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "chatcmpl-test", "choices": []}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{APIKey: "sk-test", BaseURL: srv.URL, Retry: testRetry()})
	if _, err := client.Complete(context.Background(), "", "prompt", imagePath); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestCompleteMissingImage(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: "sk-test", Retry: testRetry()})
	_, err := client.Complete(context.Background(), "", "prompt", "/nonexistent/page.png")
	if err == nil {
		t.Fatal("expected error for missing image file")
	}
}

func TestMimeTypeFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"menu_section_page_1.png", "image/png"},
		{"photo.PNG", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"photo", "image/jpeg"},
	}
	for _, tt := range tests {
		if got := mimeTypeFor(tt.path); got != tt.want {
			t.Errorf("mimeTypeFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
