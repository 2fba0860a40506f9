package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contractgen/config"
	"contractgen/model"
)

// newCompletionServer returns a test provider that answers every chat
// completions call with the given content.
func newCompletionServer(t *testing.T, content string, capture *chatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header %q", auth)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("Failed to decode request: %v", err)
			}
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestAIService(baseURL string) *AIService {
	return NewAIService(&config.OpenAIConfig{
		BaseURL:  baseURL,
		APIKey:   "test-key",
		Model:    "test-model",
		SiteURL:  "http://localhost:3000",
		SiteName: "Contract Generator",
	})
}

func TestDraftContract(t *testing.T) {
	var captured chatCompletionRequest
	server := newCompletionServer(t, "A fine draft contract.", &captured)
	defer server.Close()

	svc := newTestAIService(server.URL)

	content, degraded := svc.DraftContract(context.Background(), model.TypeLoan, "Acme", "1 Main St")
	if degraded {
		t.Error("Expected non-degraded draft")
	}
	if content != "A fine draft contract." {
		t.Errorf("Expected model content, got %q", content)
	}

	if captured.Model != "test-model" {
		t.Errorf("Expected model test-model, got %s", captured.Model)
	}
	if captured.MaxTokens != draftMaxTokens {
		t.Errorf("Expected max_tokens %d, got %d", draftMaxTokens, captured.MaxTokens)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" {
		t.Fatalf("Expected single user message, got %+v", captured.Messages)
	}
	prompt := captured.Messages[0].Content
	for _, want := range []string{model.TypeLoan, "Acme", "1 Main St"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to mention %q, got %q", want, prompt)
		}
	}
}

func TestDraftContractFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"provider error status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"empty completion", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"role": "assistant", "content": ""}},
				},
			})
		}},
		{"no choices", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := newTestAIService(server.URL)
			content, degraded := svc.DraftContract(context.Background(), model.TypeLoan, "Acme", "1 Main St")

			if !degraded {
				t.Error("Expected degraded draft")
			}
			// The fallback must still name all three fields
			for _, want := range []string{model.TypeLoan, "Acme", "1 Main St"} {
				if !strings.Contains(content, want) {
					t.Errorf("Expected fallback to mention %q, got %q", want, content)
				}
			}
		})
	}
}

func TestDraftContractUnreachableProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	svc := newTestAIService(server.URL)
	content, degraded := svc.DraftContract(context.Background(), model.TypeEmploymentAgreement, "Acme", "1 Main St")

	if !degraded {
		t.Error("Expected degraded draft when provider is unreachable")
	}
	if content == "" {
		t.Error("Expected non-empty fallback content")
	}
}

func TestAnswerContractQuestion(t *testing.T) {
	var captured chatCompletionRequest
	server := newCompletionServer(t, "Indemnification shifts risk between parties.", &captured)
	defer server.Close()

	svc := newTestAIService(server.URL)

	response, degraded, err := svc.AnswerContractQuestion(context.Background(), "What is an indemnification clause?")
	if err != nil {
		t.Fatalf("AnswerContractQuestion failed: %v", err)
	}
	if degraded {
		t.Error("Expected non-degraded answer")
	}
	if response != "Indemnification shifts risk between parties." {
		t.Errorf("Unexpected response %q", response)
	}

	if captured.MaxTokens != chatMaxTokens {
		t.Errorf("Expected max_tokens %d, got %d", chatMaxTokens, captured.MaxTokens)
	}
	if captured.Temperature != chatTemperature {
		t.Errorf("Expected temperature %v, got %v", chatTemperature, captured.Temperature)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("Expected system + user messages, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || !strings.Contains(captured.Messages[0].Content, "contract law") {
		t.Error("Expected contract-law system prompt first")
	}
	if captured.Messages[1].Role != "user" || !strings.Contains(captured.Messages[1].Content, "indemnification clause") {
		t.Error("Expected user turn wrapping the question")
	}
}

func TestAnswerContractQuestionEmptyMessage(t *testing.T) {
	svc := newTestAIService("http://localhost:0")

	for _, message := range []string{"", "   "} {
		_, _, err := svc.AnswerContractQuestion(context.Background(), message)
		svcErr, ok := AsServiceError(err)
		if !ok || svcErr.Code != ErrorInvalidInput {
			t.Errorf("Expected INVALID_INPUT for message %q, got %v", message, err)
		}
	}
}

func TestAnswerContractQuestionFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)

	response, degraded, err := svc.AnswerContractQuestion(context.Background(), "What is a service agreement?")
	if err != nil {
		t.Fatalf("Expected no error on upstream failure, got %v", err)
	}
	if !degraded {
		t.Error("Expected degraded answer")
	}
	if response != chatFallbackResponse {
		t.Errorf("Expected deterministic fallback response, got %q", response)
	}
}
