package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"contractgen/config"
	"contractgen/pkg/logger"
)

const (
	draftMaxTokens  = 200
	chatMaxTokens   = 500
	chatTemperature = 0.7
)

// chatSystemPrompt restricts the assistant to contract-related topics.
const chatSystemPrompt = `You are a legal AI assistant specializing in contract law and business agreements. Your role is to provide helpful advice and information about contracts, legal terms, and business agreements.

IMPORTANT: You should ONLY respond to questions about:
- Contract law and legal concepts
- Business agreements and terms
- Contract clauses and provisions
- Legal compliance and best practices
- Contract negotiation tips
- Common contract pitfalls and how to avoid them

If someone asks about anything unrelated to contracts or legal matters, politely redirect them to ask contract-related questions. Do not provide advice on other legal areas outside of contracts.

Keep your responses professional, informative, and focused on contract-related topics.`

// chatFallbackResponse is returned when the completion provider is
// unavailable; the chat endpoint still answers with success.
const chatFallbackResponse = `I understand you're asking about contracts. While I'm experiencing technical difficulties with my AI service, I can tell you that I'm designed to help with contract-related questions, legal terms, business agreements, and contract best practices. Please try asking your question again in a moment, or rephrase it to be more specific about contracts.`

// AIService calls an OpenAI-compatible chat completions endpoint to draft
// contract text and answer contract questions. Every operation is a single
// attempt; any provider failure falls back to deterministic text so callers
// always receive something usable.
type AIService struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest is the minimal request shape for the chat
// completions endpoint.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// chatCompletionResponse is the minimal response shape returned by the chat
// completions endpoint.
type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewAIService(cfg *config.OpenAIConfig) *AIService {
	return &AIService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// DraftContract asks the model for a short professional draft naming the
// parties and contract type. On any failure it returns a templated fallback
// embedding the same fields; the second return value reports degradation.
func (s *AIService) DraftContract(ctx context.Context, contractType, clientName, clientAddress string) (string, bool) {
	prompt := fmt.Sprintf(
		"Generate a simple 3-sentence draft contract for a %s between our company and %s at %s. Make it professional but simple.",
		contractType, clientName, clientAddress,
	)

	content, err := s.chatCompletion(ctx, []chatMessage{
		{Role: "user", Content: prompt},
	}, draftMaxTokens, 0)
	if err != nil {
		logger.Warn(ctx, "contract draft generation degraded", "error", err)
		fallback := fmt.Sprintf(
			"This is a draft %s between our company and %s located at %s. The terms and conditions will be finalized upon mutual agreement. This contract serves as a preliminary document for review and discussion.",
			contractType, clientName, clientAddress,
		)
		return fallback, true
	}

	return content, false
}

// AnswerContractQuestion answers a user question constrained to contract-law
// topics. An empty message is invalid input; a provider failure yields a
// retry-inviting fallback with degraded=true and no error.
func (s *AIService) AnswerContractQuestion(ctx context.Context, message string) (string, bool, error) {
	if strings.TrimSpace(message) == "" {
		return "", false, newError(ErrorInvalidInput, "Message is required and must be a string", nil)
	}

	userPrompt := fmt.Sprintf(
		"User question: %s\n\nPlease provide helpful contract-related advice or information. If this question is not related to contracts, politely redirect the user.",
		message,
	)

	content, err := s.chatCompletion(ctx, []chatMessage{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, chatMaxTokens, chatTemperature)
	if err != nil {
		logger.Warn(ctx, "ai chat degraded", "error", err)
		return chatFallbackResponse, true, nil
	}

	return content, false, nil
}

// chatCompletion performs a single chat completions call and returns the
// first choice's content. An empty completion is treated as a failure.
func (s *AIService) chatCompletion(ctx context.Context, messages []chatMessage, maxTokens int, temperature float64) (string, error) {
	reqBody := chatCompletionRequest{
		Model:       s.config.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(s.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", s.config.SiteURL)
	req.Header.Set("X-Title", s.config.SiteName)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("completion API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty completion")
	}

	return result.Choices[0].Message.Content, nil
}
