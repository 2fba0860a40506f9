package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"contractgen/service"
)

// stubAnswerer simulates the AI adapter, including its fallback behavior.
type stubAnswerer struct {
	response string
	degraded bool
	lastMsg  string
}

func (a *stubAnswerer) AnswerContractQuestion(_ context.Context, message string) (string, bool, error) {
	a.lastMsg = message
	return a.response, a.degraded, nil
}

// invalidInputAnswerer always rejects, mirroring the adapter's empty-message check.
type invalidInputAnswerer struct{}

func (invalidInputAnswerer) AnswerContractQuestion(_ context.Context, _ string) (string, bool, error) {
	return "", false, &service.Error{Code: service.ErrorInvalidInput, Message: "Message is required and must be a string"}
}

func setupChatRouter(ai Answerer) *gin.Engine {
	router := gin.New()
	router.POST("/ai-chat", NewChatHandler(ai).Chat)
	return router
}

func postChat(router *gin.Engine, rawBody string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/ai-chat", bytes.NewBufferString(rawBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChat(t *testing.T) {
	answerer := &stubAnswerer{response: "A loan agreement sets repayment terms."}
	router := setupChatRouter(answerer)

	w := postChat(router, `{"message":"What is a loan agreement?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := parseBody(t, w)
	if body["success"] != true {
		t.Error("Expected success true")
	}
	if body["message"] != "AI response generated successfully" {
		t.Errorf("Unexpected message %v", body["message"])
	}

	data := body["data"].(map[string]any)
	if data["response"] != "A loan agreement sets repayment terms." {
		t.Errorf("Unexpected response %v", data["response"])
	}
	if data["timestamp"] == "" || data["timestamp"] == nil {
		t.Error("Expected a timestamp")
	}
	if data["degraded"] != false {
		t.Errorf("Expected degraded false, got %v", data["degraded"])
	}
	if answerer.lastMsg != "What is a loan agreement?" {
		t.Errorf("Expected question forwarded verbatim, got %q", answerer.lastMsg)
	}
}

func TestChatUpstreamFailureStillSucceeds(t *testing.T) {
	// The adapter absorbs upstream failure into fallback text; the endpoint
	// must answer 200 with the degraded flag set.
	router := setupChatRouter(&stubAnswerer{response: "fallback advice", degraded: true})

	w := postChat(router, `{"message":"What is a service agreement?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on degraded answer, got %d", w.Code)
	}

	body := parseBody(t, w)
	if body["success"] != true {
		t.Error("Expected success true")
	}
	if body["message"] != "AI response generated successfully (fallback)" {
		t.Errorf("Unexpected message %v", body["message"])
	}
	data := body["data"].(map[string]any)
	if data["degraded"] != true {
		t.Errorf("Expected degraded true, got %v", data["degraded"])
	}
	if data["response"] != "fallback advice" {
		t.Errorf("Unexpected response %v", data["response"])
	}
}

func TestChatBadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{}`},
		{"empty message", `{"message":""}`},
		{"non-string message", `{"message":42}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupChatRouter(&stubAnswerer{response: "should not be called"})

			w := postChat(router, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}

			body := parseBody(t, w)
			if body["success"] != false {
				t.Error("Expected success false")
			}
			if body["message"] != "Message is required and must be a string" {
				t.Errorf("Unexpected message %v", body["message"])
			}
		})
	}
}

func TestChatAdapterInvalidInput(t *testing.T) {
	router := setupChatRouter(invalidInputAnswerer{})

	w := postChat(router, `{"message":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}
