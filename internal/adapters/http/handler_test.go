package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	httpadapter "github.com/felixstiven/wog-agent/internal/adapters/http"
	"github.com/felixstiven/wog-agent/internal/adapters/llm"
	"github.com/felixstiven/wog-agent/internal/adapters/storage/memory"
	"github.com/felixstiven/wog-agent/internal/app/chat"
	"github.com/felixstiven/wog-agent/internal/app/leads"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	chatSvc := chat.NewService(llm.NewMockModel(), memory.NewSessionStore(), zerolog.Nop(), chat.Options{})
	leadsSvc := leads.NewService(memory.NewLeadStore(), zerolog.Nop())

	return httpadapter.NewServer(chatSvc, leadsSvc, zerolog.Nop(), []string{"http://localhost:5173"})
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", body["status"])
	}
}

func TestChatMessageFlow(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/chat/message", `{"message":"Hola"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var first struct {
		Reply     string `json:"reply"`
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if first.Reply == "" || first.SessionID == "" {
		t.Fatalf("expected reply and session_id, got %+v", first)
	}

	// Second turn reuses the session.
	body := fmt.Sprintf(`{"message":"y tu stack?","session_id":%q}`, first.SessionID)
	w = doJSON(t, srv, http.MethodPost, "/api/chat/message", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on second turn, got %d, body=%s", w.Code, w.Body.String())
	}

	// Stats reflect both turns.
	w = doJSON(t, srv, http.MethodGet, "/api/chat/stats/"+first.SessionID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from stats, got %d", w.Code)
	}
	var stats struct {
		MessageCount int `json:"message_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid stats body: %v", err)
	}
	if stats.MessageCount != 4 {
		t.Fatalf("expected 4 messages, got %d", stats.MessageCount)
	}
}

func TestChatMessageValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"empty message", `{"message":""}`, http.StatusBadRequest},
		{"malformed json", `{message}`, http.StatusBadRequest},
		{"oversized message", fmt.Sprintf(`{"message":%q}`, strings.Repeat("a", chat.MaxMessageLen+1)), http.StatusBadRequest},
		{"unknown session", `{"message":"hola","session_id":"nope"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, srv, http.MethodPost, "/api/chat/message", tc.body)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d, body=%s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestClearAndDeleteSession(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/chat/message", `{"message":"Hola"}`)
	var first struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}

	w = doJSON(t, srv, http.MethodDelete, "/api/chat/clear/"+first.SessionID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from clear, got %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/chat/stats/"+first.SessionID, "")
	var stats struct {
		MessageCount int `json:"message_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid stats body: %v", err)
	}
	if stats.MessageCount != 0 {
		t.Fatalf("expected 0 messages after clear, got %d", stats.MessageCount)
	}

	w = doJSON(t, srv, http.MethodDelete, "/api/chat/sessions/"+first.SessionID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from delete, got %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/chat/stats/"+first.SessionID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestListSessions(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 2; i++ {
		w := doJSON(t, srv, http.MethodPost, "/api/chat/message", `{"message":"Hola"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("setup turn %d failed: %d", i, w.Code)
		}
	}

	w := doJSON(t, srv, http.MethodGet, "/api/chat/sessions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Total    int `json:"total"`
		Sessions []struct {
			SessionID string `json:"session_id"`
		} `json:"sessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Total != 2 || len(resp.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got total=%d len=%d", resp.Total, len(resp.Sessions))
	}
}

func TestCreateLead(t *testing.T) {
	srv := newTestServer(t)

	body := `{"company":"Acme Corp","name":"Jane Doe","email":"jane@example.com","phone":"3001234567","message":"hola"}`
	w := doJSON(t, srv, http.MethodPost, "/api/leads", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var lead struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &lead); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if lead.ID == "" || lead.Status != "new" {
		t.Fatalf("unexpected lead response: %+v", lead)
	}

	// The lead shows up in the listing.
	w = doJSON(t, srv, http.MethodGet, "/api/leads", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from list, got %d", w.Code)
	}
	var list []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid list body: %v", err)
	}
	if len(list) != 1 || list[0].ID != lead.ID {
		t.Fatalf("expected the created lead in the list, got %+v", list)
	}
}

func TestCreateLeadValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"company":"Acme Corp","name":"Jane Doe"}`},
		{"bad email", `{"company":"Acme Corp","name":"Jane Doe","email":"nope"}`},
		{"short name", `{"company":"Acme Corp","name":"J","email":"jane@example.com"}`},
		{"malformed json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, srv, http.MethodPost, "/api/leads", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d, body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestListLeadsRejectsBadLimit(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/leads?limit=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRootListsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/api/chat/message") {
		t.Fatalf("expected endpoint listing, got %s", w.Body.String())
	}
}
