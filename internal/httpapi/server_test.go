package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prepdesk/prepdesk/internal/auth"
	"github.com/prepdesk/prepdesk/internal/interview"
	"github.com/prepdesk/prepdesk/internal/store"
)

// fakeEngine asks a numbered question per step and finishes the session
// after two answers.
type fakeEngine struct{}

func (fakeEngine) RunStep(_ context.Context, state interview.State, firstCall bool) interview.State {
	state = state.Clone()
	if firstCall {
		state.TotalQuestions = 2
		state.QuestionIndex = 0
		state.QuestionAndAnswerLog = []interview.QAPair{}
		state.Status = interview.StatusInProgress
		q := "Question 1?"
		state.CurrentQuestion = &q
		return state
	}

	if state.CurrentQuestion != nil && state.LatestAnswer != nil {
		state.QuestionAndAnswerLog = append(state.QuestionAndAnswerLog, interview.QAPair{
			Question: *state.CurrentQuestion,
			Answer:   *state.LatestAnswer,
		})
	}
	state.QuestionIndex++

	if state.QuestionIndex >= state.TotalQuestions {
		state.Status = interview.StatusDone
		state.CurrentQuestion = nil
		state.Feedback = &interview.Feedback{OverallScore: 6, Summary: "Decent."}
		return state
	}
	q := fmt.Sprintf("Question %d?", state.QuestionIndex+1)
	state.CurrentQuestion = &q
	return state
}

type memSessions struct {
	states   map[string]interview.State
	attempts []store.Attempt
}

func newMemSessions() *memSessions {
	return &memSessions{states: map[string]interview.State{}}
}

func (m *memSessions) Save(_ context.Context, state interview.State) error {
	m.states[state.SessionID] = state.Clone()
	return nil
}

func (m *memSessions) Load(_ context.Context, sessionID string) (*interview.State, error) {
	state, ok := m.states[sessionID]
	if !ok {
		return nil, nil
	}
	state = state.Clone()
	return &state, nil
}

func (m *memSessions) AppendAttempt(_ context.Context, a store.Attempt) error {
	m.attempts = append(m.attempts, a)
	return nil
}

type memUsers struct {
	users  map[int64]store.User
	nextID int64
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[int64]store.User{}, nextID: 1}
}

func (m *memUsers) Create(_ context.Context, u store.User) (int64, error) {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memUsers) ByEmail(_ context.Context, email string) (*store.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) ByID(_ context.Context, id int64) (*store.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func newTestServer(t *testing.T) (*Server, *memSessions) {
	t.Helper()
	sessions := newMemSessions()
	s := NewServer(fakeEngine{}, sessions, newMemUsers(),
		auth.NewTokenIssuer("test-secret", time.Hour),
		Options{
			Logger:      slog.New(slog.DiscardHandler),
			CORSOrigins: []string{"*"},
		})
	return s, sessions
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func registerTestUser(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "supersecret", "level": "medium",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.AccessToken
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	registerTestUser(t, h)

	// Duplicate registration is rejected.
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "supersecret",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "supersecret",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", rec.Code)
	}
}

func TestRegister_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "x@example.com", "password": "supersecret"}},
		{"missing email", map[string]string{"name": "X", "password": "supersecret"}},
		{"short password", map[string]string{"name": "X", "email": "x@example.com", "password": "short"}},
		{"unknown level", map[string]string{"name": "X", "email": "x@example.com", "password": "supersecret", "level": "expert"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestInterview_RequiresAuth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/interview", "", map[string]string{
		"category": "hr", "difficulty": "easy",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestInterview_FullFlow(t *testing.T) {
	s, sessions := newTestServer(t)
	h := s.Handler()
	token := registerTestUser(t, h)

	// Start.
	rec := doJSON(t, h, http.MethodPost, "/api/interview", token, map[string]string{
		"category": "technical", "difficulty": "medium",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp interviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID == "" || resp.Question == nil || *resp.Question != "Question 1?" || resp.Done {
		t.Fatalf("start response = %+v", resp)
	}

	// Two answers finish the fake session.
	for i := 0; !resp.Done; i++ {
		if i > 5 {
			t.Fatal("session did not finish")
		}
		rec = doJSON(t, h, http.MethodPost, "/api/interview", token, map[string]string{
			"sessionId": resp.SessionID, "answer": fmt.Sprintf("Answer %d.", i+1),
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("continue status = %d: %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}

	if resp.Feedback == nil || resp.Feedback.Summary != "Decent." {
		t.Errorf("feedback = %+v", resp.Feedback)
	}
	if len(sessions.attempts) != 2 {
		t.Errorf("recorded attempts = %d, want 2", len(sessions.attempts))
	}

	// Answering a finished session conflicts.
	rec = doJSON(t, h, http.MethodPost, "/api/interview", token, map[string]string{
		"sessionId": resp.SessionID, "answer": "one more",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("finished session status = %d, want 409", rec.Code)
	}
}

func TestInterview_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	token := registerTestUser(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/interview", token, map[string]string{
		"category": "philosophy", "difficulty": "medium",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad category status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/interview", token, map[string]string{
		"category": "hr", "difficulty": "impossible",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad difficulty status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/interview", token, map[string]string{
		"sessionId": "unknown", "answer": "hi",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/interview", token, map[string]string{
		"sessionId": "unknown",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing answer status = %d, want 400", rec.Code)
	}
}

func TestInterview_SessionOwnership(t *testing.T) {
	s, sessions := newTestServer(t)
	h := s.Handler()
	token := registerTestUser(t, h)

	q := "Pending?"
	sessions.states["foreign"] = interview.State{
		SessionID:       "foreign",
		UserID:          999,
		Status:          interview.StatusInProgress,
		CurrentQuestion: &q,
	}

	rec := doJSON(t, h, http.MethodPost, "/api/interview", token, map[string]string{
		"sessionId": "foreign", "answer": "hi",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign session status = %d, want 404", rec.Code)
	}
}

func TestReport_ReturnsPDF(t *testing.T) {
	s, sessions := newTestServer(t)
	h := s.Handler()
	token := registerTestUser(t, h)

	sessions.states["done-1"] = interview.State{
		SessionID:      "done-1",
		UserID:         1,
		Category:       interview.PoolHR,
		Difficulty:     interview.DifficultyMedium,
		TotalQuestions: 1,
		QuestionIndex:  1,
		QuestionAndAnswerLog: []interview.QAPair{
			{Question: "Tell me about yourself.", Answer: "I build things."},
		},
		Status: interview.StatusDone,
		Feedback: &interview.Feedback{
			OverallScore: 8,
			Summary:      "Strong answers.",
			Strengths:    []string{"concise"},
			Improvements: []string{"add metrics"},
		},
	}

	rec := doJSON(t, h, http.MethodPost, "/api/interview/report", token, map[string]any{
		"sessionId": "done-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("body is not a PDF document")
	}
}

func TestReport_UnfinishedSessionConflicts(t *testing.T) {
	s, sessions := newTestServer(t)
	h := s.Handler()
	token := registerTestUser(t, h)

	sessions.states["open-1"] = interview.State{
		SessionID: "open-1",
		UserID:    1,
		Status:    interview.StatusInProgress,
	}

	rec := doJSON(t, h, http.MethodPost, "/api/interview/report", token, map[string]any{
		"sessionId": "open-1",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestReport_EmailWithoutMailerUnavailable(t *testing.T) {
	s, sessions := newTestServer(t)
	h := s.Handler()
	token := registerTestUser(t, h)

	sessions.states["done-2"] = interview.State{
		SessionID: "done-2",
		UserID:    1,
		Status:    interview.StatusDone,
		Feedback:  interview.FallbackFeedback(),
	}

	rec := doJSON(t, h, http.MethodPost, "/api/interview/report", token, map[string]any{
		"sessionId": "done-2", "email": true,
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/interview", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, want *", got)
	}
}

func TestCORS_OriginAllowlist(t *testing.T) {
	s := NewServer(fakeEngine{}, newMemSessions(), newMemUsers(),
		auth.NewTokenIssuer("test-secret", time.Hour),
		Options{
			Logger:      slog.New(slog.DiscardHandler),
			CORSOrigins: []string{"https://app.example.com"},
		})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/interview", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("https://app.example.com")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allowed origin not echoed, got %q", got)
	}

	rec = preflight("https://evil.example.com")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin granted %q", got)
	}
}
