package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prepdesk/prepdesk/internal/interview"
	"github.com/prepdesk/prepdesk/internal/report"
	"github.com/prepdesk/prepdesk/internal/store"
)

// interviewRequest drives both halves of the session loop. Omitting
// sessionId starts a new session; providing one submits an answer to
// the pending question.
type interviewRequest struct {
	SessionID  string `json:"sessionId,omitempty"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Answer     string `json:"answer,omitempty"`
}

type interviewResponse struct {
	SessionID      string              `json:"sessionId"`
	Question       *string             `json:"question"`
	QuestionIndex  int                 `json:"questionIndex"`
	TotalQuestions int                 `json:"totalQuestions"`
	Done           bool                `json:"done"`
	Feedback       *interview.Feedback `json:"feedback,omitempty"`
}

func (s *Server) handleInterview(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req interviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if req.SessionID == "" {
		s.startSession(w, r, userID, req)
		return
	}
	s.continueSession(w, r, userID, req)
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, userID int64, req interviewRequest) {
	category := interview.Pool(req.Category)
	difficulty := interview.Difficulty(req.Difficulty)
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, "category must be one of hr, technical")
		return
	}
	if !difficulty.Valid() {
		writeError(w, http.StatusBadRequest, "difficulty must be one of easy, medium, hard")
		return
	}

	state := interview.State{
		SessionID:  uuid.NewString(),
		UserID:     userID,
		Category:   category,
		Difficulty: difficulty,
	}

	state = s.engine.RunStep(r.Context(), state, true)

	if err := s.sessions.Save(r.Context(), state); err != nil {
		s.logger.Error("save session failed", "sessionId", state.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(state))
}

func (s *Server) continueSession(w http.ResponseWriter, r *http.Request, userID int64, req interviewRequest) {
	if strings.TrimSpace(req.Answer) == "" {
		writeError(w, http.StatusBadRequest, "answer is required")
		return
	}

	ctx := r.Context()
	prev, err := s.sessions.Load(ctx, req.SessionID)
	if err != nil {
		s.logger.Error("load session failed", "sessionId", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if prev == nil || prev.UserID != userID {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if prev.Status == interview.StatusDone {
		writeError(w, http.StatusConflict, "session is already finished")
		return
	}

	answer := req.Answer
	state := *prev
	state.LatestAnswer = &answer

	state = s.engine.RunStep(ctx, state, false)

	if err := s.sessions.Save(ctx, state); err != nil {
		s.logger.Error("save session failed", "sessionId", state.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.recordAttempts(ctx, prev, state)

	writeJSON(w, http.StatusOK, toResponse(state))
}

// recordAttempts appends any turn the step committed to the transcript
// table. Failures are logged, not surfaced; the serialized state is the
// source of truth.
func (s *Server) recordAttempts(ctx context.Context, prev *interview.State, next interview.State) {
	generated := make(map[string]bool, len(next.AskedGeneratedQuestions))
	for _, q := range next.AskedGeneratedQuestions {
		generated[q] = true
	}

	for i := len(prev.QuestionAndAnswerLog); i < len(next.QuestionAndAnswerLog); i++ {
		qa := next.QuestionAndAnswerLog[i]
		a := store.Attempt{
			SessionID:    next.SessionID,
			QuestionText: qa.Question,
			Answer:       qa.Answer,
			IsGenerated:  generated[qa.Question],
		}
		// The answered question is the one that was pending before
		// this step ran.
		if prev.CurrentQuestionID != nil && prev.CurrentQuestion != nil && *prev.CurrentQuestion == qa.Question {
			id := *prev.CurrentQuestionID
			a.QuestionID = &id
		}
		if err := s.sessions.AppendAttempt(ctx, a); err != nil {
			s.logger.Warn("append attempt failed", "sessionId", next.SessionID, "error", err)
		}
	}
}

func toResponse(state interview.State) interviewResponse {
	return interviewResponse{
		SessionID:      state.SessionID,
		Question:       state.CurrentQuestion,
		QuestionIndex:  state.QuestionIndex,
		TotalQuestions: state.TotalQuestions,
		Done:           state.Status == interview.StatusDone,
		Feedback:       state.Feedback,
	}
}

type reportRequest struct {
	SessionID string `json:"sessionId"`
	Email     bool   `json:"email,omitempty"`
}

// handleReport renders the feedback report for a finished session as a
// PDF. With email:true it also mails the PDF to the account address in
// the background.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req reportRequest
	if err := decodeJSON(r, &req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	ctx := r.Context()
	state, err := s.sessions.Load(ctx, req.SessionID)
	if err != nil {
		s.logger.Error("load session failed", "sessionId", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if state == nil || state.UserID != userID {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if state.Status != interview.StatusDone || state.Feedback == nil {
		writeError(w, http.StatusConflict, "session is not finished yet")
		return
	}

	user, err := s.users.ByID(ctx, userID)
	if err != nil || user == nil {
		s.logger.Error("report user lookup failed", "userId", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	pdf, err := report.RenderPDF(report.Report{
		CandidateName: user.Name,
		Category:      state.Category,
		Difficulty:    state.Difficulty,
		CompletedAt:   time.Now(),
		Transcript:    state.QuestionAndAnswerLog,
		Feedback:      state.Feedback,
	})
	if err != nil {
		s.logger.Error("render report failed", "sessionId", state.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if req.Email {
		if s.mailer == nil {
			writeError(w, http.StatusServiceUnavailable, "email delivery is not configured")
			return
		}
		go func(to, sessionID string, doc []byte) {
			if err := s.mailer.SendReport(to, "Your interview feedback report", doc); err != nil {
				s.logger.Error("send report email failed", "sessionId", sessionID, "error", err)
			}
		}(user.Email, state.SessionID, pdf)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.AttachmentFilename(state.SessionID)+`"`)
	w.WriteHeader(http.StatusOK)
	// Best effort; the client may have disconnected.
	_, _ = w.Write(pdf)
}
