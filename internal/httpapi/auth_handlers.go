package httpapi

import (
	"net/http"
	"strings"

	"github.com/prepdesk/prepdesk/internal/auth"
	"github.com/prepdesk/prepdesk/internal/interview"
	"github.com/prepdesk/prepdesk/internal/store"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Level    string `json:"level"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "name, email and a password of at least 8 characters are required")
		return
	}
	level := interview.Difficulty(req.Level)
	if req.Level == "" {
		level = interview.DifficultyMedium
	} else if !level.Valid() {
		writeError(w, http.StatusBadRequest, "level must be one of easy, medium, hard")
		return
	}

	ctx := r.Context()
	existing, err := s.users.ByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("register lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("password hash failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	id, err := s.users.Create(ctx, store.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Level:        level,
	})
	if err != nil {
		s.logger.Error("create user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := s.tokens.Issue(id, req.Email)
	if err != nil {
		s.logger.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      id,
		Name:        req.Name,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := s.users.ByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.logger.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		Name:        user.Name,
	})
}
