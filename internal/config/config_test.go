package config

import (
	"testing"
)

func setBaseline(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	for _, key := range []string{
		"PORT", "PREPDESK_DB", "BACKEND_CORS_ORIGINS",
		"MIN_QUESTIONS_PER_SESSION", "MAX_QUESTIONS_PER_SESSION", "LLM_QUESTION_RATIO",
		"SMTP_SERVER", "SMTP_USER", "SMTP_FROM", "ACCESS_TOKEN_EXPIRE_MINUTES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setBaseline(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.Session.MinQuestions != 5 || cfg.Session.MaxQuestions != 10 {
		t.Errorf("session bounds = %d/%d, want 5/10", cfg.Session.MinQuestions, cfg.Session.MaxQuestions)
	}
	if cfg.Session.GeneratedRatio != 0.4 {
		t.Errorf("generatedRatio = %v, want 0.4", cfg.Session.GeneratedRatio)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("corsOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if cfg.SMTP.Enabled() {
		t.Error("SMTP should be disabled without a host")
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	setBaseline(t)
	t.Setenv("SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("missing SECRET_KEY accepted")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setBaseline(t)
	t.Setenv("PORT", "9999")
	t.Setenv("MIN_QUESTIONS_PER_SESSION", "3")
	t.Setenv("MAX_QUESTIONS_PER_SESSION", "4")
	t.Setenv("LLM_QUESTION_RATIO", "0.75")
	t.Setenv("BACKEND_CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Session.MinQuestions != 3 || cfg.Session.MaxQuestions != 4 || cfg.Session.GeneratedRatio != 0.75 {
		t.Errorf("session = %+v", cfg.Session)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("corsOrigins = %v", cfg.CORSOrigins)
	}
	if !cfg.SMTP.Enabled() || cfg.SMTP.From != "mailer@example.com" {
		t.Errorf("smtp = %+v", cfg.SMTP)
	}
}

func TestLoad_InvalidBounds(t *testing.T) {
	setBaseline(t)
	t.Setenv("MIN_QUESTIONS_PER_SESSION", "8")
	t.Setenv("MAX_QUESTIONS_PER_SESSION", "4")

	if _, err := Load(); err == nil {
		t.Fatal("inverted question bounds accepted")
	}

	setBaseline(t)
	t.Setenv("LLM_QUESTION_RATIO", "1.5")
	if _, err := Load(); err == nil {
		t.Fatal("out-of-range ratio accepted")
	}
}
