package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

type memRecorder struct {
	calls []CallLog
	err   error
}

func (r *memRecorder) RecordLLMCall(_ context.Context, call CallLog) error {
	r.calls = append(r.calls, call)
	return r.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage("hello"),
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})
	rec := &memRecorder{}
	p := WithLogging(mock, rec, discardLogger())

	ctx := WithPurpose(context.Background(), "question-gen")
	if _, err := p.Complete(ctx, Request{Prompt: "hi"}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if len(rec.calls) != 1 {
		t.Fatalf("recorded calls = %d, want 1", len(rec.calls))
	}
	call := rec.calls[0]
	if !call.Success || call.Purpose != "question-gen" || call.InputTokens != 12 || call.OutputTokens != 3 {
		t.Errorf("call = %+v", call)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}})
	rec := &memRecorder{}
	p := WithLogging(mock, rec, discardLogger())

	if _, err := p.Complete(context.Background(), Request{Prompt: "hi"}); err == nil {
		t.Fatal("expected error")
	}

	if len(rec.calls) != 1 || rec.calls[0].Success || rec.calls[0].ErrorMessage == "" {
		t.Errorf("calls = %+v", rec.calls)
	}
}

func TestLoggingProvider_RecorderErrorDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage("ok")})
	rec := &memRecorder{err: errors.New("disk full")}
	p := WithLogging(mock, rec, discardLogger())

	resp, err := p.Complete(context.Background(), Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("recording failure leaked into the request: %v", err)
	}
	if resp.Text() != "ok" {
		t.Errorf("response = %q", resp.Text())
	}
}

func TestLoggingProvider_NilRecorder(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage("ok")})
	p := WithLogging(mock, nil, discardLogger())

	if _, err := p.Complete(context.Background(), Request{Prompt: "hi"}); err != nil {
		t.Fatalf("nil recorder should be tolerated: %v", err)
	}
}
