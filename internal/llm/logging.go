package llm

import (
	"context"
	"log/slog"
	"time"
)

// CallLog captures one model call for auditing.
type CallLog struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// CallRecorder persists model call logs. The store package provides the
// SQLite-backed implementation.
type CallRecorder interface {
	RecordLLMCall(ctx context.Context, call CallLog) error
}

// LoggingProvider is a decorator that records every model call.
type LoggingProvider struct {
	inner    Provider
	recorder CallRecorder
	logger   *slog.Logger
}

// WithLogging wraps a Provider with call recording. recorder may be nil,
// in which case calls are only logged.
func WithLogging(p Provider, recorder CallRecorder, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, recorder: recorder, logger: logger}
}

func (l *LoggingProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Complete(ctx, req)

	call := CallLog{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		call.InputTokens = resp.Usage.InputTokens
		call.OutputTokens = resp.Usage.OutputTokens
		call.Model = resp.Model
	}
	if err != nil {
		call.ErrorMessage = err.Error()
	}

	// Recording must never fail the request.
	if l.recorder != nil {
		if recErr := l.recorder.RecordLLMCall(ctx, call); recErr != nil {
			l.logger.Warn("failed to record model call", "error", recErr)
		}
	}

	l.logger.Debug("model call",
		"purpose", call.Purpose,
		"model", call.Model,
		"latencyMs", call.LatencyMs,
		"success", call.Success)

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
