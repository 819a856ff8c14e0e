package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

type ctxCapturingProvider struct {
	sawDeadline bool
}

func (p *ctxCapturingProvider) Complete(ctx context.Context, _ Request) (*Response, error) {
	_, p.sawDeadline = ctx.Deadline()
	return &Response{Content: json.RawMessage("ok")}, nil
}

func (p *ctxCapturingProvider) ModelID() string { return "capture" }

func TestWithTimeout_SetsDeadline(t *testing.T) {
	inner := &ctxCapturingProvider{}
	p := WithTimeout(inner, time.Second)

	if _, err := p.Complete(context.Background(), Request{}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !inner.sawDeadline {
		t.Error("inner call had no deadline")
	}
}

func TestWithTimeout_NonPositiveIsPassthrough(t *testing.T) {
	inner := &ctxCapturingProvider{}
	if p := WithTimeout(inner, 0); p != Provider(inner) {
		t.Error("zero timeout should return the provider unchanged")
	}
}
