package ai

import (
	"context"
	"strings"
	"time"

	"hirepulse/internal/common"
)

// Gateway tries configured backends strictly in order, one attempt each with
// a bounded wait, and hands back the first non-empty result. All-backends-
// failed is a normal outcome, reported as the unavailable code, never a
// panic or a 500 on its own.
type Gateway struct {
	backends       []Backend
	attemptTimeout time.Duration
}

func NewGateway(attemptTimeout time.Duration, backends ...Backend) *Gateway {
	if attemptTimeout <= 0 {
		attemptTimeout = 20 * time.Second
	}
	return &Gateway{backends: backends, attemptTimeout: attemptTimeout}
}

// Result carries the generated text and which backend produced it.
type Result struct {
	Text    string
	Backend string
}

func (g *Gateway) Generate(ctx context.Context, prompt string, maxTokens int) (*Result, error) {
	for _, backend := range g.backends {
		attemptCtx, cancel := context.WithTimeout(ctx, g.attemptTimeout)
		text, err := backend.Generate(attemptCtx, prompt, maxTokens)
		cancel()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		return &Result{Text: text, Backend: backend.Name()}, nil
	}
	return nil, common.NewError(common.CodeUnavailable, "all generation backends failed", nil)
}
