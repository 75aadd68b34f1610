package ai

import "context"

// Backend is an external text generator treated as a black box: prompt in,
// text out, or failure. Implementations make exactly one attempt per call;
// retry policy belongs to nobody (generation is user-latency-bound and retry
// storms against an overloaded model server are worse than a fallback).
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}
