package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hirepulse/internal/common"
)

type stubBackend struct {
	name string
	text string
	err  error
}

func (b stubBackend) Name() string { return b.name }

func (b stubBackend) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return b.text, b.err
}

func TestGatewayFirstBackendWins(t *testing.T) {
	gateway := NewGateway(time.Second,
		stubBackend{name: "first", text: "first result"},
		stubBackend{name: "second", text: "second result"},
	)
	result, err := gateway.Generate(context.Background(), "prompt", 100)
	require.NoError(t, err)
	require.Equal(t, "first result", result.Text)
	require.Equal(t, "first", result.Backend)
}

func TestGatewayFallsThroughOnFailure(t *testing.T) {
	gateway := NewGateway(time.Second,
		stubBackend{name: "broken", err: errors.New("connection refused")},
		stubBackend{name: "empty", text: "   "},
		stubBackend{name: "working", text: "generated text"},
	)
	result, err := gateway.Generate(context.Background(), "prompt", 100)
	require.NoError(t, err)
	require.Equal(t, "generated text", result.Text)
	require.Equal(t, "working", result.Backend)
}

func TestGatewayAllBackendsFail(t *testing.T) {
	gateway := NewGateway(time.Second,
		stubBackend{name: "a", err: errors.New("down")},
		stubBackend{name: "b", err: errors.New("also down")},
	)
	_, err := gateway.Generate(context.Background(), "prompt", 100)
	require.Error(t, err)
	require.True(t, common.Is(err, common.CodeUnavailable))
}

func TestGatewayNoBackends(t *testing.T) {
	gateway := NewGateway(time.Second)
	_, err := gateway.Generate(context.Background(), "prompt", 100)
	require.True(t, common.Is(err, common.CodeUnavailable))
}
