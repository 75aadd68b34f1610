package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const hfInferenceURL = "https://api-inference.huggingface.co/models/"

// HuggingFaceBackend calls the hosted inference API for a text-generation
// model.
type HuggingFaceBackend struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewHuggingFaceBackend(apiKey, model string, client *http.Client) *HuggingFaceBackend {
	if client == nil {
		client = &http.Client{}
	}
	return &HuggingFaceBackend{apiKey: apiKey, model: model, httpClient: client}
}

func (b *HuggingFaceBackend) Name() string {
	return "huggingface"
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength   int     `json:"max_length"`
	Temperature float64 `json:"temperature"`
}

type hfResult struct {
	GeneratedText string `json:"generated_text"`
}

func (b *HuggingFaceBackend) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = 500
	}
	body, err := json.Marshal(hfRequest{
		Inputs:     prompt,
		Parameters: hfParameters{MaxLength: maxTokens, Temperature: 0.7},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal hf request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hfInferenceURL+b.model, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create hf request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("hf request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read hf response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hf returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var results []hfResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return "", fmt.Errorf("failed to decode hf response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("hf returned no results")
	}
	// The inference API echoes the prompt at the head of generated_text.
	text := results[0].GeneratedText
	return strings.TrimPrefix(text, prompt), nil
}
