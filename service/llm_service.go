package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Message is one turn handed to a language model provider
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// Provider streams a model completion, invoking onChunk for each text fragment.
// An error returned before the first chunk means the provider never started and
// the caller may try another one.
type Provider interface {
	Name() string
	Stream(ctx context.Context, messages []Message, onChunk func(string)) error
}

// LLMService tries its providers in order until one succeeds. Once a provider
// has emitted a chunk there is no falling back; a mid-stream failure is
// returned to the caller rather than restarting the answer on another model.
type LLMService struct {
	providers []Provider
}

// NewLLMService creates a service over an ordered provider chain
func NewLLMService(providers ...Provider) *LLMService {
	return &LLMService{providers: providers}
}

// NewLLMServiceFromEnv assembles the provider chain from the environment.
// LLM_PROVIDER=ollama pins the local model; otherwise OpenAI is tried first
// when an API key is configured, with Ollama as the local fallback.
func NewLLMServiceFromEnv() *LLMService {
	var providers []Provider

	if os.Getenv("LLM_PROVIDER") == "ollama" {
		return NewLLMService(NewOllamaProvider())
	}

	if os.Getenv("OPENAI_API_KEY") != "" {
		providers = append(providers, NewOpenAIProvider())
	}
	providers = append(providers, NewOllamaProvider())

	return NewLLMService(providers...)
}

// StreamChat streams a completion from the first provider that works
func (s *LLMService) StreamChat(ctx context.Context, messages []Message, onChunk func(string)) error {
	if len(s.providers) == 0 {
		return errors.New("no LLM providers configured")
	}

	var lastErr error
	for _, provider := range s.providers {
		emitted := false
		err := provider.Stream(ctx, messages, func(chunk string) {
			emitted = true
			onChunk(chunk)
		})
		if err == nil {
			return nil
		}
		if emitted {
			// Partial answer already sent, switching models now would
			// restart the response mid-sentence
			return fmt.Errorf("%s failed mid-stream: %w", provider.Name(), err)
		}
		log.Printf("❌ Provider %s failed: %v. Trying next provider...", provider.Name(), err)
		lastErr = err
	}
	return fmt.Errorf("all LLM providers failed: %w", lastErr)
}

// OllamaProvider talks to a local Ollama server over its NDJSON chat API
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider reads OLLAMA_BASE_URL and the model from the environment
func NewOllamaProvider() *OllamaProvider {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = os.Getenv("LLM_MODEL")
	}
	if model == "" {
		model = "llama3.1"
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Name identifies the provider in logs and errors
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Stream posts to /api/chat and relays each NDJSON content fragment.
// format "json" forces the local model to produce structured output.
func (p *OllamaProvider) Stream(ctx context.Context, messages []Message, onChunk func(string)) error {
	payload := map[string]any{
		"model":       p.model,
		"messages":    messages,
		"stream":      true,
		"format":      "json",
		"temperature": 0.1,
		"keep_alive":  "5m",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			Done bool `json:"done"`
		}
		if err := json.Unmarshal(line, &chunk); err != nil {
			continue
		}
		if chunk.Message.Content != "" {
			onChunk(chunk.Message.Content)
		}
		if chunk.Done {
			return nil
		}
	}
	return scanner.Err()
}

// OpenAIProvider streams chat completions from an OpenAI-compatible endpoint
type OpenAIProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewOpenAIProvider reads OPENAI_API_KEY, OPENAI_BASE_URL and OPENAI_MODEL
// from the environment
func NewOpenAIProvider() *OpenAIProvider {
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Name identifies the provider in logs and errors
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Stream posts to /chat/completions with stream enabled and relays each SSE
// delta. Temperature is pinned to zero so financial figures are not paraphrased.
func (p *OpenAIProvider) Stream(ctx context.Context, messages []Message, onChunk func(string)) error {
	if p.apiKey == "" {
		return errors.New("openai api key not configured")
	}

	payload := map[string]any{
		"model":       p.model,
		"messages":    messages,
		"stream":      true,
		"temperature": 0.0,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode openai request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build openai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			return nil
		}

		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			onChunk(chunk.Choices[0].Delta.Content)
		}
	}
	return scanner.Err()
}
