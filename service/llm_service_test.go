package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeProvider scripts a provider's behaviour: emit some chunks, then
// optionally fail.
type fakeProvider struct {
	name   string
	chunks []string
	err    error
	calls  int
}

func (p *fakeProvider) Name() string {
	return p.name
}

func (p *fakeProvider) Stream(ctx context.Context, messages []Message, onChunk func(string)) error {
	p.calls++
	for _, chunk := range p.chunks {
		onChunk(chunk)
	}
	return p.err
}

func collect(buf *strings.Builder) func(string) {
	return func(chunk string) { buf.WriteString(chunk) }
}

func TestStreamChatFirstProviderWins(t *testing.T) {
	first := &fakeProvider{name: "first", chunks: []string{"hello ", "world"}}
	second := &fakeProvider{name: "second", chunks: []string{"unused"}}
	svc := NewLLMService(first, second)

	var buf strings.Builder
	if err := svc.StreamChat(context.Background(), nil, collect(&buf)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "hello world" {
		t.Fatalf("got %q, want %q", buf.String(), "hello world")
	}
	if second.calls != 0 {
		t.Fatalf("second provider was called %d times, want 0", second.calls)
	}
}

func TestStreamChatFallsBackBeforeFirstChunk(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("connection refused")}
	second := &fakeProvider{name: "second", chunks: []string{"answer"}}
	svc := NewLLMService(first, second)

	var buf strings.Builder
	if err := svc.StreamChat(context.Background(), nil, collect(&buf)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "answer" {
		t.Fatalf("got %q, want %q", buf.String(), "answer")
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("calls = (%d, %d), want (1, 1)", first.calls, second.calls)
	}
}

func TestStreamChatDoesNotFallBackMidStream(t *testing.T) {
	first := &fakeProvider{name: "first", chunks: []string{"partial "}, err: errors.New("timeout")}
	second := &fakeProvider{name: "second", chunks: []string{"full answer"}}
	svc := NewLLMService(first, second)

	var buf strings.Builder
	err := svc.StreamChat(context.Background(), nil, collect(&buf))
	if err == nil {
		t.Fatal("expected mid-stream failure to be returned")
	}
	if !strings.Contains(err.Error(), "first") {
		t.Fatalf("error should name the failing provider, got %v", err)
	}
	if buf.String() != "partial " {
		t.Fatalf("got %q, want only the partial output", buf.String())
	}
	if second.calls != 0 {
		t.Fatalf("second provider was called after a mid-stream failure")
	}
}

func TestStreamChatSurfacesLastFailure(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("first down")}
	second := &fakeProvider{name: "second", err: errors.New("second down")}
	svc := NewLLMService(first, second)

	err := svc.StreamChat(context.Background(), nil, func(string) {})
	if err == nil {
		t.Fatal("expected error when every provider fails")
	}
	if !strings.Contains(err.Error(), "second down") {
		t.Fatalf("expected the last failure to be surfaced, got %v", err)
	}
}

func TestStreamChatNoProviders(t *testing.T) {
	svc := NewLLMService()
	if err := svc.StreamChat(context.Background(), nil, func(string) {}); err == nil {
		t.Fatal("expected error with an empty provider chain")
	}
}
