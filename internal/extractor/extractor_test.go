package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExtractWithoutLLM(t *testing.T) {
	t.Parallel()

	svc := New(Config{}, nil)
	if _, err := svc.Extract(context.Background(), "We need 10 laptops"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestExtractEmptyContent(t *testing.T) {
	t.Parallel()

	svc := New(Config{}, &stubLLM{})
	if _, err := svc.Extract(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestExtractParsesFencedJSON(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{response: "```json\n" + `{
		"title": "Office laptops",
		"categories": [{"category": "Laptops", "quantity": 10, "targets": {"memory": "16 GB"}}],
		"criteria": {"price": 50, "quality": 30, "delivery": 20}
	}` + "\n```"}
	svc := New(Config{}, llm)

	req, err := svc.Extract(context.Background(), "We need 10 laptops with 16 GB RAM")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if req.Title != "Office laptops" {
		t.Fatalf("unexpected title %q", req.Title)
	}
	if len(req.Categories) != 1 || req.Categories[0].Quantity != 10 {
		t.Fatalf("unexpected categories %+v", req.Categories)
	}
	if req.Categories[0].Targets["memory"] != "16 GB" {
		t.Fatalf("unexpected targets %+v", req.Categories[0].Targets)
	}
	if !strings.Contains(llm.prompt, "We need 10 laptops with 16 GB RAM") {
		t.Fatalf("expected rfq text in prompt, got %q", llm.prompt)
	}
}

func TestExtractLLMErrorWrapsUnavailable(t *testing.T) {
	t.Parallel()

	svc := New(Config{}, &stubLLM{err: errors.New("timeout")})
	if _, err := svc.Extract(context.Background(), "text"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable wrap, got %v", err)
	}
}

func TestExtractRejectsEmptyCategories(t *testing.T) {
	t.Parallel()

	svc := New(Config{}, &stubLLM{response: `{"title":"x","categories":[]}`})
	if _, err := svc.Extract(context.Background(), "text"); err == nil {
		t.Fatal("expected error for extraction without categories")
	}
}

func TestBuildPromptTemplate(t *testing.T) {
	t.Parallel()

	svc := New(Config{PromptTemplate: "Convert this: {{content}}"}, &stubLLM{})
	got := svc.buildPrompt("hello")
	if got != "Convert this: hello" {
		t.Fatalf("unexpected prompt %q", got)
	}
}

func TestBuildPromptDefaultCategories(t *testing.T) {
	t.Parallel()

	svc := New(Config{}, &stubLLM{})
	prompt := svc.buildPrompt("text")
	if !strings.Contains(prompt, "Laptops, Monitors, GPUs, AI Hardware") {
		t.Fatalf("expected default categories listed, got %q", prompt)
	}
}

// --- stubs ---

type stubLLM struct {
	response string
	err      error
	prompt   string
}

func (l *stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	l.prompt = prompt
	return l.response, l.err
}
