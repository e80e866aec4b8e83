// Package slm wraps the generative model for Tiers 2 and 3: it builds the
// role-structured prompt, invokes generation with fixed decoding
// parameters, and extracts the assistant turn from the raw decoded output.
package slm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bfsi-assistant-be/internal/constant"
	"bfsi-assistant-be/pkg/llm"
)

// Decoding defaults. Policy knobs, not architecture.
const (
	MaxNewTokens      = 300
	Temperature       = 0.3
	TopP              = 0.9
	RepetitionPenalty = 1.15
)

// Role markers of the TinyLlama chat template.
const (
	systemMarker    = "<|system|>\n"
	userMarker      = "<|user|>\n"
	assistantMarker = "<|assistant|>\n"
	endOfTurn       = "</s>\n"
)

// Engine generates responses for queries that did not match the curated
// dataset, optionally grounded in retrieved context.
type Engine struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewEngine(provider llm.LLMProvider, logger *log.Logger) *Engine {
	return &Engine{
		provider: provider,
		logger:   logger,
	}
}

// BuildPrompt assembles the role-structured prompt. With grounding context
// the system prompt switches to the grounded variant and the user turn
// carries the context block ahead of the question.
func BuildPrompt(query string, ragContext string) string {
	var sysPrompt, userMsg string
	if ragContext != "" {
		sysPrompt = constant.SystemPromptGrounded
		userMsg = "Context:\n" + ragContext + "\n\nQuestion: " + query
	} else {
		sysPrompt = constant.SystemPromptPlain
		userMsg = query
	}

	var b strings.Builder
	b.WriteString(systemMarker)
	b.WriteString(sysPrompt)
	b.WriteString(endOfTurn)
	b.WriteString(userMarker)
	b.WriteString(userMsg)
	b.WriteString(endOfTurn)
	b.WriteString(assistantMarker)
	return b.String()
}

// Generate produces a response for the query. ragContext may be empty for
// ungrounded (Tier 2) generation. The returned text is the assistant turn
// only, never the echoed prompt.
func (e *Engine) Generate(ctx context.Context, query string, ragContext string) (string, error) {
	prompt := BuildPrompt(query, ragContext)

	full, err := e.provider.Generate(ctx, prompt,
		llm.WithMaxTokens(MaxNewTokens),
		llm.WithTemperature(Temperature),
		llm.WithTopP(TopP),
		llm.WithRepeatPenalty(RepetitionPenalty),
	)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	return ExtractAssistant(full, prompt), nil
}

// ExtractAssistant pulls the assistant segment out of the raw decoded text.
// Some backends echo the full prompt, others return only the continuation;
// both are handled. Trailing role and end-of-sequence markers are stripped.
func ExtractAssistant(full string, prompt string) string {
	response := full
	if idx := strings.Index(full, assistantMarker); idx >= 0 {
		response = full[idx+len(assistantMarker):]
	} else if strings.HasPrefix(full, prompt) {
		response = full[len(prompt):]
	}

	// Cut at the first stray marker the model may have kept generating
	for _, tok := range []string{"</s>", "<|system|>", "<|user|>", "<|assistant|>"} {
		if idx := strings.Index(response, tok); idx >= 0 {
			response = response[:idx]
		}
	}

	return strings.TrimSpace(response)
}
