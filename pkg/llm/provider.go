package llm

import (
	"context"
)

// Option allows for optional decoding parameters.
type Option func(*Options)

type Options struct {
	Temperature   float64
	TopP          float64
	RepeatPenalty float64
	MaxTokens     int
	Model         string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(topP float64) Option {
	return func(o *Options) {
		o.TopP = topP
	}
}

func WithRepeatPenalty(penalty float64) Option {
	return func(o *Options) {
		o.RepeatPenalty = penalty
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any generative backend. Generate
// returns the raw decoded continuation of the prompt; role markers the
// model emits are passed through untouched so callers can extract the
// assistant turn themselves.
type LLMProvider interface {
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
