// Package pipeline implements the tiered decision state machine: guardrail
// pre-check, curated-dataset match, generation with or without retrieved
// grounding, and post-processing. Routing is strictly conditional and
// short-circuits at the first terminal outcome.
package pipeline

import (
	"context"
	"log"
	"strings"

	"bfsi-assistant-be/internal/constant"
	"bfsi-assistant-be/pkg/rag"
)

// stateName identifies a node of the state machine.
type stateName string

const (
	stateGuardrailCheck stateName = "guardrail_check"
	stateDatasetMatch   stateName = "dataset_match"
	stateSLMGenerate    stateName = "slm_generate"
	statePostProcess    stateName = "post_process"
	stateEnd            stateName = "end"
)

// creativePrefixes mark drafting/composition tasks. Retrieval is skipped
// for these so factual context does not constrain free-form output (a
// complaint letter should not be shaped by a loan FAQ chunk). English-only
// and prefix-based, a known limitation.
var creativePrefixes = []string{"write", "draft", "compose", "generate", "suggest", "create"}

// QueryGuard is the pre/post safety gate.
type QueryGuard interface {
	CheckQuery(query string) (bool, string)
	SanitiseResponse(response string) string
}

// DatasetMatcher is the Tier 1 curated-answer lookup.
type DatasetMatcher interface {
	Search(query string) (answer string, found bool, score float64, err error)
}

// Generator is the Tier 2/3 generation adapter.
type Generator interface {
	Generate(ctx context.Context, query string, ragContext string) (string, error)
}

// Retriever is the Tier 3 document retrieval adapter.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]rag.RetrievedChunk, error)
}

// Pipeline wires the collaborators into the tiered flow. Generator and
// Retriever are optional capability handles: a nil Retriever disables Tier
// 3, a nil Generator makes Tiers 2/3 answer with a fixed unavailability
// message. Matcher and guard are required.
type Pipeline struct {
	guard     QueryGuard
	matcher   DatasetMatcher
	generator Generator
	retriever Retriever

	relevanceThreshold float64 // distance; chunk is relevant when score <= threshold
	retrievalK         int

	logger *log.Logger
}

func New(
	guard QueryGuard,
	matcher DatasetMatcher,
	generator Generator,
	retriever Retriever,
	relevanceThreshold float64,
	retrievalK int,
	logger *log.Logger,
) *Pipeline {
	if retrievalK <= 0 {
		retrievalK = rag.DefaultK
	}
	return &Pipeline{
		guard:              guard,
		matcher:            matcher,
		generator:          generator,
		retriever:          retriever,
		relevanceThreshold: relevanceThreshold,
		retrievalK:         retrievalK,
		logger:             logger,
	}
}

// HasRetriever reports whether Tier 3 is available for this process.
func (p *Pipeline) HasRetriever() bool {
	return p.retriever != nil
}

// HasGenerator reports whether Tiers 2/3 are available for this process.
func (p *Pipeline) HasGenerator() bool {
	return p.generator != nil
}

// Run executes the state machine for one query and returns the final state.
// The caller owns timing; Run does not measure elapsed time.
func (p *Pipeline) Run(ctx context.Context, query string) *State {
	state := newState(query)

	current := stateGuardrailCheck
	for current != stateEnd {
		switch current {
		case stateGuardrailCheck:
			p.guardrailCheck(state)
		case stateDatasetMatch:
			p.datasetMatch(state)
		case stateSLMGenerate:
			p.slmGenerate(ctx, state)
		case statePostProcess:
			p.postProcess(state)
		}
		current = p.route(current, state)
	}

	return state
}

// route computes the next state name. Terminal outcomes (guardrail
// rejection, dataset hit) jump straight to end; nothing downstream may
// overwrite an already-decided tier.
func (p *Pipeline) route(current stateName, state *State) stateName {
	switch current {
	case stateGuardrailCheck:
		if !state.IsValid {
			return stateEnd
		}
		return stateDatasetMatch
	case stateDatasetMatch:
		if state.TierUsed == constant.TierDataset {
			return stateEnd
		}
		return stateSLMGenerate
	case stateSLMGenerate:
		return statePostProcess
	default:
		return stateEnd
	}
}

func (p *Pipeline) guardrailCheck(state *State) {
	isValid, reason := p.guard.CheckQuery(state.Query)
	state.IsValid = isValid
	state.RejectionReason = reason
	if !isValid {
		state.Response = reason
		state.TierUsed = constant.TierGuardrail
		p.logger.Printf("[PIPELINE] Query rejected by guardrail")
	}
}

func (p *Pipeline) datasetMatch(state *State) {
	answer, found, score, err := p.matcher.Search(state.Query)
	if err != nil {
		// Tier 1 failing is not terminal; fall through to generation.
		p.logger.Printf("[PIPELINE] Dataset match error: %v", err)
		return
	}
	state.DatasetScore = score
	if found {
		// Curated answers are pre-vetted; they skip post-processing.
		state.Response = answer
		state.TierUsed = constant.TierDataset
		p.logger.Printf("[PIPELINE] Dataset hit (score=%.4f)", score)
	}
}

func (p *Pipeline) slmGenerate(ctx context.Context, state *State) {
	if p.generator == nil {
		state.Response = constant.GenerationUnavailableMessage
		state.TierUsed = constant.TierSLM
		p.logger.Printf("[PIPELINE] Generator unavailable, returning fallback")
		return
	}

	// Try grounded generation first, unless the task is creative or the
	// retrieval store is unavailable.
	if p.retriever != nil && !isCreativeTask(state.Query) {
		chunks, err := p.retriever.Retrieve(ctx, state.Query, p.retrievalK)
		if err != nil {
			p.logger.Printf("[PIPELINE] Retrieval failed, falling back to plain generation: %v", err)
		} else if len(chunks) > 0 && chunks[0].Score <= p.relevanceThreshold {
			// Low distance = high relevance
			ragContext := rag.FormatContext(chunks)
			state.RagContext = ragContext
			state.RagScore = chunks[0].Score

			response, err := p.generator.Generate(ctx, state.Query, ragContext)
			if err != nil {
				p.logger.Printf("[PIPELINE] Grounded generation failed: %v", err)
				state.Response = constant.GenerationUnavailableMessage
			} else {
				state.Response = response
			}
			state.TierUsed = constant.TierRAG
			return
		}
	}

	// Pure SLM generation (no grounding context)
	response, err := p.generator.Generate(ctx, state.Query, "")
	if err != nil {
		p.logger.Printf("[PIPELINE] Generation failed: %v", err)
		state.Response = constant.GenerationUnavailableMessage
	} else {
		state.Response = response
	}
	state.TierUsed = constant.TierSLM
}

func (p *Pipeline) postProcess(state *State) {
	state.Response = p.guard.SanitiseResponse(state.Response)
}

func isCreativeTask(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, prefix := range creativePrefixes {
		if strings.HasPrefix(q, prefix) {
			return true
		}
	}
	return false
}
