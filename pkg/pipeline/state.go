package pipeline

import "bfsi-assistant-be/internal/constant"

// State is the mutable record threaded through the state machine for one
// request. Created at the start of a run, mutated node by node, discarded
// once the caller has read the result. Exactly one tier outcome is recorded
// per completed run.
type State struct {
	Query           string  `json:"query"`
	Response        string  `json:"response"`
	TierUsed        string  `json:"tier_used"` // dataset | slm | rag | guardrail | unknown
	DatasetScore    float64 `json:"dataset_score"`
	RagScore        float64 `json:"rag_score"` // distance; lower is more relevant
	RagContext      string  `json:"rag_context"`
	IsValid         bool    `json:"is_valid"`
	RejectionReason string  `json:"rejection_reason"`
}

func newState(query string) *State {
	return &State{
		Query:    query,
		TierUsed: constant.TierUnknown,
		IsValid:  true,
	}
}
