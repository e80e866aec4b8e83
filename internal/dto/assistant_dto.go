package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	SessionId uuid.UUID `json:"session_id"`
	Query     string    `json:"query" validate:"required"`
}

type SendChatResponse struct {
	SessionId    uuid.UUID `json:"session_id"`
	Response     string    `json:"response"`
	Tier         string    `json:"tier"`
	DatasetScore float64   `json:"dataset_score"`
	RagScore     float64   `json:"rag_score"`
	Cached       bool      `json:"cached"`
	ElapsedMs    int64     `json:"elapsed_ms"`
}

type CreateSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Greeting  string    `json:"greeting"`
}

type ChatTurnResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Tier      string    `json:"tier,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	DatasetTier  bool   `json:"dataset_tier"`
	SLMTier      bool   `json:"slm_tier"`
	RAGTier      bool   `json:"rag_tier"`
	CacheEnabled bool   `json:"cache_enabled"`
}

type AuditRecordResponse struct {
	Id           uuid.UUID `json:"id"`
	SessionId    uuid.UUID `json:"session_id"`
	Query        string    `json:"query"`
	Response     string    `json:"response"`
	Tier         string    `json:"tier"`
	DatasetScore float64   `json:"dataset_score"`
	RagScore     float64   `json:"rag_score"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublishAuditMessage is the payload published on the audit topic after
// every completed pipeline run.
type PublishAuditMessage struct {
	SessionId    uuid.UUID `json:"session_id"`
	Query        string    `json:"query"`
	Response     string    `json:"response"`
	Tier         string    `json:"tier"`
	DatasetScore float64   `json:"dataset_score"`
	RagScore     float64   `json:"rag_score"`
	RagContext   string    `json:"rag_context"`
	Cached       bool      `json:"cached"`
	OccurredAt   time.Time `json:"occurred_at"`
}
