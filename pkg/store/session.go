package store

import "time"

// ChatTurn is one message in a conversation, as rendered back to the UI.
type ChatTurn struct {
	Role         string    `json:"role"` // "user" | "model"
	Content      string    `json:"content"`
	Tier         string    `json:"tier,omitempty"`
	DatasetScore float64   `json:"dataset_score,omitempty"`
	RagScore     float64   `json:"rag_score,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session holds the short-lived conversation state for one chat client.
// The pipeline itself is stateless per request; sessions exist only so the
// UI can render history and so audits can be grouped.
type Session struct {
	ID        string     `json:"id"`
	Turns     []ChatTurn `json:"turns"`
	CreatedAt time.Time  `json:"created_at"`
	LastQuery string     `json:"last_query"`
}
