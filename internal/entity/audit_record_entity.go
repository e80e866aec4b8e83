package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord captures one completed pipeline run for compliance review.
type AuditRecord struct {
	Id           uuid.UUID
	SessionId    uuid.UUID
	Query        string
	Response     string
	Tier         string
	DatasetScore float64
	RagScore     float64
	Details      map[string]interface{}
	CreatedAt    time.Time
}
