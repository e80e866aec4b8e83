package contract

import (
	"context"

	"bfsi-assistant-be/internal/entity"
)

type AuditRepository interface {
	Create(ctx context.Context, record *entity.AuditRecord) error
	FindRecent(ctx context.Context, limit int) ([]*entity.AuditRecord, error)
}
