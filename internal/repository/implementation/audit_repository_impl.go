package implementation

import (
	"context"
	"encoding/json"

	"bfsi-assistant-be/internal/entity"
	"bfsi-assistant-be/internal/model"
	"bfsi-assistant-be/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) contract.AuditRepository {
	return &AuditRepositoryImpl{db: db}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, record *entity.AuditRecord) error {
	var details datatypes.JSON
	if record.Details != nil {
		raw, err := json.Marshal(record.Details)
		if err != nil {
			return err
		}
		details = datatypes.JSON(raw)
	}

	m := &model.AuditRecord{
		Id:           record.Id,
		SessionId:    record.SessionId,
		Query:        record.Query,
		Response:     record.Response,
		Tier:         record.Tier,
		DatasetScore: record.DatasetScore,
		RagScore:     record.RagScore,
		Details:      details,
		CreatedAt:    record.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	record.Id = m.Id
	record.CreatedAt = m.CreatedAt
	return nil
}

func (r *AuditRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*entity.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var models []*model.AuditRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	records := make([]*entity.AuditRecord, len(models))
	for i, m := range models {
		var details map[string]interface{}
		if len(m.Details) > 0 {
			_ = json.Unmarshal(m.Details, &details)
		}
		records[i] = &entity.AuditRecord{
			Id:           m.Id,
			SessionId:    m.SessionId,
			Query:        m.Query,
			Response:     m.Response,
			Tier:         m.Tier,
			DatasetScore: m.DatasetScore,
			RagScore:     m.RagScore,
			Details:      details,
			CreatedAt:    m.CreatedAt,
		}
	}
	return records, nil
}
