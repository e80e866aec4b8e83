package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditRecord struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId    uuid.UUID      `gorm:"type:uuid;index"`
	Query        string         `gorm:"type:text"`
	Response     string         `gorm:"type:text"`
	Tier         string         `gorm:"type:varchar(16);index"`
	DatasetScore float64        `gorm:"default:0"`
	RagScore     float64        `gorm:"default:0"`
	Details      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
}

func (AuditRecord) TableName() string {
	return "audit_records"
}
