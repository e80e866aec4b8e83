package service

import (
	"context"
	"encoding/json"

	"bfsi-assistant-be/internal/dto"
	"bfsi-assistant-be/internal/entity"
	"bfsi-assistant-be/internal/pkg/logger"
	"bfsi-assistant-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IAuditService persists pipeline audit events published on the event bus.
type IAuditService interface {
	Consume(ctx context.Context) error
	FindRecent(ctx context.Context, limit int) ([]*dto.AuditRecordResponse, error)
}

type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	auditRepo contract.AuditRepository // nil when the database is unavailable
	logger    logger.ILogger
}

func NewAuditService(
	pubSub *gochannel.GoChannel,
	topicName string,
	auditRepo contract.AuditRepository,
	sysLogger logger.ILogger,
) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		auditRepo: auditRepo,
		logger:    sysLogger,
	}
}

func (s *auditService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *auditService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishAuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("audit", "Failed to unmarshal audit event", map[string]interface{}{"error": err})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	if s.auditRepo == nil {
		// No database: the structured log line is the audit trail.
		s.logger.Info("audit", "Pipeline run", map[string]interface{}{
			"session_id":    payload.SessionId.String(),
			"tier":          payload.Tier,
			"dataset_score": payload.DatasetScore,
			"rag_score":     payload.RagScore,
			"cached":        payload.Cached,
		})
		msg.Ack()
		return
	}

	record := &entity.AuditRecord{
		Id:           uuid.New(),
		SessionId:    payload.SessionId,
		Query:        payload.Query,
		Response:     payload.Response,
		Tier:         payload.Tier,
		DatasetScore: payload.DatasetScore,
		RagScore:     payload.RagScore,
		Details: map[string]interface{}{
			"rag_context_len": len(payload.RagContext),
			"cached":          payload.Cached,
		},
		CreatedAt: payload.OccurredAt,
	}

	if err := s.auditRepo.Create(ctx, record); err != nil {
		s.logger.Error("audit", "Failed to persist audit record", map[string]interface{}{"error": err})
		msg.Nack()
		return
	}

	msg.Ack()
}

func (s *auditService) FindRecent(ctx context.Context, limit int) ([]*dto.AuditRecordResponse, error) {
	if s.auditRepo == nil {
		return []*dto.AuditRecordResponse{}, nil
	}

	records, err := s.auditRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AuditRecordResponse, len(records))
	for i, r := range records {
		responses[i] = &dto.AuditRecordResponse{
			Id:           r.Id,
			SessionId:    r.SessionId,
			Query:        r.Query,
			Response:     r.Response,
			Tier:         r.Tier,
			DatasetScore: r.DatasetScore,
			RagScore:     r.RagScore,
			CreatedAt:    r.CreatedAt,
		}
	}
	return responses, nil
}
