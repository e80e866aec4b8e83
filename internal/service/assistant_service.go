package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bfsi-assistant-be/internal/constant"
	"bfsi-assistant-be/internal/dto"
	"bfsi-assistant-be/internal/pkg/logger"
	"bfsi-assistant-be/internal/repository/memory"
	"bfsi-assistant-be/pkg/cache"
	"bfsi-assistant-be/pkg/pipeline"
	"bfsi-assistant-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IAssistantService defines the assistant service interface
type IAssistantService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatTurnResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
	Health(ctx context.Context) *dto.HealthResponse
}

type assistantService struct {
	pipeline      *pipeline.Pipeline
	sessionRepo   *memory.SessionRepository
	responseCache *cache.ResponseCache // nil when Redis is not configured
	pubSub        *gochannel.GoChannel
	auditTopic    string
	logger        logger.ILogger
}

func NewAssistantService(
	p *pipeline.Pipeline,
	sessionRepo *memory.SessionRepository,
	responseCache *cache.ResponseCache,
	pubSub *gochannel.GoChannel,
	auditTopic string,
	sysLogger logger.ILogger,
) IAssistantService {
	return &assistantService{
		pipeline:      p,
		sessionRepo:   sessionRepo,
		responseCache: responseCache,
		pubSub:        pubSub,
		auditTopic:    auditTopic,
		logger:        sysLogger,
	}
}

func (s *assistantService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := &store.Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Turns: []store.ChatTurn{
			{
				Role:      constant.ChatRoleModel,
				Content:   constant.WelcomeMessage,
				CreatedAt: time.Now(),
			},
		},
	}
	s.sessionRepo.Save(session)

	sessionId, _ := uuid.Parse(session.ID)
	return &dto.CreateSessionResponse{
		SessionId: sessionId,
		Greeting:  constant.WelcomeMessage,
	}, nil
}

// SendChat runs one query through the tiered pipeline. Elapsed time is
// measured here, around the cache check and the pipeline run.
func (s *assistantService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionId := request.SessionId
	session, found := s.sessionRepo.Get(sessionId.String())
	if !found {
		// Sessions are ephemeral; a vanished session becomes a fresh one
		// rather than an error the caller has to handle.
		sessionId = uuid.New()
		session = &store.Session{
			ID:        sessionId.String(),
			CreatedAt: time.Now(),
		}
	}

	start := time.Now()

	state, cached := s.responseCache.Get(ctx, request.Query)
	if !cached {
		state = s.pipeline.Run(ctx, request.Query)
		s.responseCache.Set(ctx, request.Query, state)
	}

	elapsed := time.Since(start)

	now := time.Now()
	session.LastQuery = request.Query
	session.Turns = append(session.Turns,
		store.ChatTurn{
			Role:      constant.ChatRoleUser,
			Content:   request.Query,
			CreatedAt: now,
		},
		store.ChatTurn{
			Role:         constant.ChatRoleModel,
			Content:      state.Response,
			Tier:         state.TierUsed,
			DatasetScore: state.DatasetScore,
			RagScore:     state.RagScore,
			CreatedAt:    now,
		},
	)
	s.sessionRepo.Save(session)

	s.publishAudit(sessionId, state, cached)

	s.logger.Info("assistant", "Query answered", map[string]interface{}{
		"session_id":    sessionId.String(),
		"tier":          state.TierUsed,
		"dataset_score": state.DatasetScore,
		"rag_score":     state.RagScore,
		"cached":        cached,
		"elapsed_ms":    elapsed.Milliseconds(),
	})

	return &dto.SendChatResponse{
		SessionId:    sessionId,
		Response:     state.Response,
		Tier:         state.TierUsed,
		DatasetScore: state.DatasetScore,
		RagScore:     state.RagScore,
		Cached:       cached,
		ElapsedMs:    elapsed.Milliseconds(),
	}, nil
}

func (s *assistantService) publishAudit(sessionId uuid.UUID, state *pipeline.State, cached bool) {
	if s.pubSub == nil {
		return
	}

	payload := dto.PublishAuditMessage{
		SessionId:    sessionId,
		Query:        state.Query,
		Response:     state.Response,
		Tier:         state.TierUsed,
		DatasetScore: state.DatasetScore,
		RagScore:     state.RagScore,
		RagContext:   state.RagContext,
		Cached:       cached,
		OccurredAt:   time.Now(),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("assistant", "Failed to marshal audit event", map[string]interface{}{"error": err})
		return
	}

	msg := message.NewMessage(uuid.New().String(), raw)
	if err := s.pubSub.Publish(s.auditTopic, msg); err != nil {
		s.logger.Error("assistant", "Failed to publish audit event", map[string]interface{}{"error": err})
	}
}

func (s *assistantService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatTurnResponse, error) {
	session, found := s.sessionRepo.Get(sessionId.String())
	if !found {
		return nil, fmt.Errorf("session %s not found", sessionId)
	}

	turns := make([]*dto.ChatTurnResponse, len(session.Turns))
	for i, turn := range session.Turns {
		turns[i] = &dto.ChatTurnResponse{
			Role:      turn.Role,
			Content:   turn.Content,
			Tier:      turn.Tier,
			CreatedAt: turn.CreatedAt,
		}
	}
	return turns, nil
}

func (s *assistantService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	s.sessionRepo.Delete(sessionId.String())
	return nil
}

func (s *assistantService) Health(ctx context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:       "ok",
		DatasetTier:  true, // the process refuses to start without the curated set
		SLMTier:      s.pipeline.HasGenerator(),
		RAGTier:      s.pipeline.HasRetriever(),
		CacheEnabled: s.responseCache != nil,
	}
}
