package service

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"bfsi-assistant-be/internal/constant"
	"bfsi-assistant-be/internal/dto"
	"bfsi-assistant-be/internal/entity"
	"bfsi-assistant-be/internal/repository/memory"
	"bfsi-assistant-be/pkg/guardrail"
	"bfsi-assistant-be/pkg/pipeline"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type stubMatcher struct {
	answer string
	found  bool
	score  float64
}

func (s *stubMatcher) Search(query string) (string, bool, float64, error) {
	return s.answer, s.found, s.score, nil
}

type stubGenerator struct {
	response string
}

func (s *stubGenerator) Generate(ctx context.Context, query string, ragContext string) (string, error) {
	return s.response, nil
}

// recordingAuditRepo captures persisted records and signals each Create.
type recordingAuditRepo struct {
	mu      sync.Mutex
	records []*entity.AuditRecord
	created chan struct{}
}

func newRecordingAuditRepo() *recordingAuditRepo {
	return &recordingAuditRepo{created: make(chan struct{}, 16)}
}

func (r *recordingAuditRepo) Create(ctx context.Context, record *entity.AuditRecord) error {
	r.mu.Lock()
	r.records = append(r.records, record)
	r.mu.Unlock()
	r.created <- struct{}{}
	return nil
}

func (r *recordingAuditRepo) FindRecent(ctx context.Context, limit int) ([]*entity.AuditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.AuditRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func testPipeline(m pipeline.DatasetMatcher, g pipeline.Generator) *pipeline.Pipeline {
	return pipeline.New(guardrail.New(), m, g, nil, 0.5, 3, log.New(io.Discard, "", 0))
}

func TestCreateSessionSeedsGreeting(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	svc := NewAssistantService(testPipeline(&stubMatcher{}, nil), sessionRepo, nil, nil, "AUDIT", noopLogger{})

	resp, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.SessionId)
	assert.Equal(t, constant.WelcomeMessage, resp.Greeting)

	turns, err := svc.GetChatHistory(context.Background(), resp.SessionId)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, constant.ChatRoleModel, turns[0].Role)
	assert.Equal(t, constant.WelcomeMessage, turns[0].Content)
}

func TestSendChatAppendsTurns(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	m := &stubMatcher{answer: "Curated answer.", found: true, score: 0.93}
	svc := NewAssistantService(testPipeline(m, nil), sessionRepo, nil, nil, "AUDIT", noopLogger{})

	created, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		SessionId: created.SessionId,
		Query:     "How do I close my loan account?",
	})
	require.NoError(t, err)

	assert.Equal(t, created.SessionId, resp.SessionId)
	assert.Equal(t, "Curated answer.", resp.Response)
	assert.Equal(t, constant.TierDataset, resp.Tier)
	assert.Equal(t, 0.93, resp.DatasetScore)
	assert.False(t, resp.Cached)

	turns, err := svc.GetChatHistory(context.Background(), created.SessionId)
	require.NoError(t, err)
	require.Len(t, turns, 3) // greeting + user + model
	assert.Equal(t, constant.ChatRoleUser, turns[1].Role)
	assert.Equal(t, "How do I close my loan account?", turns[1].Content)
	assert.Equal(t, constant.ChatRoleModel, turns[2].Role)
	assert.Equal(t, constant.TierDataset, turns[2].Tier)
}

func TestSendChatUnknownSessionGetsFreshOne(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	m := &stubMatcher{answer: "Curated answer.", found: true, score: 0.9}
	svc := NewAssistantService(testPipeline(m, nil), sessionRepo, nil, nil, "AUDIT", noopLogger{})

	unknown := uuid.New()
	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		SessionId: unknown,
		Query:     "tell me about my account",
	})
	require.NoError(t, err)
	assert.NotEqual(t, unknown, resp.SessionId)

	turns, err := svc.GetChatHistory(context.Background(), resp.SessionId)
	require.NoError(t, err)
	assert.Len(t, turns, 2) // no greeting on a recovered session
}

func TestGetChatHistoryUnknownSession(t *testing.T) {
	svc := NewAssistantService(testPipeline(&stubMatcher{}, nil), memory.NewSessionRepository(), nil, nil, "AUDIT", noopLogger{})

	_, err := svc.GetChatHistory(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestDeleteSession(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	svc := NewAssistantService(testPipeline(&stubMatcher{}, nil), sessionRepo, nil, nil, "AUDIT", noopLogger{})

	created, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(context.Background(), created.SessionId))

	_, err = svc.GetChatHistory(context.Background(), created.SessionId)
	assert.Error(t, err)
}

func TestHealthReflectsCapabilities(t *testing.T) {
	degraded := NewAssistantService(testPipeline(&stubMatcher{}, nil), memory.NewSessionRepository(), nil, nil, "AUDIT", noopLogger{})
	h := degraded.Health(context.Background())
	assert.True(t, h.DatasetTier)
	assert.False(t, h.SLMTier)
	assert.False(t, h.RAGTier)
	assert.False(t, h.CacheEnabled)

	withGen := NewAssistantService(testPipeline(&stubMatcher{}, &stubGenerator{response: "x"}), memory.NewSessionRepository(), nil, nil, "AUDIT", noopLogger{})
	h = withGen.Health(context.Background())
	assert.True(t, h.SLMTier)
	assert.False(t, h.RAGTier)
}

func TestSendChatPublishesAuditEvent(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	auditRepo := newRecordingAuditRepo()

	auditSvc := NewAuditService(pubSub, "AUDIT", auditRepo, noopLogger{})
	require.NoError(t, auditSvc.Consume(context.Background()))

	m := &stubMatcher{answer: "Curated answer.", found: true, score: 0.88}
	svc := NewAssistantService(testPipeline(m, nil), memory.NewSessionRepository(), nil, pubSub, "AUDIT", noopLogger{})

	created, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	_, err = svc.SendChat(context.Background(), &dto.SendChatRequest{
		SessionId: created.SessionId,
		Query:     "How do I close my loan account?",
	})
	require.NoError(t, err)

	select {
	case <-auditRepo.created:
	case <-time.After(2 * time.Second):
		t.Fatal("audit record was not persisted")
	}

	records, err := auditRepo.FindRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "How do I close my loan account?", records[0].Query)
	assert.Equal(t, constant.TierDataset, records[0].Tier)
	assert.Equal(t, 0.88, records[0].DatasetScore)
}

func TestAuditFindRecentWithoutDatabase(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	auditSvc := NewAuditService(pubSub, "AUDIT", nil, noopLogger{})

	records, err := auditSvc.FindRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
