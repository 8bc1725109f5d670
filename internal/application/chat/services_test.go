package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/seongmin2223/resumepro/internal/domain/resumes"
	"github.com/seongmin2223/resumepro/internal/infra/db/memory"
)

type fakeAI struct {
	reply string
	err   error

	calls    int
	lastUser string
}

func (f *fakeAI) Complete(_ context.Context, _, user string) (string, error) {
	f.calls++
	f.lastUser = user
	return f.reply, f.err
}

func seedHistory(t *testing.T, repo *memory.HistoryRepository) *domain.History {
	t.Helper()
	h := &domain.History{
		UserResume: "경력 5년 백엔드 개발자",
		AIResponse: "[강점]\n• 경력 우수",
	}
	require.NoError(t, repo.Save(context.Background(), h))
	return h
}

func TestReplyCarriesFullContext(t *testing.T) {
	t.Parallel()

	repo := memory.NewHistoryRepository()
	h := seedHistory(t, repo)
	gateway := &fakeAI{reply: "**좋은** 질문입니다"}
	svc := &Service{Repo: repo, AI: gateway, Log: zap.NewNop()}

	reply, err := svc.Reply(context.Background(), h.ID, "약점을 어떻게 보완하죠?")
	require.NoError(t, err)

	// Live chat replies go back raw, markers and all.
	assert.Equal(t, "**좋은** 질문입니다", reply)

	assert.Contains(t, gateway.lastUser, h.UserResume)
	assert.Contains(t, gateway.lastUser, h.AIResponse)
	assert.Contains(t, gateway.lastUser, "약점을 어떻게 보완하죠?")
}

func TestReplyUnknownHistory(t *testing.T) {
	t.Parallel()

	gateway := &fakeAI{}
	svc := &Service{Repo: memory.NewHistoryRepository(), AI: gateway, Log: zap.NewNop()}

	_, err := svc.Reply(context.Background(), 404, "질문")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, gateway.calls, "missing record must not hit the gateway")
}

func TestReplyBlankMessage(t *testing.T) {
	t.Parallel()

	repo := memory.NewHistoryRepository()
	h := seedHistory(t, repo)
	gateway := &fakeAI{}
	svc := &Service{Repo: repo, AI: gateway, Log: zap.NewNop()}

	_, err := svc.Reply(context.Background(), h.ID, "   ")
	assert.Error(t, err)
	assert.Zero(t, gateway.calls)
}

func TestReplyGatewayFailureSubstituted(t *testing.T) {
	t.Parallel()

	repo := memory.NewHistoryRepository()
	h := seedHistory(t, repo)
	svc := &Service{Repo: repo, AI: &fakeAI{err: errors.New("rate limited")}, Log: zap.NewNop()}

	reply, err := svc.Reply(context.Background(), h.ID, "질문")
	require.NoError(t, err, "gateway failure must not surface as an error")
	assert.Contains(t, reply, "AI 분석 중 오류가 발생했습니다")
}
