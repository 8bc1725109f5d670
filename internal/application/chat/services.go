package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/seongmin2223/resumepro/internal/domain/ai"
	domain "github.com/seongmin2223/resumepro/internal/domain/resumes"
	"github.com/seongmin2223/resumepro/internal/infra/ai/prompt"
)

// Service answers single-shot follow-up questions about a stored analysis.
// This is a live conversational surface: the reply goes back raw, with no
// sanitization and no persistence.
type Service struct {
	Repo domain.Repository
	AI   ai.Client
	Log  *zap.Logger
}

// Reply looks up the record (a miss is fatal here; there is no context to
// chat about without it), rebuilds full context into one prompt and asks
// the model. A gateway failure falls back to the standard substituted
// reply rather than an error.
func (s *Service) Reply(ctx context.Context, id domain.HistoryID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is required")
	}

	h, err := s.Repo.Get(ctx, id)
	if err != nil {
		return "", err
	}

	reply, err := s.AI.Complete(ctx, "", prompt.FollowUp(h.UserResume, h.AIResponse, message))
	if err != nil {
		if s.Log != nil {
			s.Log.Warn("follow-up completion failed, substituting error reply",
				zap.Int64("history_id", int64(id)), zap.Error(err))
		}
		return prompt.Failure(err), nil
	}
	return reply, nil
}
