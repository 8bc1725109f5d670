package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seongmin2223/resumepro/internal/application"
	"github.com/seongmin2223/resumepro/internal/domain/ai"
	"github.com/seongmin2223/resumepro/internal/domain/mail"
	domain "github.com/seongmin2223/resumepro/internal/domain/resumes"
	"github.com/seongmin2223/resumepro/internal/infra/ai/prompt"
	"github.com/seongmin2223/resumepro/internal/infra/extract"
)

// MsgNothingToAnalyze is returned when the submitted resume is blank after
// extraction. No model call is made and nothing is persisted.
const MsgNothingToAnalyze = "분석할 내용이 없습니다."

// EmailSubject for delivered reports
const EmailSubject = "[AI 이력서 분석] 검토 리포트 결과입니다."

// ErrEmptyUpload signals an uploaded PDF yielded no readable text.
var ErrEmptyUpload = errors.New("no readable text in uploaded file")

// Service implements the resume analysis use-cases. It is safe for
// concurrent use; the repository is the only shared mutable state.
type Service struct {
	Repo     domain.Repository
	AI       ai.Client
	Renderer domain.Renderer
	Mailer   mail.Sender
	Archive  domain.ArchiveStore // optional; nil disables archiving
	Clock    application.Clock
	Log      *zap.Logger
}

//
// ==== USE CASES ====
//

// Analyze runs the full pipeline for pasted text: guard -> prompt ->
// completion -> sanitize -> persist. A blank resume short-circuits with a
// fixed message and a nil record. A gateway failure is absorbed into a
// substituted reply that is sanitized and persisted like any other result,
// so the caller always has something stored and downloadable.
func (s *Service) Analyze(ctx context.Context, ownerEmail, resumeText string) (string, *domain.History, error) {
	text := extract.FromText(resumeText)
	if text == "" {
		return MsgNothingToAnalyze, nil, nil
	}

	reply := s.complete(ctx, prompt.ReviewSystem(), text)
	clean := domain.Sanitize(reply)

	h := &domain.History{
		UserEmail:  ownerEmail,
		UserResume: text,
		AIResponse: clean,
	}
	if err := s.Repo.Save(ctx, h); err != nil {
		return "", nil, fmt.Errorf("saving history: %w", err)
	}
	return clean, h, nil
}

// AnalyzeUpload extracts text from an uploaded PDF and feeds it through
// Analyze. A malformed or empty PDF returns ErrEmptyUpload; the original
// file is archived best-effort when an archive store is configured.
func (s *Service) AnalyzeUpload(ctx context.Context, ownerEmail, filename string, data []byte) (string, *domain.History, error) {
	text := extract.FromText(extract.FromPDF(data))
	if text == "" {
		return "", nil, ErrEmptyUpload
	}

	s.archive(ctx, fmt.Sprintf("uploads/%s/%s-%s", s.keyDate(), uuid.NewString(), filename), data, "application/pdf")

	return s.Analyze(ctx, ownerEmail, text)
}

// History lists stored records newest-first. An empty owner means
// single-tenant mode: all records are returned. An owner with no records
// gets an empty list, never an error.
func (s *Service) History(ctx context.Context, ownerEmail string, limit int) ([]*domain.History, error) {
	if ownerEmail == "" {
		return s.Repo.Latest(ctx, limit)
	}
	return s.Repo.LatestByOwner(ctx, ownerEmail, limit)
}

// Report renders the stored record as a PDF. A lookup miss surfaces as
// domain.ErrNotFound; any render failure as domain.ErrRenderFailed with no
// partial output. The rendered bytes are archived best-effort.
func (s *Service) Report(ctx context.Context, id domain.HistoryID) ([]byte, error) {
	h, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf, err := s.Renderer.Render(h)
	if err != nil {
		if errors.Is(err, domain.ErrRenderFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	s.archive(ctx, fmt.Sprintf("reports/%s/report-%d.pdf", s.keyDate(), id), pdf, "application/pdf")

	return pdf, nil
}

// EmailReport sends an analysis text to the given address. No retry; the
// transport result is reported straight back.
func (s *Service) EmailReport(ctx context.Context, to, content string) error {
	if s.Mailer == nil {
		return fmt.Errorf("mail sender not configured")
	}
	return s.Mailer.Send(ctx, to, EmailSubject, content)
}

// Stats is a small usage summary over the whole store
func (s *Service) Stats(ctx context.Context) (map[string]any, error) {
	total, err := s.Repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"total_analyses": total}, nil
}

// complete calls the gateway and substitutes a fixed-format reply on any
// failure or empty completion. Infrastructure failure deliberately flows
// back as readable analysis content, not as an HTTP error.
func (s *Service) complete(ctx context.Context, system, user string) string {
	reply, err := s.AI.Complete(ctx, system, user)
	if err != nil {
		if s.Log != nil {
			s.Log.Warn("completion failed, substituting error reply",
				zap.Bool("quota", errors.Is(err, ai.ErrQuotaExceeded)),
				zap.Error(err))
		}
		return prompt.Failure(err)
	}
	if strings.TrimSpace(reply) == "" {
		return prompt.NoResult()
	}
	return reply
}

// archive stores a payload when an archive store is configured; failures
// are logged, never fatal to the request.
func (s *Service) archive(ctx context.Context, key string, data []byte, contentType string) {
	if s.Archive == nil {
		return
	}
	if _, err := s.Archive.Upload(ctx, key, data, contentType); err != nil && s.Log != nil {
		s.Log.Warn("archive upload failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) keyDate() string {
	clock := s.Clock
	if clock == nil {
		clock = application.SystemClock{}
	}
	return clock.Now().Format("2006/01/02")
}
