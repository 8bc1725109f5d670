package report

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/seongmin2223/resumepro/internal/domain/resumes"
	"github.com/seongmin2223/resumepro/internal/infra/extract"
)

// Known locations of a CJK-capable TTF on common distros; the render
// round-trip is skipped when none is present.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/nanum/NanumGothic.ttf",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
}

func findFont(t *testing.T) string {
	t.Helper()
	if p := os.Getenv("REPORT_FONT_PATH"); p != "" {
		return p
	}
	for _, p := range fontCandidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	t.Skip("no CJK-capable TTF available; set REPORT_FONT_PATH to run")
	return ""
}

func TestNewRendererMissingFont(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer("", "")
	assert.Error(t, err, "empty font path must fail at construction")

	_, err = NewRenderer("/nonexistent/font.ttf", "")
	assert.Error(t, err, "unreadable font must fail at construction, not at render time")
}

// Known locations of a Latin-only TTF: loadable, but with no Hangul glyphs.
var latinOnlyFontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
}

func TestNewRendererRejectsFontWithoutHangulCoverage(t *testing.T) {
	t.Parallel()

	var path string
	for _, p := range latinOnlyFontCandidates {
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		t.Skip("no Latin-only TTF available")
	}

	_, err := NewRenderer(path, "")
	require.Error(t, err, "a loadable font without Hangul glyphs must be refused at construction")
	assert.Contains(t, err.Error(), "no glyph")
}

func TestNewRendererRejectsNonFontFile(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/not-a-font.ttf"
	require.NoError(t, os.WriteFile(path, []byte("definitely not a truetype file"), 0o644))

	_, err := NewRenderer(path, "")
	assert.Error(t, err)
}

func TestRenderProducesPDF(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(findFont(t), "")
	require.NoError(t, err)

	h := &domain.History{
		ID:         1,
		UserResume: "경력 5년 백엔드 개발자",
		AIResponse: "[강점]\n• 경력 우수\n\n[약점]\n• 프로젝트 설명 부족",
		CreatedAt:  time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
	}

	out, err := r.Render(h)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output must be a PDF document")
	assert.Greater(t, len(out), 500)
}

func TestRenderExtractRoundtrip(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(findFont(t), "")
	require.NoError(t, err)

	h := &domain.History{
		AIResponse: "[약점]\n• 테스트 부족",
		CreatedAt:  time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
	}
	out, err := r.Render(h)
	require.NoError(t, err)

	text := extract.FromPDF(out)
	require.NotEmpty(t, text, "rendered report must be text-extractable")
	assert.Contains(t, text, "분석 일시")
	assert.Contains(t, text, "[약점]")
	assert.False(t, strings.ContainsAny(text, "#*`"))
}

func TestRenderLongContentPaginates(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(findFont(t), "")
	require.NoError(t, err)

	short, err := r.Render(&domain.History{AIResponse: "[강점]\n• 짧은 분석", CreatedAt: time.Now()})
	require.NoError(t, err)

	long := bytes.Repeat([]byte("아주 긴 분석 문장입니다. "), 400)
	out, err := r.Render(&domain.History{AIResponse: string(long), CreatedAt: time.Now()})
	require.NoError(t, err)

	// One A4 page holds nowhere near 400 repeated sentences; the long
	// render must have spilled onto further pages.
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), len(short))
}
