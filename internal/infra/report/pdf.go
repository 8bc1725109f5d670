package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/sfnt"

	"github.com/seongmin2223/resumepro/internal/domain/resumes"
)

const (
	// A4 with 50pt margins on all sides, single column.
	margin      = 50.0
	titleSize   = 20.0
	bodySize    = 11.0
	bodyLeading = 18.0

	fontFamily = "report"

	defaultTitle = "사용자님의 AI 이력서 분석 리포트"

	// coverageProbe must map to a real glyph or the font cannot render
	// the report body.
	coverageProbe = '가'
)

// Renderer produces the downloadable analysis report. The configured TTF
// must cover the target locale (Korean in the reference deployment); it is
// embedded into every document so no viewer-side font is needed.
type Renderer struct {
	fontPath string
	title    string
}

// NewRenderer verifies the font up front: a renderer that cannot embed the
// report font, or whose font has no Hangul coverage, must fail here,
// loudly, rather than silently drop glyphs at request time.
func NewRenderer(fontPath, title string) (*Renderer, error) {
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("report font path is required")
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("report font %s: %w", fontPath, err)
	}
	if err := checkGlyphCoverage(data); err != nil {
		return nil, fmt.Errorf("report font %s: %w", fontPath, err)
	}
	probe := gopdf.GoPdf{}
	probe.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := probe.AddTTFFont(fontFamily, fontPath); err != nil {
		return nil, fmt.Errorf("report font %s not loadable: %w", fontPath, err)
	}
	if title == "" {
		title = defaultTitle
	}
	return &Renderer{fontPath: fontPath, title: title}, nil
}

// checkGlyphCoverage rejects fonts whose cmap has no glyph for the probe
// rune. A Latin-only TTF loads fine and renders every Hangul codepoint as
// a blank, so parseability alone proves nothing.
func checkGlyphCoverage(data []byte) error {
	f, err := sfnt.Parse(data)
	if err != nil {
		c, cerr := sfnt.ParseCollection(data)
		if cerr != nil {
			return fmt.Errorf("not a parsable font: %w", err)
		}
		if f, err = c.Font(0); err != nil {
			return fmt.Errorf("not a parsable font collection: %w", err)
		}
	}

	var buf sfnt.Buffer
	idx, err := f.GlyphIndex(&buf, coverageProbe)
	if err != nil {
		return fmt.Errorf("cmap lookup failed: %w", err)
	}
	if idx == 0 {
		return fmt.Errorf("no glyph for %q, font cannot render the report locale", coverageProbe)
	}
	return nil
}

// Render writes the record as a paginated A4 document: bold title line,
// timestamp line, a dashed rule, then the analysis text as a flowing
// paragraph. The markdown strip is re-applied here so records persisted
// before sanitization existed still render clean.
func (r *Renderer) Render(h *resumes.History) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("%w: %v", resumes.ErrRenderFailed, rec)
		}
	}()

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.SetMarginLeft(margin)
	pdf.SetMarginTop(margin)
	pdf.SetMarginRight(margin)
	pdf.SetMarginBottom(margin)
	pdf.AddPage()

	if err := pdf.AddTTFFont(fontFamily, r.fontPath); err != nil {
		return nil, fmt.Errorf("%w: %v", resumes.ErrRenderFailed, err)
	}
	if err := pdf.AddTTFFontWithOption(fontFamily, r.fontPath, gopdf.TtfOption{Style: gopdf.Bold}); err != nil {
		return nil, fmt.Errorf("%w: %v", resumes.ErrRenderFailed, err)
	}

	width := gopdf.PageSizeA4.W - 2*margin
	bottom := gopdf.PageSizeA4.H - margin

	if err := pdf.SetFont(fontFamily, "B", titleSize); err != nil {
		return nil, fmt.Errorf("%w: %v", resumes.ErrRenderFailed, err)
	}
	pdf.SetXY(margin, margin)
	if err := pdf.Cell(nil, r.title); err != nil {
		return nil, fmt.Errorf("%w: %v", resumes.ErrRenderFailed, err)
	}
	pdf.Br(titleSize + 8)

	if err := pdf.SetFont(fontFamily, "", bodySize); err != nil {
		return nil, fmt.Errorf("%w: %v", resumes.ErrRenderFailed, err)
	}
	pdf.SetX(margin)
	if err := pdf.Cell(nil, "분석 일시: "+h.CreatedAt.Format("2006-01-02 15:04:05")); err != nil {
		return nil, fmt.Errorf("%w: %v", resumes.ErrRenderFailed, err)
	}
	pdf.Br(bodyLeading)

	pdf.SetX(margin)
	if err := pdf.Cell(nil, strings.Repeat("-", 60)); err != nil {
		return nil, fmt.Errorf("%w: %v", resumes.ErrRenderFailed, err)
	}
	pdf.Br(bodyLeading * 2)

	clean := resumes.Sanitize(h.AIResponse)
	for _, paragraph := range strings.Split(clean, "\n") {
		paragraph = strings.TrimRight(paragraph, "\r")
		if strings.TrimSpace(paragraph) == "" {
			pdf.Br(bodyLeading)
			continue
		}
		lines, err := pdf.SplitText(paragraph, width)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", resumes.ErrRenderFailed, err)
		}
		for _, line := range lines {
			if pdf.GetY()+bodyLeading > bottom {
				pdf.AddPage()
				pdf.SetY(margin)
			}
			pdf.SetX(margin)
			if err := pdf.Cell(nil, line); err != nil {
				return nil, fmt.Errorf("%w: %v", resumes.ErrRenderFailed, err)
			}
			pdf.Br(bodyLeading)
		}
	}

	return pdf.GetBytesPdf(), nil
}
