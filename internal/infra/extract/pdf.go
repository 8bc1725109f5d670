package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FromText normalizes a pasted resume: the text passes through unchanged
// apart from trimming leading/trailing whitespace.
func FromText(s string) string {
	return strings.TrimSpace(s)
}

// FromPDF extracts the visible text of every page in document order,
// keeping the parser's natural page/line breaks. Malformed or empty PDFs
// yield ""; the caller decides how to respond to emptiness. The parser can
// panic on corrupt cross-reference tables, so that is absorbed here too.
func FromPDF(data []byte) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
	}
	return b.String()
}
