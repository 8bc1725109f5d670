package resumes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text passes through",
			input: "경력 5년 백엔드 개발자입니다.",
			want:  "경력 5년 백엔드 개발자입니다.",
		},
		{
			name:  "bullet rewritten",
			input: "- item",
			want:  "• item",
		},
		{
			name:  "heading markers stripped with surrounding space",
			input: "### [강점]\n- 경력 우수",
			want:  "[강점]\n• 경력 우수",
		},
		{
			name:  "bold and code markers removed",
			input: "**중요** `코드` *기울임*",
			want:  "중요 코드 기울임",
		},
		{
			name:  "hyphen without trailing space kept",
			input: "2023-2024 재직",
			want:  "2023-2024 재직",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"### [강점]\n- 경력 우수\n\n## [약점]\n- 프로젝트 경험 부족",
		"**요약**: `Go` 와 *Java* 경험",
		"- 첫째\n- 둘째\n- 셋째",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "sanitize must be idempotent for %q", in)
	}
}

func TestSanitizeRemovesAllMarkers(t *testing.T) {
	t.Parallel()

	out := Sanitize("# a ## b **c** `d` * e")
	assert.False(t, strings.ContainsAny(out, "#*`"), "output still carries markers: %q", out)
}
