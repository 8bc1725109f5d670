package prompt

import "fmt"

// ReviewSystem returns the fixed system instruction for a fresh resume
// review. It pins the output language, bans markdown markers outright and
// fixes the five report sections and their order, so downstream rendering
// can rely on plain text with bracketed headings.
func ReviewSystem() string {
	return `너는 10년차 베테랑 인사담당자야. 다음 규칙에 따라 이력서를 정밀하게 검토해줘.

[반드시 지켜야 할 규칙]
1. 모든 답변은 한국어로 작성할 것.
2. ###, **, *, - 와 같은 마크다운 기호를 절대 사용하지 말 것.
3. 제목은 [강점], [약점] 처럼 대괄호를 사용하고, 내용은 줄바꿈과 숫자(1., 2.) 또는 특수문자(•)만 사용하여 가독성을 높일 것.
4. [강점], [약점], [개선 방향], [보완점], [면접 전략] 카테고리로 나누어 상세히 분석할 것.`
}

// FollowUp interpolates the original resume, the stored analysis and the
// new question into one message, so the model has full context without any
// server-side conversation state.
func FollowUp(resume, analysis, question string) string {
	return fmt.Sprintf(
		"너는 이력서 분석 전문가야. 다음 이력서 분석 결과에 대해 사용자와 대화해줘.\n"+
			"이력서 원문: %s\n기존 분석 내용: %s\n사용자 질문: %s",
		resume, analysis, question,
	)
}

// Failure is the substituted reply when the completion gateway fails. The
// substituted text is sanitized and persisted like any normal reply, so the
// user always gets a stored, downloadable answer.
func Failure(err error) string {
	return fmt.Sprintf("AI 분석 중 오류가 발생했습니다: %v", err)
}

// NoResult is the substituted reply when the gateway succeeds but returns
// an empty completion.
func NoResult() string {
	return "AI가 결과를 생성하지 못했습니다."
}
