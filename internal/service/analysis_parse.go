package service

import (
	"regexp"
	"strings"
)

const (
	causePlaceholder    = "Unable to determine cause"
	solutionPlaceholder = "No solution suggested"

	causeLabel    = "possible cause"
	solutionLabel = "suggested solution"
)

var (
	// reasoning 모델이 답변 앞에 붙이는 사고 과정
	thinkBlockPattern = regexp.MustCompile(`(?is)<think>.*?</think>`)
	blankLinePattern  = regexp.MustCompile(`\n[ \t]*\n`)
)

// ParseAnalysis - 모델 응답 텍스트에서 원인/해결책 추출
//
//  1. 라벨 줄 스캔: 대소문자 무시, 처음 일치한 줄만 사용.
//     콜론 뒤 텍스트, 비어 있으면 다음 줄.
//  2. 라벨로 못 찾은 값은 빈 줄로 나눈 첫/두 번째 단락으로 대체 (단락 2개 이상일 때).
//  3. 그래도 비어 있으면 고정 문구.
func ParseAnalysis(raw string) (cause, solution string) {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = thinkBlockPattern.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	cause = labeledValue(lines, causeLabel)
	solution = labeledValue(lines, solutionLabel)

	if cause == "" || solution == "" {
		sections := splitSections(text)
		if len(sections) >= 2 {
			if cause == "" {
				cause = strings.TrimSpace(strings.Replace(sections[0], "Possible Cause:", "", 1))
			}
			if solution == "" {
				solution = strings.TrimSpace(strings.Replace(sections[1], "Suggested Solution:", "", 1))
			}
		}
	}

	if cause == "" {
		cause = causePlaceholder
	}
	if solution == "" {
		solution = solutionPlaceholder
	}
	return cause, solution
}

func labeledValue(lines []string, label string) string {
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), label) {
			continue
		}

		if _, after, found := strings.Cut(line, ":"); found {
			// "**Possible Cause:** ..." 형태의 강조 표시 제거
			if value := strings.TrimSpace(strings.TrimLeft(after, " \t*_")); value != "" {
				return value
			}
		}
		if i+1 < len(lines) {
			return strings.TrimSpace(lines[i+1])
		}
		return ""
	}
	return ""
}

func splitSections(text string) []string {
	parts := blankLinePattern.Split(text, -1)
	sections := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sections = append(sections, trimmed)
		}
	}
	return sections
}
