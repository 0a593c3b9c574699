package interview

import "strings"

// QAPair is one parsed interview question with its suggested answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ParseQAPairs extracts question/answer pairs from a response in the
// "Question N:" / "Answer N:" line format, truncated to max. Text after
// the colon and any following unprefixed lines belong to that field; the
// prefix matching is deliberately loose because models drift on numbering.
func ParseQAPairs(text string, max int) []QAPair {
	const (
		inNone = iota
		inQuestion
		inAnswer
	)

	var pairs []QAPair
	var question, answer string
	state := inNone

	flush := func() {
		if question != "" && answer != "" {
			pairs = append(pairs, QAPair{Question: question, Answer: answer})
		}
		question = ""
		answer = ""
	}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		switch {
		case strings.HasPrefix(line, "Question"):
			flush()
			question = afterColon(line)
			state = inQuestion

		case strings.HasPrefix(line, "Answer"):
			answer = afterColon(line)
			state = inAnswer

		default:
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			switch state {
			case inQuestion:
				question = join(question, trimmed)
			case inAnswer:
				answer = join(answer, trimmed)
			}
		}
	}
	flush()

	if max > 0 && len(pairs) > max {
		pairs = pairs[:max]
	}
	return pairs
}

func afterColon(line string) string {
	if idx := strings.Index(line, ":"); idx >= 0 {
		return strings.TrimSpace(line[idx+1:])
	}
	return ""
}

func join(current, more string) string {
	if current == "" {
		return more
	}
	return current + " " + more
}
