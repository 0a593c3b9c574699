package mockinterview

import (
	"fmt"
	"strings"
)

// seedQuestions builds the opening question list from the candidate's
// profile. Follow-ups generated from answers are appended as the interview
// progresses.
func seedQuestions(req *StartRequest) []string {
	return []string{
		fmt.Sprintf("Tell me about your experience in %s.", req.JobType),
		fmt.Sprintf("What are your strengths and weaknesses as a %s professional?", req.ExperienceLevel),
		fmt.Sprintf("How do you prepare for a %s interview?", req.InterviewFormat),
		fmt.Sprintf("What are the key focus areas in %s?", req.FocusAreas),
	}
}

func feedbackPrompt(question, answer string) string {
	return fmt.Sprintf(`
Context: %s
Answer: %s

Provide feedback on the answer and suggest areas of improvement.
`, question, answer)
}

func followUpPrompt(answer string) string {
	return fmt.Sprintf(`
Based on the following answer, generate a follow-up question.
Answer: %s
`, answer)
}

// scoreAnswer is the rough length heuristic: one point per five words,
// clamped to [1, 10].
func scoreAnswer(answer string) int {
	score := len(strings.Fields(answer)) / 5
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// verdict maps the averaged score to its feedback band.
func verdict(score int) string {
	switch {
	case score >= 7:
		return "Great job! Keep it up!"
	case score >= 4:
		return "Good effort! There are some areas to improve."
	default:
		return "Needs improvement. Focus on the feedback provided."
	}
}
