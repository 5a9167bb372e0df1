package analysis

import (
	"strings"

	"github.com/Viderspace/NeedleWhatsappCrawler/internal/transcript"
)

// IsQuestion reports whether text, trimmed, is non-empty and ends with '?'.
func IsQuestion(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed != "" && strings.HasSuffix(trimmed, "?")
}

// DetectQuestions returns, in chronological order, the non-reply messages
// whose text qualifies as a question.
func DetectQuestions(msgs []transcript.Message) []transcript.Message {
	var questions []transcript.Message
	for _, m := range msgs {
		if m.IsReply {
			continue
		}
		if IsQuestion(m.Text) {
			questions = append(questions, m)
		}
	}
	return questions
}
