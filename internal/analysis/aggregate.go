// Package analysis derives structural signals from a normalized transcript:
// reply counts, question detection, and context-window selection.
package analysis

import "github.com/Viderspace/NeedleWhatsappCrawler/internal/transcript"

// BuildReplyMap counts, for each referenced message id, how many messages
// reply to it. Built once per run in a single pass and read-only afterward.
func BuildReplyMap(msgs []transcript.Message) map[string]int {
	replies := make(map[string]int)
	for _, m := range msgs {
		if m.ReplyTo != "" {
			replies[m.ReplyTo]++
		}
	}
	return replies
}
