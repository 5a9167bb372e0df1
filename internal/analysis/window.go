package analysis

import (
	"strings"

	"github.com/Viderspace/NeedleWhatsappCrawler/internal/transcript"
)

// DefaultWindowSize is how many messages after a question are inspected
// when no explicit size is configured.
const DefaultWindowSize = 20

// SelectWindow returns the chronological context window for a question:
// messages whose serialNumber lies in [q.SerialNumber, q.SerialNumber+size),
// excluding replies and empty-text messages. Selection goes by the explicit
// serialNumber value rather than slice position, so gaps in the numbering
// shrink the window instead of shifting it.
//
// A window shorter than size is expected near the end of the transcript;
// filtered-out messages are not backfilled.
func SelectWindow(msgs []transcript.Message, q transcript.Message, size int) []transcript.Message {
	if size <= 0 {
		size = DefaultWindowSize
	}
	lo, hi := q.SerialNumber, q.SerialNumber+size

	var window []transcript.Message
	for _, m := range msgs {
		if m.SerialNumber < lo || m.SerialNumber >= hi {
			continue
		}
		if m.IsReply || strings.TrimSpace(m.Text) == "" {
			continue
		}
		window = append(window, m)
	}
	return window
}
