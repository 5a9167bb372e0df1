package analysis_test

import (
	"testing"

	"github.com/Viderspace/NeedleWhatsappCrawler/internal/analysis"
	"github.com/Viderspace/NeedleWhatsappCrawler/internal/transcript"
)

func TestBuildReplyMap(t *testing.T) {
	t.Parallel()

	msgs := []transcript.Message{
		{MessageID: "a", Text: "What time?"},
		{MessageID: "b", Text: "5pm", IsReply: true, ReplyTo: "a"},
		{MessageID: "c", Text: "sharp", IsReply: true, ReplyTo: "a"},
		{MessageID: "d", Text: "Who's in?"},
		{MessageID: "e", Text: "me", IsReply: true, ReplyTo: "d"},
		{MessageID: "f", Text: "unrelated"},
	}

	replies := analysis.BuildReplyMap(msgs)

	if replies["a"] != 2 {
		t.Errorf(`replies["a"] = %d, want 2`, replies["a"])
	}
	if replies["d"] != 1 {
		t.Errorf(`replies["d"] = %d, want 1`, replies["d"])
	}
	if _, ok := replies["f"]; ok {
		t.Error("message nobody replied to must not appear in the map")
	}

	// Sum of counts equals the number of messages carrying a reference.
	total := 0
	for _, n := range replies {
		total += n
	}
	withRef := 0
	for _, m := range msgs {
		if m.ReplyTo != "" {
			withRef++
		}
	}
	if total != withRef {
		t.Errorf("reply map total = %d, want %d", total, withRef)
	}
}

func TestBuildReplyMapEmpty(t *testing.T) {
	t.Parallel()

	replies := analysis.BuildReplyMap(nil)
	if len(replies) != 0 {
		t.Errorf("BuildReplyMap(nil) = %v, want empty", replies)
	}
}
