package report_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Viderspace/NeedleWhatsappCrawler/internal/report"
	"github.com/Viderspace/NeedleWhatsappCrawler/internal/transcript"
)

func TestBuildRow(t *testing.T) {
	t.Parallel()

	q := transcript.Message{
		SerialNumber: 7,
		MessageID:    "q1",
		Sender:       "Alice",
		Timestamp:    "2024-03-01 10:00:00",
		Text:         "What   time\nis the run?",
		Reactions:    []transcript.RawReaction{{Emoji: "👍", Count: 2}, {Emoji: "❤️", Count: 1}},
	}
	replies := map[string]int{"q1": 3}

	row := report.BuildRow(q, replies, 5)

	assert.Equal(t, "q1", row.ID)
	assert.Equal(t, 7, row.SerialNumber)
	assert.Equal(t, "Alice", row.Sender)
	assert.Equal(t, "What time is the run?", row.QuestionText, "whitespace must collapse to single spaces")
	assert.Equal(t, 3, row.ReplyCount)
	assert.Equal(t, 3, row.EmojiCount)
	assert.Equal(t, 5, row.AnswerCount)
}

func TestBuildRowDefaults(t *testing.T) {
	t.Parallel()

	row := report.BuildRow(transcript.Message{MessageID: "lonely"}, map[string]int{}, 0)
	assert.Equal(t, 0, row.ReplyCount, "question nobody replied to defaults to 0")
	assert.Equal(t, 0, row.EmojiCount)
}

func TestQuestionTextTruncation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("א", 200) + "?"
	row := report.BuildRow(transcript.Message{Text: long}, nil, 0)
	assert.Equal(t, 120, len([]rune(row.QuestionText)), "truncation must be rune-safe")
}

func TestRenderQuotingRoundTrip(t *testing.T) {
	t.Parallel()

	rows := []report.Row{{
		ID:           "q1",
		SerialNumber: 1,
		TimestampUTC: "2024-03-01 10:00:00",
		Sender:       "Alice",
		QuestionText: `He said "hi", ok?`,
		ReplyCount:   1,
		EmojiCount:   2,
		AnswerCount:  3,
	}}

	text := report.Render(rows)

	require.True(t, strings.HasPrefix(text, "\uFEFF"), "output must start with a BOM")
	assert.Contains(t, text, `"He said ""hi"", ok?"`)

	// Every field is quoted, including plain ones.
	assert.Contains(t, text, `"ID","SerialNumber"`)
	assert.Contains(t, text, `"q1","1"`)

	// A standard CSV reader reconstructs the original strings.
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, "\uFEFF")))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, report.Header, records[0])
	assert.Equal(t, `He said "hi", ok?`, records[1][4])
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain name", input: "/exports/BC club.json", expected: "out/analysij_BC club.csv"},
		{name: "hostile characters sanitized", input: `/exports/what? really*.json`, expected: "out/analysij_what_ really_.csv"},
		{name: "no extension", input: "/exports/chat", expected: "out/analysij_chat.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, report.OutputPath("out", tt.input))
		})
	}
}

func TestWriteCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir() + "/nested/output"
	path, err := report.Write(dir, "chat.json", []report.Row{{ID: "q1"}})
	require.NoError(t, err)
	assert.FileExists(t, path)
}
