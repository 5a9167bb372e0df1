// Package report assembles the per-question output rows and serializes
// them as a BOM-prefixed CSV file for spreadsheet consumption.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Viderspace/NeedleWhatsappCrawler/internal/transcript"
)

// maxQuestionLen caps the QuestionText column so rows stay readable in
// spreadsheet tools.
const maxQuestionLen = 120

// Header is the fixed CSV header row.
var Header = []string{
	"ID", "SerialNumber", "TimestampUTC", "Sender",
	"QuestionText", "ReplyCount", "EmojiCount", "AnswerCount",
}

// Row is one report line for a detected question. Immutable once built.
type Row struct {
	ID           string
	SerialNumber int
	TimestampUTC string
	Sender       string
	QuestionText string
	ReplyCount   int
	EmojiCount   int
	AnswerCount  int
}

// BuildRow assembles a Row for a question from the reply map and the
// judgment estimate. A question nobody replied to gets ReplyCount 0.
func BuildRow(q transcript.Message, replies map[string]int, answerCount int) Row {
	return Row{
		ID:           q.MessageID,
		SerialNumber: q.SerialNumber,
		TimestampUTC: q.Timestamp,
		Sender:       q.Sender,
		QuestionText: condense(q.Text),
		ReplyCount:   replies[q.MessageID],
		EmojiCount:   q.EmojiCount(),
		AnswerCount:  answerCount,
	}
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// condense collapses runs of whitespace to single spaces and truncates to
// maxQuestionLen runes.
func condense(text string) string {
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	runes := []rune(text)
	if len(runes) > maxQuestionLen {
		return string(runes[:maxQuestionLen])
	}
	return text
}

// Render serializes the header and rows as CSV text with a leading UTF-8
// byte-order mark. Every field is double-quoted, with internal quotes
// doubled, so non-Latin scripts and embedded commas survive spreadsheet
// import. encoding/csv is not used for writing because it only quotes
// fields that need it.
func Render(rows []Row) string {
	var sb strings.Builder
	sb.WriteString("\uFEFF")
	sb.WriteString(renderLine(Header))
	for _, row := range rows {
		sb.WriteString(renderLine(row.fields()))
	}
	return sb.String()
}

func (r Row) fields() []string {
	return []string{
		r.ID,
		fmt.Sprintf("%d", r.SerialNumber),
		r.TimestampUTC,
		r.Sender,
		r.QuestionText,
		fmt.Sprintf("%d", r.ReplyCount),
		fmt.Sprintf("%d", r.EmojiCount),
		fmt.Sprintf("%d", r.AnswerCount),
	}
}

func renderLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}

var unsafeFilenamePattern = regexp.MustCompile(`[\\/:*?"<>|]`)

// OutputPath derives the report location from the input transcript path:
// <outputDir>/analysij_<input-base>.csv, with filesystem-hostile characters
// in the base name replaced by underscores.
func OutputPath(outputDir, inputPath string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	safe := unsafeFilenamePattern.ReplaceAllString(base, "_")
	return filepath.Join(outputDir, fmt.Sprintf("analysij_%s.csv", safe))
}

// Write renders the rows and writes them to the derived output path,
// creating the output directory if absent. Returns the written path.
func Write(outputDir, inputPath string, rows []Row) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := OutputPath(outputDir, inputPath)
	if err := os.WriteFile(path, []byte(Render(rows)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
