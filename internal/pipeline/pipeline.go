// Package pipeline runs the full analysis: parse, normalize, aggregate,
// detect questions, judge each one, and write the CSV report.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/Viderspace/NeedleWhatsappCrawler/internal/analysis"
	"github.com/Viderspace/NeedleWhatsappCrawler/internal/report"
	"github.com/Viderspace/NeedleWhatsappCrawler/internal/transcript"
)

// Judge estimates how many window messages answer a question. The judge
// package's Client satisfies this; tests substitute a double.
type Judge interface {
	CountAnswers(ctx context.Context, question transcript.Message, window []transcript.Message) (int, error)
}

// Pipeline holds the collaborators for one analysis run. Questions are
// processed strictly sequentially so remote calls and log output stay
// deterministic.
type Pipeline struct {
	log        *slog.Logger
	judge      Judge
	windowSize int
	outputDir  string
}

// Result summarizes a finished run. OutputPath is empty when the
// transcript held no questions (a normal outcome, not an error).
type Result struct {
	MessageCount  int
	QuestionCount int
	OutputPath    string
}

// New constructs a Pipeline.
func New(log *slog.Logger, judge Judge, windowSize int, outputDir string) *Pipeline {
	return &Pipeline{
		log:        log.With("component", "pipeline"),
		judge:      judge,
		windowSize: windowSize,
		outputDir:  outputDir,
	}
}

// Run analyzes the transcript at inputPath and writes the report. The
// report file appears only after every question has been judged; a failed
// judgment call degrades that question's answer count to zero instead of
// aborting the run.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*Result, error) {
	raws, err := transcript.LoadFile(inputPath)
	if err != nil {
		return nil, err
	}

	msgs := transcript.Normalize(raws)
	replies := analysis.BuildReplyMap(msgs)
	questions := analysis.DetectQuestions(msgs)

	p.log.InfoContext(ctx, "transcript loaded",
		"path", inputPath,
		"messages", len(msgs),
		"questions", len(questions))

	result := &Result{
		MessageCount:  len(msgs),
		QuestionCount: len(questions),
	}

	if len(questions) == 0 {
		p.log.InfoContext(ctx, "no questions found, nothing to report")
		return result, nil
	}

	rows := make([]report.Row, 0, len(questions))
	for i, q := range questions {
		window := analysis.SelectWindow(msgs, q, p.windowSize)

		count, err := p.judge.CountAnswers(ctx, q, window)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.log.WarnContext(ctx, "judgment unavailable, defaulting answer count to 0",
				"question_serial", q.SerialNumber,
				"error", err)
			count = 0
		}

		rows = append(rows, report.BuildRow(q, replies, count))

		p.log.InfoContext(ctx, "question processed",
			"progress", i+1,
			"total", len(questions),
			"question_serial", q.SerialNumber,
			"window_size", len(window),
			"answer_count", count)
	}

	path, err := report.Write(p.outputDir, inputPath, rows)
	if err != nil {
		return nil, err
	}
	result.OutputPath = path

	p.log.InfoContext(ctx, "report written",
		"path", path,
		"rows", len(rows))
	return result, nil
}
