package extract

import (
	"context"

	"github.com/example/quizbot/pkg/models"
)

// Oracle predicts the correct option index for a question. The boolean
// result is false when no reliable prediction is available; predictions
// are best-effort and a failure never aborts extraction.
type Oracle interface {
	Predict(ctx context.Context, question string, options []string) (int, bool)
}

// Pipeline turns a PDF into a list of question records: text
// acquisition, question segmentation, answer-key correlation, and
// oracle labeling of any questions still missing an answer.
type Pipeline struct {
	oracle Oracle // nil when no predictor is configured
	ocr    *OCR
}

// NewPipeline creates a pipeline. oracle may be nil.
func NewPipeline(oracle Oracle) *Pipeline {
	return &Pipeline{oracle: oracle, ocr: NewOCR()}
}

// Extract runs the full pipeline on the PDF at path. An empty result
// means no questions were found.
func (p *Pipeline) Extract(ctx context.Context, path string) []models.Question {
	return p.ExtractFromText(ctx, Acquire(ctx, path, p.ocr))
}

// ExtractFromText runs segmentation, correlation and labeling on
// already-acquired document text
func (p *Pipeline) ExtractFromText(ctx context.Context, text string) []models.Question {
	lines := SplitLines(text)
	questions := Segment(lines)
	Correlate(lines, questions)
	p.label(ctx, questions)
	return questions
}

// label asks the oracle for an answer index, once per question that
// still lacks one and has options to choose from. Each call is
// independent; one unknown does not block the rest.
func (p *Pipeline) label(ctx context.Context, questions []models.Question) {
	if p.oracle == nil {
		return
	}
	for i := range questions {
		q := &questions[i]
		if q.AnswerIndex != nil || len(q.Options) == 0 {
			continue
		}
		idx, ok := p.oracle.Predict(ctx, q.Question, q.Options)
		if ok && idx >= 0 && idx < len(q.Options) {
			q.SetAnswer(idx)
		}
	}
}
