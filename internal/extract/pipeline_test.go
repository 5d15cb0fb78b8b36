package extract

import (
	"context"
	"testing"
)

// fakeOracle answers every prediction with a fixed index
type fakeOracle struct {
	index   int
	known   bool
	calls   int
	askedQs []string
}

func (f *fakeOracle) Predict(ctx context.Context, question string, options []string) (int, bool) {
	f.calls++
	f.askedQs = append(f.askedQs, question)
	return f.index, f.known
}

const sampleText = `General Science Practice Paper
1. What is 2+2?
A. 3
B. 4
C. 5
2. Which planet is known as the red planet?
(A) Venus
(B) Mars
`

func TestExtractFromTextWithoutOracle(t *testing.T) {
	p := NewPipeline(nil)

	questions := p.ExtractFromText(context.Background(), sampleText)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if q.AnswerIndex != nil {
			t.Errorf("question %d has answer %d with no key and no oracle", i, *q.AnswerIndex)
		}
	}
}

func TestExtractFromTextOracleFillsMissing(t *testing.T) {
	oracle := &fakeOracle{index: 1, known: true}
	p := NewPipeline(oracle)

	// answer key covers both questions, so the oracle is never needed
	text := sampleText + "Ans: B\nAns: B\n"
	questions := p.ExtractFromText(context.Background(), text)
	if oracle.calls != 0 {
		t.Errorf("oracle called %d times despite complete answer key", oracle.calls)
	}
	for i, q := range questions {
		if !q.HasAnswer() || *q.AnswerIndex != 1 {
			t.Errorf("question %d answer = %v, want 1 from key", i, q.AnswerIndex)
		}
	}

	// no key at all: one oracle call per question
	questions = p.ExtractFromText(context.Background(), sampleText)
	if oracle.calls != 2 {
		t.Errorf("oracle called %d times, want 2", oracle.calls)
	}
	for i, q := range questions {
		if !q.HasAnswer() || *q.AnswerIndex != 1 {
			t.Errorf("question %d answer = %v, want 1 from oracle", i, q.AnswerIndex)
		}
	}
}

func TestExtractFromTextOracleUnknown(t *testing.T) {
	oracle := &fakeOracle{known: false}
	p := NewPipeline(oracle)

	questions := p.ExtractFromText(context.Background(), sampleText)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	// the quiz is still produced, just without answers
	for i, q := range questions {
		if q.AnswerIndex != nil {
			t.Errorf("question %d has answer despite unknown predictions", i)
		}
	}
}

func TestExtractFromTextOracleOutOfRange(t *testing.T) {
	oracle := &fakeOracle{index: 9, known: true}
	p := NewPipeline(oracle)

	questions := p.ExtractFromText(context.Background(), sampleText)
	for i, q := range questions {
		if q.AnswerIndex != nil {
			t.Errorf("question %d accepted out-of-range prediction", i)
		}
	}
}

func TestExtractFromTextSkipsOptionlessQuestions(t *testing.T) {
	oracle := &fakeOracle{index: 0, known: true}
	p := NewPipeline(oracle)

	text := "1. Describe photosynthesis in your own words?\n"
	questions := p.ExtractFromText(context.Background(), text)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if oracle.calls != 0 {
		t.Errorf("oracle consulted for a question with no options")
	}
}

func TestExtractFromTextEmpty(t *testing.T) {
	p := NewPipeline(nil)
	if questions := p.ExtractFromText(context.Background(), ""); len(questions) != 0 {
		t.Errorf("expected no questions from empty text, got %d", len(questions))
	}
}
