package extract

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name         string
		line         string
		optionsSoFar int
		want         lineKind
	}{
		{"question mark", "What is the capital of France?", -1, kindQuestionOpener},
		{"numbered label", "12. The first Prime Minister of India was", -1, kindQuestionOpener},
		{"q prefixed label", "Q7) Identify the odd one out", -1, kindQuestionOpener},
		{"interrogative", "Which of the following is a mammal", -1, kindQuestionOpener},
		{"gujarati interrogative", "કોણ ભારતના પ્રથમ વડાપ્રધાન હતા", -1, kindQuestionOpener},
		{"header noise", "General Knowledge Paper II", -1, kindNoise},
		{"labeled option dot", "A. Paris", 0, kindLabeledOption},
		{"labeled option paren", "(b) London", 2, kindLabeledOption},
		{"labeled option dash", "C - Berlin", 1, kindLabeledOption},
		{"short continuation", "Madrid", 1, kindContinuation},
		{"continuation needs prior option", "Madrid", 0, kindNoise},
		{"long line is not continuation", "this line has far too many words to be an option", 2, kindNoise},
		{"option wins over opener while collecting", "A. 3?", 1, kindLabeledOption},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classify(tc.line, tc.optionsSoFar); got != tc.want {
				t.Errorf("classify(%q, %d) = %v, want %v", tc.line, tc.optionsSoFar, got, tc.want)
			}
		})
	}
}

func TestSegmentSingleQuestion(t *testing.T) {
	lines := []string{"1. What is 2+2?", "A. 3", "B. 4", "C. 5", "Ans: B"}

	questions := Segment(lines)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.Question != "What is 2+2?" {
		t.Errorf("unexpected question text %q", q.Question)
	}
	if want := []string{"3", "4", "5"}; !reflect.DeepEqual(q.Options, want) {
		t.Errorf("options = %v, want %v", q.Options, want)
	}
	if q.AnswerIndex != nil {
		t.Error("segmenter must not assign answer indices")
	}
}

func TestSegmentStripsQuestionLabel(t *testing.T) {
	cases := map[string]string{
		"12) Who discovered gravity?": "Who discovered gravity?",
		"Q3. Choose the synonym":      "Choose the synonym",
		"What day is it?":             "What day is it?",
	}
	for line, want := range cases {
		questions := Segment([]string{line})
		if len(questions) != 1 {
			t.Fatalf("expected 1 question for %q, got %d", line, len(questions))
		}
		if questions[0].Question != want {
			t.Errorf("question text for %q = %q, want %q", line, questions[0].Question, want)
		}
	}
}

func TestSegmentAdjacentOpeners(t *testing.T) {
	lines := []string{
		"1. What is the fastest land animal?",
		"2. What is the largest ocean?",
		"A. Pacific",
		"B. Atlantic",
	}

	questions := Segment(lines)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if len(questions[0].Options) != 0 {
		t.Errorf("first question should have no options, got %v", questions[0].Options)
	}
	if len(questions[1].Options) != 2 {
		t.Errorf("second question should have 2 options, got %v", questions[1].Options)
	}
}

func TestSegmentOptionCap(t *testing.T) {
	lines := []string{
		"Which number is prime?",
		"A. 1", "B. 2", "C. 3", "D. 4",
		"one", "two",
		// seventh option-like line: reconsidered by the outer scan,
		// and since it opens a question it starts a new record
		"3. What comes next?",
		"A. nothing",
	}

	questions := Segment(lines)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if len(questions[0].Options) != maxOptions {
		t.Errorf("first question has %d options, want %d", len(questions[0].Options), maxOptions)
	}
	if questions[1].Question != "What comes next?" {
		t.Errorf("unexpected second question %q", questions[1].Question)
	}
}

func TestSegmentSkipsNoise(t *testing.T) {
	lines := []string{
		"Model Question Paper",
		"Time: 2 Hours",
		"1. Who wrote the national anthem?",
		"A. Tagore",
		"B. Gandhi",
		"Please turn over to the next page",
		"2. Which gas do plants absorb?",
		"(A) Oxygen",
		"(B) Carbon dioxide",
	}

	questions := Segment(lines)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if want := []string{"Oxygen", "Carbon dioxide"}; !reflect.DeepEqual(questions[1].Options, want) {
		t.Errorf("options = %v, want %v", questions[1].Options, want)
	}
}

func TestSegmentIsIdempotent(t *testing.T) {
	lines := []string{
		"1. What is 2+2?",
		"A. 3", "B. 4",
		"noise between questions that is long enough to skip",
		"2. Which planet is red?",
		"(a) Mars", "(b) Venus",
	}

	first := Segment(lines)
	second := Segment(lines)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("segmenting twice differed: %v vs %v", first, second)
	}
}

func TestSplitLines(t *testing.T) {
	text := "  first \n\n\t\nsecond\r\n   \nthird  "
	want := []string{"first", "second", "third"}
	if got := SplitLines(text); !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLines = %v, want %v", got, want)
	}
}
