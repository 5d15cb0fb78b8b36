package extract

import (
	"fmt"
	"testing"

	"github.com/example/quizbot/pkg/models"
)

func makeQuestions(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			Question: fmt.Sprintf("question %d", i),
			Options:  []string{"w", "x", "y", "z"},
		}
	}
	return questions
}

func TestCorrelateAssignsByPosition(t *testing.T) {
	lines := []string{
		"1. q one?", "A. w", "B. x",
		"2. q two?", "A. w", "B. x",
		"Answer Key",
		"Ans: B",
		"Answer: (A)",
	}
	questions := makeQuestions(2)

	Correlate(lines, questions)

	if questions[0].AnswerIndex == nil || *questions[0].AnswerIndex != 1 {
		t.Errorf("question 0 answer = %v, want 1", questions[0].AnswerIndex)
	}
	if questions[1].AnswerIndex == nil || *questions[1].AnswerIndex != 0 {
		t.Errorf("question 1 answer = %v, want 0", questions[1].AnswerIndex)
	}
}

func TestCorrelateAllOrNothing(t *testing.T) {
	// three markers for two questions: nothing may be assigned
	lines := []string{"Ans: A", "Ans: B", "Ans: C"}
	questions := makeQuestions(2)

	Correlate(lines, questions)

	for i, q := range questions {
		if q.AnswerIndex != nil {
			t.Errorf("question %d got answer %d despite count mismatch", i, *q.AnswerIndex)
		}
	}
}

func TestCorrelateNoMarkers(t *testing.T) {
	questions := makeQuestions(1)
	Correlate([]string{"nothing relevant here"}, questions)
	if questions[0].AnswerIndex != nil {
		t.Error("answer assigned with no markers present")
	}
}

func TestCorrelateWindow(t *testing.T) {
	// a marker outside the trailing window must not be counted
	lines := []string{"Ans: D"}
	for i := 0; i < answerKeyWindow; i++ {
		lines = append(lines, fmt.Sprintf("filler line number %d with enough words", i))
	}
	lines = append(lines, "Ans: A")
	questions := makeQuestions(1)

	Correlate(lines, questions)

	if questions[0].AnswerIndex == nil || *questions[0].AnswerIndex != 0 {
		t.Errorf("answer = %v, want 0 from the in-window marker", questions[0].AnswerIndex)
	}
}

func TestCorrelateSkipsOutOfRangeLetter(t *testing.T) {
	// "Ans: D" against a two-option question would violate the index
	// invariant; it stays unassigned
	lines := []string{"Ans: D"}
	questions := []models.Question{{Question: "q?", Options: []string{"a", "b"}}}

	Correlate(lines, questions)

	if questions[0].AnswerIndex != nil {
		t.Errorf("answer = %d, want unset for out-of-range letter", *questions[0].AnswerIndex)
	}
}

func TestCorrelateMarkerFormats(t *testing.T) {
	cases := map[string]int{
		"Ans: B":      1,
		"Answer: (C)": 2,
		"ans A":       0,
		"ANSWER:D":    3,
	}
	for line, want := range cases {
		questions := makeQuestions(1)
		Correlate([]string{line}, questions)
		if questions[0].AnswerIndex == nil || *questions[0].AnswerIndex != want {
			t.Errorf("%q: answer = %v, want %d", line, questions[0].AnswerIndex, want)
		}
	}
}
