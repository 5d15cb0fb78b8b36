package extract

import (
	"regexp"
	"strings"

	"github.com/example/quizbot/pkg/models"
)

// answerKeyWindow bounds the answer-key search to the tail of the
// document, so option text earlier on cannot masquerade as a key entry
const answerKeyWindow = 200

// answerMarkerRe matches answer-key lines like "Ans: B", "Answer (C)"
// or "Ans.D"
var answerMarkerRe = regexp.MustCompile(`(?i)Ans(?:wer)?[:\s]*\(?([A-D])\)?`)

// Correlate scans the trailing window of lines for answer-key markers
// and assigns them to questions by position. Assignment is
// all-or-nothing: unless the number of markers found exactly equals the
// number of questions, nothing is assigned. A marker letter that falls
// outside a question's option range is skipped for that question, so a
// stored answer index is always valid.
func Correlate(lines []string, questions []models.Question) {
	start := 0
	if len(lines) > answerKeyWindow {
		start = len(lines) - answerKeyWindow
	}

	var candidates []int
	for _, line := range lines[start:] {
		if m := answerMarkerRe.FindStringSubmatch(line); m != nil {
			letter := strings.ToUpper(m[1])
			candidates = append(candidates, int(letter[0]-'A'))
		}
	}

	if len(candidates) == 0 || len(candidates) != len(questions) {
		return
	}

	for i := range questions {
		if candidates[i] < len(questions[i].Options) {
			questions[i].SetAnswer(candidates[i])
		}
	}
}
