package extract

import (
	"regexp"
	"strings"

	"github.com/example/quizbot/pkg/models"
)

const (
	// maxOptions is the hard cap on options collected per question
	maxOptions = 6
	// continuationMaxWords bounds unlabeled option lines; anything longer
	// is body text, not a wrapped option
	continuationMaxWords = 6
)

var (
	numberedLabelRe = regexp.MustCompile(`^[Qq]?\d+[.)]`)
	stripLabelRe    = regexp.MustCompile(`^[Qq]?\d+[.)]\s*`)
	interrogativeRe = regexp.MustCompile(`^(Which|Choose|Who|What|કોણ|ક્યો)`)

	letterOptionRe = regexp.MustCompile(`(?i)^([A-D])[.)]\s*`)
	parenOptionRe  = regexp.MustCompile(`(?i)^\(([A-D])\)\s*`)
	dashOptionRe   = regexp.MustCompile(`(?i)^([A-D])\s*-\s*`)
)

// lineKind tags the role a line plays in the forward scan
type lineKind int

const (
	kindNoise lineKind = iota
	kindQuestionOpener
	kindLabeledOption
	kindContinuation
)

// classify decides what role a line plays. optionsSoFar is the number of
// options already collected for the question currently being assembled,
// or -1 when no question is open. Option patterns take priority while a
// question is open, so a line like "A. 3?" stays an option.
func classify(line string, optionsSoFar int) lineKind {
	if optionsSoFar >= 0 {
		if isLabeledOption(line) {
			return kindLabeledOption
		}
		// An answer-key marker like "Ans: B" is short enough to pass the
		// continuation check but belongs to the correlator, not to the
		// option list.
		if optionsSoFar > 0 && len(strings.Fields(line)) < continuationMaxWords &&
			!answerMarkerRe.MatchString(line) {
			return kindContinuation
		}
		return kindNoise
	}
	if isQuestionOpener(line) {
		return kindQuestionOpener
	}
	return kindNoise
}

// isQuestionOpener reports whether a line starts a new question: it
// contains a question mark, carries a numbered label like "12." or
// "Q12)", or begins with a known interrogative in English or Gujarati.
func isQuestionOpener(line string) bool {
	return strings.Contains(line, "?") ||
		numberedLabelRe.MatchString(line) ||
		interrogativeRe.MatchString(line)
}

func isLabeledOption(line string) bool {
	return letterOptionRe.MatchString(line) ||
		parenOptionRe.MatchString(line) ||
		dashOptionRe.MatchString(line)
}

// stripOptionLabel removes the leading option marker from a labeled
// option line
func stripOptionLabel(line string) string {
	for _, re := range []*regexp.Regexp{letterOptionRe, parenOptionRe, dashOptionRe} {
		if re.MatchString(line) {
			return strings.TrimSpace(re.ReplaceAllString(line, ""))
		}
	}
	return line
}

// Segment partitions a sequence of trimmed, non-empty lines into question
// records. It is a pure single forward pass: a question-opening line
// starts a record, subsequent option lines are collected up to the cap,
// and anything else is skipped as noise. Answer indices are not assigned
// here.
func Segment(lines []string) []models.Question {
	var questions []models.Question

	i := 0
	for i < len(lines) {
		if classify(lines[i], -1) != kindQuestionOpener {
			i++
			continue
		}

		q := models.Question{Question: stripLabelRe.ReplaceAllString(lines[i], "")}
		i++

	collect:
		for i < len(lines) && len(q.Options) < maxOptions {
			switch classify(lines[i], len(q.Options)) {
			case kindLabeledOption:
				q.Options = append(q.Options, stripOptionLabel(lines[i]))
			case kindContinuation:
				q.Options = append(q.Options, lines[i])
			default:
				// not an option; the outer scan reconsiders this line
				break collect
			}
			i++
		}

		questions = append(questions, q)
	}

	return questions
}

// SplitLines turns raw acquired text into the trimmed, non-empty line
// sequence the segmenter and correlator operate on
func SplitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
