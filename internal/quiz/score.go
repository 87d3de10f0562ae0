package quiz

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Result is the aggregate outcome of scoring one answer map against one
// question list. Grade is on the 1.0–7.0 scale.
type Result struct {
	Grade        float64 `json:"grade"`
	CorrectCount int     `json:"correct_count"`
	Total        int     `json:"total"`
}

// ErrInconsistentQuestionData marks a grading key that cannot be resolved
// against its own options: an upstream data defect, not a learner error.
var ErrInconsistentQuestionData = errors.New("inconsistent question data")

// DataFault reports one question whose key could not be resolved. The
// question is scored incorrect; scoring of the rest proceeds.
type DataFault struct {
	QuestionID int
	Err        error
}

func (f DataFault) Error() string { return fmt.Sprintf("question %d: %v", f.QuestionID, f.Err) }
func (f DataFault) Unwrap() error { return f.Err }

// Score grades the full answer map. Absent answers count as incorrect.
// Malformed answers never produce an error, only zero credit; the returned
// faults carry any upstream key defects found along the way.
func Score(questions []Question, answers map[int]any) (Result, []DataFault) {
	var faults []DataFault
	res := Result{Total: len(questions)}
	for _, q := range questions {
		if err := checkKey(q); err != nil {
			faults = append(faults, DataFault{
				QuestionID: q.ID,
				Err:        fmt.Errorf("%w: %v", ErrInconsistentQuestionData, err),
			})
			continue
		}
		if Correct(q, answers[q.ID]) {
			res.CorrectCount++
		}
	}
	res.Grade = GradeFor(res.CorrectCount, res.Total)
	return res, faults
}

// Correct reports whether the submitted answer earns the question. Exposed
// so review rendering recomputes correctness from the same rule the
// aggregate used.
func Correct(q Question, submitted any) bool {
	return Equal(q.Kind, q.Correct, submitted)
}

// GradeFor maps a correct count onto the 1.0–7.0 scale, rounded half-up to
// one decimal. An empty evaluation grades 1.0.
func GradeFor(correctCount, total int) float64 {
	if total <= 0 {
		return 1.0
	}
	g := 1.0 + 6.0*float64(correctCount)/float64(total)
	return math.Round(g*10) / 10
}

// CanonicalCorrect renders a question's grading key in its normalized form
// for review display: a string for single-valued kinds, a sorted id list
// for multiple choice.
func CanonicalCorrect(q Question) any {
	if q.Kind == MultipleChoice {
		set := NormalizeSet(q.Correct)
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return ids
	}
	return NormalizeSingle(q.Correct)
}
