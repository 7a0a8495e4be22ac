package sandboxapi

import (
	"context"
	"math"

	"github.com/trezcool/gradedesk/core/coursework"
)

// Grader stands in for the grading engine.
type Grader interface {
	// Structure extracts the questions of a question paper.
	Structure(ctx context.Context, questionPDF []byte) ([]coursework.Question, error)
	// Grade marks answerPDF against keyPDF.
	Grade(ctx context.Context, questions []coursework.Question, keyPDF, answerPDF []byte) (coursework.AiResult, error)
}

// FixedGrader awards the same share of the marks to every paper.
type FixedGrader struct {
	Ratio     float64
	Questions []coursework.Question
}

var _ Grader = FixedGrader{}

var defaultQuestions = []coursework.Question{
	{ID: "q1", Text: "Question 1", MaxMarks: 10},
	{ID: "q2", Text: "Question 2", MaxMarks: 10},
}

func NewFixedGrader(ratio float64) FixedGrader {
	return FixedGrader{Ratio: ratio, Questions: defaultQuestions}
}

func (g FixedGrader) Structure(context.Context, []byte) ([]coursework.Question, error) {
	out := make([]coursework.Question, len(g.Questions))
	copy(out, g.Questions)
	return out, nil
}

func (g FixedGrader) Grade(_ context.Context, questions []coursework.Question, _, _ []byte) (coursework.AiResult, error) {
	var max float64
	for _, q := range questions {
		max += q.MaxMarks
	}
	total := math.Round(max*g.Ratio*100) / 100
	plagiarism := 0.0
	return coursework.AiResult{
		TotalMarks:           &total,
		MaxMarks:             &max,
		Grade:                coursework.LetterGrade(total, max),
		PlagiarismPercentage: &plagiarism,
		Feedback:             "Graded automatically by the sandbox.",
	}, nil
}
