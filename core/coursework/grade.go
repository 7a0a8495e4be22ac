package coursework

import (
	"strconv"
	"strings"
)

// Tier is the visual severity a grade is rendered with.
type Tier string

const (
	TierPositive Tier = "positive"
	TierNeutral  Tier = "neutral"
	TierNegative Tier = "negative"
)

// TierForGrade maps any grade, known or not, to exactly one tier. Grades are
// matched exactly.
func TierForGrade(grade string) Tier {
	switch grade {
	case "A", "B":
		return TierPositive
	case "C":
		return TierNeutral
	default:
		return TierNegative
	}
}

// Tier of a missing result is negative.
func (r *AiResult) Tier() Tier {
	if r == nil {
		return TierNegative
	}
	return TierForGrade(r.Grade)
}

// GradeLabel is the grade, or "-" when absent.
func (r *AiResult) GradeLabel() string {
	if r == nil || strings.TrimSpace(r.Grade) == "" {
		return "-"
	}
	return r.Grade
}

// ScoreLabel renders "total/max", or "not yet graded" when no total is known.
func (r *AiResult) ScoreLabel() string {
	if !r.Graded() {
		return "not yet graded"
	}
	if r.MaxMarks == nil {
		return formatMarks(*r.TotalMarks) + "/-"
	}
	return formatMarks(*r.TotalMarks) + "/" + formatMarks(*r.MaxMarks)
}

// PlagiarismLabel renders the percentage, or "not yet graded".
func (r *AiResult) PlagiarismLabel() string {
	if r == nil || r.PlagiarismPercentage == nil {
		return "not yet graded"
	}
	return formatMarks(*r.PlagiarismPercentage) + "%"
}

func (r *AiResult) FeedbackLabel() string {
	if r == nil || strings.TrimSpace(r.Feedback) == "" {
		return "No feedback available."
	}
	return r.Feedback
}

// LetterGrade converts marks into a letter: >=90% A, >=80% B, >=70% C, >=60% D, else F.
func LetterGrade(total, max float64) string {
	if max <= 0 {
		return "F"
	}
	pct := total / max * 100
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}

func formatMarks(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
