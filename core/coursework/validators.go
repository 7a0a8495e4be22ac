package coursework

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var (
	selectedTag  = "selected"
	selectedText = "please select a non-empty {0} file"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(uploadStructValidation, NewAssignment{}, NewSubmission{}, PaperCheck{})
	_ = validate.RegisterTranslation(
		selectedTag, translator,
		func(t ut.Translator) error { return t.Add(selectedTag, selectedText, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(selectedTag, fileLabels[fe.Field()])
			return s
		},
	)
}

var fileLabels = map[string]string{
	"question_pdf":         "question PDF",
	"faculty_solution_pdf": "solution PDF",
	"sub_pdf":              "answer PDF",
	"answer_pdf":           "answer PDF",
}

// uploadStructValidation checks that every required file was selected.
func uploadStructValidation(sl validator.StructLevel) {
	report := func(u *Upload, field, structField string) {
		if !u.Selected() {
			sl.ReportError(u, field, structField, selectedTag, "")
		}
	}

	switch form := sl.Current().Interface().(type) {
	case NewAssignment:
		report(form.QuestionFile, "question_pdf", "QuestionFile")
		report(form.SolutionFile, "faculty_solution_pdf", "SolutionFile")
	case NewSubmission:
		report(form.AnswerFile, "sub_pdf", "AnswerFile")
	case PaperCheck:
		report(form.QuestionFile, "question_pdf", "QuestionFile")
		report(form.AnswerFile, "answer_pdf", "AnswerFile")
	}
}
