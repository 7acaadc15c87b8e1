package quiz

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
	"github.com/Zhalalov2-code/online-course/core/user"
)

var (
	minOptions  = 2
	optionsTag  = "options"
	optionsText = "at least 2 options are required"

	correctRangeTag  = "correctrange"
	correctRangeText = "correct answer must be one of the options"
)

func init() {
	_ = core.Validate.RegisterValidation(optionsTag, optionsValidation)
	core.RegisterCustomTranslation(optionsTag, optionsText)

	core.Validate.RegisterStructValidation(newTestStructValidation, NewTest{})
	core.RegisterCustomTranslation(correctRangeTag, correctRangeText)
}

// NewTest contains information needed to create a test.
type NewTest struct {
	LessonID      string   `json:"lesson_id" validate:"required,notblank"`
	Question      string   `json:"question" validate:"required,notblank"`
	Options       []string `json:"options" validate:"options"`
	CorrectAnswer *int     `json:"correct_answer" validate:"required"`
}

func (nt *NewTest) Validate() error {
	nt.LessonID = core.CleanString(nt.LessonID)
	nt.Question = core.CleanString(nt.Question)
	for i, opt := range nt.Options {
		nt.Options[i] = core.CleanString(opt)
	}
	return core.Validate.Struct(nt)
}

// optionsValidation checks that at least 2 options are not blank
func optionsValidation(fl validator.FieldLevel) bool {
	opts, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	var filled int
	for _, opt := range opts {
		if strings.TrimSpace(opt) != "" {
			filled++
		}
	}
	return filled >= minOptions
}

func newTestStructValidation(sl validator.StructLevel) {
	nt, ok := sl.Current().Interface().(NewTest)
	if !ok || nt.CorrectAnswer == nil {
		return
	}
	if idx := *nt.CorrectAnswer; idx < 0 || idx >= len(nt.Options) || strings.TrimSpace(nt.Options[idx]) == "" {
		sl.ReportError(nt.CorrectAnswer, "correct_answer", "CorrectAnswer", correctRangeTag, "")
	}
}

// Grade is the outcome of an answer.
type Grade struct {
	OK    bool `json:"ok"`
	Score int  `json:"score"`
}

// GradeAnswer grades answerIndex against the test's correct answer. Unknown correct answers never pass.
func GradeAnswer(t normalize.Test, answerIndex int) Grade {
	if t.CorrectAnswerIndex.Valid && int(t.CorrectAnswerIndex.Int) == answerIndex {
		return Grade{OK: true, Score: 100}
	}
	return Grade{OK: false, Score: 0}
}

// CanTake reports whether usr may take t.
// Teachers may take any test; students need the test's lesson completed, if it has one.
func CanTake(usr user.User, t normalize.Test, completedLessons map[string]bool) bool {
	if usr.IsTeacher() || !t.LessonID.Valid || t.LessonID.String == "" {
		return true
	}
	return completedLessons[t.LessonID.String]
}

// TestView is a test as listed to a user.
type TestView struct {
	normalize.Test
	Completed bool `json:"completed"`
	CanTake   bool `json:"can_take"`
}

// ResultView is a result joined with its test.
type ResultView struct {
	normalize.Result
	Test       *normalize.Test `json:"test,omitempty"`
	AnswerText string          `json:"answer_text"`
}

func newResultView(r normalize.Result, tests map[string]normalize.Test) ResultView {
	view := ResultView{Result: r, AnswerText: r.UserAnswer}
	if !r.TestID.Valid {
		return view
	}
	t, ok := tests[r.TestID.String]
	if !ok {
		return view
	}
	view.Test = &t
	if r.AnswerIndex.Valid && int(r.AnswerIndex.Int) < len(t.Options) {
		view.AnswerText = t.Options[r.AnswerIndex.Int]
	}
	return view
}
