package normalize

import (
	"strings"

	"github.com/volatiletech/null/v8"
)

// Result is one submitted answer.
type Result struct {
	ID         string      `json:"id"`
	TestID     null.String `json:"testId"`
	UserID     null.String `json:"userId"`
	UserAnswer string      `json:"userAnswer"`
	// AnswerIndex is the numeric answer when one was given, otherwise the selected option.
	AnswerIndex null.Int  `json:"answerIndex"`
	IsCorrect   bool      `json:"isCorrect"`
	CreatedAt   null.Time `json:"createdAt"`
}

// NormalizeResult maps one raw result entity to a Result.
// Its identity falls back to the pair key and then to the test id; bare scalars are discarded.
func NormalizeResult(raw interface{}) (Result, bool) {
	e, ok := resolveEntity(raw)
	if !ok || e.isScalar() {
		return Result{}, false
	}
	obj := e.obj

	r := Result{}
	if testID, ok := identityField(obj, ResultFields.TestID); ok {
		r.TestID = null.StringFrom(testID)
	}
	id, ok := e.identify(ResultFields.ID)
	if !ok && r.TestID.Valid {
		id, ok = r.TestID.String, true
	}
	if !ok {
		return Result{}, false
	}
	r.ID = id

	if userID, ok := identityField(obj, ResultFields.UserID); ok {
		r.UserID = null.StringFrom(userID)
	}

	answer, _ := ResultFields.Answer.Lookup(obj)
	if idx, ok := numericAnswer(answer); ok {
		r.AnswerIndex = null.IntFrom(idx)
		r.UserAnswer = displayString(idx)
	} else {
		r.UserAnswer = displayString(answer)
		if selected, ok := ResultFields.Selected.Lookup(obj); ok {
			if idx, ok := toIndex(selected); ok {
				r.AnswerIndex = null.IntFrom(idx)
			}
		}
	}

	if correct, ok := ResultFields.Correct.Lookup(obj); ok {
		r.IsCorrect = ParseBool(correct)
	}
	r.CreatedAt = timeField(obj, ResultFields.CreatedAt)
	return r, true
}

// numericAnswer reports whether the user answered with an option number.
func numericAnswer(v interface{}) (int, bool) {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return 0, false
	}
	return toIndex(v)
}

// Results extracts and normalizes every result in a payload.
func Results(payload interface{}) []Result {
	results := make([]Result, 0)
	for _, raw := range ExtractArray(payload) {
		if r, ok := NormalizeResult(raw); ok {
			results = append(results, r)
		}
	}
	return results
}
