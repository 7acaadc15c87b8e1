package normalize

import (
	"math"
	"strings"

	"github.com/volatiletech/null/v8"
)

// Test is a quiz question.
// CorrectAnswerIndex is either null or a valid index into Options.
type Test struct {
	ID                 string      `json:"id"`
	LessonID           null.String `json:"lessonId"`
	Question           string      `json:"question"`
	Options            []string    `json:"options"`
	CorrectAnswerIndex null.Int    `json:"correctAnswerIndex"`
	CreatedAt          null.Time   `json:"createdAt"`
}

// NormalizeTest maps one raw test entity to a Test. It reports false when no identity resolves.
func NormalizeTest(raw interface{}) (Test, bool) {
	e, ok := resolveEntity(raw)
	if !ok {
		return Test{}, false
	}
	id, ok := e.identify(TestFields.ID)
	if !ok {
		return Test{}, false
	}
	if e.isScalar() {
		return Test{ID: id, Question: displayString(e.scalar), Options: []string{}}, true
	}

	obj := e.obj
	t := Test{ID: id}
	if lessonID, ok := identityField(obj, TestFields.LessonID); ok {
		t.LessonID = null.StringFrom(lessonID)
	}
	if question, ok := stringField(obj, TestFields.Question); ok {
		t.Question = question
	} else {
		t.Question = "Test #" + id
	}
	rawOptions, _ := TestFields.Options.Lookup(obj)
	t.Options = EnsureArrayOptions(rawOptions)
	if correct, ok := TestFields.Correct.Lookup(obj); ok {
		t.CorrectAnswerIndex = ResolveCorrectAnswerIndex(correct, t.Options)
	}
	t.CreatedAt = timeField(obj, TestFields.CreatedAt)
	return t, true
}

// Tests extracts and normalizes every test in a payload, dropping entities without identity.
func Tests(payload interface{}) []Test {
	tests := make([]Test, 0)
	for _, raw := range listEntities(payload) {
		if t, ok := NormalizeTest(raw); ok {
			tests = append(tests, t)
		}
	}
	return tests
}

// FindTest picks a single test out of a detail response.
// The entity whose id matches is preferred; otherwise the first test found wins.
func FindTest(payload interface{}, id string) (Test, bool) {
	var first *Test
	for _, raw := range candidates(payload) {
		t, ok := NormalizeTest(raw)
		if !ok {
			continue
		}
		if t.ID == id {
			return t, true
		}
		if first == nil {
			first = &t
		}
	}
	if first == nil {
		return Test{}, false
	}
	return *first, true
}

// ResolveCorrectAnswerIndex maps a raw correct answer to an index into options.
// Numbers, numeric strings and option texts are understood; anything unresolvable or out of range is null.
func ResolveCorrectAnswerIndex(raw interface{}, options []string) null.Int {
	if raw == nil {
		return null.Int{}
	}
	if f, ok := toFloat(raw); ok {
		return indexInto(f, options)
	}
	if isNumber(raw) {
		return null.Int{}
	}
	s, ok := raw.(string)
	if !ok {
		return null.Int{}
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return null.Int{}
	}
	if idx, ok := matchOption(trimmed, options); ok {
		return null.IntFrom(idx)
	}
	if cleaned := EnsureArrayOptions(trimmed); len(cleaned) == 1 {
		if idx, ok := matchOption(cleaned[0], options); ok {
			return null.IntFrom(idx)
		}
	}
	return null.Int{}
}

func indexInto(f float64, options []string) null.Int {
	if f != math.Trunc(f) || f < 0 || f >= float64(len(options)) {
		return null.Int{}
	}
	return null.IntFrom(int(f))
}

func matchOption(answer string, options []string) (int, bool) {
	for i, opt := range options {
		if opt == answer {
			return i, true
		}
	}
	for i, opt := range options {
		if strings.EqualFold(opt, answer) {
			return i, true
		}
	}
	return 0, false
}
