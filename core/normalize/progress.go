package normalize

import "strings"

const progressCompleted = "completed"

// Progress is a user's progress through one lesson.
type Progress struct {
	LessonID string  `json:"lessonId"`
	Status   string  `json:"status"`
	Percent  float64 `json:"percent"`
}

// Completed reports whether the lesson is finished.
func (p Progress) Completed() bool {
	return strings.EqualFold(p.Status, progressCompleted) || p.Percent >= 100
}

func NormalizeProgress(raw interface{}) (Progress, bool) {
	e, ok := resolveEntity(raw)
	if !ok || e.isScalar() {
		return Progress{}, false
	}
	lessonID, ok := identityField(e.obj, ProgressFields.LessonID)
	if !ok {
		return Progress{}, false
	}
	p := Progress{LessonID: lessonID}
	p.Status, _ = stringField(e.obj, ProgressFields.Status)
	if percent, ok := ProgressFields.Percent.Lookup(e.obj); ok {
		p.Percent, _ = toFloat(percent)
	}
	return p, true
}

func Progresses(payload interface{}) []Progress {
	progress := make([]Progress, 0)
	for _, raw := range ExtractArray(payload) {
		if p, ok := NormalizeProgress(raw); ok {
			progress = append(progress, p)
		}
	}
	return progress
}
