package normalize

import "github.com/volatiletech/null/v8"

// Lesson belongs to at most one course.
type Lesson struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	CourseID  null.String `json:"courseId"`
	CreatedAt null.Time   `json:"createdAt"`
}

func NormalizeLesson(raw interface{}) (Lesson, bool) {
	e, ok := resolveEntity(raw)
	if !ok {
		return Lesson{}, false
	}
	id, ok := e.identify(LessonFields.ID)
	if !ok {
		return Lesson{}, false
	}
	if e.isScalar() {
		return Lesson{ID: id, Title: displayString(e.scalar)}, true
	}

	obj := e.obj
	l := Lesson{ID: id, Title: "Lesson #" + id}
	if title, ok := stringField(obj, LessonFields.Title); ok {
		l.Title = title
	}
	if content, ok := LessonFields.Content.Lookup(obj); ok {
		l.Content = displayString(content)
	}
	if courseID, ok := identityField(obj, LessonFields.CourseID); ok {
		l.CourseID = null.StringFrom(courseID)
	}
	l.CreatedAt = timeField(obj, LessonFields.CreatedAt)
	return l, true
}

func Lessons(payload interface{}) []Lesson {
	lessons := make([]Lesson, 0)
	for _, raw := range listEntities(payload) {
		if l, ok := NormalizeLesson(raw); ok {
			lessons = append(lessons, l)
		}
	}
	return lessons
}

// FindLesson picks a single lesson out of a detail response, preferring the one with the given id.
func FindLesson(payload interface{}, id string) (Lesson, bool) {
	var first *Lesson
	for _, raw := range candidates(payload) {
		l, ok := NormalizeLesson(raw)
		if !ok {
			continue
		}
		if l.ID == id {
			return l, true
		}
		if first == nil {
			first = &l
		}
	}
	if first == nil {
		return Lesson{}, false
	}
	return *first, true
}
