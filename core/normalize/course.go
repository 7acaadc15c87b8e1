package normalize

import (
	"strings"

	"github.com/volatiletech/null/v8"
)

const untitled = "Untitled"

// Course is a catalog entry.
type Course struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	TeacherID   null.String `json:"teacherId"`
	Students    int         `json:"students"`
	Lessons     int         `json:"lessons"`
	Status      string      `json:"status"`
	UpdatedAt   null.Time   `json:"updatedAt"`
}

func NormalizeCourse(raw interface{}) (Course, bool) {
	e, ok := resolveEntity(raw)
	if !ok {
		return Course{}, false
	}
	id, ok := e.identify(CourseFields.ID)
	if !ok {
		return Course{}, false
	}
	if e.isScalar() {
		return Course{ID: id, Title: displayString(e.scalar)}, true
	}

	obj := e.obj
	c := Course{ID: id, Title: untitled}
	if title, ok := stringField(obj, CourseFields.Title); ok {
		c.Title = title
	}
	c.Description, _ = stringField(obj, CourseFields.Description)
	if teacherID, ok := identityField(obj, CourseFields.TeacherID); ok {
		c.TeacherID = null.StringFrom(teacherID)
	}
	if students, ok := CourseFields.Students.Lookup(obj); ok {
		c.Students = toCount(students)
	}
	if lessons, ok := CourseFields.Lessons.Lookup(obj); ok {
		c.Lessons = toCount(lessons)
	}
	if status, ok := stringField(obj, CourseFields.Status); ok {
		c.Status = strings.ToLower(status)
	}
	c.UpdatedAt = timeField(obj, CourseFields.UpdatedAt)
	return c, true
}

func Courses(payload interface{}) []Course {
	courses := make([]Course, 0)
	for _, raw := range listEntities(payload) {
		if c, ok := NormalizeCourse(raw); ok {
			courses = append(courses, c)
		}
	}
	return courses
}

// FindCourse picks a single course out of a detail or creation response.
func FindCourse(payload interface{}, id string) (Course, bool) {
	var first *Course
	for _, raw := range candidates(payload) {
		c, ok := NormalizeCourse(raw)
		if !ok {
			continue
		}
		if c.ID == id {
			return c, true
		}
		if first == nil {
			first = &c
		}
	}
	if first == nil {
		return Course{}, false
	}
	return *first, true
}
