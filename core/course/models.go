package course

import (
	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
)

// NewCourse contains information needed to create a course.
type NewCourse struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description"`
	TeacherID   string `json:"teacher_id"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.TeacherID = core.CleanString(nc.TeacherID)
	return core.Validate.Struct(nc)
}

// NewLesson contains information needed to create a lesson.
type NewLesson struct {
	Title    string `json:"title" validate:"required,notblank,max=255"`
	Content  string `json:"content" validate:"required,notblank"`
	CourseID string `json:"course_id" validate:"required,notblank"`
}

func (nl *NewLesson) Validate() error {
	nl.Title = core.CleanString(nl.Title)
	nl.Content = core.CleanString(nl.Content)
	nl.CourseID = core.CleanString(nl.CourseID)
	return core.Validate.Struct(nl)
}

// Totals sums up a teacher's courses.
type Totals struct {
	Courses  int `json:"courses"`
	Students int `json:"students"`
	Lessons  int `json:"lessons"`
}

type Dashboard struct {
	Courses []normalize.Course `json:"courses"`
	Totals  Totals             `json:"totals"`
}

func newDashboard(courses []normalize.Course) Dashboard {
	d := Dashboard{Courses: courses, Totals: Totals{Courses: len(courses)}}
	for _, c := range courses {
		d.Totals.Students += c.Students
		d.Totals.Lessons += c.Lessons
	}
	return d
}
