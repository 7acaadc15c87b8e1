package course

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
	"github.com/Zhalalov2-code/online-course/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("not found")
)

const statusCompleted = "completed"

type (
	Service interface {
		// Courses lists the courses, only the teacher's ones when teacherID is set.
		Courses(ctx context.Context, teacherID string) ([]normalize.Course, error)
		CreateCourse(ctx context.Context, nc NewCourse) (normalize.Course, error)
		Dashboard(ctx context.Context, teacher user.User) (Dashboard, error)

		// Lessons lists the lessons usr may see.
		Lessons(ctx context.Context, usr user.User) ([]normalize.Lesson, error)
		Lesson(ctx context.Context, id string) (normalize.Lesson, error)
		CreateLesson(ctx context.Context, nl NewLesson) (normalize.Lesson, error)

		Enrollments(ctx context.Context, userID string) (map[string]bool, error)
		Enroll(ctx context.Context, userID, courseID string) error

		CompletedLessons(ctx context.Context, userID string) (map[string]bool, error)
		CompleteLesson(ctx context.Context, userID, lessonID string) error
	}

	service struct {
		backend core.Backend
		log     core.Logger
		now     func() time.Time
	}
)

var _ Service = (*service)(nil)

func NewService(backend core.Backend, logger core.Logger) Service {
	return &service{backend: backend, log: logger, now: time.Now}
}

func (svc *service) Courses(ctx context.Context, teacherID string) ([]normalize.Course, error) {
	var params url.Values
	if teacherID != "" {
		params = url.Values{"teacherId": {teacherID}}
	}
	data, err := svc.backend.Get(ctx, core.ResourceCourses, params)
	if err != nil {
		return nil, errors.Wrap(err, "fetching courses")
	}
	courses := normalize.Courses(data)
	if teacherID == "" {
		return courses, nil
	}

	// the backend may ignore the teacherId filter
	own := courses[:0]
	for _, c := range courses {
		if !c.TeacherID.Valid || c.TeacherID.String == teacherID {
			own = append(own, c)
		}
	}
	return own, nil
}

func (svc *service) CreateCourse(ctx context.Context, nc NewCourse) (normalize.Course, error) {
	if err := nc.Validate(); err != nil {
		return normalize.Course{}, err
	}
	form := url.Values{
		"title":       {nc.Title},
		"description": {nc.Description},
		"teacher_id":  {nc.TeacherID},
	}
	data, err := svc.backend.Post(ctx, core.ResourceCourses, form)
	if err != nil {
		return normalize.Course{}, errors.Wrap(err, "creating course")
	}

	c, ok := normalize.FindCourse(data, "")
	if !ok || c.Title == "Untitled" {
		c.Title = nc.Title
	}
	if c.Description == "" {
		c.Description = nc.Description
	}
	if !c.TeacherID.Valid && nc.TeacherID != "" {
		c.TeacherID.SetValid(nc.TeacherID)
	}
	return c, nil
}

func (svc *service) Dashboard(ctx context.Context, teacher user.User) (Dashboard, error) {
	courses, err := svc.Courses(ctx, teacher.ID)
	if err != nil {
		return Dashboard{}, err
	}
	return newDashboard(courses), nil
}

func (svc *service) Lessons(ctx context.Context, usr user.User) ([]normalize.Lesson, error) {
	data, err := svc.backend.Get(ctx, core.ResourceLessons, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetching lessons")
	}
	lessons := normalize.Lessons(data)
	if usr.IsTeacher() {
		return lessons, nil
	}

	enrolled, err := svc.Enrollments(ctx, usr.ID)
	if err != nil {
		return nil, err
	}
	visible := lessons[:0]
	for _, l := range lessons {
		if !l.CourseID.Valid || enrolled[l.CourseID.String] {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

func (svc *service) Lesson(ctx context.Context, id string) (normalize.Lesson, error) {
	data, err := svc.backend.Get(ctx, core.ResourcePath(core.ResourceLessons, id), nil)
	if err != nil {
		if core.IsBackendStatus(err, http.StatusNotFound) {
			return normalize.Lesson{}, ErrNotFound
		}
		return normalize.Lesson{}, errors.Wrap(err, "fetching lesson")
	}
	l, ok := normalize.FindLesson(data, id)
	if !ok {
		return normalize.Lesson{}, ErrNotFound
	}
	return l, nil
}

func (svc *service) CreateLesson(ctx context.Context, nl NewLesson) (normalize.Lesson, error) {
	if err := nl.Validate(); err != nil {
		return normalize.Lesson{}, err
	}
	form := url.Values{
		"title":     {nl.Title},
		"content":   {nl.Content},
		"course_id": {nl.CourseID},
	}
	data, err := svc.backend.Post(ctx, core.ResourceLessons, form)
	if err != nil {
		return normalize.Lesson{}, errors.Wrap(err, "creating lesson")
	}

	l, ok := normalize.FindLesson(data, "")
	if !ok || l.Title == "Lesson #"+l.ID {
		l.Title = nl.Title
	}
	if l.Content == "" {
		l.Content = nl.Content
	}
	if !l.CourseID.Valid {
		l.CourseID.SetValid(nl.CourseID)
	}
	return l, nil
}

// Enrollments returns the IDs of the courses the user is enrolled in.
func (svc *service) Enrollments(ctx context.Context, userID string) (map[string]bool, error) {
	enrolled := make(map[string]bool)
	if userID == "" {
		return enrolled, nil
	}
	data, err := svc.backend.Get(ctx, core.ResourceEnrollments, url.Values{"user_id": {userID}})
	if err != nil {
		if core.IsBackendStatus(err, http.StatusNotFound) {
			return enrolled, nil
		}
		return nil, errors.Wrap(err, "fetching enrollments")
	}
	for _, en := range normalize.Enrollments(data) {
		if !en.UserID.Valid || en.UserID.String == userID {
			enrolled[en.CourseID] = true
		}
	}
	return enrolled, nil
}

func (svc *service) Enroll(ctx context.Context, userID, courseID string) error {
	form := url.Values{
		"user_id":   {userID},
		"course_id": {courseID},
	}
	if _, err := svc.backend.Post(ctx, core.ResourceEnrollments, form); err != nil {
		if core.IsBackendStatus(err, http.StatusConflict) {
			svc.log.Debug("already enrolled", map[string]interface{}{"user_id": userID, "course_id": courseID})
			return nil
		}
		return errors.Wrap(err, "enrolling")
	}
	return nil
}

// CompletedLessons returns the IDs of the lessons the user completed.
func (svc *service) CompletedLessons(ctx context.Context, userID string) (map[string]bool, error) {
	completed := make(map[string]bool)
	if userID == "" {
		return completed, nil
	}
	data, err := svc.backend.Get(ctx, core.ResourceProgress, url.Values{"user_id": {userID}})
	if err != nil {
		if core.IsBackendStatus(err, http.StatusNotFound) {
			return completed, nil
		}
		return nil, errors.Wrap(err, "fetching lesson progress")
	}
	for _, p := range normalize.Progresses(data) {
		if p.Completed() {
			completed[p.LessonID] = true
		}
	}
	return completed, nil
}

func (svc *service) CompleteLesson(ctx context.Context, userID, lessonID string) error {
	form := url.Values{
		"user_id":          {userID},
		"lesson_id":        {lessonID},
		"status":           {statusCompleted},
		"completed_at":     {svc.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")},
		"progress_percent": {"100"},
	}
	if _, err := svc.backend.Post(ctx, core.ResourceProgress, form); err != nil {
		return errors.Wrap(err, "saving lesson progress")
	}
	return nil
}
