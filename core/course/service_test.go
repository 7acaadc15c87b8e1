package course

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
	"github.com/Zhalalov2-code/online-course/core/user"
	logsvc "github.com/Zhalalov2-code/online-course/services/logger"
	"github.com/Zhalalov2-code/online-course/tests"
)

var (
	student = user.User{ID: "9", Role: user.RoleStudent}
	teacher = user.User{ID: "1", Role: user.RoleTeacher}
)

func newTestService(backend core.Backend) *service {
	svc := NewService(backend, logsvc.NewNopLogger()).(*service)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 30, 0, 0, time.FixedZone("EAT", 3*60*60)) }
	return svc
}

func TestService_Courses(t *testing.T) {
	body := `{"data": [
		{"id": 1, "name": "Go", "teacher_id": 1, "students_count": "12", "lessons": [{"id": 1}, {"id": 2}], "status": "Active", "created_ad": "2024-01-02 10:00:00"},
		{"id": 2, "title": "Rust", "teacherId": 2, "students": 3},
		[["id", 3], ["title", "Shared"]]
	]}`

	t.Run("all", func(t *testing.T) {
		backend := testutil.NewFakeBackend().On(http.MethodGet, core.ResourceCourses, body)
		got, err := newTestService(backend).Courses(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, normalize.Course{
			ID:        "1",
			Title:     "Go",
			TeacherID: null.StringFrom("1"),
			Students:  12,
			Lessons:   2,
			Status:    "active",
			UpdatedAt: null.TimeFrom(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)),
		}, got[0])
		assert.Equal(t, "Shared", got[2].Title)
		assert.Empty(t, backend.Calls()[0].Values.Get("teacherId"))
	})

	t.Run("teacher", func(t *testing.T) {
		backend := testutil.NewFakeBackend().On(http.MethodGet, core.ResourceCourses, body)
		got, err := newTestService(backend).Courses(context.Background(), "1")
		require.NoError(t, err)

		var ids []string
		for _, c := range got {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []string{"1", "3"}, ids)
		assert.Equal(t, "1", backend.Calls()[0].Values.Get("teacherId"))
	})
}

func TestService_Dashboard(t *testing.T) {
	backend := testutil.NewFakeBackend().On(http.MethodGet, core.ResourceCourses, `[
		{"id": 1, "teacher_id": 1, "students": 4, "lessons_count": 2},
		{"id": 2, "teacher_id": 1, "student_count": 6, "lessons": "3"},
		{"id": 3, "teacher_id": 1}
	]`)

	got, err := newTestService(backend).Dashboard(context.Background(), teacher)
	require.NoError(t, err)
	assert.Len(t, got.Courses, 3)
	assert.Equal(t, Totals{Courses: 3, Students: 10, Lessons: 5}, got.Totals)
}

func TestService_CreateCourse(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		backend := testutil.NewFakeBackend().On(http.MethodPost, core.ResourceCourses, `{"data": {"id": "7"}}`)
		got, err := newTestService(backend).CreateCourse(context.Background(), NewCourse{
			Title: " Go 101 ", Description: "basics", TeacherID: "1",
		})
		require.NoError(t, err)
		assert.Equal(t, normalize.Course{
			ID: "7", Title: "Go 101", Description: "basics", TeacherID: null.StringFrom("1"),
		}, got)

		forms := backend.Posted(core.ResourceCourses)
		require.Len(t, forms, 1)
		assert.Equal(t, "Go 101", forms[0].Get("title"))
		assert.Equal(t, "1", forms[0].Get("teacher_id"))
	})

	t.Run("blank title", func(t *testing.T) {
		backend := testutil.NewFakeBackend()
		_, err := newTestService(backend).CreateCourse(context.Background(), NewCourse{Title: " "})
		verrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, map[string]string{"title": "this field is required"}, core.TranslateErrors(verrs))
		assert.Empty(t, backend.Calls())
	})
}

func TestService_Lessons(t *testing.T) {
	lessons := `{"lessons": [
		{"id": 1, "title": "Intro", "course_id": 1},
		{"id": 2, "lesson_title": "Advanced", "courseId": 2},
		{"id": 3, "title": "Welcome"}
	]}`

	tests := []struct {
		name        string
		usr         user.User
		enrollments string
		want        []string
	}{
		{name: "teacher sees all", usr: teacher, want: []string{"1", "2", "3"}},
		{name: "enrolled student", usr: student, enrollments: `[{"course_id": 2, "user_id": 9}]`, want: []string{"2", "3"}},
		{name: "enrollment ids only", usr: student, enrollments: `{"data": ["1"]}`, want: []string{"1", "3"}},
		{name: "other users' enrollments ignored", usr: student, enrollments: `[{"course_id": 2, "user_id": 8}]`, want: []string{"3"}},
		{name: "guest", usr: user.User{}, want: []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewFakeBackend().On(http.MethodGet, core.ResourceLessons, lessons)
			if tt.enrollments != "" {
				backend.On(http.MethodGet, core.ResourceEnrollments, tt.enrollments)
			}
			got, err := newTestService(backend).Lessons(context.Background(), tt.usr)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, l := range got {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestService_Lesson(t *testing.T) {
	backend := testutil.NewFakeBackend().
		On(http.MethodGet, "lessons/2", `{"data": [{"id": 1, "title": "Intro"}, {"id": 2, "title": "Second", "content": "text"}]}`)
	svc := newTestService(backend)

	got, err := svc.Lesson(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Title)
	assert.Equal(t, "text", got.Content)

	_, err = svc.Lesson(context.Background(), "3")
	assert.Equal(t, ErrNotFound, err)
}

func TestService_CreateLesson(t *testing.T) {
	backend := testutil.NewFakeBackend().On(http.MethodPost, core.ResourceLessons, `[["id", 5]]`)
	got, err := newTestService(backend).CreateLesson(context.Background(), NewLesson{
		Title: "Loops", Content: "for ...", CourseID: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, normalize.Lesson{
		ID: "5", Title: "Loops", Content: "for ...", CourseID: null.StringFrom("2"),
	}, got)

	form := backend.Posted(core.ResourceLessons)[0]
	assert.Equal(t, "Loops", form.Get("title"))
	assert.Equal(t, "2", form.Get("course_id"))

	_, err = newTestService(backend).CreateLesson(context.Background(), NewLesson{Title: "x"})
	assert.Error(t, err)
}

func TestService_Enroll(t *testing.T) {
	backend := testutil.NewFakeBackend().On(http.MethodPost, core.ResourceEnrollments, `{"status": "ok"}`)
	require.NoError(t, newTestService(backend).Enroll(context.Background(), "9", "2"))

	form := backend.Posted(core.ResourceEnrollments)[0]
	assert.Equal(t, "9", form.Get("user_id"))
	assert.Equal(t, "2", form.Get("course_id"))

	conflict := testutil.NewFakeBackend().Fail(http.MethodPost, core.ResourceEnrollments, http.StatusConflict)
	assert.NoError(t, newTestService(conflict).Enroll(context.Background(), "9", "2"))

	down := testutil.NewFakeBackend().Fail(http.MethodPost, core.ResourceEnrollments, http.StatusInternalServerError)
	assert.Error(t, newTestService(down).Enroll(context.Background(), "9", "2"))
}

func TestService_CompletedLessons(t *testing.T) {
	backend := testutil.NewFakeBackend().On(http.MethodGet, core.ResourceProgress, `{"data": [
		{"lesson_id": 1, "status": "Completed"},
		{"lesson_id": 2, "status": "in_progress", "progress_precent": "40"},
		{"lessonId": 3, "progress_percent": 100},
		{"status": "completed"}
	]}`)

	got, err := newTestService(backend).CompletedLessons(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"1": true, "3": true}, got)
	assert.Equal(t, "9", backend.Calls()[0].Values.Get("user_id"))

	none, err := newTestService(testutil.NewFakeBackend()).CompletedLessons(context.Background(), "9")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_CompleteLesson(t *testing.T) {
	backend := testutil.NewFakeBackend().On(http.MethodPost, core.ResourceProgress, ``)
	require.NoError(t, newTestService(backend).CompleteLesson(context.Background(), "9", "4"))

	form := backend.Posted(core.ResourceProgress)[0]
	assert.Equal(t, "9", form.Get("user_id"))
	assert.Equal(t, "4", form.Get("lesson_id"))
	assert.Equal(t, "completed", form.Get("status"))
	assert.Equal(t, "100", form.Get("progress_percent"))
	assert.Equal(t, "2024-03-01T07:30:00.000Z", form.Get("completed_at"))
}
