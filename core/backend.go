package core

import (
	"context"
	"net/url"
)

// Backend resources.
const (
	ResourceUsers       = "users"
	ResourceCourses     = "courses"
	ResourceLessons     = "lessons"
	ResourceTests       = "tests"
	ResourceResults     = "results"
	ResourceEnrollments = "course_enrollments"
	ResourceProgress    = "lesson_progress"
	ResourceProfile     = "update"
)

// Backend is the legacy REST API the portal is built on.
// Responses are returned as decoded JSON values of whatever shape the backend chose;
// callers run them through the normalize package.
type Backend interface {
	Get(ctx context.Context, resource string, params url.Values) (interface{}, error)
	Post(ctx context.Context, resource string, form url.Values) (interface{}, error)
}

// ResourcePath joins a resource with an entity ID, e.g. ResourcePath("tests", "4") -> "tests/4".
func ResourcePath(resource, id string) string {
	return resource + "/" + url.PathEscape(id)
}
