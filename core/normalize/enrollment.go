package normalize

import "github.com/volatiletech/null/v8"

// Enrollment links a user to a course.
type Enrollment struct {
	CourseID string      `json:"courseId"`
	UserID   null.String `json:"userId"`
}

func NormalizeEnrollment(raw interface{}) (Enrollment, bool) {
	e, ok := resolveEntity(raw)
	if !ok {
		return Enrollment{}, false
	}
	if e.isScalar() {
		courseID, ok := identity(e.scalar, nil)
		return Enrollment{CourseID: courseID}, ok
	}
	courseID, ok := identityField(e.obj, EnrollmentFields.CourseID)
	if !ok {
		return Enrollment{}, false
	}
	en := Enrollment{CourseID: courseID}
	if userID, ok := identityField(e.obj, EnrollmentFields.UserID); ok {
		en.UserID = null.StringFrom(userID)
	}
	return en, true
}

func Enrollments(payload interface{}) []Enrollment {
	enrollments := make([]Enrollment, 0)
	for _, raw := range ExtractArray(payload) {
		if en, ok := NormalizeEnrollment(raw); ok {
			enrollments = append(enrollments, en)
		}
	}
	return enrollments
}
