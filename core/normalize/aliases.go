package normalize

// Aliases is an ordered list of the spellings a field has been seen under.
type Aliases []string

// Lookup returns the value of the first alias present in obj with a non-null value.
func (a Aliases) Lookup(obj map[string]interface{}) (interface{}, bool) {
	for _, key := range a {
		if v, ok := obj[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any alias is present in obj.
func (a Aliases) Has(obj map[string]interface{}) bool {
	_, ok := a.Lookup(obj)
	return ok
}

var (
	// wrapperKeys are the envelope keys searched, in order, before any other value.
	wrapperKeys = Aliases{"data", "tests", "items", "results", "rows", "list"}

	// entityKeys mark an object as a single entity rather than an envelope.
	entityKeys = Aliases{"id", "test_id", "testId", "question", "title", "name"}
)

// TestFields lists the accepted spellings of every test field.
var TestFields = struct {
	ID, LessonID, Question, Options, Correct, CreatedAt Aliases
}{
	ID:        Aliases{"id", "test_id", "testId", "0"},
	LessonID:  Aliases{"lesson_id", "lessonId", "lesson"},
	Question:  Aliases{"question", "title", "name"},
	Options:   Aliases{"options", "opts", "answers", "variants"},
	Correct:   Aliases{"correct_answer", "correctAnswer", "correct", "answer", "right_answer", "correctAnswerIndex"},
	CreatedAt: Aliases{"createdAt", "created_at", "created", "date"},
}

// ResultFields lists the accepted spellings of every result field.
var ResultFields = struct {
	ID, TestID, UserID, Answer, Selected, Correct, CreatedAt Aliases
}{
	ID:        Aliases{"id", "result_id", "resultId", "0"},
	TestID:    Aliases{"test_id", "testId", "testID"},
	UserID:    Aliases{"user_id", "userId", "uid"},
	Answer:    Aliases{"user_answer", "userAnswer", "answer", "response"},
	Selected:  Aliases{"selected_option_index", "selectedOptionIndex", "selected", "answerIndex"},
	Correct:   Aliases{"is_correct", "isCorrect", "correct", "passed"},
	CreatedAt: Aliases{"created_at", "createdAt", "date"},
}

// CourseFields lists the accepted spellings of every course field.
var CourseFields = struct {
	ID, Title, Description, TeacherID, Students, Lessons, Status, UpdatedAt Aliases
}{
	ID:          Aliases{"id", "course_id", "courseId", "0"},
	Title:       Aliases{"title", "name"},
	Description: Aliases{"description", "desc"},
	TeacherID:   Aliases{"teacher_id", "teacherId"},
	Students:    Aliases{"students", "students_count", "student_count"},
	Lessons:     Aliases{"lessons", "lessons_count"},
	Status:      Aliases{"status"},
	UpdatedAt:   Aliases{"updated_at", "updatedAt", "update_at", "created_at", "created_ad"},
}

// LessonFields lists the accepted spellings of every lesson field.
var LessonFields = struct {
	ID, Title, Content, CourseID, CreatedAt Aliases
}{
	ID:        Aliases{"id", "lesson_id", "lessonId", "0"},
	Title:     Aliases{"title", "name", "lesson_title"},
	Content:   Aliases{"content", "body", "text"},
	CourseID:  Aliases{"course_id", "courseId", "course"},
	CreatedAt: Aliases{"created_at", "createdAt", "date"},
}

// ProgressFields lists the accepted spellings of lesson progress fields.
var ProgressFields = struct {
	LessonID, Status, Percent Aliases
}{
	LessonID: Aliases{"lesson_id", "lessonId"},
	Status:   Aliases{"status"},
	Percent:  Aliases{"progress_percent", "progress_precent", "progress", "percent"},
}

// EnrollmentFields lists the accepted spellings of enrollment fields.
var EnrollmentFields = struct {
	CourseID, UserID Aliases
}{
	CourseID: Aliases{"course_id", "courseId", "id"},
	UserID:   Aliases{"user_id", "userId"},
}

// UserFields lists the accepted spellings of user fields.
var UserFields = struct {
	ID, Name, Email, Role Aliases
}{
	ID:    Aliases{"id", "user_id", "userId"},
	Name:  Aliases{"name", "username"},
	Email: Aliases{"email"},
	Role:  Aliases{"role"},
}
