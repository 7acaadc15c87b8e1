package normalize

import "sort"

var kinds = map[string]func(payload interface{}) interface{}{
	"tests":       func(p interface{}) interface{} { return Tests(p) },
	"results":     func(p interface{}) interface{} { return Results(p) },
	"courses":     func(p interface{}) interface{} { return Courses(p) },
	"lessons":     func(p interface{}) interface{} { return Lessons(p) },
	"progress":    func(p interface{}) interface{} { return Progresses(p) },
	"enrollments": func(p interface{}) interface{} { return Enrollments(p) },
	"users":       func(p interface{}) interface{} { return Users(p) },
	"options":     func(p interface{}) interface{} { return EnsureArrayOptions(p) },
	"raw":         func(p interface{}) interface{} { return ExtractArray(p) },
}

// Kinds lists the names accepted by ByKind.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByKind normalizes payload as a list of the named kind, e.g. "tests".
func ByKind(kind string, payload interface{}) (interface{}, bool) {
	fn, ok := kinds[kind]
	if !ok {
		return nil, false
	}
	return fn(payload), true
}
