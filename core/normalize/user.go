package normalize

import "strings"

// User is the account the backend returns on login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NormalizeUser(raw interface{}) (User, bool) {
	e, ok := resolveEntity(raw)
	if !ok || e.isScalar() {
		return User{}, false
	}
	id, ok := identityField(e.obj, UserFields.ID)
	if !ok {
		return User{}, false
	}
	u := User{ID: id}
	u.Name, _ = stringField(e.obj, UserFields.Name)
	u.Email, _ = stringField(e.obj, UserFields.Email)
	if role, ok := stringField(e.obj, UserFields.Role); ok {
		u.Role = strings.ToLower(role)
	}
	return u, true
}

func Users(payload interface{}) []User {
	users := make([]User, 0)
	for _, raw := range ExtractArray(payload) {
		if u, ok := NormalizeUser(raw); ok {
			users = append(users, u)
		}
	}
	return users
}
