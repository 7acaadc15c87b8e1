package user

import (
	"strings"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

var (
	AllRoles = []string{RoleStudent, RoleTeacher}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Teacher", Value: RoleTeacher},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// FromRecord builds a User out of a normalized backend record.
func FromRecord(rec normalize.User) User {
	return User{ID: rec.ID, Name: rec.Name, Email: rec.Email, Role: rec.Role}
}

func (u User) hasRole(role string) bool {
	return strings.EqualFold(strings.TrimSpace(u.Role), role)
}

func (u User) IsTeacher() bool {
	return u.hasRole(RoleTeacher)
}

func (u User) IsStudent() bool {
	return u.hasRole(RoleStudent)
}

// IsGuest reports whether u is the anonymous user.
func (u User) IsGuest() bool {
	return u.ID == ""
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Name            string `json:"name" validate:"required,notblank"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,role"`
}

func (nu *NewUser) Validate() error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	if nu.Role == "" {
		nu.Role = RoleStudent
	}
	return core.Validate.Struct(nu)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}

// ProfileUpdate holds the editable fields of a User's profile.
type ProfileUpdate struct {
	Name  string `json:"name" validate:"required,notblank,max=255"`
	Email string `json:"email" validate:"required,email"`
}

func (pu *ProfileUpdate) Validate() error {
	pu.Name = core.CleanString(pu.Name)
	pu.Email = core.CleanString(pu.Email, true /* lower */)
	return core.Validate.Struct(pu)
}
