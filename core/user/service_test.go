package user

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/tests"
)

func TestService_Login(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		want    User
		wantErr error
		wantMsg string
	}{
		{
			name: "list of users",
			body: `[{"id": 3, "name": "Ann", "email": "ann@test.cd", "role": "Student"}]`,
			want: User{ID: "3", Name: "Ann", Email: "ann@test.cd", Role: "student"},
		},
		{
			name: "status and user",
			body: `{"status": 200, "user": {"user_id": "4", "username": "Bob", "role": "teacher"}}`,
			want: User{ID: "4", Name: "Bob", Role: "teacher"},
		},
		{
			name: "user inside data envelope",
			body: `{"data": {"status": "200", "user": "{\"id\": 5}"}}`,
			want: User{ID: "5"},
		},
		{
			name:    "backend message",
			body:    `{"status": 401, "error": "wrong password"}`,
			wantErr: ErrInvalidCredentials,
			wantMsg: "wrong password",
		},
		{
			name:    "failed status with user",
			body:    `{"status": 403, "user": {"id": 1}}`,
			wantErr: ErrInvalidCredentials,
		},
		{name: "empty list", body: `[]`, wantErr: ErrInvalidCredentials},
		{name: "empty body", body: ``, wantErr: ErrInvalidCredentials},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewFakeBackend()
			if tt.status != 0 {
				backend.Fail(http.MethodGet, core.ResourceUsers, tt.status)
			} else {
				backend.On(http.MethodGet, core.ResourceUsers, tt.body)
			}
			svc := NewService(backend, nil)

			got, err := svc.Login(context.Background(), " Ann@Test.cd ", "secret")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, errors.Cause(err))
				assert.Contains(t, err.Error(), tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			calls := backend.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, "ann@test.cd", calls[0].Values.Get("email"))
			assert.Equal(t, "secret", calls[0].Values.Get("password"))
		})
	}
}

func TestService_Login_BackendDown(t *testing.T) {
	backend := testutil.NewFakeBackend().Fail(http.MethodGet, core.ResourceUsers, http.StatusInternalServerError)

	_, err := NewService(backend, nil).Login(context.Background(), "a@test.cd", "x")
	require.Error(t, err)
	assert.NotEqual(t, ErrInvalidCredentials, errors.Cause(err))
	assert.True(t, core.IsBackendStatus(err, http.StatusInternalServerError))
}

func TestService_Register(t *testing.T) {
	nu := NewUser{
		Name:            " Ann ",
		Email:           "Ann@Test.cd",
		Password:        "correct-horse",
		PasswordConfirm: "correct-horse",
	}

	t.Run("created user returned", func(t *testing.T) {
		backend := testutil.NewFakeBackend().On(http.MethodPost, core.ResourceUsers, `{"data": [["id", 12]]}`)

		got, err := NewService(backend, nil).Register(context.Background(), nu)
		require.NoError(t, err)
		assert.Equal(t, User{ID: "12", Name: "Ann", Email: "ann@test.cd", Role: RoleStudent}, got)

		forms := backend.Posted(core.ResourceUsers)
		require.Len(t, forms, 1)
		assert.Equal(t, "Ann", forms[0].Get("name"))
		assert.Equal(t, "ann@test.cd", forms[0].Get("email"))
		assert.Equal(t, "student", forms[0].Get("role"))
	})

	t.Run("falls back to login", func(t *testing.T) {
		backend := testutil.NewFakeBackend().
			On(http.MethodPost, core.ResourceUsers, `{"status": "created"}`).
			On(http.MethodGet, core.ResourceUsers, `[{"id": 13, "email": "ann@test.cd"}]`)

		got, err := NewService(backend, nil).Register(context.Background(), nu)
		require.NoError(t, err)
		assert.Equal(t, "13", got.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		backend := testutil.NewFakeBackend().Fail(http.MethodPost, core.ResourceUsers, http.StatusConflict)

		_, err := NewService(backend, nil).Register(context.Background(), nu)
		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "email", vErr.Fields[0].Field)
	})

	t.Run("invalid input never reaches the backend", func(t *testing.T) {
		backend := testutil.NewFakeBackend()
		_, err := NewService(backend, nil).Register(context.Background(), NewUser{Name: "x"})
		require.Error(t, err)
		assert.Empty(t, backend.Calls())
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ann := User{ID: "9", Name: "Ann", Email: "ann@test.cd", Role: RoleStudent}
	pu := ProfileUpdate{Name: " Annie ", Email: "Annie@Test.cd"}

	tests := []struct {
		name    string
		body    string
		status  int
		want    User
		wantErr string
	}{
		{
			name: "user key",
			body: `{"status": "success", "user": {"id": 9, "name": "Annie", "email": "annie@test.cd", "role": "Student"}}`,
			want: User{ID: "9", Name: "Annie", Email: "annie@test.cd", Role: RoleStudent},
		},
		{
			name: "list",
			body: `[{"id": "9", "name": "Annie B"}]`,
			want: User{ID: "9", Name: "Annie B", Email: "annie@test.cd", Role: RoleStudent},
		},
		{
			name: "data envelope",
			body: `{"data": {"id": 9, "email": "annie@test.cd", "role": "teacher"}}`,
			want: User{ID: "9", Name: "Annie", Email: "annie@test.cd", Role: RoleTeacher},
		},
		{
			name: "bare status",
			body: `{"status": "updated", "message": "profile saved"}`,
			want: User{ID: "9", Name: "Annie", Email: "annie@test.cd", Role: RoleStudent},
		},
		{name: "empty body", want: User{ID: "9", Name: "Annie", Email: "annie@test.cd", Role: RoleStudent}},
		{name: "rejected", body: `{"status": 400, "message": "email taken"}`, wantErr: "email taken"},
		{name: "error field", body: `{"error": "no such user"}`, wantErr: "no such user"},
		{name: "conflict", status: http.StatusConflict, wantErr: "409"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewFakeBackend()
			if tt.status != 0 {
				backend.Fail(http.MethodPost, core.ResourceProfile, tt.status)
			} else {
				backend.On(http.MethodPost, core.ResourceProfile, tt.body)
			}

			got, err := NewService(backend, nil).UpdateProfile(context.Background(), ann, pu)
			if tt.wantErr != "" {
				var vErr *core.ValidationError
				require.True(t, errors.As(err, &vErr), "got %v", err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			forms := backend.Posted(core.ResourceProfile)
			require.Len(t, forms, 1)
			assert.Equal(t, "9", forms[0].Get("id"))
			assert.Equal(t, "Annie", forms[0].Get("name"))
			assert.Equal(t, "annie@test.cd", forms[0].Get("email"))
		})
	}
}

func TestService_UpdateProfile_Invalid(t *testing.T) {
	backend := testutil.NewFakeBackend()
	svc := NewService(backend, nil)

	_, err := svc.UpdateProfile(context.Background(), User{ID: "9"}, ProfileUpdate{Name: " ", Email: "nope"})
	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, map[string]string{
		"name":  "this field is required",
		"email": "email must be a valid email address",
	}, core.TranslateErrors(verrs))

	_, err = svc.UpdateProfile(context.Background(), User{}, ProfileUpdate{Name: "Ann", Email: "ann@test.cd"})
	assert.Error(t, err)
	assert.Empty(t, backend.Calls())
}

func TestNewUser_Validate(t *testing.T) {
	valid := func() NewUser {
		return NewUser{Name: "Ann", Email: "ann@test.cd", Password: "s3cret-pass", PasswordConfirm: "s3cret-pass"}
	}

	tests := []struct {
		name       string
		mutate     func(nu *NewUser)
		wantFields map[string]string
	}{
		{name: "valid", mutate: func(nu *NewUser) {}},
		{name: "teacher", mutate: func(nu *NewUser) { nu.Role = " Teacher " }},
		{
			name:       "blank name",
			mutate:     func(nu *NewUser) { nu.Name = "   " },
			wantFields: map[string]string{"name": "this field is required"},
		},
		{
			name:       "bad email",
			mutate:     func(nu *NewUser) { nu.Email = "ann" },
			wantFields: map[string]string{"email": "email must be a valid email address"},
		},
		{
			name:       "bad role",
			mutate:     func(nu *NewUser) { nu.Role = "admin" },
			wantFields: map[string]string{"role": roleText},
		},
		{
			name: "passwords differ",
			mutate: func(nu *NewUser) {
				nu.PasswordConfirm = "other-pass"
			},
			wantFields: map[string]string{"password_confirm": "password_confirm must be equal to Password"},
		},
		{
			name:       "short password",
			mutate:     func(nu *NewUser) { nu.Password, nu.PasswordConfirm = "a1", "a1" },
			wantFields: map[string]string{"password": pwdMinLenText},
		},
		{
			name:       "password with space",
			mutate:     func(nu *NewUser) { nu.Password, nu.PasswordConfirm = "pass word", "pass word" },
			wantFields: map[string]string{"password": pwdNoSpaceText},
		},
		{
			name:       "numeric password",
			mutate:     func(nu *NewUser) { nu.Password, nu.PasswordConfirm = "12345678", "12345678" },
			wantFields: map[string]string{"password": pwdNotAllNumText},
		},
		{
			name:       "password like email",
			mutate:     func(nu *NewUser) { nu.Password, nu.PasswordConfirm = "Ann@test.cd", "Ann@test.cd" },
			wantFields: map[string]string{"password": pwdAttrSimText},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := valid()
			tt.mutate(&nu)
			err := nu.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var vErrs validator.ValidationErrors
			require.True(t, errors.As(err, &vErrs), "%v", err)
			assert.Equal(t, tt.wantFields, core.TranslateErrors(vErrs))
		})
	}
}

func TestUser_Roles(t *testing.T) {
	assert.True(t, User{Role: "Teacher"}.IsTeacher())
	assert.False(t, User{Role: "Teacher"}.IsStudent())
	assert.True(t, User{Role: "student"}.IsStudent())
	assert.True(t, User{}.IsGuest())
	assert.False(t, User{ID: "1"}.IsGuest())
}
