package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	Service interface {
		// Login looks the user up by credentials.
		// Failures caused by the credentials are reported as ErrInvalidCredentials,
		// wrapped with the backend's message when it sent one.
		Login(ctx context.Context, email, password string) (User, error)
		Register(ctx context.Context, nu NewUser) (User, error)
		// UpdateProfile saves the name and email of usr and returns the updated User.
		UpdateProfile(ctx context.Context, usr User, pu ProfileUpdate) (User, error)
	}

	service struct {
		backend core.Backend
		log     core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(backend core.Backend, logger core.Logger) Service {
	return &service{backend: backend, log: logger}
}

func (svc *service) Login(ctx context.Context, email, password string) (User, error) {
	params := url.Values{
		"email":    {core.CleanString(email, true /* lower */)},
		"password": {password},
	}
	data, err := svc.backend.Get(ctx, core.ResourceUsers, params)
	if err != nil {
		if core.IsBackendStatus(err, http.StatusUnauthorized) || core.IsBackendStatus(err, http.StatusNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "fetching user")
	}

	if usr, ok := loggedInUser(data); ok {
		return usr, nil
	}
	if msg := failureMessage(data); msg != "" {
		return User{}, errors.Wrap(ErrInvalidCredentials, msg)
	}
	return User{}, ErrInvalidCredentials
}

// loggedInUser understands both login response formats:
// a list of matching users, and {status: 200, user: {...}}.
func loggedInUser(data interface{}) (User, bool) {
	obj := envelope(data)
	if obj != nil {
		if raw, ok := obj["user"]; ok {
			if status, ok := obj["status"]; ok && !isOKStatus(status) {
				return User{}, false
			}
			if rec, ok := normalize.NormalizeUser(raw); ok {
				return FromRecord(rec), true
			}
			return User{}, false
		}
		if _, failed := failureField(obj); failed {
			return User{}, false
		}
	}
	for _, raw := range normalize.ExtractArray(data) {
		if rec, ok := normalize.NormalizeUser(raw); ok {
			return FromRecord(rec), true
		}
	}
	return User{}, false
}

func (svc *service) Register(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}

	form := url.Values{
		"name":     {nu.Name},
		"email":    {nu.Email},
		"password": {nu.Password},
		"role":     {nu.Role},
	}
	data, err := svc.backend.Post(ctx, core.ResourceUsers, form)
	if err != nil {
		if core.IsBackendStatus(err, http.StatusConflict) {
			return User{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: "a user with this email already exists"})
		}
		return User{}, errors.Wrap(err, "creating user")
	}

	for _, raw := range normalize.ExtractArray(data) {
		if rec, ok := normalize.NormalizeUser(raw); ok {
			usr := FromRecord(rec)
			if usr.Email == "" {
				usr.Email = nu.Email
			}
			if usr.Name == "" {
				usr.Name = nu.Name
			}
			if usr.Role == "" {
				usr.Role = nu.Role
			}
			return usr, nil
		}
	}

	// some deployments answer with a bare status; log in to get the created user
	if svc.log != nil {
		svc.log.Debug("register: no user in response, logging in", nu.Email)
	}
	return svc.Login(ctx, nu.Email, nu.Password)
}

func (svc *service) UpdateProfile(ctx context.Context, usr User, pu ProfileUpdate) (User, error) {
	if usr.IsGuest() {
		return User{}, errors.New("updating profile: no user")
	}
	if err := pu.Validate(); err != nil {
		return User{}, err
	}

	form := url.Values{
		"id":    {usr.ID},
		"name":  {pu.Name},
		"email": {pu.Email},
	}
	data, err := svc.backend.Post(ctx, core.ResourceProfile, form)
	if err != nil {
		if core.IsBackendStatus(err, http.StatusConflict) {
			return User{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: "a user with this email already exists"})
		}
		return User{}, errors.Wrap(err, "updating profile")
	}

	updated := usr
	updated.Name, updated.Email = pu.Name, pu.Email
	if rec, ok := loggedInUser(data); ok {
		// the session user keeps its identity whatever the backend answers
		if rec.Name != "" {
			updated.Name = rec.Name
		}
		if rec.Email != "" {
			updated.Email = rec.Email
		}
		if rec.Role != "" {
			updated.Role = rec.Role
		}
		return updated, nil
	}
	if msg, ok := rejection(data); ok {
		return User{}, core.NewValidationError(errors.New(msg))
	}
	return updated, nil
}

// rejection reports a response that carries a failed status or an error field.
func rejection(data interface{}) (string, bool) {
	obj := envelope(data)
	if obj == nil {
		return "", false
	}
	if status, ok := obj["status"]; ok && !isOKStatus(status) {
		if msg, ok := failureField(obj); ok {
			return msg, true
		}
		return "the profile update was rejected", true
	}
	if msg, ok := obj["error"].(string); ok && strings.TrimSpace(msg) != "" {
		return strings.TrimSpace(msg), true
	}
	return "", false
}

// envelope returns the object behind data, removing {data: ...} envelopes and resolving pairs.
func envelope(data interface{}) map[string]interface{} {
	obj := normalize.Classify(data).Map()
	for i := 0; obj != nil && i < 10; i++ {
		inner, ok := obj["data"]
		if !ok {
			break
		}
		innerObj := normalize.Classify(inner).Map()
		if innerObj == nil {
			break
		}
		obj = innerObj
	}
	return obj
}

func failureField(obj map[string]interface{}) (string, bool) {
	for _, key := range []string{"error", "message"} {
		if msg, ok := obj[key].(string); ok && strings.TrimSpace(msg) != "" {
			return strings.TrimSpace(msg), true
		}
	}
	return "", false
}

func failureMessage(data interface{}) string {
	if obj := envelope(data); obj != nil {
		msg, _ := failureField(obj)
		return msg
	}
	return ""
}

func isOKStatus(v interface{}) bool {
	switch s := strings.TrimSpace(normalizeStatus(v)); s {
	case "200", "201", "ok", "success", "created", "updated":
		return true
	default:
		return false
	}
}

func normalizeStatus(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.ToLower(val)
	case bool:
		if val {
			return "ok"
		}
		return ""
	}
	b, _ := json.Marshal(v)
	return string(b)
}
