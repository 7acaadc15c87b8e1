package logsvc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhalalov2-code/online-course/core/user"
)

func TestNewReport(t *testing.T) {
	boom := errors.New("boom")
	usr := user.User{ID: "7", Name: "Ann", Email: "ann@test.cd"}

	tests := []struct {
		name       string
		msg        string
		args       []interface{}
		wantArgs   []interface{}
		wantPerson *user.User
	}{
		{
			name:     "message only",
			msg:      "server started",
			wantArgs: []interface{}{"server started"},
		},
		{
			name: "error with extras",
			msg:  "the course backend is unavailable",
			args: []interface{}{boom, usr, map[string]interface{}{"resource": "tests", "status": 502}},
			wantArgs: []interface{}{boom, map[string]interface{}{
				"resource": "tests",
				"status":   502,
				"message":  "the course backend is unavailable",
			}},
			wantPerson: &usr,
		},
		{
			name: "maps merged",
			msg:  "merging completed tests",
			args: []interface{}{map[string]interface{}{"user_id": "7"}, map[string]interface{}{"test_id": "4"}},
			wantArgs: []interface{}{"merging completed tests", map[string]interface{}{
				"user_id": "7",
				"test_id": "4",
			}},
		},
		{
			name: "other args",
			msg:  "register: no user in response, logging in",
			args: []interface{}{"ann@test.cd", nil, 3},
			wantArgs: []interface{}{"register: no user in response, logging in", map[string]interface{}{
				"args": []string{"ann@test.cd", "3"},
			}},
		},
		{
			name: "second error listed",
			msg:  "saving",
			args: []interface{}{boom, errors.New("again"), usr, user.User{ID: "8"}},
			wantArgs: []interface{}{boom, map[string]interface{}{
				"args":    []string{"again"},
				"message": "saving",
			}},
			wantPerson: &usr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReport(tt.msg, tt.args)
			assert.Equal(t, tt.wantArgs, r.rollbarArgs())
			if tt.wantPerson == nil {
				assert.Nil(t, r.person)
			} else {
				require.NotNil(t, r.person)
				assert.Equal(t, *tt.wantPerson, *r.person)
			}
		})
	}
}
