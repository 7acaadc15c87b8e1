package logsvc

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/user"
)

func TestStdLogger(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		log   func(l *StdLogger)
		want  []string
	}{
		{
			name: "info",
			log:  func(l *StdLogger) { l.Info("server started") },
			want: []string{"INFO server started"},
		},
		{
			name: "debug dropped",
			log:  func(l *StdLogger) { l.Debug("noise") },
			want: nil,
		},
		{
			name:  "debug kept",
			debug: true,
			log:   func(l *StdLogger) { l.Debug("noise") },
			want:  []string{"DEBUG noise"},
		},
		{
			name: "args",
			log: func(l *StdLogger) {
				l.Error("saving result", errors.New("boom"), map[string]interface{}{"test_id": "4", "b": 1})
			},
			want: []string{"ERROR saving result", "boom", "b=1 test_id=4"},
		},
		{
			name: "user",
			log: func(l *StdLogger) {
				l.Warn("login", user.User{ID: "7", Email: "a@b.c"})
			},
			want: []string{"WARN login", "user: 7 <a@b.c>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLogger(log.New(&buf, "", 0), tt.debug))

			var lines []string
			if out := strings.TrimSpace(buf.String()); out != "" {
				lines = strings.Split(out, "\n")
			}
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestNewLogger(t *testing.T) {
	std := NewNopLogger().std

	_, isStd := NewLogger(std, &core.Config{}).(*StdLogger)
	assert.True(t, isStd)

	_, isRollbar := NewLogger(std, &core.Config{RollbarToken: "token", Debug: true}).(*RollbarLogger)
	assert.True(t, isRollbar)
}
