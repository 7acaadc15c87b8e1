package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/user"
)

type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// report is what one log call sends to Rollbar.
type report struct {
	msg    string
	err    error
	extras map[string]interface{}
	person *user.User
}

// newReport sorts the args of a log call.
// expected fmt: msg | error, map[string]interface{}, user.User
// Maps are merged into the custom data; the first user is the person; anything else is listed under "args".
// Rollbar drops the message of an error item, so it is kept in the custom data then.
func newReport(msg string, args []interface{}) report {
	r := report{msg: msg}
	var rest []string
	for _, arg := range args {
		switch a := arg.(type) {
		case nil:
		case user.User:
			if r.person == nil { // only set one User
				usr := a
				r.person = &usr
			}
		case error:
			if r.err == nil {
				r.err = a
			} else {
				rest = append(rest, sprintArg(a))
			}
		case map[string]interface{}:
			for k, v := range a {
				r.setExtra(k, v)
			}
		default:
			rest = append(rest, sprintArg(a))
		}
	}
	if len(rest) > 0 {
		r.setExtra("args", rest)
	}
	if r.err != nil && msg != "" {
		r.setExtra("message", msg)
	}
	return r
}

func (r *report) setExtra(key string, val interface{}) {
	if r.extras == nil {
		r.extras = make(map[string]interface{})
	}
	r.extras[key] = val
}

// rollbarArgs returns the args for rollbar.Log.
func (r report) rollbarArgs() []interface{} {
	args := make([]interface{}, 0, 2)
	if r.err != nil {
		args = append(args, r.err)
	} else {
		args = append(args, r.msg)
	}
	if r.extras != nil {
		args = append(args, r.extras)
	}
	return args
}

func (l RollbarLogger) send(level, msg string, args []interface{}) {
	r := newReport(msg, args)
	if r.person != nil {
		rollbar.SetPerson(r.person.ID, r.person.Name, r.person.Email)
	} else {
		rollbar.ClearPerson()
	}
	rollbar.Log(level, r.rollbarArgs()...)
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.send(rollbar.DEBUG, msg, args)
	printTo(l.std, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.send(rollbar.INFO, msg, args)
	printTo(l.std, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.send(rollbar.WARN, msg, args)
	printTo(l.std, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.send(rollbar.ERR, msg, args)
	printTo(l.std, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.send(rollbar.CRIT, msg, args)
	rollbar.Wait()
	printTo(l.std, msg, args)
	l.std.Fatal(msg)
}
