package logsvc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Zhalalov2-code/online-course/core/user"
)

func sprintArg(arg interface{}) string {
	switch a := arg.(type) {
	case user.User:
		return fmt.Sprintf("user: %s <%s>", a.ID, a.Email)
	case map[string]interface{}:
		keys := make([]string, 0, len(a))
		for k := range a {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, a[k]))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%+v", arg)
	}
}
