package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

var (
	truthyWords = []string{"1", "true", "yes", "ok", "passed", "success"}
	falsyWords  = []string{"0", "false", "no", "fail", "failed"}

	timeLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.999999",
		"2006-01-02",
	}
)

// scalarString formats strings and numbers; anything else is rejected.
func scalarString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return scalarString(float64(val))
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	default:
		return "", false
	}
}

// displayString renders any decoded value as text; containers are JSON-encoded.
func displayString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(val)
	}
	if s, ok := scalarString(v); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// identity resolves an ID-like value: a non-blank string, a number, or an object carrying one of the id keys.
func identity(v interface{}, keys Aliases) (string, bool) {
	if obj, ok := v.(map[string]interface{}); ok {
		inner, found := keys.Lookup(obj)
		if !found {
			return "", false
		}
		v = inner
	}
	s, ok := scalarString(v)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// toFloat accepts numbers and numeric-looking strings.
func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case json.Number:
		n, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case int32:
		f = float64(val)
	case uint:
		f = float64(val)
	case uint64:
		f = float64(val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case json.Number, float64, float32, int, int64, int32, uint, uint64:
		return true
	default:
		return false
	}
}

// toIndex accepts whole, non-negative numbers (or numeric strings).
func toIndex(v interface{}) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// toCount reads counters that may come back as numbers, numeric strings or the counted list itself.
func toCount(v interface{}) int {
	if arr, ok := v.([]interface{}); ok {
		return len(arr)
	}
	if n, ok := toIndex(v); ok {
		return n
	}
	return 0
}

// ParseBool coerces a loosely-typed flag.
// Native booleans, numbers (1/0, otherwise non-zero) and a fixed vocabulary of words are understood;
// any other value falls back to truthiness.
func ParseBool(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		lowered := strings.ToLower(strings.TrimSpace(val))
		for _, w := range truthyWords {
			if lowered == w {
				return true
			}
		}
		for _, w := range falsyWords {
			if lowered == w {
				return false
			}
		}
		return val != ""
	}
	if isNumber(v) {
		f, ok := toFloat(v)
		return ok && f != 0
	}
	return true
}

// maxUnixMilli is 9999-12-31T23:59:59.999Z.
const maxUnixMilli = 253402300799999

// parseTime understands RFC 3339, common SQL layouts and unix timestamps (seconds or milliseconds).
func parseTime(v interface{}) (null.Time, bool) {
	if isNumber(v) {
		f, ok := toFloat(v)
		if !ok || f <= 0 || f > maxUnixMilli {
			return null.Time{}, false
		}
		if f > 1e12 {
			return null.TimeFrom(time.UnixMilli(int64(f)).UTC()), true
		}
		return null.TimeFrom(time.Unix(int64(f), 0).UTC()), true
	}
	s, ok := v.(string)
	if !ok {
		return null.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return null.TimeFrom(t.UTC()), true
		}
	}
	return null.Time{}, false
}
