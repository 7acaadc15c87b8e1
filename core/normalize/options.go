package normalize

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const parseRounds = 3

var (
	quotePairs = [][2]rune{
		{'"', '"'},
		{'\'', '\''},
		{'“', '”'},
		{'‘', '’'},
		{'«', '»'},
	}

	unicodeEscapes = regexp.MustCompile(`(\\u[0-9a-fA-F]{4})+`)

	escapeReplacer = strings.NewReplacer(`\"`, `"`, `\n`, "\n", `\t`, "\t")
)

// EnsureArrayOptions collapses a quiz option field into a clean list of display strings.
//
// The field may be a plain array, a JSON-encoded array (up to three times), a single value or a
// mix of quoted and escaped scalars. Nested arrays are flattened one level, one layer of quotes is
// stripped, escape sequences are decoded and empty entries are dropped. The result is never nil.
func EnsureArrayOptions(raw interface{}) []string {
	if list, ok := raw.([]string); ok {
		arr := make([]interface{}, 0, len(list))
		for _, s := range list {
			arr = append(arr, s)
		}
		raw = arr
	}

	val := unwrapJSON(raw)
	arr, ok := val.([]interface{})
	if !ok {
		arr = []interface{}{val}
	}

	out := make([]string, 0, len(arr))
	for _, elem := range arr {
		for _, s := range normalizeOption(elem) {
			s = strings.TrimSpace(stripOuterQuotes(strings.TrimSpace(s)))
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// unwrapJSON decodes strings holding JSON for up to three rounds.
func unwrapJSON(v interface{}) interface{} {
	for i := 0; i < parseRounds; i++ {
		s, ok := v.(string)
		if !ok {
			break
		}
		parsed, ok := tryParse(s)
		if !ok {
			break
		}
		v = parsed
	}
	return v
}

func normalizeOption(v interface{}) []string {
	v = unwrapJSON(v)

	if arr, ok := v.([]interface{}); ok {
		var out []string
		for _, elem := range arr {
			out = append(out, normalizeOption(elem)...)
		}
		return out
	}

	s := decodeEscapes(stripOuterQuotes(displayString(v)))
	if parsed, ok := tryParse(s); ok {
		if inner, ok := parsed.(string); ok {
			return []string{inner}
		}
	}
	return []string{s}
}

// stripOuterQuotes removes one layer of matching straight or typographic quotes.
func stripOuterQuotes(s string) string {
	t := strings.TrimSpace(s)
	if utf8.RuneCountInString(t) < 2 {
		return s
	}
	first, _ := utf8.DecodeRuneInString(t)
	last, _ := utf8.DecodeLastRuneInString(t)
	for _, q := range quotePairs {
		if first == q[0] && last == q[1] {
			return t[utf8.RuneLen(first) : len(t)-utf8.RuneLen(last)]
		}
	}
	return s
}

// decodeEscapes resolves backslash and \uXXXX escapes by decoding s as a JSON string literal,
// falling back to replacing the common sequences by hand.
func decodeEscapes(s string) string {
	literal := s
	if !(len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)) {
		literal = `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	var decoded string
	if err := json.Unmarshal([]byte(literal), &decoded); err == nil {
		return decoded
	}

	v := escapeReplacer.Replace(s)
	v = unicodeEscapes.ReplaceAllStringFunc(v, decodeUnicodeRun)
	return strings.ReplaceAll(v, `\\`, `\`)
}

// decodeUnicodeRun decodes a run of \uXXXX escapes, joining surrogate pairs.
func decodeUnicodeRun(run string) string {
	units := make([]uint16, 0, len(run)/6)
	for i := 0; i+6 <= len(run); i += 6 {
		n, err := strconv.ParseUint(run[i+2:i+6], 16, 16)
		if err != nil {
			return run
		}
		units = append(units, uint16(n))
	}
	return string(utf16.Decode(units))
}
