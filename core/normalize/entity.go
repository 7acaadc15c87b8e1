package normalize

import (
	"strings"

	"github.com/volatiletech/null/v8"
)

// entity is a raw entity resolved to the object describing it.
type entity struct {
	obj map[string]interface{}
	// key is the pair key the object was found under, if any.
	key string
	// scalar holds a bare top-level id-like value; obj is nil then.
	scalar interface{}
}

func (e entity) isScalar() bool {
	return e.obj == nil
}

// resolveEntity accepts an object, a [key, object] pair, a pair array describing an entity, an array holding an entity,
// a JSON string of any of those or, at the top level only, a bare string or number.
func resolveEntity(v interface{}) (entity, bool) {
	return resolveAt(v, 0)
}

func resolveAt(v interface{}, depth int) (entity, bool) {
	if depth > maxDepth {
		return entity{}, false
	}

	switch val := v.(type) {
	case nil:
		return entity{}, false
	case map[string]interface{}:
		return entity{obj: val}, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return entity{}, false
		}
		if parsed, ok := tryParse(s); ok {
			return resolveAt(parsed, depth)
		}
		if depth > 0 {
			return entity{}, false
		}
		return entity{scalar: s}, true
	case []interface{}:
		if key, obj, ok := asPair(val); ok {
			return entity{obj: obj, key: key}, true
		}
		if p := Classify(val); p.Kind == Pairs {
			if obj := p.Map(); entityKeys.Has(obj) {
				return entity{obj: obj}, true
			}
		}
		for _, elem := range val {
			if e, ok := resolveAt(elem, depth+1); ok {
				return e, true
			}
		}
		return entity{}, false
	default:
		if depth > 0 {
			return entity{}, false
		}
		if _, ok := scalarString(v); !ok {
			return entity{}, false
		}
		return entity{scalar: v}, true
	}
}

// listEntities returns the raw entities of a list payload. Bare scalars are not entities of a list.
// When nothing is left, a payload that describes one entity, possibly under data envelopes, is taken as a one-element list.
func listEntities(payload interface{}) []interface{} {
	var out []interface{}
	for _, raw := range ExtractArray(payload) {
		if e, ok := resolveEntity(raw); ok && !e.isScalar() {
			out = append(out, raw)
		}
	}
	if len(out) > 0 {
		return out
	}
	if obj, ok := singleEntity(payload); ok {
		return []interface{}{obj}
	}
	return nil
}

func singleEntity(payload interface{}) (map[string]interface{}, bool) {
	v := payload
	for depth := 0; depth < maxDepth; depth++ {
		if s, ok := v.(string); ok {
			parsed, ok := tryParse(s)
			if !ok {
				return nil, false
			}
			v = parsed
			continue
		}
		obj := Classify(v).Map()
		if obj == nil {
			return nil, false
		}
		if inner, ok := obj["data"]; ok && inner != nil {
			v = inner
			continue
		}
		if entityKeys.Has(obj) {
			return obj, true
		}
		return nil, false
	}
	return nil, false
}

// identify resolves the identity of e from the ID aliases, falling back to the pair key.
func (e entity) identify(keys Aliases) (string, bool) {
	if e.isScalar() {
		return identity(e.scalar, nil)
	}
	if id, ok := identityField(e.obj, keys); ok {
		return id, true
	}
	if e.key != "" {
		return identity(e.key, nil)
	}
	return "", false
}

// identityField returns the first alias holding a usable id. Blank strings are skipped.
func identityField(obj map[string]interface{}, keys Aliases) (string, bool) {
	for _, key := range keys {
		if id, ok := identity(obj[key], Aliases{"id"}); ok {
			return id, true
		}
	}
	return "", false
}

// stringField returns the first alias holding a non-blank scalar, trimmed.
func stringField(obj map[string]interface{}, keys Aliases) (string, bool) {
	for _, key := range keys {
		if s, ok := scalarString(obj[key]); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// timeField returns the first alias holding a parseable timestamp.
func timeField(obj map[string]interface{}, keys Aliases) null.Time {
	for _, key := range keys {
		if parsed, ok := parseTime(obj[key]); ok {
			return parsed
		}
	}
	return null.Time{}
}
