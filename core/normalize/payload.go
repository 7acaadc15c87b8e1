package normalize

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the shape of a decoded backend value.
type Kind uint8

const (
	Null Kind = iota
	Scalar
	Array
	Pairs // array of [key, value] entries emulating an object
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case Array:
		return "array"
	case Pairs:
		return "pairs"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Pair is one entry of an array emulating an object.
type Pair struct {
	Key   string
	Value interface{}
}

// Payload is a decoded JSON value resolved into one of the shapes the backend emits.
// Exactly one of Scalar, Array, Pairs or Object is meaningful, according to Kind.
type Payload struct {
	Kind   Kind
	Scalar interface{}
	Array  []interface{}
	Pairs  []Pair
	Object map[string]interface{}
}

var errTrailingData = errors.New("unexpected data after top-level value")

// Decode decodes a JSON document, keeping numbers as json.Number.
func Decode(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

// tryParse attempts to decode s as JSON. Blank strings never parse.
func tryParse(s string) (interface{}, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	v, err := Decode([]byte(s))
	if err != nil {
		return nil, false
	}
	return v, true
}

// Classify resolves a decoded value into its Payload variant.
// Arrays whose elements are all [string, value] entries are classified as Pairs.
func Classify(v interface{}) Payload {
	switch val := v.(type) {
	case nil:
		return Payload{Kind: Null}
	case map[string]interface{}:
		return Payload{Kind: Object, Object: val}
	case []interface{}:
		if pairs, ok := asPairs(val); ok {
			return Payload{Kind: Pairs, Pairs: pairs, Array: val}
		}
		return Payload{Kind: Array, Array: val}
	case []string:
		arr := make([]interface{}, 0, len(val))
		for _, s := range val {
			arr = append(arr, s)
		}
		return Payload{Kind: Array, Array: arr}
	case []map[string]interface{}:
		arr := make([]interface{}, 0, len(val))
		for _, m := range val {
			arr = append(arr, m)
		}
		return Payload{Kind: Array, Array: arr}
	default:
		return Payload{Kind: Scalar, Scalar: val}
	}
}

// Map returns the object form of an Object or Pairs payload. Later pairs win on duplicate keys.
func (p Payload) Map() map[string]interface{} {
	switch p.Kind {
	case Object:
		return p.Object
	case Pairs:
		m := make(map[string]interface{}, len(p.Pairs))
		for _, pair := range p.Pairs {
			m[pair.Key] = pair.Value
		}
		return m
	default:
		return nil
	}
}

func asPairs(arr []interface{}) ([]Pair, bool) {
	if len(arr) == 0 {
		return nil, false
	}
	pairs := make([]Pair, 0, len(arr))
	for _, elem := range arr {
		entry, ok := elem.([]interface{})
		if !ok || len(entry) != 2 {
			return nil, false
		}
		key, ok := entry[0].(string)
		if !ok {
			return nil, false
		}
		pairs = append(pairs, Pair{Key: key, Value: entry[1]})
	}
	return pairs, true
}

// asPair reports whether arr is a single [key, object] entry, the object possibly JSON-encoded.
func asPair(arr []interface{}) (string, map[string]interface{}, bool) {
	if len(arr) != 2 {
		return "", nil, false
	}
	key, ok := scalarString(arr[0])
	if !ok {
		return "", nil, false
	}
	value := arr[1]
	if s, ok := value.(string); ok {
		if parsed, ok := tryParse(s); ok {
			value = parsed
		}
	}
	obj, ok := value.(map[string]interface{})
	if !ok {
		return "", nil, false
	}
	return key, obj, true
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
