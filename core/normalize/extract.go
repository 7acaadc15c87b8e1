package normalize

import "reflect"

const maxDepth = 10

// ExtractArray finds the list of entities inside a payload of unknown shape.
//
// Strings are decoded first. Arrays are returned as is, pair arrays are resolved into objects.
// Objects are searched through the wrapper keys, then through every value in key order,
// then for values that look like entities. A top-level object that looks like an entity itself
// is wrapped into a one-element list, as is a pair array describing a single entity at any depth.
// The result is never nil.
func ExtractArray(v interface{}) []interface{} {
	e := extractor{visited: make(map[uintptr]struct{})}
	if arr := e.extract(v, 0, true); len(arr) > 0 {
		return arr
	}
	return []interface{}{}
}

type extractor struct {
	visited map[uintptr]struct{}
}

func (e *extractor) extract(v interface{}, depth int, top bool) []interface{} {
	if v == nil || depth > maxDepth {
		return nil
	}
	if s, ok := v.(string); ok {
		parsed, ok := tryParse(s)
		if !ok {
			return nil
		}
		return e.extract(parsed, depth+1, top)
	}

	p := Classify(v)
	switch p.Kind {
	case Array:
		return p.Array
	case Pairs:
		obj := p.Map()
		if arr := e.search(obj, depth); len(arr) > 0 {
			return arr
		}
		if entries := entityPairs(p.Pairs); len(entries) > 0 {
			return entries
		}
		if entityKeys.Has(obj) {
			return []interface{}{obj}
		}
		return p.Array
	case Object:
		if e.seen(p.Object) {
			return nil
		}
		if arr := e.search(p.Object, depth); len(arr) > 0 {
			return arr
		}
		if entities := entityValues(p.Object); len(entities) > 0 {
			return entities
		}
		if top && entityKeys.Has(p.Object) {
			return []interface{}{p.Object}
		}
	}
	return nil
}

// search looks through the wrapper keys first, then through every value.
func (e *extractor) search(obj map[string]interface{}, depth int) []interface{} {
	for _, key := range wrapperKeys {
		if val, ok := obj[key]; ok && val != nil {
			if arr := e.extract(val, depth+1, false); len(arr) > 0 {
				return arr
			}
		}
	}
	for _, key := range sortedKeys(obj) {
		if arr := e.extract(obj[key], depth+1, false); len(arr) > 0 {
			return arr
		}
	}
	return nil
}

func (e *extractor) seen(obj map[string]interface{}) bool {
	ptr := reflect.ValueOf(obj).Pointer()
	if _, ok := e.visited[ptr]; ok {
		return true
	}
	e.visited[ptr] = struct{}{}
	return false
}

func entityValues(obj map[string]interface{}) []interface{} {
	var entities []interface{}
	for _, key := range sortedKeys(obj) {
		if entity, ok := asEntity(obj[key]); ok {
			entities = append(entities, entity)
		}
	}
	return entities
}

func entityPairs(pairs []Pair) []interface{} {
	var entries []interface{}
	for _, pair := range pairs {
		if entity, ok := asEntity(pair.Value); ok {
			entries = append(entries, []interface{}{pair.Key, entity})
		}
	}
	return entries
}

// asEntity returns v, decoding it if it is a JSON string, when it is an object carrying an entity key.
func asEntity(v interface{}) (map[string]interface{}, bool) {
	if s, ok := v.(string); ok {
		parsed, ok := tryParse(s)
		if !ok {
			return nil, false
		}
		v = parsed
	}
	obj, ok := v.(map[string]interface{})
	if !ok || !entityKeys.Has(obj) {
		return nil, false
	}
	return obj, true
}

// candidates lists the raw entities of a detail response: the payload with its data envelopes
// removed, the elements of an array (nested arrays flattened once), then whatever ExtractArray finds.
func candidates(payload interface{}) []interface{} {
	v := payload
	for depth := 0; depth < maxDepth; depth++ {
		if s, ok := v.(string); ok {
			parsed, ok := tryParse(s)
			if !ok {
				return nil
			}
			v = parsed
			continue
		}
		obj := Classify(v).Map()
		inner, ok := obj["data"]
		if !ok || inner == nil {
			break
		}
		v = inner
	}

	var out []interface{}
	p := Classify(v)
	switch p.Kind {
	case Null:
	case Pairs:
		obj := p.Map()
		if entityKeys.Has(obj) {
			out = append(out, obj)
			break
		}
		for _, pair := range p.Pairs {
			out = append(out, []interface{}{pair.Key, pair.Value})
		}
	case Array:
		for _, elem := range p.Array {
			if arr, ok := elem.([]interface{}); ok {
				if _, _, isPair := asPair(arr); !isPair {
					out = append(out, arr...)
					continue
				}
			}
			out = append(out, elem)
		}
	default:
		out = append(out, v)
	}
	return append(out, ExtractArray(payload)...)
}
