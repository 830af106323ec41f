// Package validate checks imported data before it is written to the store.
// The shape walk reports every structural problem as a Violation; the rule
// pass then checks value ranges with struct tags.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Kind is the JSON kind a field is expected to have.
type Kind string

const (
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindValue   Kind = "value"
)

// Violation is one problem found in imported data.
type Violation struct {
	Path     string
	Expected Kind
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Violations implements error so a failed validation can be returned as one.
type Violations []Violation

func (vs Violations) Error() string {
	lines := make([]string, len(vs))
	for i, v := range vs {
		lines[i] = v.String()
	}
	return fmt.Sprintf("%d validation error(s):\n%s", len(vs), strings.Join(lines, "\n"))
}

// Err returns vs as an error, or nil when there are none.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return vs
}

// field describes one expected member of an object.
type field struct {
	name     string
	kind     Kind
	optional bool
	each     func(w *walker, path string, v interface{})
}

type walker struct {
	out Violations
}

func (w *walker) add(path string, kind Kind, format string, args ...interface{}) {
	w.out = append(w.out, Violation{Path: path, Expected: kind, Message: fmt.Sprintf(format, args...)})
}

func kindOf(v interface{}) Kind {
	switch v.(type) {
	case map[string]interface{}:
		return KindObject
	case []interface{}:
		return KindArray
	case string:
		return KindString
	case float64, json.Number:
		return KindNumber
	case bool:
		return KindBoolean
	default:
		return ""
	}
}

// object checks v against fields. Nested values are handed to each field's
// each func: for arrays once per element, otherwise once for the value.
func (w *walker) object(path string, v interface{}, fields []field) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		w.add(path, KindObject, "expected %s, got %s", KindObject, describe(v))
		return
	}
	for _, f := range fields {
		p := join(path, f.name)
		val, present := obj[f.name]
		if !present || val == nil {
			if !f.optional {
				w.add(p, f.kind, "missing required field")
			}
			continue
		}
		if got := kindOf(val); got != f.kind && f.kind != KindValue {
			w.add(p, f.kind, "expected %s, got %s", f.kind, describe(val))
			continue
		}
		if f.each == nil {
			continue
		}
		if arr, ok := val.([]interface{}); ok {
			for i, el := range arr {
				f.each(w, fmt.Sprintf("%s[%d]", p, i), el)
			}
			continue
		}
		f.each(w, p, val)
	}
}

// mapOf checks that v is an object and runs each on every member.
func (w *walker) mapOf(path string, v interface{}, each func(w *walker, path string, key string, v interface{})) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		w.add(path, KindObject, "expected %s, got %s", KindObject, describe(v))
		return
	}
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		each(w, join(path, key), key, obj[key])
	}
}

func describe(v interface{}) string {
	if v == nil {
		return "null"
	}
	if k := kindOf(v); k != "" {
		return string(k)
	}
	return fmt.Sprintf("%T", v)
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// decode parses raw JSON into a generic document.
func decode(raw []byte) (map[string]interface{}, Violations) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, Violations{{Path: "$", Expected: KindObject, Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, Violations{{Path: "$", Expected: KindObject, Message: fmt.Sprintf("expected %s, got %s", KindObject, describe(doc))}}
	}
	return obj, nil
}
