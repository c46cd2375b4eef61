package restapi

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
)

// errShape reports a payload that is neither a list nor an object holding one under a known key.
var errShape = errors.New("unexpected payload shape")

// extractList finds the record list in payload: the first of keys holding a list,
// or payload itself when it is a bare list.
func extractList(payload interface{}, keys ...string) ([]interface{}, error) {
	switch p := payload.(type) {
	case []interface{}:
		return p, nil
	case map[string]interface{}:
		for _, k := range keys {
			if list, ok := p[k].([]interface{}); ok {
				return list, nil
			}
		}
		return nil, errors.Wrapf(errShape, "none of %v in object", keys)
	}
	return nil, errors.Wrapf(errShape, "got %T", payload)
}

// record is one backend object, read through ordered candidate keys.
// Keys may be dotted to reach nested objects ("type_match.nom").
type record map[string]interface{}

func asRecord(v interface{}) (record, bool) {
	m, ok := v.(map[string]interface{})
	return record(m), ok
}

func (r record) lookup(key string) (interface{}, bool) {
	var cur interface{} = map[string]interface{}(r)
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// str returns the first candidate holding a non-blank scalar.
// Objects are read through their "nom", "name" or "full_name" field.
func (r record) str(keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := r.lookup(k)
		if !ok {
			continue
		}
		if s, ok := scalarString(v); ok {
			return s, true
		}
	}
	return "", false
}

func (r record) strOr(def string, keys ...string) string {
	if s, ok := r.str(keys...); ok {
		return s
	}
	return def
}

func scalarString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return s, true
		}
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]interface{}:
		return record(t).str("nom", "name", "full_name")
	}
	return "", false
}

// date returns the first candidate holding a date. A present but unparseable value is an error.
func (r record) date(keys ...string) (core.Date, bool, error) {
	s, ok := r.str(keys...)
	if !ok {
		return core.Date{}, false, nil
	}
	d, err := core.ParseDatePrefix(s)
	if err != nil {
		return core.Date{}, false, err
	}
	return d, true, nil
}

func (r record) dateOr(def core.Date, keys ...string) (core.Date, error) {
	d, ok, err := r.date(keys...)
	if err != nil {
		return core.Date{}, err
	}
	if !ok {
		return def, nil
	}
	return d, nil
}

func (r record) number(keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := r.lookup(k)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return t, true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func (r record) intOr(def int, keys ...string) int {
	if f, ok := r.number(keys...); ok {
		return int(f)
	}
	return def
}

func (r record) boolean(keys ...string) bool {
	for _, k := range keys {
		if v, ok := r.lookup(k); ok {
			switch t := v.(type) {
			case bool:
				return t
			case string:
				b, _ := strconv.ParseBool(t)
				return b
			case float64:
				return t != 0
			}
		}
	}
	return false
}

// splitFullName splits on the first space: first name, then the rest as last name.
func splitFullName(full string) (first, last string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = strings.TrimSpace(parts[1])
	}
	return first, last
}
