package cascade

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Azhovan/cascade/internal/normalize"
)

// Kind classifies the data held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindMap
	KindList
	KindOther
)

var kindNames = [...]string{"null", "string", "bool", "int", "float", "map", "list", "other"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a resolved setting: a scalar, a mapping, or a sequence.
// Values from the command line, environment, and secret store are always strings;
// the typed accessors convert them where the conversion is unambiguous.
type Value struct {
	raw any
}

// ValueOf wraps v.
func ValueOf(v any) Value {
	return Value{raw: v}
}

// Raw returns the underlying Go value.
func (v Value) Raw() any {
	return v.raw
}

// Kind reports what the value holds.
func (v Value) Kind() Kind {
	switch v.raw.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case map[string]any:
		return KindMap
	case []any:
		return KindList
	default:
		return KindOther
	}
}

// IsNull reports whether the value is absent or an explicit null.
func (v Value) IsNull() bool {
	return v.raw == nil
}

// String formats the value for display. Null formats as the empty string;
// mappings and sequences format as compact JSON.
func (v Value) String() string {
	switch raw := v.raw.(type) {
	case nil:
		return ""
	case string:
		return raw
	case map[string]any, []any:
		data, err := json.Marshal(raw)
		if err != nil {
			return fmt.Sprint(raw)
		}
		return string(data)
	default:
		return fmt.Sprint(raw)
	}
}

// Str returns the value if it is a string.
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Int returns the value as an int64. Integral floats and numeric strings convert.
func (v Value) Int() (int64, bool) {
	switch raw := v.raw.(type) {
	case int:
		return int64(raw), true
	case int8:
		return int64(raw), true
	case int16:
		return int64(raw), true
	case int32:
		return int64(raw), true
	case int64:
		return raw, true
	case uint:
		return int64(raw), uint64(raw) <= math.MaxInt64
	case uint8:
		return int64(raw), true
	case uint16:
		return int64(raw), true
	case uint32:
		return int64(raw), true
	case uint64:
		return int64(raw), raw <= math.MaxInt64
	case float32:
		return floatToInt(float64(raw))
	case float64:
		return floatToInt(raw)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// Float returns the value as a float64. Integers and numeric strings convert.
func (v Value) Float() (float64, bool) {
	switch raw := v.raw.(type) {
	case float64:
		return raw, true
	case float32:
		return float64(raw), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		return f, err == nil
	default:
		n, ok := v.Int()
		return float64(n), ok
	}
}

// Bool returns the value as a bool. Strings accepted by strconv.ParseBool convert.
func (v Value) Bool() (bool, bool) {
	switch raw := v.raw.(type) {
	case bool:
		return raw, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		return b, err == nil
	default:
		return false, false
	}
}

// Duration parses a string value such as "30s" or "1h30m".
func (v Value) Duration() (time.Duration, bool) {
	s, ok := v.raw.(string)
	if !ok {
		return 0, false
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	return d, err == nil
}

// Map returns the entries of a mapping value.
func (v Value) Map() (map[string]Value, bool) {
	m, ok := v.raw.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]Value, len(m))
	for key, child := range m {
		out[key] = Value{raw: child}
	}
	return out, true
}

// List returns the elements of a sequence value.
func (v Value) List() ([]Value, bool) {
	l, ok := v.raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Value, len(l))
	for i, child := range l {
		out[i] = Value{raw: child}
	}
	return out, true
}

// Strings returns a sequence value as strings, formatting non-string elements.
func (v Value) Strings() ([]string, bool) {
	l, ok := v.List()
	if !ok {
		return nil, false
	}
	out := make([]string, len(l))
	for i, item := range l {
		out[i] = item.String()
	}
	return out, true
}

// Get walks a dotted path inside a mapping value.
func (v Value) Get(path string) (Value, bool) {
	m, ok := v.raw.(map[string]any)
	if !ok {
		return Value{}, false
	}
	child, _, ok := normalize.Walk(m, path)
	if !ok {
		return Value{}, false
	}
	return Value{raw: child}, true
}
