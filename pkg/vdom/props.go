package vdom

import (
	"fmt"
	"strconv"
)

// Props holds attributes, event handlers and component inputs.
type Props map[string]any

// Get returns the value for key.
func (p Props) Get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// String returns the value for key formatted as a string, or "" if absent.
func (p Props) String(key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	return PropString(v)
}

// Int returns the integer value for key, or def if absent or not numeric.
func (p Props) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Bool returns the boolean value for key.
func (p Props) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Clone returns a shallow copy of p.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	cp := make(Props, len(p))
	for k, v := range p {
		cp[k] = v
	}
	return cp
}

// PropString stringifies a prop value for environments that store text.
func PropString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
