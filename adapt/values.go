package adapt

import (
	"fmt"
	"math"
	"strconv"
)

// asMap accepts both map shapes produced by generic decoders: string-keyed
// (JSON, YAML with string keys) and any-keyed (YAML with mixed keys).
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	li, ok := v.([]any)
	return li, ok
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int, int64, uint64:
		i, ok := asInt(n)
		return float64(i), ok
	}
	return 0, false
}

// intKeyed decodes a map with integer keys, which arrive as ints from YAML
// and as strings from JSON.
func intKeyed(v any) (map[int]any, bool) {
	out := map[int]any{}
	switch m := v.(type) {
	case map[string]any:
		for k, v := range m {
			i, err := strconv.Atoi(k)
			if err != nil {
				return nil, false
			}
			out[i] = v
		}
	case map[any]any:
		for k, v := range m {
			i, ok := asInt(k)
			if !ok {
				s, isStr := k.(string)
				if !isStr {
					return nil, false
				}
				n, err := strconv.Atoi(s)
				if err != nil {
					return nil, false
				}
				i = n
			}
			out[i] = v
		}
	default:
		return nil, false
	}
	return out, true
}

// text renders scalar option values (strings and numbers) as strings.
func text(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case int, int64, uint64:
		return fmt.Sprint(s), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}
