package dispatcher

import "fmt"

// argError is the dispatcher's own "missing or wrong-typed argument"
// failure, raised during coercion before the tool library is ever called.
type argError struct {
	msg string
}

func (e *argError) Error() string { return e.msg }

func missingArg(name string) error {
	return &argError{msg: fmt.Sprintf("missing required argument %q", name)}
}

func wrongType(name, want string, got any) error {
	return &argError{msg: fmt.Sprintf("argument %q must be %s, got %T", name, want, got)}
}

func argString(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", missingArg(name)
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongType(name, "a string", v)
	}
	return s, nil
}

func argOptString(args map[string]any, name, def string) string {
	v, ok := args[name]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

func argStringSlice(args map[string]any, name string) ([]string, error) {
	v, ok := args[name]
	if !ok {
		return nil, missingArg(name)
	}
	return toStringSlice(v, name)
}

func argOptStringSlice(args map[string]any, name string) []string {
	v, ok := args[name]
	if !ok {
		return nil
	}
	out, err := toStringSlice(v, name)
	if err != nil {
		return nil
	}
	return out
}

func toStringSlice(v any, name string) ([]string, error) {
	raw, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss, nil
		}
		return nil, wrongType(name, "a list of strings", v)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, wrongType(name, "a list of strings", v)
		}
		out = append(out, s)
	}
	return out, nil
}

func argInt64(args map[string]any, name string) (int64, error) {
	v, ok := args[name]
	if !ok {
		return 0, missingArg(name)
	}
	return toInt64(v, name)
}

func argOptInt64(args map[string]any, name string, def int64) int64 {
	v, ok := args[name]
	if !ok {
		return def
	}
	n, err := toInt64(v, name)
	if err != nil {
		return def
	}
	return n
}

func argOptInt64Ptr(args map[string]any, name string) *int64 {
	v, ok := args[name]
	if !ok || v == nil {
		return nil
	}
	n, err := toInt64(v, name)
	if err != nil {
		return nil
	}
	return &n
}

func toInt64(v any, name string) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, wrongType(name, "a number", v)
	}
}

func argOptInt64Slice(args map[string]any, name string) []int64 {
	v, ok := args[name]
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, item := range raw {
		n, err := toInt64(item, name)
		if err != nil {
			return nil
		}
		out = append(out, n)
	}
	return out
}

func argOptFloat64(args map[string]any, name string, def float64) float64 {
	v, ok := args[name]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return def
	}
}

func argOptInt(args map[string]any, name string, def int) int {
	return int(argOptInt64(args, name, int64(def)))
}

func argOptBool(args map[string]any, name string, def bool) bool {
	v, ok := args[name]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}
