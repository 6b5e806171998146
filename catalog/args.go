package catalog

import "fmt"

// Arguments provides typed accessors over a tool call's argument map,
// grounded on the same accessor shape the dispatch layer has always used
// for JSON-decoded request parameters.
type Arguments map[string]interface{}

func (a Arguments) String(name string) (string, error) {
	v, ok := a[name]
	if !ok {
		return "", ErrUnknownParameter
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q is not a string", name)
	}
	return s, nil
}

func (a Arguments) StringOr(name, def string) string {
	if v, err := a.String(name); err == nil {
		return v
	}
	return def
}

func (a Arguments) Int(name string) (int, error) {
	v, ok := a[name]
	if !ok {
		return 0, ErrUnknownParameter
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("parameter %q is not a number", name)
	}
}

func (a Arguments) IntOr(name string, def int) int {
	if v, err := a.Int(name); err == nil {
		return v
	}
	return def
}

func (a Arguments) Bool(name string) (bool, error) {
	v, ok := a[name]
	if !ok {
		return false, ErrUnknownParameter
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q is not a boolean", name)
	}
	return b, nil
}

func (a Arguments) BoolOr(name string, def bool) bool {
	if v, err := a.Bool(name); err == nil {
		return v
	}
	return def
}

func (a Arguments) StringSlice(name string) ([]string, error) {
	v, ok := a[name]
	if !ok {
		return nil, ErrUnknownParameter
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("parameter %q is not an array", name)
	}
	out := make([]string, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q element %d is not a string", name, i)
		}
		out[i] = s
	}
	return out, nil
}

// validateRequired checks that every name in schema["required"] is present
// in args and neither nil nor an empty string.
func validateRequired(schema map[string]interface{}, args Arguments) error {
	if schema == nil {
		return nil
	}
	raw, ok := schema["required"]
	if !ok {
		return nil
	}
	required, ok := raw.([]interface{})
	if !ok {
		if ss, ok := raw.([]string); ok {
			for _, name := range ss {
				if err := checkRequiredField(args, name); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, r := range required {
		name, ok := r.(string)
		if !ok {
			continue
		}
		if err := checkRequiredField(args, name); err != nil {
			return err
		}
	}
	return nil
}

func checkRequiredField(args Arguments, name string) error {
	v, exists := args[name]
	if !exists || v == nil {
		return NewToolError(KindInvalidArgument, "missing required parameter: "+name)
	}
	if s, ok := v.(string); ok && s == "" {
		return NewToolError(KindInvalidArgument, "required parameter cannot be empty: "+name)
	}
	return nil
}
