package catalog

import (
	"reflect"
	"strings"
)

// emptySchema is the safe fallback schema (§4.2) emitted whenever reflection
// cannot describe the parameter type, rather than aborting registration.
func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
		"required":   []string{},
	}
}

// DeriveSchema reflects over a struct value (typically the zero value of an
// adapter's argument type) and produces a JSON Schema object describing it.
// Unexported fields are skipped. A field is required unless it is a pointer
// type or tagged `json:"...,omitempty"`.
func DeriveSchema(argsPrototype interface{}) map[string]interface{} {
	if argsPrototype == nil {
		return emptySchema()
	}
	t := reflect.TypeOf(argsPrototype)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return emptySchema()
	}

	properties := map[string]interface{}{}
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}

		name, omitempty := jsonFieldName(field)
		if name == "-" {
			continue
		}

		fieldSchema, isPointer := schemaForType(field.Type)
		properties[name] = fieldSchema

		if !isPointer && !omitempty {
			required = append(required, name)
		}
	}

	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func jsonFieldName(field reflect.StructField) (name string, omitempty bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return lowerFirst(field.Name), false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = lowerFirst(field.Name)
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// schemaForType maps a Go type to its JSON Schema fragment. The bool return
// reports whether the type is a pointer (and therefore never required).
func schemaForType(t reflect.Type) (map[string]interface{}, bool) {
	isPointer := false
	for t.Kind() == reflect.Ptr {
		isPointer = true
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return map[string]interface{}{"type": "string"}, isPointer
	case reflect.Bool:
		return map[string]interface{}{"type": "boolean"}, isPointer
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]interface{}{"type": "integer"}, isPointer
	case reflect.Float32, reflect.Float64:
		return map[string]interface{}{"type": "number"}, isPointer
	case reflect.Slice, reflect.Array:
		itemSchema, _ := schemaForType(t.Elem())
		return map[string]interface{}{"type": "array", "items": itemSchema}, isPointer
	case reflect.Map, reflect.Struct:
		return map[string]interface{}{"type": "object"}, isPointer
	default:
		return map[string]interface{}{"type": "string"}, isPointer
	}
}
