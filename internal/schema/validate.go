package schema

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Validate checks a raw payload against the declared fields of kind and
// returns the document to be written: declared fields only, with defaults
// filled for omitted optional fields. An explicit null is rejected unless
// the field is declared nullable. Every failing field is accumulated into
// a single ValidationError. Undeclared payload keys are ignored.
func Validate(kind string, payload map[string]interface{}) (map[string]interface{}, error) {
	specs, ok := registry[kind]
	if !ok {
		return nil, &UnknownKindError{Kind: kind}
	}

	doc := make(map[string]interface{}, len(specs))
	var fieldErrs []FieldError

	for _, spec := range specs {
		raw, present := payload[spec.Name]
		if !present {
			if spec.Required {
				fieldErrs = append(fieldErrs, FieldError{Field: spec.Name, Message: "field is required"})
			} else if spec.Default != nil {
				doc[spec.Name] = freshDefault(spec)
			}
			continue
		}
		if raw == nil {
			// Explicit null only passes on nullable fields, where it reads
			// the same as omitting the field.
			if !spec.Nullable {
				fieldErrs = append(fieldErrs, FieldError{Field: spec.Name, Message: "must not be null"})
			} else if spec.Default != nil {
				doc[spec.Name] = freshDefault(spec)
			}
			continue
		}

		value, errs := coerce(spec, spec.Name, raw)
		if len(errs) > 0 {
			fieldErrs = append(fieldErrs, errs...)
			continue
		}
		doc[spec.Name] = value
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Kind: kind, Fields: fieldErrs}
	}
	return doc, nil
}

// freshDefault returns a per-document copy of the declared default, so
// callers never share the registry's backing slices and maps.
func freshDefault(spec FieldSpec) interface{} {
	switch spec.Type {
	case TypeStringList:
		return []string{}
	case TypeIntList:
		return []int{}
	case TypeObjectList:
		return []interface{}{}
	case TypeMap:
		return map[string]interface{}{}
	default:
		return spec.Default
	}
}

func coerce(spec FieldSpec, path string, raw interface{}) (interface{}, []FieldError) {
	switch spec.Type {
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return nil, []FieldError{{Field: path, Message: "must be a string"}}
		}
		if len(spec.Allowed) > 0 && !contains(spec.Allowed, s) {
			return nil, []FieldError{{
				Field:   path,
				Message: fmt.Sprintf("must be one of [%s]", strings.Join(spec.Allowed, ", ")),
			}}
		}
		return s, nil

	case TypeInt:
		n, ok := toInt(raw)
		if !ok {
			return nil, []FieldError{{Field: path, Message: "must be an integer"}}
		}
		return n, nil

	case TypeFloat:
		f, ok := toFloat(raw)
		if !ok {
			return nil, []FieldError{{Field: path, Message: "must be a number"}}
		}
		return f, nil

	case TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, []FieldError{{Field: path, Message: "must be a boolean"}}
		}
		return b, nil

	case TypeStringList:
		return coerceStringList(path, raw)

	case TypeIntList:
		return coerceIntList(path, raw)

	case TypeObjectList:
		return coerceObjectList(spec, path, raw)

	case TypeMap:
		m, ok := raw.(map[string]interface{})
		if !ok {
			return nil, []FieldError{{Field: path, Message: "must be an object"}}
		}
		return m, nil

	case TypeTimestamp:
		switch v := raw.(type) {
		case time.Time:
			return v, nil
		case string:
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, []FieldError{{Field: path, Message: "must be an RFC 3339 timestamp"}}
			}
			return t, nil
		default:
			return nil, []FieldError{{Field: path, Message: "must be an RFC 3339 timestamp"}}
		}
	}
	return nil, []FieldError{{Field: path, Message: fmt.Sprintf("unsupported field type %q", spec.Type)}}
}

func coerceStringList(path string, raw interface{}) (interface{}, []FieldError) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, []FieldError{{
					Field:   fmt.Sprintf("%s[%d]", path, i),
					Message: "must be a string",
				}}
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, []FieldError{{Field: path, Message: "must be a list of strings"}}
}

func coerceIntList(path string, raw interface{}) (interface{}, []FieldError) {
	switch v := raw.(type) {
	case []int:
		return v, nil
	case []interface{}:
		out := make([]int, 0, len(v))
		for i, item := range v {
			n, ok := toInt(item)
			if !ok {
				return nil, []FieldError{{
					Field:   fmt.Sprintf("%s[%d]", path, i),
					Message: "must be an integer",
				}}
			}
			out = append(out, n)
		}
		return out, nil
	}
	return nil, []FieldError{{Field: path, Message: "must be a list of integers"}}
}

func coerceObjectList(spec FieldSpec, path string, raw interface{}) (interface{}, []FieldError) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, []FieldError{{Field: path, Message: "must be a list of objects"}}
	}
	out := make([]interface{}, 0, len(items))
	var errs []FieldError
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("%s[%d]", path, i),
				Message: "must be an object",
			})
			continue
		}
		validated := make(map[string]interface{}, len(spec.Fields))
		for _, sub := range spec.Fields {
			subPath := fmt.Sprintf("%s[%d].%s", path, i, sub.Name)
			rawSub, present := obj[sub.Name]
			if !present {
				if sub.Required {
					errs = append(errs, FieldError{Field: subPath, Message: "field is required"})
				} else if sub.Default != nil {
					validated[sub.Name] = freshDefault(sub)
				}
				continue
			}
			if rawSub == nil {
				if !sub.Nullable {
					errs = append(errs, FieldError{Field: subPath, Message: "must not be null"})
				} else if sub.Default != nil {
					validated[sub.Name] = freshDefault(sub)
				}
				continue
			}
			value, subErrs := coerce(sub, subPath, rawSub)
			if len(subErrs) > 0 {
				errs = append(errs, subErrs...)
				continue
			}
			validated[sub.Name] = value
		}
		out = append(out, validated)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func toInt(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
