package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decimalPattern is the plain decimal notation a form number input accepts.
// Hex, underscores and named values like Inf are not numbers here.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber reads a user typed number. Surrounding spaces are ignored.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, false
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Validate checks body against the collection fields and returns a
// normalized copy holding exactly the declared fields: numbers as float64,
// array fields defaulting to an empty list. Every failure is reported; a
// single failure rejects the whole record.
func Validate(c Collection, body map[string]any) (map[string]any, error) {
	var errs []FieldError

	out := validateObject(c.Fields, body, "", &errs)

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	return out, nil
}

func validateObject(fields []Field, obj map[string]any, prefix string, errs *[]FieldError) map[string]any {
	out := make(map[string]any, len(fields))

	for _, f := range fields {
		path := joinPath(prefix, f.Name)
		raw, present := obj[f.Name]

		if f.IsArray() {
			out[f.Name] = validateArray(f, raw, present, path, errs)
			continue
		}

		v, ok := validateScalar(f, raw, present, path, errs)
		if ok {
			out[f.Name] = v
		}
	}

	var extra []string
	for name := range obj {
		if _, ok := lookupField(fields, name); !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)

	for _, name := range extra {
		*errs = append(*errs, newFieldError(joinPath(prefix, name), "unknown", ""))
	}

	return out
}

func validateArray(f Field, raw any, present bool, path string, errs *[]FieldError) []map[string]any {
	items := []map[string]any{}

	if !present || raw == nil {
		if f.Required {
			*errs = append(*errs, newFieldError(path, "required", ""))
		}
		return items
	}

	list, ok := raw.([]any)
	if !ok {
		*errs = append(*errs, newFieldError(path, "type", "array"))
		return items
	}

	for i, it := range list {
		itemPath := fmt.Sprintf("%s[%d]", path, i)

		obj, ok := it.(map[string]any)
		if !ok {
			*errs = append(*errs, newFieldError(itemPath, "type", "object"))
			continue
		}

		items = append(items, validateObject(f.Fields, obj, itemPath, errs))
	}

	return items
}

func validateScalar(f Field, raw any, present bool, path string, errs *[]FieldError) (any, bool) {
	if !present || raw == nil {
		if f.Required {
			*errs = append(*errs, newFieldError(path, "required", ""))
		}
		return nil, false
	}

	if f.IsNumber() {
		return validateNumber(f, raw, path, errs)
	}

	s, ok := raw.(string)
	if !ok {
		*errs = append(*errs, newFieldError(path, "type", "string"))
		return nil, false
	}

	if f.Required && strings.TrimSpace(s) == "" {
		*errs = append(*errs, newFieldError(path, "required", ""))
		return nil, false
	}

	if f.MaxBytes > 0 && len(s) > f.MaxBytes {
		*errs = append(*errs, newFieldError(path, "maxbytes", strconv.Itoa(f.MaxBytes)))
		return nil, false
	}

	if tag := f.rules(); tag != "" {
		if err := validate.Var(s, tag); err != nil {
			appendValidatorErrors(path, err, errs)
			return nil, false
		}
	}

	return s, true
}

func validateNumber(f Field, raw any, path string, errs *[]FieldError) (any, bool) {
	if s, ok := raw.(string); ok && f.Coerce && strings.TrimSpace(s) == "" {
		if f.Required {
			*errs = append(*errs, newFieldError(path, "required", ""))
		}
		return nil, false
	}

	n, ok := toNumber(raw, f.Coerce)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		*errs = append(*errs, newFieldError(path, "number", ""))
		return nil, false
	}

	if tag := f.rules(); tag != "" {
		if err := validate.Var(n, tag); err != nil {
			appendValidatorErrors(path, err, errs)
			return nil, false
		}
	}

	return n, true
}

func toNumber(raw any, coerce bool) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	case string:
		if !coerce {
			return 0, false
		}
		return ParseNumber(v)
	default:
		return 0, false
	}
}

func appendValidatorErrors(path string, err error, errs *[]FieldError) {
	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		*errs = append(*errs, FieldError{Field: path, Rule: "invalid", Message: err.Error()})
		return
	}

	for _, fe := range validationErrors {
		*errs = append(*errs, newFieldError(path, fe.Tag(), fe.Param()))
	}
}

func newFieldError(path, rule, param string) FieldError {
	return FieldError{
		Field:   path,
		Rule:    rule,
		Param:   param,
		Message: validationMessage(rule, param),
	}
}
