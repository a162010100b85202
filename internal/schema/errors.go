package schema

import (
	"fmt"
	"strings"
)

// FieldError describes one failed constraint using the JSON path of the value.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

func (fe FieldError) String() string {
	if fe.Message == "" {
		return fe.Field + " is invalid"
	}

	return fe.Field + " " + fe.Message
}

// ValidationError collects every field failure of one record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	switch len(e.Fields) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e.Fields[0].String()
	default:
		return fmt.Sprintf("validation failed: %s (and %d more)", e.Fields[0].String(), len(e.Fields)-1)
	}
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gte":
		return "must be at least " + param
	case "lte":
		return "must be at most " + param
	case "maxbytes":
		return "must be at most " + param + " bytes"
	case "number":
		return "must be a finite number"
	case "unknown":
		return "is not a known field"
	case "type":
		return "must be of type " + param
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	if strings.HasPrefix(name, "[") {
		return prefix + name
	}

	return prefix + "." + name
}
