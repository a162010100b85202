package schema

import (
	"strconv"
	"strings"
)

type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypePassword FieldType = "password"
	TypeURL      FieldType = "url"
	TypeNumber   FieldType = "number"
	TypeArray    FieldType = "array"
)

// Field describes one input of a collection. Array fields carry the
// sub-record description in Fields.
type Field struct {
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Type      FieldType `json:"type"`
	Required  bool      `json:"required,omitempty"`
	Min       *float64  `json:"min,omitempty"`
	Max       *float64  `json:"max,omitempty"`
	Step      float64   `json:"step,omitempty"`
	Coerce    bool      `json:"coerce,omitempty"` // accept numeric strings
	MaxBytes  int       `json:"maxBytes,omitempty"`
	ItemLabel string    `json:"itemLabel,omitempty"`
	Fields    []Field   `json:"fields,omitempty"`
}

func (f Field) IsArray() bool {
	return f.Type == TypeArray
}

func (f Field) IsNumber() bool {
	return f.Type == TypeNumber
}

// Lookup returns the sub-field with the given name.
func (f Field) Lookup(name string) (Field, bool) {
	return lookupField(f.Fields, name)
}

// rules renders the field constraints as a validator tag. Presence of
// required values is checked before the tag is applied.
func (f Field) rules() string {
	var parts []string

	switch f.Type {
	case TypeEmail:
		parts = append(parts, "email")
	case TypeURL:
		parts = append(parts, "url")
	case TypeNumber:
		if f.Min != nil {
			parts = append(parts, "gte="+formatFloat(*f.Min))
		}
		if f.Max != nil {
			parts = append(parts, "lte="+formatFloat(*f.Max))
		}
		return strings.Join(parts, ",")
	}

	if len(parts) == 0 {
		return ""
	}

	if f.Required {
		return "required," + strings.Join(parts, ",")
	}

	return "omitempty," + strings.Join(parts, ",")
}

func lookupField(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func bound(v float64) *float64 {
	return &v
}
