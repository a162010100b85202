package entry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/geocoder89/pravaah/internal/form"
	"github.com/geocoder89/pravaah/internal/schema"
)

// maxAttempts bounds re-prompting for one input.
const maxAttempts = 5

var ErrTooManyAttempts = errors.New("too many invalid answers")

// Prompter reads answers from the person filling the form.
type Prompter interface {
	Ask(label string) (string, error)
	AskSecret(label string) (string, error)
	Confirm(question string) (bool, error)
}

// Fill walks the fields of d's collection and asks for each value. Required
// inputs and number bounds are checked here, the way a browser form checks
// them before it submits.
func Fill(d form.Draft, p Prompter) (form.Draft, error) {
	for _, f := range d.Collection().Fields {
		if !f.IsArray() {
			v, err := askField(p, f, f.Label)
			if err != nil {
				return d, err
			}
			d = d.SetScalar(f.Name, v)
			continue
		}

		for i := 0; ; i++ {
			item := f.ItemLabel
			if item == "" {
				item = "item"
			}

			more, err := p.Confirm(fmt.Sprintf("Add a %s to %s?", item, f.Label))
			if err != nil {
				return d, err
			}
			if !more {
				break
			}

			d = d.AddArrayItem(f.Name)
			for _, sub := range f.Fields {
				v, err := askField(p, sub, fmt.Sprintf("%s #%d %s", f.Label, i+1, sub.Label))
				if err != nil {
					return d, err
				}
				d = d.SetArrayItemField(f.Name, i, sub.Name, v)
			}
		}
	}

	return d, nil
}

func askField(p Prompter, f schema.Field, label string) (string, error) {
	prompt := label + hint(f) + ": "

	for attempt := 0; attempt < maxAttempts; attempt++ {
		var (
			v   string
			err error
		)
		if f.Type == schema.TypePassword {
			v, err = p.AskSecret(prompt)
		} else {
			v, err = p.Ask(prompt)
		}
		if err != nil {
			return "", err
		}

		v = strings.TrimSpace(v)
		if problem := checkInput(f, v); problem != "" {
			prompt = label + " " + problem + hint(f) + ": "
			continue
		}
		return v, nil
	}

	return "", fmt.Errorf("%w for %s", ErrTooManyAttempts, label)
}

func checkInput(f schema.Field, v string) string {
	if v == "" {
		if f.Required {
			return "is required"
		}
		return ""
	}

	if f.MaxBytes > 0 && len(v) > f.MaxBytes {
		return fmt.Sprintf("is too long (max %d bytes)", f.MaxBytes)
	}

	if !f.IsNumber() {
		return ""
	}

	n, ok := schema.ParseNumber(v)
	if !ok {
		return "must be a number"
	}
	if f.Min != nil && n < *f.Min {
		return "is too small"
	}
	if f.Max != nil && n > *f.Max {
		return "is too large"
	}
	return ""
}

func hint(f schema.Field) string {
	if !f.IsNumber() || f.Min == nil || f.Max == nil {
		return ""
	}
	return fmt.Sprintf(" (%s-%s)", strconv.FormatFloat(*f.Min, 'f', -1, 64), strconv.FormatFloat(*f.Max, 'f', -1, 64))
}
