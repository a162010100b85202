package form

import (
	"strconv"
	"strings"

	"github.com/geocoder89/pravaah/internal/schema"
)

// Item is one sub-record of an array field, keyed by sub-field name.
type Item map[string]string

// Draft is the record being edited. Every edit returns a new Draft and the
// receiver is never modified, so a caller holding an older Draft keeps a
// consistent snapshot.
type Draft struct {
	coll    schema.Collection
	scalars map[string]string
	arrays  map[string][]Item
}

// New returns the empty draft of c: "" for every scalar, no items for every
// array field.
func New(c schema.Collection) Draft {
	d := Draft{
		coll:    c,
		scalars: make(map[string]string),
		arrays:  make(map[string][]Item),
	}

	for _, f := range c.Fields {
		if f.IsArray() {
			d.arrays[f.Name] = []Item{}
			continue
		}
		d.scalars[f.Name] = ""
	}

	return d
}

func (d Draft) Kind() schema.Kind {
	return d.coll.Kind
}

func (d Draft) Collection() schema.Collection {
	return d.coll
}

func (d Draft) Scalar(name string) string {
	return d.scalars[name]
}

// Items returns a copy of the sub-records of an array field.
func (d Draft) Items(name string) []Item {
	items := d.arrays[name]
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.clone()
	}
	return out
}

func (d Draft) SetScalar(name, value string) Draft {
	f, ok := d.coll.Field(name)
	if !ok || f.IsArray() {
		return d
	}

	next := d.clone()
	next.scalars[name] = value
	return next
}

// AddArrayItem appends an empty sub-record to the array field name.
func (d Draft) AddArrayItem(name string) Draft {
	f, ok := d.coll.Field(name)
	if !ok || !f.IsArray() {
		return d
	}

	item := make(Item, len(f.Fields))
	for _, sub := range f.Fields {
		item[sub.Name] = ""
	}

	next := d.clone()
	next.arrays[name] = append(next.arrays[name], item)
	return next
}

// RemoveArrayItem deletes the sub-record at index, keeping the order of the
// rest.
func (d Draft) RemoveArrayItem(name string, index int) Draft {
	items, ok := d.arrays[name]
	if !ok || index < 0 || index >= len(items) {
		return d
	}

	next := d.clone()
	list := next.arrays[name]
	next.arrays[name] = append(list[:index:index], list[index+1:]...)
	return next
}

func (d Draft) SetArrayItemField(name string, index int, sub, value string) Draft {
	f, ok := d.coll.Field(name)
	if !ok || !f.IsArray() {
		return d
	}
	if _, ok := f.Lookup(sub); !ok {
		return d
	}
	if index < 0 || index >= len(d.arrays[name]) {
		return d
	}

	next := d.clone()
	next.arrays[name][index][sub] = value
	return next
}

// Payload renders the draft as the JSON object sent to the server. Number
// fields are parsed; values that do not parse are sent as typed so the
// server reports them. Empty optional values are left out.
func (d Draft) Payload() map[string]any {
	out := make(map[string]any, len(d.coll.Fields))

	for _, f := range d.coll.Fields {
		if f.IsArray() {
			items := d.arrays[f.Name]
			list := make([]any, 0, len(items))
			for _, it := range items {
				obj := make(map[string]any, len(f.Fields))
				for _, sub := range f.Fields {
					if v, ok := payloadValue(sub, it[sub.Name]); ok {
						obj[sub.Name] = v
					}
				}
				list = append(list, obj)
			}
			out[f.Name] = list
			continue
		}

		if v, ok := payloadValue(f, d.scalars[f.Name]); ok {
			out[f.Name] = v
		}
	}

	return out
}

// MissingRequired lists the JSON paths of required inputs left blank, the
// check a form runs before it lets the user submit.
func (d Draft) MissingRequired() []string {
	var missing []string

	for _, f := range d.coll.Fields {
		if f.IsArray() {
			for i, it := range d.arrays[f.Name] {
				for _, sub := range f.Fields {
					if sub.Required && strings.TrimSpace(it[sub.Name]) == "" {
						missing = append(missing, f.Name+"["+strconv.Itoa(i)+"]."+sub.Name)
					}
				}
			}
			continue
		}

		if f.Required && strings.TrimSpace(d.scalars[f.Name]) == "" {
			missing = append(missing, f.Name)
		}
	}

	return missing
}

func payloadValue(f schema.Field, raw string) (any, bool) {
	if raw == "" {
		return nil, false
	}

	if f.IsNumber() {
		if n, ok := schema.ParseNumber(raw); ok {
			return n, true
		}
	}

	return raw, true
}

func (d Draft) clone() Draft {
	next := Draft{
		coll:    d.coll,
		scalars: make(map[string]string, len(d.scalars)),
		arrays:  make(map[string][]Item, len(d.arrays)),
	}

	for k, v := range d.scalars {
		next.scalars[k] = v
	}
	for k, items := range d.arrays {
		list := make([]Item, len(items))
		for i, it := range items {
			list[i] = it.clone()
		}
		next.arrays[k] = list
	}

	return next
}

func (it Item) clone() Item {
	out := make(Item, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}
