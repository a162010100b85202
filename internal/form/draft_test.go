package form

import (
	"reflect"
	"testing"

	"github.com/geocoder89/pravaah/internal/schema"
)

func lookup(t *testing.T, k schema.Kind) schema.Collection {
	t.Helper()
	c, ok := schema.Lookup(k)
	if !ok {
		t.Fatalf("no collection %s", k)
	}
	return c
}

func TestNew_EmptyPerField(t *testing.T) {
	d := New(lookup(t, schema.KindItineraries))

	if d.Scalar("location") != "" {
		t.Fatalf("location should start empty")
	}
	for _, name := range []string{"hotels", "tourist_spots", "restaurants", "market_places"} {
		if items := d.Items(name); items == nil || len(items) != 0 {
			t.Fatalf("%s should start as an empty list, got %v", name, items)
		}
	}

	p := d.Payload()
	if _, ok := p["location"]; ok {
		t.Fatalf("blank location should be omitted from payload")
	}
	if list, ok := p["hotels"].([]any); !ok || len(list) != 0 {
		t.Fatalf("hotels payload = %v", p["hotels"])
	}
}

func TestEditsDoNotAlias(t *testing.T) {
	d0 := New(lookup(t, schema.KindItineraries))
	d1 := d0.SetScalar("location", "Goa")
	d2 := d1.AddArrayItem("hotels")
	d3 := d2.SetArrayItemField("hotels", 0, "name", "Taj")

	if d0.Scalar("location") != "" {
		t.Fatalf("SetScalar mutated the original draft")
	}
	if len(d1.Items("hotels")) != 0 {
		t.Fatalf("AddArrayItem mutated the previous draft")
	}
	if d2.Items("hotels")[0]["name"] != "" {
		t.Fatalf("SetArrayItemField mutated the previous draft")
	}
	if d3.Items("hotels")[0]["name"] != "Taj" {
		t.Fatalf("edit lost: %v", d3.Items("hotels"))
	}

	items := d3.Items("hotels")
	items[0]["name"] = "changed"
	if d3.Items("hotels")[0]["name"] != "Taj" {
		t.Fatalf("Items must return a copy")
	}
}

func TestRemoveArrayItem_PreservesOrder(t *testing.T) {
	d := New(lookup(t, schema.KindItineraries))
	for i, name := range []string{"a", "b", "c"} {
		d = d.AddArrayItem("restaurants").SetArrayItemField("restaurants", i, "name", name)
	}

	before := d
	d = d.RemoveArrayItem("restaurants", 1)

	var got []string
	for _, it := range d.Items("restaurants") {
		got = append(got, it["name"])
	}
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("got %v, want [a c]", got)
	}
	if len(before.Items("restaurants")) != 3 {
		t.Fatalf("RemoveArrayItem mutated the previous draft")
	}
}

func TestOutOfRangeAndUnknownAreNoOps(t *testing.T) {
	d := New(lookup(t, schema.KindItineraries)).AddArrayItem("hotels")

	tests := []struct {
		name string
		edit func(Draft) Draft
	}{
		{"remove negative", func(d Draft) Draft { return d.RemoveArrayItem("hotels", -1) }},
		{"remove past end", func(d Draft) Draft { return d.RemoveArrayItem("hotels", 1) }},
		{"set past end", func(d Draft) Draft { return d.SetArrayItemField("hotels", 3, "name", "x") }},
		{"unknown sub-field", func(d Draft) Draft { return d.SetArrayItemField("hotels", 0, "stars", "x") }},
		{"unknown scalar", func(d Draft) Draft { return d.SetScalar("country", "IN") }},
		{"scalar on array field", func(d Draft) Draft { return d.SetScalar("hotels", "x") }},
		{"add to scalar field", func(d Draft) Draft { return d.AddArrayItem("location") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edit(d); !reflect.DeepEqual(got.Payload(), d.Payload()) {
				t.Fatalf("payload changed: %v", got.Payload())
			}
		})
	}
}

func TestPayload_NumbersParsed(t *testing.T) {
	d := New(lookup(t, schema.KindItineraries)).
		SetScalar("location", "Goa").
		AddArrayItem("hotels").
		SetArrayItemField("hotels", 0, "ratings", "4.5").
		AddArrayItem("hotels").
		SetArrayItemField("hotels", 1, "ratings", "great")

	hotels := d.Payload()["hotels"].([]any)

	if got := hotels[0].(map[string]any)["ratings"]; got != 4.5 {
		t.Fatalf("ratings = %#v, want 4.5", got)
	}
	if got := hotels[1].(map[string]any)["ratings"]; got != "great" {
		t.Fatalf("unparsable ratings should pass through, got %#v", got)
	}
}

func TestPayload_ValidatesOnServerSchema(t *testing.T) {
	c := lookup(t, schema.KindUsers)
	d := New(c).
		SetScalar("username", "a").
		SetScalar("email", "a@x.io").
		SetScalar("password", "pw1")

	if _, err := schema.Validate(c, d.Payload()); err != nil {
		t.Fatalf("complete draft should validate: %v", err)
	}
}

func TestMissingRequired(t *testing.T) {
	d := New(lookup(t, schema.KindItineraries)).
		AddArrayItem("hotels").
		SetArrayItemField("hotels", 0, "name", "Taj")

	got := d.MissingRequired()
	want := []string{
		"location",
		"hotels[0].address",
		"hotels[0].map_url",
		"hotels[0].image_url",
		"hotels[0].ratings",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
