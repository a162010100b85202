package schema

// Collection is the declarative description of one record shape. The same
// value drives the entry form and server side validation.
type Collection struct {
	Kind        Kind             `json:"kind"`
	DisplayName string           `json:"displayName"`
	Icon        string           `json:"icon"`
	Fields      []Field          `json:"fields"`
	Samples     []map[string]any `json:"samples,omitempty"`
}

// Field returns the top-level field with the given name.
func (c Collection) Field(name string) (Field, bool) {
	return lookupField(c.Fields, name)
}

func placeFields() []Field {
	return []Field{
		{Name: "name", Label: "Name", Type: TypeText, Required: true},
		{Name: "address", Label: "Address", Type: TypeText, Required: true},
		{Name: "map_url", Label: "Map URL", Type: TypeURL, Required: true},
		{Name: "image_url", Label: "Image URL", Type: TypeURL, Required: true},
		{Name: "ratings", Label: "Ratings", Type: TypeNumber, Required: true, Min: bound(0), Max: bound(5), Step: 0.1},
	}
}

func placeList(name, label, item string) Field {
	return Field{Name: name, Label: label, Type: TypeArray, ItemLabel: item, Fields: placeFields()}
}

var registry = []Collection{
	{
		Kind:        KindUsers,
		DisplayName: "Users",
		Icon:        "👤",
		Fields: []Field{
			{Name: "username", Label: "Username", Type: TypeText, Required: true},
			{Name: "email", Label: "Email", Type: TypeEmail, Required: true},
			// bcrypt only hashes the first 72 bytes
			{Name: "password", Label: "Password", Type: TypePassword, Required: true, MaxBytes: 72},
		},
		Samples: sampleUsers,
	},
	{
		Kind:        KindItineraries,
		DisplayName: "Itineraries",
		Icon:        "🗺",
		Fields: []Field{
			{Name: "location", Label: "Location", Type: TypeText, Required: true},
			placeList("hotels", "Hotels", "hotel"),
			placeList("tourist_spots", "Tourist spots", "tourist spot"),
			placeList("restaurants", "Restaurants", "restaurant"),
			placeList("market_places", "Market places", "market place"),
		},
		Samples: sampleItineraries,
	},
	{
		Kind:        KindHotels,
		DisplayName: "Hotels",
		Icon:        "🏨",
		Fields: []Field{
			{Name: "name", Label: "Name", Type: TypeText, Required: true},
			{Name: "address", Label: "Address", Type: TypeText, Required: true},
			{Name: "image_url", Label: "Image URL", Type: TypeURL, Required: true},
			{Name: "map_url", Label: "Map URL", Type: TypeURL, Required: true},
			{Name: "rating", Label: "Rating", Type: TypeNumber, Required: true, Min: bound(0), Max: bound(5), Step: 0.1, Coerce: true},
		},
		Samples: sampleHotels,
	},
}

// Registry returns every known collection in display order. The returned
// values are shared and must not be modified.
func Registry() []Collection {
	return registry
}

func Lookup(k Kind) (Collection, bool) {
	for _, c := range registry {
		if c.Kind == k {
			return c, true
		}
	}

	return Collection{}, false
}

func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for _, c := range registry {
		kinds = append(kinds, c.Kind)
	}

	return kinds
}
