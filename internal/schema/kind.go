package schema

import (
	"errors"
	"fmt"
)

// Kind names one of the collections this service knows how to store.
type Kind string

const (
	KindUsers       Kind = "users"
	KindItineraries Kind = "itineraries"
	KindHotels      Kind = "hotels"
)

var ErrUnknownCollection = errors.New("unknown collection")

// IsValid reports whether k is one of the known collection kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindUsers, KindItineraries, KindHotels:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind maps a collection path segment to a Kind. Names are matched exactly.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if !k.IsValid() {
		return "", fmt.Errorf("%w %q", ErrUnknownCollection, name)
	}

	return k, nil
}
