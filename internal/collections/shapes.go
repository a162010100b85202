package collections

import (
	"encoding/json"
	"fmt"

	"github.com/geocoder89/pravaah/internal/domain/document"
	"github.com/geocoder89/pravaah/internal/domain/hotel"
	"github.com/geocoder89/pravaah/internal/domain/itinerary"
	"github.com/geocoder89/pravaah/internal/domain/user"
	"github.com/geocoder89/pravaah/internal/schema"
)

// storageBody turns a validated document into the stored body of its kind.
// Users are the only kind with a transform: the plaintext password is
// replaced by its hash before anything leaves this function.
func (s *Service) storageBody(kind schema.Kind, doc map[string]any) ([]byte, error) {
	switch kind {
	case schema.KindUsers:
		var rec user.Record
		if err := remarshal(doc, &rec); err != nil {
			return nil, err
		}

		hash, err := s.hasher(rec.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		rec.Password = hash

		return json.Marshal(rec)

	case schema.KindItineraries:
		var it itinerary.Itinerary
		if err := remarshal(doc, &it); err != nil {
			return nil, err
		}
		return json.Marshal(it)

	case schema.KindHotels:
		var h hotel.Hotel
		if err := remarshal(doc, &h); err != nil {
			return nil, err
		}
		return json.Marshal(h)
	}

	return nil, fmt.Errorf("%w %q", schema.ErrUnknownCollection, kind)
}

// publicView renders a stored document for readers, with its id and
// creation time. Password hashes never appear.
func publicView(kind schema.Kind, doc document.Document) (json.RawMessage, error) {
	switch kind {
	case schema.KindUsers:
		var rec user.Record
		if err := json.Unmarshal(doc.Body, &rec); err != nil {
			return nil, err
		}
		return json.Marshal(user.FromRecord(doc.ID, doc.CreatedAt, rec))

	case schema.KindItineraries:
		var it itinerary.Itinerary
		if err := json.Unmarshal(doc.Body, &it); err != nil {
			return nil, err
		}
		it.ID, it.CreatedAt = doc.ID, doc.CreatedAt
		return json.Marshal(it)

	case schema.KindHotels:
		var h hotel.Hotel
		if err := json.Unmarshal(doc.Body, &h); err != nil {
			return nil, err
		}
		h.ID, h.CreatedAt = doc.ID, doc.CreatedAt
		return json.Marshal(h)
	}

	return nil, fmt.Errorf("%w %q", schema.ErrUnknownCollection, kind)
}

func remarshal(in map[string]any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
