package itinerary

import "time"

// Place is a point of interest inside an itinerary list.
type Place struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	MapURL   string  `json:"map_url"`
	ImageURL string  `json:"image_url"`
	Ratings  float64 `json:"ratings"`
}

// ID and CreatedAt are left empty in the stored body and filled from the
// document on read.
type Itinerary struct {
	ID           string    `json:"id,omitempty"`
	Location     string    `json:"location"`
	Hotels       []Place   `json:"hotels"`
	TouristSpots []Place   `json:"tourist_spots"`
	Restaurants  []Place   `json:"restaurants"`
	MarketPlaces []Place   `json:"market_places"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
}

