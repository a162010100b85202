package hotel

import "time"

type Hotel struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	ImageURL  string    `json:"image_url"`
	MapURL    string    `json:"map_url"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}
