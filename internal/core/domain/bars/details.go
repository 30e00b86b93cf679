package bars

// Review is a single user review returned by the maps provider.
type Review struct {
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Text   string `json:"text,omitzero"`
	Time   int    `json:"time,omitzero"`
}

// PlaceDetails is the read-only description of a place fetched from the maps provider.
type PlaceDetails struct {
	PlaceID      string      `json:"place_id"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone,omitzero"`
	Address      string      `json:"address,omitzero"`
	Coordinates  Coordinates `json:"coordinates"`
	OpeningHours []string    `json:"opening_hours,omitzero"`
	Reviews      []Review    `json:"reviews,omitzero"`
	Website      string      `json:"website,omitzero"`
	URL          string      `json:"url,omitzero"`
	Types        []string    `json:"types,omitzero"`
}
