package models

// GeoPoint is a GeoJSON-style point: [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// DayWindow is a contiguous availability window within a single day.
type DayWindow struct {
	Start int `bson:"start" json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
	End   int `bson:"end" json:"end"`     // minutes from midnight (e.g., 1020 for 5:00 PM)
}

// GeocodedLocation is a resolved coordinate for a free-text address.
type GeocodedLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"` // normalized address the coordinate was resolved for
}
