package models

// Coordinates is a geographical point returned by the geocoding service.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeatherSnapshot describes current conditions at a point. All fields are
// required; a missing upstream field is a schema failure for that lookup.
type WeatherSnapshot struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Temperature      float64 `json:"temperature"`       // °C
	WindSpeed        float64 `json:"wind_speed"`        // km/h
	RelativeHumidity float64 `json:"relative_humidity"` // %
	IsDay            bool    `json:"is_day"`
	WeatherCode      int     `json:"weather_code"` // WMO interpretation code
	Conditions       string  `json:"conditions,omitempty"`
	Time             string  `json:"time"` // ISO-8601 observation timestamp
}

// ArticleSummary is the introductory section of an encyclopedia article.
type ArticleSummary struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}
