package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/almanacai/almanac/internal/models"
)

// WeatherService fetches current conditions from the Open-Meteo forecast API.
type WeatherService struct {
	baseURL string
	client  *http.Client
}

func NewWeatherService(baseURL string, timeout time.Duration) *WeatherService {
	return &WeatherService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type currentConditions struct {
	Temperature      *float64 `json:"temperature_2m"`
	WindSpeed        *float64 `json:"wind_speed_10m"`
	RelativeHumidity *float64 `json:"relative_humidity_2m"`
	IsDay            *int     `json:"is_day"`
	WeatherCode      *int     `json:"weather_code"`
	Time             string   `json:"time"`
}

type forecastResponse struct {
	Current *currentConditions `json:"current"`
}

// wmoDescriptions maps WMO weather interpretation codes onto short
// human-readable condition strings.
var wmoDescriptions = map[int]string{
	0:  "clear sky",
	1:  "mainly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "fog",
	48: "depositing rime fog",
	51: "light drizzle",
	53: "moderate drizzle",
	55: "dense drizzle",
	61: "slight rain",
	63: "moderate rain",
	65: "heavy rain",
	71: "slight snow",
	73: "moderate snow",
	75: "heavy snow",
	80: "slight rain showers",
	81: "moderate rain showers",
	82: "violent rain showers",
	95: "thunderstorm",
	96: "thunderstorm with slight hail",
	99: "thunderstorm with heavy hail",
}

// DescribeWeatherCode returns a readable label for a WMO code.
func DescribeWeatherCode(code int) string {
	if d, ok := wmoDescriptions[code]; ok {
		return d
	}
	return "unknown conditions"
}

// Current returns the present-instant conditions at the given point.
// Only the current block is requested; no multi-day forecast.
func (s *WeatherService) Current(ctx context.Context, latitude, longitude float64) (*models.WeatherSnapshot, error) {
	params := url.Values{
		"latitude":      {strconv.FormatFloat(latitude, 'f', -1, 64)},
		"longitude":     {strconv.FormatFloat(longitude, 'f', -1, 64)},
		"current":       {"temperature_2m,relative_humidity_2m,is_day,wind_speed_10m,weather_code"},
		"timezone":      {"auto"},
		"forecast_days": {"1"},
	}

	var payload forecastResponse
	if err := getJSON(ctx, s.client, s.baseURL+"/forecast?"+params.Encode(), "weather", &payload); err != nil {
		return nil, err
	}

	cur := payload.Current
	if cur == nil {
		return nil, &NotFoundError{Upstream: "weather", Query: "current conditions for this location"}
	}
	if cur.Temperature == nil || cur.WindSpeed == nil || cur.RelativeHumidity == nil ||
		cur.IsDay == nil || cur.WeatherCode == nil || cur.Time == "" {
		return nil, &SchemaError{Upstream: "weather", Reason: "current block missing required fields"}
	}

	return &models.WeatherSnapshot{
		Latitude:         latitude,
		Longitude:        longitude,
		Temperature:      *cur.Temperature,
		WindSpeed:        *cur.WindSpeed,
		RelativeHumidity: *cur.RelativeHumidity,
		IsDay:            *cur.IsDay != 0,
		WeatherCode:      *cur.WeatherCode,
		Conditions:       DescribeWeatherCode(*cur.WeatherCode),
		Time:             cur.Time,
	}, nil
}
