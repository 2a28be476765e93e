package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/almanacai/almanac/internal/service"
)

// CurrentWeatherTool retrieves present-instant conditions for a coordinate
// pair from the weather service.
func CurrentWeatherTool(weather *service.WeatherService) Tool {
	return Tool{
		Name:        "get_current_weather",
		Description: "Retrieves the current weather conditions for a given latitude and longitude. Returns a JSON weather object with temperature (°C), wind speed (km/h), humidity (%), day/night flag and a conditions description.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Latitude in degrees, -90 to 90",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Longitude in degrees, -180 to 180",
				},
			},
			"required": []string{"latitude", "longitude"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			lat, latOK := input["latitude"].(float64)
			lon, lonOK := input["longitude"].(float64)
			if !latOK || !lonOK {
				return errorPayload("latitude and longitude are required numbers"), nil
			}
			if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
				return errorPayload("latitude/longitude out of range"), nil
			}

			snapshot, err := weather.Current(ctx, lat, lon)
			if err != nil {
				var notFound *service.NotFoundError
				if errors.As(err, &notFound) {
					return errorPayload("No current weather data available for this location."), nil
				}
				return errorPayload(err.Error()), nil
			}

			b, err := json.Marshal(snapshot)
			if err != nil {
				return errorPayload("failed to encode weather snapshot: " + err.Error()), nil
			}
			return string(b), nil
		},
	}
}
