package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/almanacai/almanac/internal/service"
)

// GeocodeCityTool converts a free-text city name into coordinates using
// the geocoding service. The result — success or failure — is always a
// JSON payload; upstream faults never escape to the agent loop.
func GeocodeCityTool(geo *service.GeocodingService) Tool {
	return Tool{
		Name:        "get_coordinates_from_city",
		Description: "Converts a city name into a geographical latitude and longitude. Returns a JSON coordinates object for the most relevant match.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"city_name": map[string]interface{}{
					"type":        "string",
					"description": "Free-text name of the city to locate (e.g. 'London')",
				},
			},
			"required": []string{"city_name"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			cityName, _ := input["city_name"].(string)
			if cityName == "" {
				return errorPayload("city_name is required"), nil
			}

			coords, err := geo.Lookup(ctx, cityName)
			if err != nil {
				var notFound *service.NotFoundError
				if errors.As(err, &notFound) {
					return errorPayload(fmt.Sprintf("Could not find coordinates for city: %s", cityName)), nil
				}
				return errorPayload(err.Error()), nil
			}

			b, err := json.Marshal(coords)
			if err != nil {
				return errorPayload("failed to encode coordinates: " + err.Error()), nil
			}
			return string(b), nil
		},
	}
}

// errorPayload wraps a message in the {"error": ...} shape every structured
// tool uses for failures.
func errorPayload(message string) string {
	b, _ := json.Marshal(map[string]string{"error": message})
	return string(b)
}
