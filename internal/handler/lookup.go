package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/almanacai/almanac/internal/models"
	"github.com/almanacai/almanac/internal/service"
)

// LookupHandler exposes the lookup services directly, bypassing the agent.
// Useful for smoke-testing the upstreams and for clients that don't need
// natural language.
type LookupHandler struct {
	geo     *service.GeocodingService
	weather *service.WeatherService
	wiki    *service.WikipediaService
}

func NewLookupHandler(geo *service.GeocodingService, weather *service.WeatherService, wiki *service.WikipediaService) *LookupHandler {
	return &LookupHandler{geo: geo, weather: weather, wiki: wiki}
}

// Geocode handles GET /api/v1/geocode?city=London
func (h *LookupHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		models.WriteError(w, http.StatusBadRequest, "city query parameter is required")
		return
	}

	coords, err := h.geo.Lookup(r.Context(), city)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, coords)
}

// Weather handles GET /api/v1/weather?latitude=..&longitude=..
// or GET /api/v1/weather?city=.. (geocode first, then fetch conditions).
func (h *LookupHandler) Weather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var lat, lon float64
	if city := q.Get("city"); city != "" {
		coords, err := h.geo.Lookup(r.Context(), city)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		lat, lon = coords.Latitude, coords.Longitude
	} else {
		var err1, err2 error
		lat, err1 = strconv.ParseFloat(q.Get("latitude"), 64)
		lon, err2 = strconv.ParseFloat(q.Get("longitude"), 64)
		if err1 != nil || err2 != nil {
			models.WriteError(w, http.StatusBadRequest, "latitude and longitude (or city) query parameters are required")
			return
		}
	}

	snapshot, err := h.weather.Current(r.Context(), lat, lon)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, snapshot)
}

// Wikipedia handles GET /api/v1/wikipedia?query=Go
func (h *LookupHandler) Wikipedia(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		models.WriteError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	article, err := h.wiki.Summary(r.Context(), query)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, article)
}

// writeUpstreamError maps the service failure taxonomy onto HTTP statuses.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var notFound *service.NotFoundError
	var schema *service.SchemaError
	switch {
	case errors.As(err, &notFound):
		models.WriteError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &schema):
		models.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		models.WriteError(w, http.StatusGatewayTimeout, err.Error())
	}
}
