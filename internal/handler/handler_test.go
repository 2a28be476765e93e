package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/almanacai/almanac/internal/handler"
	"github.com/almanacai/almanac/internal/models"
	"github.com/almanacai/almanac/internal/service"
	"github.com/almanacai/almanac/internal/tools"
)

func fakeUpstream(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ─── Calculate ────────────────────────────────────────────────────────────────

func postCalculate(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := handler.NewCalculateHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Calculate(rr, req)
	return rr
}

func TestCalculateEndpoint(t *testing.T) {
	rr := postCalculate(t, `{"expression":"10 + 5 * 2"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp models.CalculateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result != "20" {
		t.Errorf("result = %q, want 20", resp.Result)
	}
	if resp.Expression != "10 + 5 * 2" {
		t.Errorf("expression = %q", resp.Expression)
	}
}

func TestCalculateEndpointBadExpression(t *testing.T) {
	rr := postCalculate(t, `{"expression":"10 + * 2"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestCalculateEndpointUndefinedSymbol(t *testing.T) {
	rr := postCalculate(t, `{"expression":"x + 2"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "undefined symbol") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestCalculateEndpointMissingExpression(t *testing.T) {
	rr := postCalculate(t, `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestCalculateEndpointInvalidBody(t *testing.T) {
	rr := postCalculate(t, `not json`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

// ─── Tools ────────────────────────────────────────────────────────────────────

func TestToolsList(t *testing.T) {
	geo := service.NewGeocodingService("http://127.0.0.1:0", time.Second)
	weather := service.NewWeatherService("http://127.0.0.1:0", time.Second)
	wiki := service.NewWikipediaService("http://127.0.0.1:0", time.Second)
	toolSet := []tools.Tool{
		tools.GeocodeCityTool(geo),
		tools.CurrentWeatherTool(weather),
		tools.SearchWikipediaTool(wiki),
		tools.CalculateTool(),
	}

	h := handler.NewToolsHandler(toolSet)
	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp struct {
		Tools []models.ToolInfo `json:"tools"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 4 {
		t.Errorf("count = %d, want 4", resp.Count)
	}

	names := make(map[string]bool)
	for _, info := range resp.Tools {
		names[info.Name] = true
		if info.Description == "" {
			t.Errorf("tool %s has no description", info.Name)
		}
		if info.InputSchema == nil {
			t.Errorf("tool %s has no input schema", info.Name)
		}
	}
	for _, want := range []string{"get_coordinates_from_city", "get_current_weather", "search_wikipedia", "calculate"} {
		if !names[want] {
			t.Errorf("tool %s missing from listing", want)
		}
	}
}

// ─── Lookups ──────────────────────────────────────────────────────────────────

func TestLookupGeocode(t *testing.T) {
	srv := fakeUpstream(t, `{"results":[{"name":"London","latitude":51.5074,"longitude":-0.1278,"country":"United Kingdom"}]}`, http.StatusOK)
	geo := service.NewGeocodingService(srv.URL, 5*time.Second)
	h := handler.NewLookupHandler(geo, nil, nil)

	rr := httptest.NewRecorder()
	h.Geocode(rr, httptest.NewRequest(http.MethodGet, "/api/v1/geocode?city=London", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var coords models.Coordinates
	if err := json.Unmarshal(rr.Body.Bytes(), &coords); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if coords.Latitude != 51.5074 {
		t.Errorf("latitude = %v", coords.Latitude)
	}
}

func TestLookupGeocodeMissingCity(t *testing.T) {
	h := handler.NewLookupHandler(service.NewGeocodingService("http://127.0.0.1:0", time.Second), nil, nil)
	rr := httptest.NewRecorder()
	h.Geocode(rr, httptest.NewRequest(http.MethodGet, "/api/v1/geocode", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestLookupGeocodeNotFound(t *testing.T) {
	srv := fakeUpstream(t, `{"results":[]}`, http.StatusOK)
	geo := service.NewGeocodingService(srv.URL, 5*time.Second)
	h := handler.NewLookupHandler(geo, nil, nil)

	rr := httptest.NewRecorder()
	h.Geocode(rr, httptest.NewRequest(http.MethodGet, "/api/v1/geocode?city=Nowhere", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestLookupGeocodeUpstreamDown(t *testing.T) {
	srv := fakeUpstream(t, ``, http.StatusServiceUnavailable)
	geo := service.NewGeocodingService(srv.URL, 5*time.Second)
	h := handler.NewLookupHandler(geo, nil, nil)

	rr := httptest.NewRecorder()
	h.Geocode(rr, httptest.NewRequest(http.MethodGet, "/api/v1/geocode?city=London", nil))
	if rr.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rr.Code)
	}
}

func TestLookupWeatherByCoordinates(t *testing.T) {
	srv := fakeUpstream(t, `{"current":{"temperature_2m":15.5,"wind_speed_10m":12.3,"relative_humidity_2m":75,"is_day":1,"weather_code":3,"time":"2025-06-01T10:00"}}`, http.StatusOK)
	weather := service.NewWeatherService(srv.URL, 5*time.Second)
	h := handler.NewLookupHandler(nil, weather, nil)

	rr := httptest.NewRecorder()
	h.Weather(rr, httptest.NewRequest(http.MethodGet, "/api/v1/weather?latitude=51.5&longitude=-0.12", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var snap models.WeatherSnapshot
	if err := json.Unmarshal(rr.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Temperature != 15.5 || snap.Conditions != "overcast" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestLookupWeatherMissingParams(t *testing.T) {
	h := handler.NewLookupHandler(nil, service.NewWeatherService("http://127.0.0.1:0", time.Second), nil)
	rr := httptest.NewRecorder()
	h.Weather(rr, httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestLookupWikipedia(t *testing.T) {
	srv := fakeUpstream(t, `{"query":{"pages":{"1":{"title":"Gopher","extract":"A gopher is a burrowing rodent.","fullurl":"https://en.wikipedia.org/wiki/Gopher"}}}}`, http.StatusOK)
	wiki := service.NewWikipediaService(srv.URL, 5*time.Second)
	h := handler.NewLookupHandler(nil, nil, wiki)

	rr := httptest.NewRecorder()
	h.Wikipedia(rr, httptest.NewRequest(http.MethodGet, "/api/v1/wikipedia?query=Gopher", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var article models.ArticleSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &article); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if article.Title != "Gopher" {
		t.Errorf("article = %+v", article)
	}
}

func TestLookupWikipediaSchemaError(t *testing.T) {
	srv := fakeUpstream(t, `{"query":{"pages":{"1":{"title":"Gopher"}}}}`, http.StatusOK)
	wiki := service.NewWikipediaService(srv.URL, 5*time.Second)
	h := handler.NewLookupHandler(nil, nil, wiki)

	rr := httptest.NewRecorder()
	h.Wikipedia(rr, httptest.NewRequest(http.MethodGet, "/api/v1/wikipedia?query=Gopher", nil))
	if rr.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rr.Code)
	}
}

// ─── Ask ──────────────────────────────────────────────────────────────────────

func TestAskWithoutAgentConfigured(t *testing.T) {
	h := handler.NewAskHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":"hi"}`))
	rr := httptest.NewRecorder()
	h.Ask(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}

func TestAskMissingQuestion(t *testing.T) {
	h := handler.NewAskHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	h.Ask(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

// ─── Health ───────────────────────────────────────────────────────────────────

func TestHealthWithReachableUpstream(t *testing.T) {
	srv := fakeUpstream(t, `{"results":[]}`, http.StatusOK)
	h := handler.NewHealthHandler(service.NewGeocodingService(srv.URL, 5*time.Second))

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp models.HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Checks["geocoding"] != "ok" {
		t.Errorf("geocoding check = %q", resp.Checks["geocoding"])
	}
}

func TestHealthDegraded(t *testing.T) {
	srv := fakeUpstream(t, ``, http.StatusInternalServerError)
	h := handler.NewHealthHandler(service.NewGeocodingService(srv.URL, 5*time.Second))

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}
