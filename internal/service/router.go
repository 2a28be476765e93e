package service

import "strings"

// Intent represents the dominant capability a question is likely to need
type Intent string

const (
	IntentWeather   Intent = "weather"
	IntentKnowledge Intent = "knowledge"
	IntentMath      Intent = "math"
	IntentGeneral   Intent = "general"
)

var weatherKeywords = []string{
	"weather", "temperature", "forecast", "rain", "raining", "snow",
	"snowing", "wind", "windy", "humidity", "sunny", "cloudy", "storm",
	"cold", "hot", "warm", "degrees", "celsius", "fahrenheit",
	"umbrella", "climate right now",
}

var knowledgeKeywords = []string{
	"who is", "who was", "what is", "what are", "tell me about",
	"wikipedia", "history of", "capital of", "population of",
	"when was", "when did", "where is", "famous for", "known for",
	"biography", "definition of", "explain",
}

var mathKeywords = []string{
	"calculate", "compute", "sum of", "product of", "divided by",
	"times", "plus", "minus", "squared", "square root", "percent",
	"how much is", "what is the result", "evaluate", "+", "*", "^",
}

// RoutingResult contains intent classification info
type RoutingResult struct {
	Intent         Intent
	Confidence     float64
	WeatherScore   int
	KnowledgeScore int
	MathScore      int
	Reasoning      string
}

// IntentRouter classifies natural language questions by the tool family
// most likely needed. The agent still decides for itself; the routing is
// attached as metadata and steers system-prompt emphasis.
type IntentRouter struct{}

func NewIntentRouter() *IntentRouter {
	return &IntentRouter{}
}

// Route analyses the question and returns the best matching intent
func (r *IntentRouter) Route(question string) RoutingResult {
	lower := strings.ToLower(question)

	weatherScore := 0
	knowledgeScore := 0
	mathScore := 0

	for _, kw := range weatherKeywords {
		if strings.Contains(lower, kw) {
			weatherScore++
		}
	}
	for _, kw := range knowledgeKeywords {
		if strings.Contains(lower, kw) {
			knowledgeScore++
		}
	}
	for _, kw := range mathKeywords {
		if strings.Contains(lower, kw) {
			mathScore++
		}
	}

	total := weatherScore + knowledgeScore + mathScore
	if total == 0 {
		return RoutingResult{
			Intent:     IntentGeneral,
			Confidence: 0.5,
			Reasoning:  "no strong keywords, leaving tool choice entirely to the model",
		}
	}

	switch {
	case weatherScore >= knowledgeScore && weatherScore >= mathScore:
		return RoutingResult{
			Intent:         IntentWeather,
			Confidence:     float64(weatherScore) / float64(total),
			WeatherScore:   weatherScore,
			KnowledgeScore: knowledgeScore,
			MathScore:      mathScore,
			Reasoning:      "question contains weather-related keywords",
		}
	case mathScore > knowledgeScore:
		return RoutingResult{
			Intent:         IntentMath,
			Confidence:     float64(mathScore) / float64(total),
			WeatherScore:   weatherScore,
			KnowledgeScore: knowledgeScore,
			MathScore:      mathScore,
			Reasoning:      "question contains arithmetic keywords",
		}
	default:
		return RoutingResult{
			Intent:         IntentKnowledge,
			Confidence:     float64(knowledgeScore) / float64(total),
			WeatherScore:   weatherScore,
			KnowledgeScore: knowledgeScore,
			MathScore:      mathScore,
			Reasoning:      "question contains encyclopedia-lookup keywords",
		}
	}
}
