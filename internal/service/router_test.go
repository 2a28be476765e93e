package service_test

import (
	"testing"

	"github.com/almanacai/almanac/internal/service"
)

func TestIntentRouter_Weather(t *testing.T) {
	r := service.NewIntentRouter()

	prompts := []string{
		"What's the weather like in London?",
		"Is it raining in Tokyo right now?",
		"current temperature in Karachi",
		"Do I need an umbrella today in Oslo?",
		"how windy is it in Chicago",
	}
	for _, p := range prompts {
		res := r.Route(p)
		if res.Intent != service.IntentWeather {
			t.Errorf("expected weather for %q, got %q (confidence %.2f: %s)",
				p, res.Intent, res.Confidence, res.Reasoning)
		}
	}
}

func TestIntentRouter_Knowledge(t *testing.T) {
	r := service.NewIntentRouter()

	prompts := []string{
		"Who is Marie Curie?",
		"Tell me about the Roman Empire",
		"What is the capital of Mongolia?",
		"history of the printing press",
		"when was the Eiffel Tower built",
	}
	for _, p := range prompts {
		res := r.Route(p)
		if res.Intent != service.IntentKnowledge {
			t.Errorf("expected knowledge for %q, got %q (confidence %.2f: %s)",
				p, res.Intent, res.Confidence, res.Reasoning)
		}
	}
}

func TestIntentRouter_Math(t *testing.T) {
	r := service.NewIntentRouter()

	prompts := []string{
		"calculate 10 + 5 * 2",
		"how much is 37 times 14",
		"compute the sum of 2 and 2",
		"evaluate (3 + 4) ^ 2",
	}
	for _, p := range prompts {
		res := r.Route(p)
		if res.Intent != service.IntentMath {
			t.Errorf("expected math for %q, got %q (confidence %.2f: %s)",
				p, res.Intent, res.Confidence, res.Reasoning)
		}
	}
}

func TestIntentRouter_NoKeywords(t *testing.T) {
	r := service.NewIntentRouter()
	res := r.Route("hello there")
	if res.Intent != service.IntentGeneral {
		t.Errorf("default should be general, got %s", res.Intent)
	}
	if res.Confidence <= 0 {
		t.Errorf("confidence should be > 0, got %.2f", res.Confidence)
	}
	if res.Reasoning == "" {
		t.Error("reasoning should not be empty")
	}
}
