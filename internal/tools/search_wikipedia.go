package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/almanacai/almanac/internal/service"
)

// SearchWikipediaTool looks up the introductory summary of the best-matching
// encyclopedia article for a topic.
func SearchWikipediaTool(wiki *service.WikipediaService) Tool {
	return Tool{
		Name:        "search_wikipedia",
		Description: "Searches Wikipedia for a topic and returns the article title, introductory summary and canonical URL as JSON.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Topic or article title to look up",
				},
			},
			"required": []string{"query"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			query, _ := input["query"].(string)
			if query == "" {
				return errorPayload("query is required"), nil
			}

			article, err := wiki.Summary(ctx, query)
			if err != nil {
				var notFound *service.NotFoundError
				if errors.As(err, &notFound) {
					return errorPayload("No Wikipedia article found for the query"), nil
				}
				return errorPayload(err.Error()), nil
			}

			b, err := json.Marshal(article)
			if err != nil {
				return errorPayload("failed to encode article summary: " + err.Error()), nil
			}
			return string(b), nil
		},
	}
}
