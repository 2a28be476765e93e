// Package security screens incoming questions and records audit events
// for agent runs.
package security

import (
	"fmt"
	"regexp"
	"strings"
)

const MaxQuestionLength = 2000

// injectionPatterns cover the common prompt-injection phrasings. The agent
// only has lookup tools, so the screen is about keeping the transcript
// clean, not about blocking code execution.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)override\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)new\s+context\s*:`),
	regexp.MustCompile(`(?i)change\s+context\s*:`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+a`),
	regexp.MustCompile(`(?i)instead\s+of\s+the\s+above`),
	regexp.MustCompile(`(?i)reveal\s+your\s+system\s+prompt`),
}

// QuestionValidator checks user questions before they reach the agent.
type QuestionValidator struct {
	maxLength int
}

func NewQuestionValidator(maxLength int) *QuestionValidator {
	if maxLength <= 0 {
		maxLength = MaxQuestionLength
	}
	return &QuestionValidator{maxLength: maxLength}
}

// Validate returns an error describing the first problem found.
func (v *QuestionValidator) Validate(question string) error {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return fmt.Errorf("question must not be empty")
	}
	if len(question) > v.maxLength {
		return fmt.Errorf("question exceeds maximum length of %d characters", v.maxLength)
	}
	for _, p := range injectionPatterns {
		if p.MatchString(question) {
			return fmt.Errorf("question contains a disallowed instruction pattern")
		}
	}
	return nil
}
