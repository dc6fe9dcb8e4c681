// Package tokenizer estimates token counts for aggregated text.
package tokenizer

import (
	"strings"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const defaultModel = "gpt-3.5-turbo"

// modelEncodings maps supported model identifiers to their tiktoken encoding
// names. Models absent from this table fall back to the heuristic counter.
var modelEncodings = map[string]string{
	"gpt-3.5-turbo":          "cl100k_base",
	"gpt-3.5-turbo-16k":      "cl100k_base",
	"gpt-4":                  "cl100k_base",
	"gpt-4-turbo":            "cl100k_base",
	"gpt-4o":                 "o200k_base",
	"gpt-4o-mini":            "o200k_base",
	"text-embedding-ada-002": "cl100k_base",
}

// NewCounter returns a Counter for the requested model together with the name
// of the estimator actually selected and whether the heuristic fallback was
// substituted. Registered models use a tiktoken encoding; unknown models and
// encoding initialization failures fall back to a character-based
// approximation.
func NewCounter(modelName string) (Counter, string, bool) {
	model := strings.ToLower(strings.TrimSpace(modelName))
	if model == "" {
		model = defaultModel
	}

	encodingName, registered := modelEncodings[model]
	if registered {
		counter, initError := newTiktokenCounter(model, encodingName)
		if initError == nil {
			return counter, counter.Name(), false
		}
	}

	fallback := heuristicCounter{}
	return fallback, fallback.Name(), true
}
