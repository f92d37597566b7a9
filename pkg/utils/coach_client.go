package utils

import (
	"context"
	"strings"
)

// CoachClientInterface is the external structured-reasoning service. Generate
// submits a system instruction plus a user prompt and returns the raw model
// text, which callers parse against the fixed recommendation schema.
type CoachClientInterface interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// ExtractJSONObject strips markdown fences and any prose around the first
// top-level JSON object. Models occasionally wrap JSON even when told not to.
func ExtractJSONObject(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	if start == -1 {
		return response
	}
	end := findMatchingBrace(response, start)
	if end == -1 {
		return response
	}
	return strings.TrimSpace(response[start : end+1])
}

func findMatchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
