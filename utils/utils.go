package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var camelBoundary = regexp.MustCompile("([a-z0-9])([A-Z])")

// CamelToSnake convert from camelCase to snake_case
func CamelToSnake(input string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(input, "${1}_${2}"))
}

// SnakeToCamel convert from snake_case to camelCase
func SnakeToCamel(input string) string {
	parts := strings.Split(input, "_")
	for i, part := range parts {
		parts[i] = cases.Title(language.Und).String(part)
	}
	return strings.Join(parts, "")
}

// IsCamelCase check is camelCase
func IsCamelCase(input string) bool {
	for _, r := range input {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// InvertCaseStyle invert from snake_case to camelCase and vice versa
func InvertCaseStyle(input string) string {
	if IsCamelCase(input) {
		return CamelToSnake(input)
	}
	return SnakeToCamel(input)
}

// DecodeLabel unescapes HTML entities in a pagination label and strips the
// guillemets Laravel wraps around Previous/Next.
func DecodeLabel(label string) string {
	decoded := html.UnescapeString(label)
	decoded = strings.ReplaceAll(decoded, "«", "")
	decoded = strings.ReplaceAll(decoded, "»", "")
	return strings.TrimSpace(decoded)
}
