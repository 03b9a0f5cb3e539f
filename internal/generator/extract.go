package generator

import (
	"errors"
	"strings"
)

var errNoJSONObject = errors.New("no JSON object found in response")

// ExtractJSON returns the span from the first '{' to the last '}' of text.
// Models like to wrap the object in prose or code fences; this strips that.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", errNoJSONObject
	}
	return text[start : end+1], nil
}
