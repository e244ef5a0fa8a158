package respond

import (
	"regexp"
)

var (
	// Provider API keys can leak through request URLs embedded in wrapped
	// fetch errors.
	apiKeyQueryPattern  = regexp.MustCompile(`(?i)(apikey|api_key|key)=[a-zA-Z0-9-_]+`)
	apiKeyHeaderPattern = regexp.MustCompile(`(?i)(x-api-key|authorization):\s*\S+`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = apiKeyQueryPattern.ReplaceAllString(msg, "$1=****")
	msg = apiKeyHeaderPattern.ReplaceAllString(msg, "$1: ****")

	return msg
}
