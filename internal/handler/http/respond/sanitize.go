package respond

import (
	"regexp"
)

var (
	// API keys passed to the lookup service as query parameters
	apiKeyParamPattern = regexp.MustCompile(`(?i)(apikey|api_key|token)=[^&\s"':]+`)

	// Authorization header values quoted into error messages
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/=-]+`)

	// Database passwords embedded in a DSN
	dbPasswordPattern = regexp.MustCompile(`://([^:/?#\s]+):([^@/?#\s]+)@`)
)

// SanitizeError returns the error message with credentials masked so it can
// be logged safely.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = apiKeyParamPattern.ReplaceAllString(msg, "$1=****")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
