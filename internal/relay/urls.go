package relay

import (
	"net/url"
	"strings"
)

const (
	scriptPath = "/webhook/ivr/"
	statusPath = "/webhook/status/"
)

// ScriptURL is where the provider fetches call markup once the callee answers.
func ScriptURL(baseURL, leadID string) string {
	return joinURL(baseURL, scriptPath, leadID)
}

// StatusURL is where the provider posts the keypress and call status.
func StatusURL(baseURL, leadID string) string {
	return joinURL(baseURL, statusPath, leadID)
}

func joinURL(baseURL, path, leadID string) string {
	return strings.TrimRight(baseURL, "/") + path + url.PathEscape(leadID)
}
