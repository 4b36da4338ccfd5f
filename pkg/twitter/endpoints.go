package twitter

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the base URL of the RapidAPI lookup service
	DefaultBaseURL = "https://twitter135.p.rapidapi.com"

	// UsersByRestIDsEndpoint is the endpoint for batched user lookups
	UsersByRestIDsEndpoint = "/v2/UsersByRestIds/"
)

// GetUsersByRestIDsURL constructs the URL for a batched user lookup.
// All IDs go into a single comma-joined query parameter.
func GetUsersByRestIDsURL(baseURL string, ids []string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))

	return fmt.Sprintf("%s%s?%s", strings.TrimRight(baseURL, "/"), UsersByRestIDsEndpoint, params.Encode())
}
