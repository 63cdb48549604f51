package core

import "strings"

// ContributionDay is one cell of the GitHub contribution calendar. The JSON
// field names are fixed by both the GraphQL response and the cache file
// format, so they must not change.
type ContributionDay struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
}

// FetchResult is the envelope handed back to the hosting application for a
// contribution fetch. Remote failures land inside the envelope (OK=false plus
// a display message) rather than failing the operation, so the host can
// render the message instead of crashing.
type FetchResult struct {
	OK    bool              `json:"ok"`
	Data  []ContributionDay `json:"data,omitempty"`
	Error string            `json:"error,omitempty"`
}

func SuccessResult(days []ContributionDay) FetchResult {
	if days == nil {
		days = []ContributionDay{}
	}
	return FetchResult{OK: true, Data: days}
}

func FailureResult(message string) FetchResult {
	message = strings.TrimSpace(message)
	if message == "" {
		message = "An unexpected error occurred"
	}
	return FetchResult{OK: false, Error: message}
}

// FetchContributionsInput carries the caller-supplied parameters for one
// fetch. Token is optional; when set it is forwarded as a bearer credential.
type FetchContributionsInput struct {
	Username string
	Token    string
}
