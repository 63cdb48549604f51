package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Jatinprajapati7869/gitpulse/core"
	goerrors "github.com/goliatone/go-errors"
)

const ProviderID = "github"

// DefaultEndpoint is GitHub's GraphQL API. The contribution calendar is only
// available through GraphQL, not the REST v3 API.
const DefaultEndpoint = "https://api.github.com/graphql"

const contributionsQuery = `
    query($login: String!) {
        user(login: $login) {
            contributionsCollection {
                contributionCalendar {
                    weeks {
                        contributionDays {
                            date
                            contributionCount
                        }
                    }
                }
            }
        }
    }
`

type Config struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
}

// Provider fetches one user's contribution calendar and flattens the nested
// weeks/days response into a single ordered sequence.
type Provider struct {
	transport core.TransportAdapter
	config    Config
}

func New(cfg Config, adapter core.TransportAdapter) (*Provider, error) {
	if adapter == nil {
		return nil, fmt.Errorf("github: transport adapter is required")
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = "gitpulse"
	}
	return &Provider{transport: adapter, config: cfg}, nil
}

// FetchCalendar issues the GraphQL request and returns the flattened day
// sequence. Every failure mode maps to a distinct display message: transport,
// HTTP status, body parse, GraphQL-embedded errors, response shape. No
// retries; the caller decides what to do with a failure.
func (p *Provider) FetchCalendar(ctx context.Context, username, token string) ([]core.ContributionDay, error) {
	if p == nil || p.transport == nil {
		return nil, fmt.Errorf("github: provider is not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, newFetchError("Username is required", goerrors.CategoryBadInput, core.ErrorBadInput)
	}

	headers := map[string]string{
		"User-Agent": p.config.UserAgent,
	}
	if token = strings.TrimSpace(token); token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	response, err := p.transport.Do(ctx, core.TransportRequest{
		URL:     p.config.Endpoint,
		Headers: headers,
		Timeout: p.config.Timeout,
		Metadata: map[string]any{
			"query": contributionsQuery,
			"variables": map[string]any{
				"login": username,
			},
		},
	})
	if err != nil {
		return nil, wrapFetchError(err, fmt.Sprintf("Network error: %s", rootMessage(err)), goerrors.CategoryExternal, core.ErrorNetworkFailure)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, newFetchError(
			fmt.Sprintf("GitHub API error: %d %s", response.StatusCode, http.StatusText(response.StatusCode)),
			goerrors.CategoryExternal,
			core.ErrorRemoteStatus,
		)
	}

	return decodeCalendar(response.Body)
}

// decodeCalendar parses the GraphQL response body and flattens the calendar.
// GraphQL-embedded errors take precedence over shape inspection.
func decodeCalendar(body []byte) ([]core.ContributionDay, error) {
	var envelope calendarEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, wrapFetchError(err, fmt.Sprintf("JSON parse error: %s", err), goerrors.CategoryExternal, core.ErrorParseFailure)
	}

	// Any present errors member is reported verbatim, even a null one.
	if len(envelope.Errors) > 0 {
		return nil, newFetchError(
			fmt.Sprintf("GraphQL error: %s", string(envelope.Errors)),
			goerrors.CategoryExternal,
			core.ErrorGraphQLFailure,
		)
	}

	weeks, ok := envelope.weeks()
	if !ok {
		return nil, newFetchError("Invalid response structure", goerrors.CategoryExternal, core.ErrorResponseShape)
	}

	days := make([]core.ContributionDay, 0)
	for _, week := range weeks {
		for _, raw := range week.ContributionDays {
			days = append(days, decodeDay(raw))
		}
	}
	return days, nil
}

// decodeDay is deliberately lenient: per-field defects default instead of
// dropping the day. Missing date becomes "", missing or non-numeric count
// becomes 0.
func decodeDay(raw json.RawMessage) core.ContributionDay {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return core.ContributionDay{}
	}
	day := core.ContributionDay{}
	if date, ok := fields["date"].(string); ok {
		day.Date = date
	}
	if count, ok := fields["contributionCount"].(float64); ok {
		day.ContributionCount = int(count)
	}
	return day
}

type calendarEnvelope struct {
	Data *struct {
		User *struct {
			ContributionsCollection *struct {
				ContributionCalendar *struct {
					Weeks []calendarWeek `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type calendarWeek struct {
	ContributionDays []json.RawMessage `json:"contributionDays"`
}

func (e calendarEnvelope) weeks() ([]calendarWeek, bool) {
	if e.Data == nil || e.Data.User == nil {
		return nil, false
	}
	collection := e.Data.User.ContributionsCollection
	if collection == nil || collection.ContributionCalendar == nil {
		return nil, false
	}
	if collection.ContributionCalendar.Weeks == nil {
		return nil, false
	}
	return collection.ContributionCalendar.Weeks, true
}

func newFetchError(message string, category goerrors.Category, textCode string) error {
	return goerrors.New(message, category).WithTextCode(textCode)
}

func wrapFetchError(source error, message string, category goerrors.Category, textCode string) error {
	return goerrors.Wrap(source, category, message).WithTextCode(textCode)
}

func rootMessage(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && strings.TrimSpace(richErr.Message) != "" {
		return richErr.Message
	}
	return err.Error()
}

var _ core.ContributionSource = (*Provider)(nil)
