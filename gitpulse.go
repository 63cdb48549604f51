// Package gitpulse is the backend for the GitPulse desktop application: it
// fetches a user's GitHub contribution calendar over GraphQL, caches the
// flattened result as a per-username JSON file, and keeps the access token
// in the operating system's credential store. The GUI shell is an external
// caller; it either holds the Service directly or dispatches the operations
// through the gocommand adapter.
package gitpulse

import (
	"net/http"

	"github.com/Jatinprajapati7869/gitpulse/core"
	"github.com/Jatinprajapati7869/gitpulse/providers/github"
	"github.com/Jatinprajapati7869/gitpulse/security"
	"github.com/Jatinprajapati7869/gitpulse/store/filecache"
	"github.com/Jatinprajapati7869/gitpulse/transport"
)

type Config = core.Config

type Service = core.Service

type Option = core.Option

type ContributionDay = core.ContributionDay

type FetchResult = core.FetchResult

type FetchContributionsInput = core.FetchContributionsInput

var (
	WithLogger             = core.WithLogger
	WithLoggerProvider     = core.WithLoggerProvider
	WithMetricsRecorder    = core.WithMetricsRecorder
	WithErrorFactory       = core.WithErrorFactory
	WithErrorMapper        = core.WithErrorMapper
	WithConfigProvider     = core.WithConfigProvider
	WithOptionsResolver    = core.WithOptionsResolver
	WithCacheStore         = core.WithCacheStore
	WithTokenStore         = core.WithTokenStore
	WithContributionSource = core.WithContributionSource
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// New builds a fully wired service: GraphQL transport over the default HTTP
// client, the GitHub contribution provider, the file cache under the
// configured data directory, and the OS keyring token store. Options can
// replace any collaborator, which is how tests swap in fakes.
//
// The collaborators are built from the same resolved configuration the
// service ends up reporting, so values supplied through WithConfigProvider
// or WithOptionsResolver reach the cache TTL, endpoint, and timeouts.
func New(cfg Config, options ...Option) (*Service, error) {
	resolved, err := core.ResolveConfig(cfg, options...)
	if err != nil {
		return nil, err
	}

	cache, err := filecache.New(resolved.DataDir, resolved.CacheTTL())
	if err != nil {
		return nil, err
	}

	adapter := transport.NewGraphQLAdapter(resolved.GraphQLEndpoint, &http.Client{
		Timeout: resolved.RequestTimeout(),
	})
	source, err := github.New(github.Config{
		Endpoint:  resolved.GraphQLEndpoint,
		UserAgent: resolved.UserAgent,
		Timeout:   resolved.RequestTimeout(),
	}, adapter)
	if err != nil {
		return nil, err
	}

	defaults := []Option{
		WithCacheStore(cache),
		WithTokenStore(security.NewKeyringTokenStore()),
		WithContributionSource(source),
	}
	return core.NewService(cfg, append(defaults, options...)...)
}
