package core

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// ErrTokenNotFound is the sentinel a TokenStore returns when no credential
// exists for the requested entry. Implementations wrap their platform's own
// not-found signal into this error so callers can branch without knowing the
// backing store.
var ErrTokenNotFound = errors.New("core: token not found")

// TokenStore addresses one secret per (service, account) pair in the host
// platform's credential storage. No retries, no in-process copies; failures
// surface immediately.
type TokenStore interface {
	Save(ctx context.Context, service, account, secret string) error
	Get(ctx context.Context, service, account string) (string, error)
	Delete(ctx context.Context, service, account string) error
}

// CacheState is the outcome of probing the per-username cache file. It feeds
// the single fetch/return decision point in the service instead of nested
// conditionals.
type CacheState string

const (
	CacheFresh   CacheState = "fresh"
	CacheStale   CacheState = "stale"
	CacheAbsent  CacheState = "absent"
	CacheCorrupt CacheState = "corrupt"
)

// CacheProbe is the result of a cache check. Days is populated only when
// State is CacheFresh.
type CacheProbe struct {
	State CacheState
	Days  []ContributionDay
}

// CacheStore persists flattened calendars, one file per username. Probe never
// fails the fetch flow: every non-fresh outcome routes to a live fetch.
type CacheStore interface {
	Probe(ctx context.Context, username string) (CacheProbe, error)
	Write(ctx context.Context, username string, days []ContributionDay) error
	Clear(ctx context.Context) error
}

// ContributionSource fetches and flattens one user's contribution calendar
// from the remote service.
type ContributionSource interface {
	FetchCalendar(ctx context.Context, username, token string) ([]ContributionDay, error)
}

type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Body                 []byte
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
