package gitpulse

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jatinprajapati7869/gitpulse/core"
	"github.com/Jatinprajapati7869/gitpulse/security"
)

type scriptedSource struct {
	days     []core.ContributionDay
	err      error
	requests []string
}

func (s *scriptedSource) FetchCalendar(_ context.Context, username, _ string) ([]core.ContributionDay, error) {
	s.requests = append(s.requests, username)
	if s.err != nil {
		return nil, s.err
	}
	return s.days, nil
}

func TestNewRequiresDataDir(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for missing data dir")
	}
}

func TestNewWiresDefaultsAndResolvesConfig(t *testing.T) {
	service, err := New(
		Config{DataDir: t.TempDir()},
		WithTokenStore(security.NewMemoryTokenStore()),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	cfg := service.Config()
	if cfg.ServiceName != "gitpulse" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.CacheTTLSeconds != 300 {
		t.Fatalf("expected default ttl, got %d", cfg.CacheTTLSeconds)
	}
	if cfg.GraphQLEndpoint != "https://api.github.com/graphql" {
		t.Fatalf("expected default endpoint, got %q", cfg.GraphQLEndpoint)
	}
}

type staticConfigProvider struct {
	loaded core.Config
}

func (p staticConfigProvider) Load(_ context.Context, _ core.Config) (core.Config, error) {
	return p.loaded, nil
}

func TestNewWiresCacheWithProviderSuppliedTTL(t *testing.T) {
	dataDir := t.TempDir()
	source := &scriptedSource{days: []core.ContributionDay{
		{Date: "2024-03-01", ContributionCount: 2},
	}}
	service, err := New(
		Config{DataDir: dataDir},
		WithTokenStore(security.NewMemoryTokenStore()),
		WithContributionSource(source),
		WithConfigProvider(staticConfigProvider{loaded: core.Config{CacheTTLSeconds: 1}}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := service.Config().CacheTTLSeconds; got != 1 {
		t.Fatalf("expected provider-supplied ttl, got %d", got)
	}
	ctx := context.Background()

	first := service.FetchContributions(ctx, FetchContributionsInput{Username: "octocat"})
	if !first.OK {
		t.Fatalf("expected success, got %q", first.Error)
	}

	// Age the cache file past the one-second TTL; the wired cache must use
	// the same TTL the service reports, so the next fetch goes upstream.
	expired := time.Now().Add(-2 * time.Second)
	cachePath := filepath.Join(dataDir, "cache", "octocat_contributions.json")
	if err := os.Chtimes(cachePath, expired, expired); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	again := service.FetchContributions(ctx, FetchContributionsInput{Username: "octocat"})
	if !again.OK {
		t.Fatalf("expected refetch success, got %q", again.Error)
	}
	if len(source.requests) != 2 {
		t.Fatalf("expected stale cache to trigger a refetch, got %d requests", len(source.requests))
	}
}

func TestNewFetchAndCacheThroughFacade(t *testing.T) {
	source := &scriptedSource{days: []core.ContributionDay{
		{Date: "2024-03-01", ContributionCount: 2},
		{Date: "2024-03-02", ContributionCount: 0},
	}}
	service, err := New(
		Config{DataDir: t.TempDir()},
		WithTokenStore(security.NewMemoryTokenStore()),
		WithContributionSource(source),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	result := service.FetchContributions(ctx, FetchContributionsInput{Username: "octocat"})
	if !result.OK {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if len(result.Data) != 2 {
		t.Fatalf("expected two days, got %d", len(result.Data))
	}

	// Second fetch inside the TTL must come from the file cache.
	again := service.FetchContributions(ctx, FetchContributionsInput{Username: "octocat"})
	if !again.OK {
		t.Fatalf("expected cached success, got %q", again.Error)
	}
	if len(source.requests) != 1 {
		t.Fatalf("expected a single upstream request, got %d", len(source.requests))
	}

	confirmation, err := service.ClearCache(ctx)
	if err != nil {
		t.Fatalf("clear cache: %v", err)
	}
	if confirmation != "Cache cleared successfully" {
		t.Fatalf("unexpected confirmation %q", confirmation)
	}

	// After clearing, the next fetch goes upstream again.
	service.FetchContributions(ctx, FetchContributionsInput{Username: "octocat"})
	if len(source.requests) != 2 {
		t.Fatalf("expected refetch after clear, got %d requests", len(source.requests))
	}
}

func TestNewTokenOperationsThroughFacade(t *testing.T) {
	service, err := New(
		Config{DataDir: t.TempDir()},
		WithTokenStore(security.NewMemoryTokenStore()),
		WithContributionSource(&scriptedSource{}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	if _, err := service.GetGithubToken(ctx); !errors.Is(err, core.ErrTokenNotFound) {
		t.Fatalf("expected not-found before save, got %v", err)
	}
	if err := service.SaveGithubToken(ctx, "ghp_abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, err := service.GetGithubToken(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if token != "ghp_abc" {
		t.Fatalf("unexpected token %q", token)
	}
	if err := service.DeleteGithubToken(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
