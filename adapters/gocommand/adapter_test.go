package gocommand

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Jatinprajapati7869/gitpulse/core"
)

type stubCacheStore struct {
	probe    core.CacheProbe
	written  [][]core.ContributionDay
	clearErr error
	cleared  int
}

func (s *stubCacheStore) Probe(context.Context, string) (core.CacheProbe, error) {
	return s.probe, nil
}

func (s *stubCacheStore) Write(_ context.Context, _ string, days []core.ContributionDay) error {
	s.written = append(s.written, days)
	return nil
}

func (s *stubCacheStore) Clear(context.Context) error {
	s.cleared++
	return s.clearErr
}

type stubTokenStore struct {
	tokens map[string]string
}

func (s *stubTokenStore) key(service, account string) string {
	return service + "/" + account
}

func (s *stubTokenStore) Save(_ context.Context, service, account, secret string) error {
	if s.tokens == nil {
		s.tokens = map[string]string{}
	}
	s.tokens[s.key(service, account)] = secret
	return nil
}

func (s *stubTokenStore) Get(_ context.Context, service, account string) (string, error) {
	secret, ok := s.tokens[s.key(service, account)]
	if !ok {
		return "", fmt.Errorf("stub: %s/%s: %w", service, account, core.ErrTokenNotFound)
	}
	return secret, nil
}

func (s *stubTokenStore) Delete(_ context.Context, service, account string) error {
	key := s.key(service, account)
	if _, ok := s.tokens[key]; !ok {
		return fmt.Errorf("stub: %s/%s: %w", service, account, core.ErrTokenNotFound)
	}
	delete(s.tokens, key)
	return nil
}

type stubSource struct {
	days     []core.ContributionDay
	err      error
	requests []string
}

func (s *stubSource) FetchCalendar(_ context.Context, username, _ string) ([]core.ContributionDay, error) {
	s.requests = append(s.requests, username)
	if s.err != nil {
		return nil, s.err
	}
	return s.days, nil
}

func newAdapterService(t *testing.T, cache *stubCacheStore, tokens *stubTokenStore, source *stubSource) *core.Service {
	t.Helper()
	service, err := core.NewService(
		core.Config{DataDir: t.TempDir()},
		core.WithCacheStore(cache),
		core.WithTokenStore(tokens),
		core.WithContributionSource(source),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func newRegisteredAdapter(t *testing.T, cache *stubCacheStore, tokens *stubTokenStore, source *stubSource) *Adapter {
	t.Helper()
	adapter, err := NewAdapter(newAdapterService(t, cache, tokens, source), nil)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	if err := adapter.Register(); err != nil {
		t.Fatalf("register: %v", err)
	}
	t.Cleanup(adapter.Close)
	return adapter
}

func TestAdapterFetchContributionsQuery(t *testing.T) {
	cache := &stubCacheStore{probe: core.CacheProbe{State: core.CacheAbsent}}
	source := &stubSource{days: []core.ContributionDay{{Date: "2024-01-01", ContributionCount: 3}}}
	newRegisteredAdapter(t, cache, &stubTokenStore{}, source)

	result, err := Query[FetchContributionsQuery, core.FetchResult](
		context.Background(),
		FetchContributionsQuery{Username: "octocat"},
	)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected success result, got error %q", result.Error)
	}
	if len(result.Data) != 1 || result.Data[0].Date != "2024-01-01" {
		t.Fatalf("unexpected data %+v", result.Data)
	}
	if len(source.requests) != 1 || source.requests[0] != "octocat" {
		t.Fatalf("expected one fetch for octocat, got %v", source.requests)
	}
}

func TestAdapterTokenLifecycle(t *testing.T) {
	cache := &stubCacheStore{probe: core.CacheProbe{State: core.CacheAbsent}}
	tokens := &stubTokenStore{}
	newRegisteredAdapter(t, cache, tokens, &stubSource{})
	ctx := context.Background()

	if err := Dispatch(ctx, SaveGithubTokenCommand{Token: "ghp_abc"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, err := Query[GetGithubTokenQuery, string](ctx, GetGithubTokenQuery{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if token != "ghp_abc" {
		t.Fatalf("unexpected token %q", token)
	}
	if err := Dispatch(ctx, DeleteGithubTokenCommand{}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := Query[GetGithubTokenQuery, string](ctx, GetGithubTokenQuery{}); err == nil {
		t.Fatalf("expected error after delete")
	}
}

func TestAdapterClearCacheQuery(t *testing.T) {
	cache := &stubCacheStore{probe: core.CacheProbe{State: core.CacheAbsent}}
	newRegisteredAdapter(t, cache, &stubTokenStore{}, &stubSource{})

	confirmation, err := Query[ClearCacheQuery, string](context.Background(), ClearCacheQuery{})
	if err != nil {
		t.Fatalf("clear cache: %v", err)
	}
	if confirmation != "Cache cleared successfully" {
		t.Fatalf("unexpected confirmation %q", confirmation)
	}
	if cache.cleared != 1 {
		t.Fatalf("expected one clear call, got %d", cache.cleared)
	}
}

func TestAdapterCloseUnsubscribes(t *testing.T) {
	cache := &stubCacheStore{probe: core.CacheProbe{State: core.CacheAbsent}}
	adapter, err := NewAdapter(newAdapterService(t, cache, &stubTokenStore{}, &stubSource{}), nil)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	if err := adapter.Register(); err != nil {
		t.Fatalf("register: %v", err)
	}
	adapter.Close()

	if _, err := Query[ClearCacheQuery, string](context.Background(), ClearCacheQuery{}); err == nil {
		t.Fatalf("expected dispatch failure after close")
	}
}

func TestNewAdapterRequiresService(t *testing.T) {
	if _, err := NewAdapter(nil, nil); err == nil {
		t.Fatalf("expected error for nil service")
	}
}

func TestValidateMessageContract(t *testing.T) {
	if err := ValidateMessageContract(SaveGithubTokenCommand{Token: "ghp_abc"}); err != nil {
		t.Fatalf("valid message rejected: %v", err)
	}
	err := ValidateMessageContract(SaveGithubTokenCommand{Token: "  "})
	if err == nil || !strings.Contains(err.Error(), "token is required") {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if err := ValidateMessageContract(struct{}{}); err == nil {
		t.Fatalf("expected rejection of typeless message")
	}
}

func TestMessageTypes(t *testing.T) {
	cases := map[string]string{
		FetchContributionsQuery{}.Type():  "gitpulse.query.fetch_contributions",
		ClearCacheQuery{}.Type():          "gitpulse.query.clear_cache",
		SaveGithubTokenCommand{}.Type():   "gitpulse.command.save_github_token",
		GetGithubTokenQuery{}.Type():      "gitpulse.query.get_github_token",
		DeleteGithubTokenCommand{}.Type(): "gitpulse.command.delete_github_token",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("message type %q, want %q", got, want)
		}
	}
}
