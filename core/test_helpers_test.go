package core

import (
	"context"
	"testing"
)

type stubCacheStore struct {
	probe    CacheProbe
	probeErr error
	writeErr error
	clearErr error

	probeCalls int
	writes     [][]ContributionDay
	writeUsers []string
	clearCalls int
}

func (s *stubCacheStore) Probe(_ context.Context, _ string) (CacheProbe, error) {
	s.probeCalls++
	if s.probeErr != nil {
		return CacheProbe{}, s.probeErr
	}
	return s.probe, nil
}

func (s *stubCacheStore) Write(_ context.Context, username string, days []ContributionDay) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.writeUsers = append(s.writeUsers, username)
	s.writes = append(s.writes, append([]ContributionDay(nil), days...))
	return nil
}

func (s *stubCacheStore) Clear(_ context.Context) error {
	s.clearCalls++
	return s.clearErr
}

type stubContributionSource struct {
	days []ContributionDay
	err  error

	calls        int
	lastUsername string
	lastToken    string
}

func (s *stubContributionSource) FetchCalendar(_ context.Context, username, token string) ([]ContributionDay, error) {
	s.calls++
	s.lastUsername = username
	s.lastToken = token
	if s.err != nil {
		return nil, s.err
	}
	return append([]ContributionDay(nil), s.days...), nil
}

type stubTokenStore struct {
	entries map[string]string

	saveErr   error
	getErr    error
	deleteErr error
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{entries: map[string]string{}}
}

func (s *stubTokenStore) Save(_ context.Context, service, account, secret string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries[service+"::"+account] = secret
	return nil
}

func (s *stubTokenStore) Get(_ context.Context, service, account string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	secret, ok := s.entries[service+"::"+account]
	if !ok {
		return "", ErrTokenNotFound
	}
	return secret, nil
}

func (s *stubTokenStore) Delete(_ context.Context, service, account string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	key := service + "::" + account
	if _, ok := s.entries[key]; !ok {
		return ErrTokenNotFound
	}
	delete(s.entries, key)
	return nil
}

func newTestService(t *testing.T, cache CacheStore, tokens TokenStore, source ContributionSource) *Service {
	t.Helper()
	svc, err := NewService(Config{DataDir: t.TempDir()},
		WithCacheStore(cache),
		WithTokenStore(tokens),
		WithContributionSource(source),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func sampleDays() []ContributionDay {
	return []ContributionDay{
		{Date: "2026-08-24", ContributionCount: 3},
		{Date: "2026-08-25", ContributionCount: 0},
		{Date: "2026-08-26", ContributionCount: 7},
	}
}
