package security

import (
	"context"
	"fmt"
	"sync"

	"github.com/Jatinprajapati7869/gitpulse/core"
)

// MemoryTokenStore is a test substitute for the OS keyring with the same
// save/get/delete semantics, including the not-found sentinel.
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: map[string]string{}}
}

func (s *MemoryTokenStore) Save(_ context.Context, service, account, secret string) error {
	service, account, err := normalizeEntry(service, account)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = map[string]string{}
	}
	s.entries[entryKey(service, account)] = secret
	return nil
}

func (s *MemoryTokenStore) Get(_ context.Context, service, account string) (string, error) {
	service, account, err := normalizeEntry(service, account)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	secret, ok := s.entries[entryKey(service, account)]
	if !ok {
		return "", fmt.Errorf("security: %s/%s: %w", service, account, core.ErrTokenNotFound)
	}
	return secret, nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, service, account string) error {
	service, account, err := normalizeEntry(service, account)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entryKey(service, account)
	if _, ok := s.entries[key]; !ok {
		return fmt.Errorf("security: %s/%s: %w", service, account, core.ErrTokenNotFound)
	}
	delete(s.entries, key)
	return nil
}

func entryKey(service, account string) string {
	return service + "::" + account
}

var _ core.TokenStore = (*MemoryTokenStore)(nil)
