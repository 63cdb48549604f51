// Package security implements the token store contract over the host
// platform's credential storage. The OS keyring is the production backend;
// the in-memory store exists so tests never touch the real platform store.
package security

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/Jatinprajapati7869/gitpulse/core"
)

// KeyringTokenStore is a stateless pass-through to the operating system's
// keyring: macOS Keychain, the Secret Service on Linux, the Windows
// Credential Manager. The secret never outlives a single call's stack frame.
type KeyringTokenStore struct{}

func NewKeyringTokenStore() KeyringTokenStore {
	return KeyringTokenStore{}
}

func (KeyringTokenStore) Save(_ context.Context, service, account, secret string) error {
	service, account, err := normalizeEntry(service, account)
	if err != nil {
		return err
	}
	if err := keyring.Set(service, account, secret); err != nil {
		return fmt.Errorf("security: save token for %s/%s: %w", service, account, err)
	}
	return nil
}

func (KeyringTokenStore) Get(_ context.Context, service, account string) (string, error) {
	service, account, err := normalizeEntry(service, account)
	if err != nil {
		return "", err
	}
	secret, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("security: %s/%s: %w", service, account, core.ErrTokenNotFound)
		}
		return "", fmt.Errorf("security: get token for %s/%s: %w", service, account, err)
	}
	return secret, nil
}

func (KeyringTokenStore) Delete(_ context.Context, service, account string) error {
	service, account, err := normalizeEntry(service, account)
	if err != nil {
		return err
	}
	if err := keyring.Delete(service, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("security: %s/%s: %w", service, account, core.ErrTokenNotFound)
		}
		return fmt.Errorf("security: delete token for %s/%s: %w", service, account, err)
	}
	return nil
}

func normalizeEntry(service, account string) (string, string, error) {
	service = strings.TrimSpace(service)
	account = strings.TrimSpace(account)
	if service == "" {
		return "", "", fmt.Errorf("security: service is required")
	}
	if account == "" {
		return "", "", fmt.Errorf("security: account is required")
	}
	return service, account, nil
}

var _ core.TokenStore = KeyringTokenStore{}
