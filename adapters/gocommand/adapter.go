// Package gocommand exposes the gitpulse operations as go-command messages
// so the hosting shell can dispatch them by name instead of holding a direct
// service reference.
package gocommand

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/Jatinprajapati7869/gitpulse/core"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

// Adapter binds the service's operations to message handlers on the global
// dispatcher and mirrors them into a command registry for discovery.
type Adapter struct {
	registry      *command.Registry
	service       *core.Service
	subscriptions []commanddispatcher.Subscription
}

func NewAdapter(service *core.Service, registry *command.Registry) (*Adapter, error) {
	if service == nil {
		return nil, fmt.Errorf("gocommand: service is required")
	}
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &Adapter{registry: registry, service: service}, nil
}

func (a *Adapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

// Register wires every operation. Fetch, clear-cache, and get-token are
// queries (they return payloads); save-token and delete-token are commands.
func (a *Adapter) Register() error {
	if a == nil || a.registry == nil || a.service == nil {
		return fmt.Errorf("gocommand: adapter is not configured")
	}

	fetch := command.QueryFunc[FetchContributionsQuery, core.FetchResult](
		func(ctx context.Context, q FetchContributionsQuery) (core.FetchResult, error) {
			return a.service.FetchContributions(ctx, core.FetchContributionsInput{
				Username: q.Username,
				Token:    q.Token,
			}), nil
		},
	)
	if err := a.registerQuery(fetch); err != nil {
		return err
	}

	clearCache := command.QueryFunc[ClearCacheQuery, string](
		func(ctx context.Context, _ ClearCacheQuery) (string, error) {
			return a.service.ClearCache(ctx)
		},
	)
	if err := a.registerQuery(clearCache); err != nil {
		return err
	}

	getToken := command.QueryFunc[GetGithubTokenQuery, string](
		func(ctx context.Context, _ GetGithubTokenQuery) (string, error) {
			return a.service.GetGithubToken(ctx)
		},
	)
	if err := a.registerQuery(getToken); err != nil {
		return err
	}

	saveToken := command.CommandFunc[SaveGithubTokenCommand](
		func(ctx context.Context, c SaveGithubTokenCommand) error {
			return a.service.SaveGithubToken(ctx, c.Token)
		},
	)
	if err := a.registerCommand(saveToken); err != nil {
		return err
	}

	deleteToken := command.CommandFunc[DeleteGithubTokenCommand](
		func(ctx context.Context, _ DeleteGithubTokenCommand) error {
			return a.service.DeleteGithubToken(ctx)
		},
	)
	if err := a.registerCommand(deleteToken); err != nil {
		return err
	}

	return a.registry.Initialize()
}

// Close unsubscribes every handler registered by Register.
func (a *Adapter) Close() {
	if a == nil {
		return
	}
	for _, subscription := range a.subscriptions {
		if subscription != nil {
			subscription.Unsubscribe()
		}
	}
	a.subscriptions = nil
}

func (a *Adapter) registerCommand(cmd any) error {
	subscription, err := registerAndSubscribe(a.registry, cmd)
	if err != nil {
		return err
	}
	a.subscriptions = append(a.subscriptions, subscription)
	return nil
}

func (a *Adapter) registerQuery(qry any) error {
	subscription, err := registerAndSubscribe(a.registry, qry)
	if err != nil {
		return err
	}
	a.subscriptions = append(a.subscriptions, subscription)
	return nil
}

func registerAndSubscribe(registry *command.Registry, handler any) (commanddispatcher.Subscription, error) {
	if registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if handler == nil {
		return nil, fmt.Errorf("gocommand: handler is required")
	}
	subscription := subscribe(handler)
	if subscription == nil {
		return nil, fmt.Errorf("gocommand: unsupported handler type %T", handler)
	}
	if err := registry.RegisterCommand(handler); err != nil {
		subscription.Unsubscribe()
		return nil, err
	}
	return subscription, nil
}

func subscribe(handler any) commanddispatcher.Subscription {
	switch typed := handler.(type) {
	case command.CommandFunc[SaveGithubTokenCommand]:
		return commanddispatcher.SubscribeCommand(typed)
	case command.CommandFunc[DeleteGithubTokenCommand]:
		return commanddispatcher.SubscribeCommand(typed)
	case command.QueryFunc[FetchContributionsQuery, core.FetchResult]:
		return commanddispatcher.SubscribeQuery(typed)
	case command.QueryFunc[ClearCacheQuery, string]:
		return commanddispatcher.SubscribeQuery(typed)
	case command.QueryFunc[GetGithubTokenQuery, string]:
		return commanddispatcher.SubscribeQuery(typed)
	default:
		return nil
	}
}

// Dispatch sends a command message to its registered handler.
func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

// Query sends a query message and returns its payload.
func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

// SubscribeCommand and SubscribeQuery re-export the dispatcher hooks for
// hosts that register their own additional handlers.
func SubscribeCommand[T any](cmd command.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func SubscribeQuery[T any, R any](qry command.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}
