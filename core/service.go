package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Service orchestrates the contribution fetch-and-cache flow and the token
// pass-through operations. Every method is one independent unit of work; the
// service holds no mutable state between calls beyond its collaborators.
type Service struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	cacheStore      CacheStore
	tokenStore      TokenStore
	source          ContributionSource
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve(defaultServiceName, builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger(defaultServiceName); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	resolved, err := resolveBuilderConfig(builder)
	if err != nil {
		return nil, err
	}

	if builder.cacheStore == nil {
		return nil, fmt.Errorf("core: cache store is required")
	}
	if builder.tokenStore == nil {
		return nil, fmt.Errorf("core: token store is required")
	}
	if builder.source == nil {
		return nil, fmt.Errorf("core: contribution source is required")
	}

	return &Service{
		config:          resolved,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		cacheStore:      builder.cacheStore,
		tokenStore:      builder.tokenStore,
		source:          builder.source,
	}, nil
}

// ResolveConfig runs the provider/resolver pipeline NewService uses and
// returns the effective configuration without constructing a service. Callers
// that wire collaborators themselves use this so the collaborators and the
// service agree on the same resolved values.
func ResolveConfig(cfg Config, options ...Option) (Config, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}
	return resolveBuilderConfig(builder)
}

func resolveBuilderConfig(builder serviceBuilder) (Config, error) {
	configProvider := builder.configProvider
	if configProvider == nil {
		configProvider = NewCfgxConfigProvider(nil)
	}
	optionsResolver := builder.optionsResolver
	if optionsResolver == nil {
		optionsResolver = GoOptionsResolver{}
	}

	defaults := DefaultConfig()
	loaded, err := configProvider.Load(context.Background(), defaults)
	if err != nil {
		return Config{}, fmt.Errorf("core: config load failed: %w", err)
	}
	resolved, err := optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return Config{}, fmt.Errorf("core: config resolve failed: %w", err)
	}
	return resolved, nil
}

// Config returns the resolved configuration the service runs with.
func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

const clearCacheConfirmation = "Cache cleared successfully"

// ClearCache deletes every cached calendar and leaves the cache directory
// present but empty. The next fetch for any username behaves as a cache-free
// run.
func (s *Service) ClearCache(ctx context.Context) (string, error) {
	if s == nil || s.cacheStore == nil {
		return "", gitpulseErrorMapper(fmt.Errorf("core: cache store is required"))
	}
	startedAt := time.Now()
	err := s.cacheStore.Clear(ctx)
	s.observeOperation(ctx, startedAt, "clear_cache", err, map[string]any{})
	if err != nil {
		return "", s.mapError(err)
	}
	return clearCacheConfirmation, nil
}

// SaveGithubToken creates or overwrites the access token in the platform
// credential store.
func (s *Service) SaveGithubToken(ctx context.Context, token string) error {
	if s == nil || s.tokenStore == nil {
		return gitpulseErrorMapper(fmt.Errorf("core: token store is required"))
	}
	if strings.TrimSpace(token) == "" {
		return s.newError("token is required", goerrors.CategoryBadInput, ErrorBadInput)
	}
	startedAt := time.Now()
	err := s.tokenStore.Save(ctx, s.config.ServiceName, CredentialAccount, token)
	s.observeOperation(ctx, startedAt, "save_github_token", err, map[string]any{})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

// GetGithubToken reads the stored access token. A missing entry maps to a
// not-found error; no copy of the secret is retained.
func (s *Service) GetGithubToken(ctx context.Context) (string, error) {
	if s == nil || s.tokenStore == nil {
		return "", gitpulseErrorMapper(fmt.Errorf("core: token store is required"))
	}
	startedAt := time.Now()
	token, err := s.tokenStore.Get(ctx, s.config.ServiceName, CredentialAccount)
	s.observeOperation(ctx, startedAt, "get_github_token", err, map[string]any{})
	if err != nil {
		return "", s.mapError(err)
	}
	return token, nil
}

// DeleteGithubToken removes the stored access token.
func (s *Service) DeleteGithubToken(ctx context.Context) error {
	if s == nil || s.tokenStore == nil {
		return gitpulseErrorMapper(fmt.Errorf("core: token store is required"))
	}
	startedAt := time.Now()
	err := s.tokenStore.Delete(ctx, s.config.ServiceName, CredentialAccount)
	s.observeOperation(ctx, startedAt, "delete_github_token", err, map[string]any{})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

// newError builds a bad-input style envelope through the configured error
// factory so callers that install their own factory see it applied to
// errors the service originates itself.
func (s *Service) newError(message string, category goerrors.Category, textCode string) error {
	factory := goerrors.New
	if s != nil && s.errorFactory != nil {
		factory = s.errorFactory
	}
	return ensureErrorEnvelope(factory(message, category).WithTextCode(textCode))
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}
