package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultServiceName     = "gitpulse"
	defaultGraphQLEndpoint = "https://api.github.com/graphql"
	defaultUserAgent       = "gitpulse"
	defaultCacheTTLSeconds = 300
	defaultRequestTimeout  = 30
)

// CredentialAccount is the fixed account key the token operations use inside
// the platform credential store. The service name side of the pair comes from
// Config.ServiceName.
const CredentialAccount = "github_token"

type Config struct {
	// ServiceName doubles as the credential-store service identifier and the
	// logger name.
	ServiceName string `koanf:"service_name" mapstructure:"service_name"`
	// DataDir is the host application's designated data directory. The cache
	// lives in its "cache" subfolder. The library reads no environment
	// variables; the host must supply this.
	DataDir               string `koanf:"data_dir" mapstructure:"data_dir"`
	CacheTTLSeconds       int    `koanf:"cache_ttl_seconds" mapstructure:"cache_ttl_seconds"`
	GraphQLEndpoint       string `koanf:"graphql_endpoint" mapstructure:"graphql_endpoint"`
	UserAgent             string `koanf:"user_agent" mapstructure:"user_agent"`
	RequestTimeoutSeconds int    `koanf:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:           defaultServiceName,
		CacheTTLSeconds:       defaultCacheTTLSeconds,
		GraphQLEndpoint:       defaultGraphQLEndpoint,
		UserAgent:             defaultUserAgent,
		RequestTimeoutSeconds: defaultRequestTimeout,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("core: data_dir is required")
	}
	if strings.TrimSpace(c.GraphQLEndpoint) == "" {
		return fmt.Errorf("core: graphql_endpoint is required")
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("core: cache_ttl_seconds must be positive")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("core: request_timeout_seconds must be positive")
	}
	return nil
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
