package gocommand

import (
	"fmt"
	"strings"
)

// The five host-facing operations as dispatchable messages. The GUI shell
// registers the handlers once at startup and invokes everything by message
// type, mirroring how it names operations across the process boundary.

type FetchContributionsQuery struct {
	Username string
	Token    string
}

func (FetchContributionsQuery) Type() string { return "gitpulse.query.fetch_contributions" }

type ClearCacheQuery struct{}

func (ClearCacheQuery) Type() string { return "gitpulse.query.clear_cache" }

type SaveGithubTokenCommand struct {
	Token string
}

func (SaveGithubTokenCommand) Type() string { return "gitpulse.command.save_github_token" }

func (c SaveGithubTokenCommand) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("gocommand: token is required")
	}
	return nil
}

type GetGithubTokenQuery struct{}

func (GetGithubTokenQuery) Type() string { return "gitpulse.query.get_github_token" }

type DeleteGithubTokenCommand struct{}

func (DeleteGithubTokenCommand) Type() string { return "gitpulse.command.delete_github_token" }
