package core

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// FetchContributions runs the cache-check / fetch / flatten / cache-write
// flow for one username. Remote failures are reported inside the envelope;
// the method itself never returns an error to the host. Concurrent calls for
// the same username are not coordinated: the last cache writer wins.
func (s *Service) FetchContributions(ctx context.Context, in FetchContributionsInput) FetchResult {
	if s == nil || s.cacheStore == nil || s.source == nil {
		return FailureResult("contribution service is not configured")
	}

	startedAt := time.Now()
	username := strings.TrimSpace(in.Username)
	fields := map[string]any{
		"request_id": uuid.NewString(),
		"username":   username,
	}

	if username == "" {
		err := s.newError("Username is required", goerrors.CategoryBadInput, ErrorBadInput)
		s.observeOperation(ctx, startedAt, "fetch_contributions", err, fields)
		return FailureResult(DisplayMessage(err))
	}

	probe := s.probeCache(ctx, username, fields)
	fields["cache_state"] = string(probe.State)
	if probe.State == CacheFresh {
		s.observeOperation(ctx, startedAt, "fetch_contributions", nil, fields)
		return SuccessResult(probe.Days)
	}

	days, err := s.source.FetchCalendar(ctx, username, strings.TrimSpace(in.Token))
	if err != nil {
		mapped := s.mapError(err)
		s.observeOperation(ctx, startedAt, "fetch_contributions", mapped, fields)
		return FailureResult(DisplayMessage(mapped))
	}

	// Caching is an optimization, not a correctness requirement: a write
	// failure must not demote the successful live fetch.
	if writeErr := s.cacheStore.Write(ctx, username, days); writeErr != nil {
		s.logError(ctx, "cache write failed", mergeFields(fields, map[string]any{
			"error": writeErr.Error(),
		}))
	}

	fields["day_count"] = len(days)
	s.observeOperation(ctx, startedAt, "fetch_contributions", nil, fields)
	return SuccessResult(days)
}

// probeCache never fails the flow: every probe error demotes to CacheAbsent
// so the live fetch proceeds. Corrupt and stale outcomes stay distinguishable
// in logs even though both route to a refetch.
func (s *Service) probeCache(ctx context.Context, username string, fields map[string]any) CacheProbe {
	probe, err := s.cacheStore.Probe(ctx, username)
	if err != nil {
		s.logError(ctx, "cache probe failed", mergeFields(fields, map[string]any{
			"error": err.Error(),
		}))
		return CacheProbe{State: CacheAbsent}
	}
	switch probe.State {
	case CacheFresh, CacheStale, CacheAbsent, CacheCorrupt:
	default:
		probe.State = CacheAbsent
	}
	if probe.State == CacheCorrupt {
		s.logError(ctx, "cache file corrupt, treating as absent", mergeFields(fields, map[string]any{
			"cache_state": string(CacheCorrupt),
		}))
	}
	return probe
}

func mergeFields(base map[string]any, extra map[string]any) map[string]any {
	merged := cloneFields(base)
	for key, value := range extra {
		merged[key] = value
	}
	return merged
}
