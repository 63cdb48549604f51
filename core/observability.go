package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// observeOperation emits one metric pair (counter + duration histogram) and
// one structured log line per completed operation. Username and cache state,
// when present in the fields, become metric tags.
func (s *Service) observeOperation(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	if s == nil {
		return
	}
	if operation = strings.TrimSpace(strings.ToLower(operation)); operation == "" {
		operation = "unknown"
	}
	elapsed := time.Since(startedAt)

	logFields := cloneFields(fields)
	logFields["event_type"] = operation
	logFields["duration_ms"] = elapsed.Milliseconds()
	tags := map[string]string{"operation": operation, "status": "success"}
	if err != nil {
		tags["status"] = "failure"
		logFields["error"] = err.Error()
	}
	logFields["status"] = tags["status"]
	for _, key := range []string{"username", "cache_state"} {
		if value := strings.TrimSpace(fmt.Sprint(logFields[key])); value != "" && value != "<nil>" {
			tags[key] = value
		}
	}

	if s.metricsRecorder != nil {
		s.metricsRecorder.IncCounter(ctx, "gitpulse."+operation+".total", 1, cloneTags(tags))
		s.metricsRecorder.ObserveHistogram(ctx, "gitpulse."+operation+".duration_ms", float64(elapsed.Milliseconds()), cloneTags(tags))
	}

	if err != nil {
		s.logError(ctx, operation+" failed", logFields)
		return
	}
	s.logInfo(ctx, operation+" succeeded", logFields)
}

func (s *Service) logInfo(ctx context.Context, message string, fields map[string]any) {
	if logger := s.fieldLogger(ctx, fields); logger != nil {
		logger.Info(message, flattenFields(fields)...)
	}
}

func (s *Service) logError(ctx context.Context, message string, fields map[string]any) {
	if logger := s.fieldLogger(ctx, fields); logger != nil {
		logger.Error(message, flattenFields(fields)...)
	}
}

// fieldLogger binds the context and, when the logger supports it, the
// structured fields. Returns nil when the service has no logger at all.
func (s *Service) fieldLogger(ctx context.Context, fields map[string]any) Logger {
	if s == nil || s.logger == nil {
		return nil
	}
	logger := s.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	return logger
}

func cloneFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

// flattenFields renders fields as sorted key/value pairs for loggers that
// take variadic args instead of field maps.
func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
