package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorBadInput           = "GITPULSE_BAD_INPUT"
	ErrorNetworkFailure     = "GITPULSE_NETWORK_FAILURE"
	ErrorRemoteStatus       = "GITPULSE_REMOTE_STATUS"
	ErrorParseFailure       = "GITPULSE_PARSE_FAILURE"
	ErrorGraphQLFailure     = "GITPULSE_GRAPHQL_ERROR"
	ErrorResponseShape      = "GITPULSE_RESPONSE_SHAPE"
	ErrorCredentialFailure  = "GITPULSE_CREDENTIAL_FAILURE"
	ErrorCredentialNotFound = "GITPULSE_CREDENTIAL_NOT_FOUND"
	ErrorFilesystemFailure  = "GITPULSE_FILESYSTEM_FAILURE"
	ErrorInternal           = "GITPULSE_INTERNAL_ERROR"
)

func gitpulseErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureErrorEnvelope(richErr)
	}

	if errors.Is(err, ErrTokenNotFound) {
		return newGitpulseError(err, goerrors.CategoryNotFound, ErrorCredentialNotFound)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "token") || strings.Contains(msg, "keyring") || strings.Contains(msg, "credential"):
		return newGitpulseError(err, goerrors.CategoryOperation, ErrorCredentialFailure)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newGitpulseError(err, goerrors.CategoryBadInput, ErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureErrorEnvelope(mapped)
}

func newGitpulseError(source error, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureErrorEnvelope(
		goerrors.Wrap(source, category, source.Error()).
			WithTextCode(textCode),
	)
}

func ensureErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = gitpulseHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultGitpulseTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultGitpulseTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorBadInput
	case goerrors.CategoryNotFound:
		return ErrorCredentialNotFound
	case goerrors.CategoryExternal:
		return ErrorNetworkFailure
	case goerrors.CategoryOperation:
		return ErrorFilesystemFailure
	default:
		return ErrorInternal
	}
}

func gitpulseHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// DisplayMessage reduces an error to the plain string the host renders. The
// envelope keeps categories and text codes for logs; callers only ever see
// the message.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && strings.TrimSpace(richErr.Message) != "" {
		return richErr.Message
	}
	return err.Error()
}
