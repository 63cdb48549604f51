package transport

import (
	"github.com/Jatinprajapati7869/gitpulse/core"
	goerrors "github.com/goliatone/go-errors"
)

// transportFailure builds the categorized error every adapter returns. A nil
// source produces a fresh error; otherwise the source stays on the chain so
// callers can still unwrap it.
func transportFailure(source error, message string, category goerrors.Category, code int, metadata map[string]any) error {
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, category)
	} else {
		err = goerrors.Wrap(source, category, message)
	}
	err = err.WithCode(code).WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.ErrorBadInput
	case goerrors.CategoryExternal:
		return core.ErrorNetworkFailure
	default:
		return core.ErrorInternal
	}
}
