package usecases

import (
	"errors"
	"net/http"

	domainerrors "studio-ops.backend/internal/domain/errors"
)

// notFoundAs replaces a bare ErrNotFound with a user-facing 404.
func notFoundAs(err error, message string) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		if _, ok := domainerrors.As(err); !ok {
			return domainerrors.NotFound(message)
		}
	}
	return err
}

func transitionError(err error) error {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidTransition):
		return domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeConflict, "Offering already confirmed", domainerrors.ErrInvalidTransition)
	case errors.Is(err, domainerrors.ErrNotFound):
		return notFoundAs(err, "Offering not found")
	}
	return err
}

// chatFailure surfaces a failed chat side effect; errors without a status become a 404.
func chatFailure(err error, message string) error {
	if _, ok := domainerrors.As(err); ok {
		return err
	}
	return domainerrors.NewAppError(http.StatusNotFound, domainerrors.CodeNotFound, message, errors.Join(domainerrors.ErrNotFound, err))
}
