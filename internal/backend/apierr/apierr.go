// Package apierr maps Google API errors onto the service error values.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"triage/internal/service"
)

// Wrap converts err into a user-facing error. Timeouts, auth failures and
// missing resources wrap the matching service sentinel; anything else is
// returned as is.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context deadline exceeded") {
		return service.ErrTimeout
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return service.ErrAuth
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", service.ErrNotFound, gerr.Message)
		}
	}
	return err
}
