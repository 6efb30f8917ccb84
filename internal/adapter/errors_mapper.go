package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError turns a non-2xx answer into an [ErrNetworkFailure] that also
// wraps the status specific sentinel.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %w: %s", ErrNetworkFailure, ErrBadRequest, body)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w: %s", ErrNetworkFailure, ErrUnauthorized, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w: %s", ErrNetworkFailure, ErrNotFound, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %w: %s", ErrNetworkFailure, ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w: http %d: %s", ErrNetworkFailure, resp.StatusCode(), body)
	}
}
