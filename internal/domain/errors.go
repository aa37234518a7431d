package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for catalog operations
var (
	// ErrNetwork indicates the catalog could not be reached
	ErrNetwork = errors.New("catalog is unreachable")

	// ErrHTTPStatus indicates the catalog answered with a non-2xx status
	ErrHTTPStatus = errors.New("catalog returned an error status")

	// ErrParse indicates the catalog response body was not valid JSON
	ErrParse = errors.New("catalog response is malformed")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("catalog API key is invalid")

	// ErrNotConfigured indicates no API key has been configured
	ErrNotConfigured = errors.New("catalog API key is not configured")

	// ErrInvalidFilter indicates a FilterSpec failed validation
	ErrInvalidFilter = errors.New("invalid search filter")
)

// CatalogRequestError is returned for non-2xx catalog responses.
type CatalogRequestError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *CatalogRequestError) Error() string {
	return fmt.Sprintf("catalog request %s failed: %d %s", e.Endpoint, e.StatusCode, e.Status)
}

// Is matches ErrHTTPStatus for every status and ErrAuthFailed for 401.
func (e *CatalogRequestError) Is(target error) bool {
	switch target {
	case ErrHTTPStatus:
		return true
	case ErrAuthFailed:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}
