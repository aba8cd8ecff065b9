package astra

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/tramites/internal/core/domain"
)

// Data API error codes with a domain meaning.
const (
	codeCollectionNotExist    = "COLLECTION_NOT_EXIST"
	codeDocumentAlreadyExists = "DOCUMENT_ALREADY_EXISTS"
)

// ErrorDetail is one entry of a Data API "errors" array.
type ErrorDetail struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// APIError is a failed Data API command: either a non-2xx HTTP status or a
// response carrying an "errors" array.
type APIError struct {
	StatusCode int
	Command    string
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("astra: %s failed: %d %s", e.Command, e.StatusCode, http.StatusText(e.StatusCode))
	}
	msgs := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		if d.ErrorCode != "" {
			msgs[i] = d.ErrorCode + ": " + d.Message
		} else {
			msgs[i] = d.Message
		}
	}
	return fmt.Sprintf("astra: %s failed: %s", e.Command, strings.Join(msgs, "; "))
}

// Unwrap maps known error codes onto domain sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.hasCode(codeCollectionNotExist):
		return domain.ErrNotFound
	case e.hasCode(codeDocumentAlreadyExists):
		return domain.ErrAlreadyExists
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

func (e *APIError) hasCode(code string) bool {
	for _, d := range e.Errors {
		if d.ErrorCode == code {
			return true
		}
	}
	return false
}

// IsNotFound checks if the error reports a missing collection or endpoint.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return errors.Is(apiErr, domain.ErrNotFound)
	}
	return false
}

// IsUnauthorized checks if the error is a rejected token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
