package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound                  = errors.New("not found")
	ErrValidation                = errors.New("validation failed")
	ErrConflict                  = errors.New("conflict")
	ErrProviderContractViolation = errors.New("payment provider returned an unusable response")
	ErrWebhookVerification       = errors.New("webhook verification failed")
	ErrMissingCorrelation        = errors.New("webhook event missing correlation data")
)

// ValidationError carries per-field messages for form input.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
