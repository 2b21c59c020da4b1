package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrNetwork      = errors.New("network failure")
)

// ValidationError nosi greške po poljima koje vraća server (400) ili lokalna validacija.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewFieldError pravi ValidationError za jedno polje.
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// ServerError je neočekivan odgovor servera (5xx ili pokvaren body).
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Body)
}

// UserMessage prevodi grešku u kratku poruku za prikaz korisniku.
func UserMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	var sErr *ServerError
	if errors.As(err, &sErr) {
		return "Unexpected server error. Please try again."
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "Session expired or access denied. Please log in again."
	case errors.Is(err, ErrNotFound):
		return "The requested item no longer exists."
	case errors.Is(err, ErrNetwork):
		return "Could not reach the server. Please try again."
	}
	return err.Error()
}

// parseValidationBody parsira Django oblik grešaka: {"field": ["msg", ...]} ili {"detail": "msg"}.
func parseValidationBody(body []byte) *ValidationError {
	fields := map[string][]string{}

	var perField map[string]json.RawMessage
	if err := json.Unmarshal(body, &perField); err == nil {
		for field, raw := range perField {
			var list []string
			if err := json.Unmarshal(raw, &list); err == nil {
				fields[field] = list
				continue
			}
			var single string
			if err := json.Unmarshal(raw, &single); err == nil {
				fields[field] = []string{single}
			}
		}
	}

	if len(fields) == 0 {
		fields["detail"] = []string{strings.TrimSpace(string(body))}
	}
	return &ValidationError{Fields: fields}
}
