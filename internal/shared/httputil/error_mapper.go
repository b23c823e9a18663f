package httputil

import (
	"context"
	"errors"
	"net/http"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	// Code is a machine readable reason such as "pendingApproval".
	Code string `json:"code,omitempty"`
	// Redirect is the login route clients should navigate to, set for expired sessions.
	Redirect string `json:"redirect,omitempty"`
}

// ErrorMapping represents a single error to HTTP status/message mapping.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// Resolver inspects an error chain for typed errors that carry their own response details.
type Resolver func(err error) (HTTPErrorInfo, bool)

// ErrorMapper maps domain errors to HTTP status codes and messages.
type ErrorMapper struct {
	resolvers      []Resolver
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:       make([]ErrorMapping, 0),
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping adds an error mapping to the mapper. Mappings are checked in insertion order.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{
		Error:   err,
		Status:  status,
		Message: message,
	})
	return m
}

// WithMappings adds a group of mappings.
func (m *ErrorMapper) WithMappings(mappings ...ErrorMapping) *ErrorMapper {
	m.mappings = append(m.mappings, mappings...)
	return m
}

// WithResolver registers a resolver consulted before the sentinel mappings.
func (m *ErrorMapper) WithResolver(r Resolver) *ErrorMapper {
	m.resolvers = append(m.resolvers, r)
	return m
}

// WithDefault sets the default status and message for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}
	if info, ok := mapContextError(err); ok {
		return info
	}
	for _, resolve := range m.resolvers {
		if info, ok := resolve(err); ok {
			return info
		}
	}
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			return HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
		}
	}
	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// QuickMap is a convenience function for quick error mapping without creating a mapper.
func QuickMap(err error, mappings ...ErrorMapping) HTTPErrorInfo {
	return NewErrorMapper().WithMappings(mappings...).Map(err)
}

func mapContextError(err error) (HTTPErrorInfo, bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}, true
	case errors.Is(err, context.Canceled):
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}, true
	default:
		return HTTPErrorInfo{}, false
	}
}
