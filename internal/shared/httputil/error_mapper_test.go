package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	errMissing = errors.New("missing")
	errDenied  = errors.New("denied")
)

type redirectError struct{ to string }

func (e *redirectError) Error() string { return "redirect " + e.to }

func TestErrorMapper_Map(t *testing.T) {
	mapper := NewErrorMapper().
		WithResolver(func(err error) (HTTPErrorInfo, bool) {
			var target *redirectError
			if errors.As(err, &target) {
				return HTTPErrorInfo{Status: http.StatusUnauthorized, Message: "unauthorized", Redirect: target.to}, true
			}
			return HTTPErrorInfo{}, false
		}).
		WithMapping(errMissing, http.StatusNotFound, "not found").
		WithMappings(ErrorMapping{Error: errDenied, Status: http.StatusForbidden, Message: "forbidden"}).
		WithDefault(http.StatusBadGateway, "upstream failure")

	cases := []struct {
		name     string
		err      error
		status   int
		redirect string
	}{
		{name: "nil", err: nil, status: http.StatusOK},
		{name: "deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), status: http.StatusGatewayTimeout},
		{name: "canceled", err: context.Canceled, status: http.StatusServiceUnavailable},
		{name: "resolver", err: fmt.Errorf("wrap: %w", &redirectError{to: "/login"}), status: http.StatusUnauthorized, redirect: "/login"},
		{name: "wrapped sentinel", err: fmt.Errorf("get dish: %w", errMissing), status: http.StatusNotFound},
		{name: "grouped sentinel", err: errDenied, status: http.StatusForbidden},
		{name: "default", err: errors.New("boom"), status: http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := mapper.Map(tc.err)
			assert.Equal(t, tc.status, info.Status)
			assert.Equal(t, tc.redirect, info.Redirect)
		})
	}
}

func TestQuickMap(t *testing.T) {
	info := QuickMap(errMissing, ErrorMapping{Error: errMissing, Status: http.StatusNotFound, Message: "not found"})
	assert.Equal(t, HTTPErrorInfo{Status: http.StatusNotFound, Message: "not found"}, info)
	assert.Equal(t, http.StatusInternalServerError, QuickMap(errDenied).Status)
}
