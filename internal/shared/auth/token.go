package auth

import (
	"net/http"
	"strings"
)

// BearerHeader formats a token for the Authorization header.
func BearerHeader(token string) string {
	return "Bearer " + strings.TrimSpace(token)
}

// ExtractBearerTokenFromHeader returns the token from an Authorization header value, accepting
// any casing of the "Bearer" scheme. It returns "" when no bearer token is present.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// ExtractToken looks for a token in the Authorization header first and then in the named
// query parameter ("token" when empty).
func ExtractToken(r *http.Request, queryParam string) string {
	if r == nil {
		return ""
	}
	if token := ExtractBearerTokenFromHeader(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if queryParam == "" {
		queryParam = "token"
	}
	if r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(queryParam))
}
