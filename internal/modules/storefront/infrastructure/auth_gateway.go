package infrastructure

import (
	"context"
	"net/http"

	authdomain "deliveryClient/internal/modules/auth/domain"
	"deliveryClient/internal/modules/storefront/application/port"
)

// AuthHTTPGateway implements the login, registration and current-user calls.
type AuthHTTPGateway struct {
	rest *RESTClient
}

func NewAuthGateway(rest *RESTClient) *AuthHTTPGateway {
	return &AuthHTTPGateway{rest: rest}
}

func (g *AuthHTTPGateway) Login(ctx context.Context, credentials authdomain.Credentials) (authdomain.LoginResult, error) {
	path, err := loginPathBuilder("")
	if err != nil {
		return authdomain.LoginResult{}, err
	}
	var dto authdomain.LoginResponseDTO
	if err := g.rest.call(ctx, callOptions{operation: "login", method: http.MethodPost, path: path, body: credentials}, &dto); err != nil {
		return authdomain.LoginResult{}, err
	}
	return authdomain.LoginResultFromDTO(dto), nil
}

func (g *AuthHTTPGateway) Register(ctx context.Context, registration authdomain.Registration) (authdomain.LoginResult, error) {
	path, err := registerPathBuilder("")
	if err != nil {
		return authdomain.LoginResult{}, err
	}
	var dto authdomain.LoginResponseDTO
	if err := g.rest.call(ctx, callOptions{operation: "register", method: http.MethodPost, path: path, body: registration}, &dto); err != nil {
		return authdomain.LoginResult{}, err
	}
	return authdomain.LoginResultFromDTO(dto), nil
}

func (g *AuthHTTPGateway) CurrentUser(ctx context.Context) (authdomain.User, error) {
	path, err := currentUserPathBuilder("")
	if err != nil {
		return authdomain.User{}, err
	}
	var dto authdomain.UserDTO
	if err := g.rest.call(ctx, callOptions{operation: "current user", method: http.MethodGet, path: path}, &dto); err != nil {
		return authdomain.User{}, err
	}
	return authdomain.UserFromDTO(dto), nil
}

var _ port.AuthGateway = (*AuthHTTPGateway)(nil)
