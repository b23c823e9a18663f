package domain

import (
	"strings"

	"deliveryClient/internal/shared/normalization"
)

// Role scopes what a signed-in user can do and where they log in.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleAdmin      Role = "admin"
	RoleRider      Role = "rider"
)

var roleAliases = map[string]Role{
	"customer":         RoleCustomer,
	"client":           RoleCustomer,
	"user":             RoleCustomer,
	"restaurant":       RoleRestaurant,
	"restaurant_owner": RoleRestaurant,
	"owner":            RoleRestaurant,
	"admin":            RoleAdmin,
	"administrator":    RoleAdmin,
	"rider":            RoleRider,
	"driver":           RoleRider,
	"courier":          RoleRider,
	"delivery":         RoleRider,
}

// NormalizeRole maps a claim or wire value to a Role. Unknown and empty values are customers.
func NormalizeRole(raw string) Role {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	if role, ok := roleAliases[key]; ok {
		return role
	}
	return RoleCustomer
}

// LoginRoute returns the page a user of this role is sent to after being signed out.
func LoginRoute(role Role) string {
	switch role {
	case RoleRestaurant:
		return "/restaurant/login"
	case RoleAdmin:
		return "/admin/login"
	case RoleRider:
		return "/rider/login"
	default:
		return "/login"
	}
}

// User is the authenticated account.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Role   Role   `json:"role"`
	Status string `json:"status,omitempty"`
}

// LoginResult is the outcome of a login attempt. Accounts awaiting approval get Pending with
// the server message and no token.
type LoginResult struct {
	Token   string `json:"-"`
	User    *User  `json:"user,omitempty"`
	Pending bool   `json:"pending"`
	Message string `json:"message,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// UserDTO is the REST representation of a user.
type UserDTO struct {
	ID     int64   `json:"id"`
	Email  string  `json:"email"`
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

// LoginResponseDTO covers both the token response and the pending-approval response.
type LoginResponseDTO struct {
	Token       string   `json:"token,omitempty"`
	AccessToken string   `json:"access_token,omitempty"`
	User        *UserDTO `json:"user,omitempty"`
	Message     string   `json:"message,omitempty"`
}

func UserFromDTO(dto UserDTO) User {
	return User{
		ID:     normalization.FormatID(dto.ID),
		Email:  strings.TrimSpace(dto.Email),
		Name:   normalization.Deref(dto.Name),
		Phone:  normalization.Deref(dto.Phone),
		Role:   NormalizeRole(normalization.Deref(dto.Role)),
		Status: strings.ToLower(normalization.Deref(dto.Status)),
	}
}

// LoginResultFromDTO maps the login response. A response without any token is treated as
// pending approval.
func LoginResultFromDTO(dto LoginResponseDTO) LoginResult {
	result := LoginResult{Token: dto.Token, Message: dto.Message}
	if result.Token == "" {
		result.Token = dto.AccessToken
	}
	if dto.User != nil {
		user := UserFromDTO(*dto.User)
		result.User = &user
	}
	if result.Token == "" {
		result.Pending = true
	}
	return result
}
