package transport

import (
	"strings"
	"time"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/usecase/auth"
)

// DecodeRegister validates a registration payload. Email is optional.
func DecodeRegister(body []byte) (auth.RegisterRequest, error) {
	var req auth.RegisterRequest

	obj, err := decodeObject(body)
	if err != nil {
		return req, err
	}
	if req.Username, err = requiredTrimmed(obj, "username"); err != nil {
		return req, err
	}
	if req.Password, err = requiredTrimmed(obj, "password"); err != nil {
		return req, err
	}
	email, err := obj.str("email")
	if err != nil {
		return req, err
	}
	if email != nil {
		req.Email = strings.TrimSpace(*email)
	}
	return req, nil
}

// DecodeLogin validates a login payload.
func DecodeLogin(body []byte) (auth.LoginRequest, error) {
	var req auth.LoginRequest

	obj, err := decodeObject(body)
	if err != nil {
		return req, err
	}
	if req.Username, err = requiredTrimmed(obj, "username"); err != nil {
		return req, err
	}
	if req.Password, err = requiredTrimmed(obj, "password"); err != nil {
		return req, err
	}
	return req, nil
}

func requiredTrimmed(obj object, field string) (string, error) {
	v, err := obj.str(field)
	if err != nil {
		return "", err
	}
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", domain.RequiredFieldMissing(field)
	}
	return strings.TrimSpace(*v), nil
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func NewAuthResponse(r *auth.Result) AuthResponse {
	return AuthResponse{
		User:      NewUserResponse(r.User),
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
