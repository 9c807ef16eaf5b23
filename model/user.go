package model

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// User is an account that can authenticate against the service. Admins may
// act on any translation request; everyone else only on their own.
type User struct {
	ID           string
	Email        string
	Name         string
	Admin        bool
	PasswordHash string `json:"-"`
	CreateAt     int64
	UpdateAt     int64
}

// NewUser creates a non-admin user with creation-time metadata filled in.
func NewUser(email, name string) *User {
	now := GetMillis()
	return &User{
		ID:       NewID(),
		Email:    email,
		Name:     name,
		CreateAt: now,
		UpdateAt: now,
	}
}

// Role returns the workflow role this user acts in.
func (u *User) Role() Role {
	if u.Admin {
		return RoleAdmin
	}
	return RoleOwner
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Email    string
	Name     string
	Password string
}

// Validate returns per-field issues for a registration, or nil when it is
// acceptable.
func (r *RegisterRequest) Validate() map[string]string {
	issues := make(map[string]string)
	if !strings.Contains(r.Email, "@") {
		issues["email"] = "a valid email address is required"
	}
	if strings.TrimSpace(r.Name) == "" {
		issues["name"] = "name is required"
	}
	if len(r.Password) < 8 {
		issues["password"] = "password must be at least 8 characters"
	}
	if len(issues) == 0 {
		return nil
	}
	return issues
}

// LoginRequest carries the credentials presented at login.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse carries the bearer token and user returned by a successful
// login.
type LoginResponse struct {
	Token string
	User  *User
}

// UpdateProfileRequest carries a user's edits to their own account.
type UpdateProfileRequest struct {
	Name string
}

// UpdateUserRequest carries an administrator's edits to any account.
type UpdateUserRequest struct {
	Name  string
	Admin bool
}

// NewUserFromReader decodes a User from JSON.
func NewUserFromReader(reader io.Reader) (*User, error) {
	var user User
	err := json.NewDecoder(reader).Decode(&user)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode user")
	}
	return &user, nil
}

// NewUserListFromReader decodes a list of Users from JSON.
func NewUserListFromReader(reader io.Reader) ([]*User, error) {
	var users []*User
	err := json.NewDecoder(reader).Decode(&users)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode user list")
	}
	return users, nil
}

// NewRegisterRequestFromReader decodes a RegisterRequest from JSON.
func NewRegisterRequestFromReader(reader io.Reader) (*RegisterRequest, error) {
	var request RegisterRequest
	err := json.NewDecoder(reader).Decode(&request)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode register request")
	}
	return &request, nil
}

// NewLoginRequestFromReader decodes a LoginRequest from JSON.
func NewLoginRequestFromReader(reader io.Reader) (*LoginRequest, error) {
	var request LoginRequest
	err := json.NewDecoder(reader).Decode(&request)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode login request")
	}
	return &request, nil
}

// NewLoginResponseFromReader decodes a LoginResponse from JSON.
func NewLoginResponseFromReader(reader io.Reader) (*LoginResponse, error) {
	var response LoginResponse
	err := json.NewDecoder(reader).Decode(&response)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode login response")
	}
	return &response, nil
}

// NewUpdateProfileRequestFromReader decodes an UpdateProfileRequest from JSON.
func NewUpdateProfileRequestFromReader(reader io.Reader) (*UpdateProfileRequest, error) {
	var request UpdateProfileRequest
	err := json.NewDecoder(reader).Decode(&request)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode profile update request")
	}
	return &request, nil
}

// NewUpdateUserRequestFromReader decodes an UpdateUserRequest from JSON.
func NewUpdateUserRequestFromReader(reader io.Reader) (*UpdateUserRequest, error) {
	var request UpdateUserRequest
	err := json.NewDecoder(reader).Decode(&request)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode user update request")
	}
	return &request, nil
}
