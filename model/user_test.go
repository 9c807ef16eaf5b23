package model

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := func() *RegisterRequest {
		return &RegisterRequest{
			Email:    "translator@example.com",
			Name:     "Sam Translator",
			Password: "correct horse battery",
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.Nil(t, valid().Validate())
	})

	t.Run("malformed email", func(t *testing.T) {
		request := valid()
		request.Email = "not-an-address"
		issues := request.Validate()
		require.NotNil(t, issues)
		assert.Contains(t, issues, "email")
	})

	t.Run("short password", func(t *testing.T) {
		request := valid()
		request.Password = "short"
		issues := request.Validate()
		require.NotNil(t, issues)
		assert.Contains(t, issues, "password")
	})

	t.Run("blank name", func(t *testing.T) {
		request := valid()
		request.Name = " "
		issues := request.Validate()
		require.NotNil(t, issues)
		assert.Contains(t, issues, "name")
	})
}

func TestUserRole(t *testing.T) {
	user := NewUser("translator@example.com", "Sam Translator")
	assert.Equal(t, RoleOwner, user.Role())

	user.Admin = true
	assert.Equal(t, RoleAdmin, user.Role())
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	user := NewUser("translator@example.com", "Sam Translator")
	user.PasswordHash = "$2a$10$notarealhash"

	var buffer bytes.Buffer
	require.NoError(t, json.NewEncoder(&buffer).Encode(user))
	assert.NotContains(t, buffer.String(), "notarealhash")

	decoded, err := NewUserFromReader(&buffer)
	require.NoError(t, err)
	assert.Empty(t, decoded.PasswordHash)
	assert.Equal(t, user.ID, decoded.ID)
}

func TestSession(t *testing.T) {
	t.Run("nil and empty sessions are invalid", func(t *testing.T) {
		var session *Session
		assert.False(t, session.IsValid())
		assert.Equal(t, RoleOwner, session.Role())
		assert.False(t, (&Session{}).IsValid())
	})

	t.Run("from login response", func(t *testing.T) {
		user := NewUser("admin@example.com", "Addy Admin")
		user.Admin = true
		session := NewSession(&LoginResponse{Token: "token-value", User: user})

		assert.True(t, session.IsValid())
		assert.Equal(t, user.ID, session.UserID)
		assert.Equal(t, RoleAdmin, session.Role())
	})
}
