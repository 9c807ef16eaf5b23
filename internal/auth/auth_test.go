package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctrans/dtrs/model"
)

func TestIssueAndVerify(t *testing.T) {
	authenticator := NewAuthenticator([]byte("test-signing-key"))

	user := model.NewUser("translator@example.com", "Sam Translator")
	user.Admin = true

	token, err := authenticator.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := authenticator.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.Admin)
	assert.Equal(t, token, session.Token)
	assert.Equal(t, model.RoleAdmin, session.Role())
}

func TestVerifyRejectsGarbage(t *testing.T) {
	authenticator := NewAuthenticator([]byte("test-signing-key"))

	_, err := authenticator.Verify("not-a-token")
	assert.Error(t, err)

	_, err = authenticator.Verify("")
	assert.Error(t, err)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer := NewAuthenticator([]byte("key-one"))
	verifier := NewAuthenticator([]byte("key-two"))

	token, err := issuer.IssueToken(model.NewUser("translator@example.com", "Sam Translator"))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	authenticator := NewAuthenticator([]byte("test-signing-key"))
	authenticator.lifetime = -1

	token, err := authenticator.IssueToken(model.NewUser("translator@example.com", "Sam Translator"))
	require.NoError(t, err)

	_, err = authenticator.Verify(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong password"))
	assert.False(t, CheckPassword("", "correct horse battery"))
}
