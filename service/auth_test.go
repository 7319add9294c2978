package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTokenizer struct{}

func (fakeTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "token", nil
}

func (fakeTokenizer) Decode(string) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func TestAuth(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc, err := NewAuthService(userRepo, fakeTokenizer{})
	assert.NoError(t, err)

	t.Run("register rejects weak passwords", func(t *testing.T) {
		assert.Error(t, svc.Register("ada", "password"))
	})

	t.Run("register and sign in", func(t *testing.T) {
		assert.NoError(t, svc.Register("ada", "correct-horse-battery-staple"))

		user, token, err := svc.SignIn("ada", "correct-horse-battery-staple")
		assert.NoError(t, err)
		assert.Equal(t, "ada", user.Username)
		assert.Equal(t, "token", token)
	})

	t.Run("sign in rejects a wrong password", func(t *testing.T) {
		_, _, err := svc.SignIn("ada", "not-the-password")
		assert.Error(t, err)
	})

	t.Run("sign in rejects an unknown user", func(t *testing.T) {
		_, _, err := svc.SignIn("nobody", "correct-horse-battery-staple")
		assert.Error(t, err)
	})
}
