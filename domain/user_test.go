package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		u, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "wall_painter",
			PlainPassword: "maze#Runner!2024",
		})

		assert.NoError(t, err)
		assert.False(t, u.Guest)
		assert.NotEqual(t, "maze#Runner!2024", u.PasswordHash)
		assert.True(t, u.VerifyPassword("maze#Runner!2024"))
		assert.False(t, u.VerifyPassword("wrong"))
	})

	t.Run("rejects bad usernames", func(t *testing.T) {
		cases := []struct {
			username string
			want     error
		}{
			{"ab", ErrUsernameTooShort},
			{strings.Repeat("a", 21), ErrUsernameTooLong},
			{"no spaces", ErrUsernameFormat},
			{"dash-ed", ErrUsernameFormat},
		}

		for _, c := range cases {
			_, err := NewUser(UserConfig{
				ID:            uuid.New(),
				Username:      c.username,
				PlainPassword: "maze#Runner!2024",
			})
			assert.ErrorIs(t, err, c.want, "username %q", c.username)
		}
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		_, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "wall_painter",
			PlainPassword: "password",
		})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestNewGuestUser(t *testing.T) {
	id := uuid.New()
	u := NewGuestUser(id)

	assert.True(t, u.Guest)
	assert.Equal(t, id, u.ID)
	assert.True(t, strings.HasPrefix(u.Username, "guest-"))
	assert.False(t, u.VerifyPassword(""))
	assert.False(t, u.VerifyPassword("anything"))
}
