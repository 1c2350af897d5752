package password_test

import (
	"larisa/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid password", password: "validPassword123"},
		{name: "unicode password", password: "пароль123"},
		{name: "empty password", password: "", wantErr: password.ErrEmptyPassword},
		{name: "longer than bcrypt allows", password: strings.Repeat("a", 100), wantErr: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$"))
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "match", password: "s3cret-pass", hash: hash},
		{name: "wrong password", password: "other", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "s3cret-pass", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "s3cret-pass", hash: "not-a-hash", wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("same")
	require.NoError(t, err)

	second, err := password.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
