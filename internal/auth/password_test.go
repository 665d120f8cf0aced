package auth

import (
	"testing"

	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Valid1!pass", false},
		{"seed admin password", "admin@123", false},
		{"too short", "short1", true},
		{"no digit", "NoDigits!!", true},
		{"no symbol", "NoSymbol123", true},
		{"backslash counts as symbol", `abcdefg1\`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, apperror.KindValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("Valid1!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "Valid1!pass", hash)

	assert.NoError(t, h.Compare(hash, "Valid1!pass"))
	assert.Error(t, h.Compare(hash, "wrong"))
}
