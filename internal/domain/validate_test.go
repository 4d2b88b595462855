package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		password2 string
		wantMsg   string
	}{
		{
			name:      "valid password",
			password:  "secret123",
			password2: "secret123",
			wantMsg:   "",
		},
		{
			name:      "mismatch",
			password:  "secret123",
			password2: "secret124",
			wantMsg:   "Passwords do not match",
		},
		{
			name:      "too short",
			password:  "abc1",
			password2: "abc1",
			wantMsg:   "Password must be at least 8 characters long",
		},
		{
			name:      "no digit",
			password:  "onlyletters",
			password2: "onlyletters",
			wantMsg:   "Password must contain at least one digit",
		},
		{
			name:      "no letter",
			password:  "1234567890",
			password2: "1234567890",
			wantMsg:   "Password must contain at least one letter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &RegisterRequest{
				Username:  "alice",
				Email:     "alice@example.com",
				Password:  tt.password,
				Password2: tt.password2,
			}
			err := req.Validate()
			if tt.wantMsg == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantMsg, err.Fields["password"])
		})
	}
}

func TestRegisterRequestValidateMismatchWinsOverLength(t *testing.T) {
	req := &RegisterRequest{Password: "a1", Password2: "b2"}
	err := req.Validate()
	require.NotNil(t, err)
	assert.Equal(t, "Passwords do not match", err.Fields["password"])
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"password": "Passwords do not match"}}
	assert.Contains(t, err.Error(), "password: Passwords do not match")
}
