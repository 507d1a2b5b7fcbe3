package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/internal/service"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds service.Credentials
		want  map[string]string
	}{
		{
			name:  "valid",
			creds: service.Credentials{Email: "ada@example.com", Password: "secret1"},
		},
		{
			name:  "surrounding whitespace in email",
			creds: service.Credentials{Email: "  ada@example.com ", Password: "secret1"},
		},
		{
			name:  "empty",
			creds: service.Credentials{},
			want: map[string]string{
				"email":    "Email is required",
				"password": "Password is required",
			},
		},
		{
			name:  "bad email and short password",
			creds: service.Credentials{Email: "ada.example.com", Password: "12345"},
			want: map[string]string{
				"email":    "Invalid email format",
				"password": "Password must be at least 6 characters",
			},
		},
		{
			name:  "display name form is rejected",
			creds: service.Credentials{Email: "Ada <ada@example.com>", Password: "secret1"},
			want:  map[string]string{"email": "Invalid email format"},
		},
		{
			name:  "domain without dot",
			creds: service.Credentials{Email: "ada@localhost", Password: "secret1"},
			want:  map[string]string{"email": "Invalid email format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.creds)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Fields)
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	err := ValidateRegistration(service.Registration{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	assert.NoError(t, err)

	err = ValidateRegistration(service.Registration{Email: "ada@example.com", Password: "secret1"})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"name"}, verr.Keys())
	assert.Equal(t, "Name is required", verr.Error())
}
