package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 1440, cfg.TokenTTLMinutes)
	assert.Equal(t, "0 0 * * *", cfg.SummarySchedule)
	assert.False(t, cfg.SMTPConfigured())
}

func TestNewConfigRequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfigTokenTTL(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		want      int
		wantError bool
	}{
		{"custom value", "60", 60, false},
		{"not a number", "soon", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SECRET_KEY", "test-secret")
			t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", tt.value)

			cfg, err := NewConfig()
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.TokenTTLMinutes)
		})
	}
}

func TestSMTPConfigured(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.True(t, cfg.SMTPConfigured())
}
