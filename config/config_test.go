package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("COOKIE_SECURE", "")

	s := LoadSettings()
	assert.Equal(t, "dev", s.Env)
	assert.Equal(t, DefaultJWTSecret, s.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, s.JWTTTL)
	assert.True(t, s.CookieSecure)
	assert.NoError(t, s.Validate())
}

func TestValidateRefusesDefaultSecretOutsideDev(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	err := LoadSettings().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cr3t-from-vault")
	assert.NoError(t, LoadSettings().Validate())
}

func TestEnvParsingFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("COOKIE_SECURE", "maybe")

	assert.Equal(t, time.Hour, GetEnvDuration("JWT_TTL", time.Hour))
	assert.False(t, GetEnvBool("COOKIE_SECURE", false))

	t.Setenv("JWT_TTL", "90m")
	assert.Equal(t, 90*time.Minute, GetEnvDuration("JWT_TTL", time.Hour))
}
