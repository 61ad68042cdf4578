package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func validProductionConfig() *Config {
	return &Config{
		Env:        "production",
		Port:       "8080",
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		DBDriver:   "postgres",
		DBPassword: "secure-password",
		DBSSLMode:  "require",
	}
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid", func(c *Config) {}, false},
		{"default secret", func(c *Config) { c.JWTSecret = defaultJWTSecret }, true},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, true},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"weak db password", func(c *Config) { c.DBPassword = "password" }, true},
		{"ssl disabled", func(c *Config) { c.DBSSLMode = "disable" }, true},
		{"sqlite in production", func(c *Config) { c.DBDriver = "sqlite" }, true},
		{"prod alias", func(c *Config) { c.Env = "prod" }, false},
		{"demo seeding", func(c *Config) { c.SeedDemoData = true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validProductionConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateDevelopment(t *testing.T) {
	c := &Config{Env: "development", Port: "8080", JWTSecret: "dev", DBDriver: "sqlite"}
	assert.NoError(t, c.Validate())

	c.DBDriver = "mysql"
	assert.Error(t, c.Validate())

	c.DBDriver = "sqlite"
	c.BcryptCost = 2
	assert.Error(t, c.Validate())
}

func TestConfig_TokenTTL(t *testing.T) {
	assert.Equal(t, 10*time.Minute, (&Config{}).TokenTTL())
	assert.Equal(t, 30*time.Minute, (&Config{JWTTTLMinutes: 30}).TokenTTL())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "  SQLITE ")
	t.Setenv("JWT_TTL_MINUTES", "15")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "test", c.Env)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, 15*time.Minute, c.TokenTTL())
	assert.Equal(t, 12, c.BcryptCost)
	assert.Equal(t, "barrique-api", c.JWTIssuer)
	assert.False(t, c.SeedDemoData)
}
