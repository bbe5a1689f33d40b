package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("SECURE_STORE_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("API_BASE_URL", "")

	Load()

	assert.Equal(t, "http://localhost:8081", AppConfig.CORSOrigins)
	assert.NotContains(t, AppConfig.CORSOrigins, "*")
	assert.Equal(t, defaultAPIBaseURL, AppConfig.APIBaseURL)

	t.Run("Origins from the environment", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "https://app.example.com")
		Load()
		assert.Equal(t, "https://app.example.com", AppConfig.CORSOrigins)
	})
}
