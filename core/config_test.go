package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("TEST_BACKEND_ENVIRONMENT", "Production")
	t.Setenv("TEST_BACKEND_TIMEOUT", "3s")
	t.Setenv("TEST_DATABASE_ENABLED", "true")
	t.Setenv("TEST_REDIS_URL", "redis://localhost:6379/1")

	conf := NewConfig()

	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.Equal(t, "Arbitres", conf.AppName)
	assert.Equal(t, BackendProduction, conf.Backend.Environment)
	assert.Equal(t, productionBaseURL, conf.Backend.BaseURL())
	assert.Equal(t, 3*time.Second, conf.Backend.Timeout)
	assert.True(t, conf.Database.Enabled)
	assert.Equal(t, "redis://localhost:6379/1", conf.Redis.URL)
	assert.Equal(t, 6*time.Hour, conf.Redis.LeagueTTL)
}

func TestBackendConfig_BaseURL(t *testing.T) {
	tests := []struct {
		name string
		conf BackendConfig
		want string
	}{
		{name: "local by default", conf: BackendConfig{}, want: localBaseURL},
		{name: "production", conf: BackendConfig{Environment: BackendProduction}, want: productionBaseURL},
		{name: "override wins", conf: BackendConfig{Environment: BackendProduction, OverrideBaseURL: " http://10.0.0.2:8000/api/ "}, want: "http://10.0.0.2:8000/api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.conf.BaseURL())
		})
	}
}
