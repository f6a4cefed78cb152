package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 7180, cfg.Port)
	assert.False(t, cfg.TLS)
	assert.Equal(t, 10, cfg.APIVersion)
	assert.Equal(t, "admin", cfg.User)
	assert.Equal(t, "admin", cfg.Password)
	assert.Empty(t, cfg.Cluster)
	assert.Equal(t, "KUDU", cfg.Product)
	assert.Equal(t, 120, cfg.MaxTimePerStage)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, wantErr: "host is required"},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: "port 0 out of range"},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "out of range"},
		{name: "api version", mutate: func(c *Config) { c.APIVersion = 0 }, wantErr: "api_version"},
		{name: "missing user", mutate: func(c *Config) { c.User = "" }, wantErr: "user is required"},
		{name: "missing product", mutate: func(c *Config) { c.Product = "" }, wantErr: "product is required"},
		{name: "zero budget", mutate: func(c *Config) { c.MaxTimePerStage = 0 }, wantErr: "max_time_per_stage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	t.Parallel()
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"host", "port", "api_version", "user", "product", "max_time_per_stage"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_EmptyPasswordAllowed(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Password = ""

	assert.NoError(t, cfg.Validate())
}

func TestBaseURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "defaults",
			cfg:  *Default(),
			want: "http://localhost:7180/api/v10",
		},
		{
			name: "tls",
			cfg:  Config{Host: "cm.example.com", Port: 7183, TLS: true, APIVersion: 19},
			want: "https://cm.example.com:7183/api/v19",
		},
		{
			name: "ipv6 host",
			cfg:  Config{Host: "::1", Port: 7180, APIVersion: 10},
			want: "http://[::1]:7180/api/v10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.BaseURL())
		})
	}
}
