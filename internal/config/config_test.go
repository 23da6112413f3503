package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"APP_ENV":              "",
		"PORT":                 "",
		"CORS_ALLOWED_ORIGINS": "",
	})
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"APP_ENV":              "production",
		"PORT":                 "9090",
		"CORS_ALLOWED_ORIGINS": "https://pos.example.com, https://admin.example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "production", cfg.AppEnv)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, []string{"https://pos.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestHTTPAddr(t *testing.T) {
	cases := map[string]string{
		"8080":  ":8080",
		":9090": ":9090",
		"":      ":8080",
		"  ":    ":8080",
	}
	for port, want := range cases {
		cfg := &Config{Port: port}
		require.Equal(t, want, cfg.HTTPAddr())
	}
}

func TestSplitAndTrim(t *testing.T) {
	require.Nil(t, splitAndTrim(""))
	require.Equal(t, []string{"a", "b"}, splitAndTrim(" a , ,b "))
}
