package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := &UserConfig{
		CurrentProfile: "staging",
		Profiles: map[string]Profile{
			"staging": {Host: "https://staging.clinic.local", Token: "tok-1", Output: "json"},
		},
	}
	require.NoError(t, SaveUserConfig(cfg))

	loaded, err := LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "staging", loaded.CurrentProfile)
	assert.Equal(t, "https://staging.clinic.local", loaded.Profiles["staging"].Host)
	assert.Equal(t, "tok-1", loaded.Profiles["staging"].Token)
}

func TestUserConfig_MissingFileErrors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	_, err := LoadUserConfig()
	require.Error(t, err)
}

func TestActiveProfile_Override(t *testing.T) {
	cfg := &UserConfig{
		CurrentProfile: "default",
		Profiles: map[string]Profile{
			"default": {Host: "http://localhost:8000"},
			"prod":    {Host: "https://clinic.example.com"},
		},
	}

	assert.Equal(t, "http://localhost:8000", cfg.ActiveProfile("").Host)
	assert.Equal(t, "https://clinic.example.com", cfg.ActiveProfile("prod").Host)
	assert.Empty(t, cfg.ActiveProfile("missing").Host)
}

func TestSaveTokenToActiveProfile_CreatesDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	require.NoError(t, saveTokenToActiveProfile("fresh-token"))

	loaded, err := LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "default", loaded.CurrentProfile)
	assert.Equal(t, "fresh-token", loaded.Profiles["default"].Token)
}

func TestSaveTokenToActiveProfile_KeepsOtherFields(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	require.NoError(t, SaveUserConfig(&UserConfig{
		CurrentProfile: "work",
		Profiles: map[string]Profile{
			"work": {Host: "https://clinic.example.com", Output: "json"},
		},
	}))
	require.NoError(t, saveTokenToActiveProfile("new-token"))

	loaded, err := LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://clinic.example.com", loaded.Profiles["work"].Host)
	assert.Equal(t, "json", loaded.Profiles["work"].Output)
	assert.Equal(t, "new-token", loaded.Profiles["work"].Token)
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"short", "abc", "****"},
		{"exactly_10", "1234567890", "****"},
		{"long_token", "eyJhbGciOiJIUzI1NiJ9.payload.sig", "eyJh****.sig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskSecret(tt.input))
		})
	}
}

func TestMaskConfig(t *testing.T) {
	cfg := &UserConfig{
		CurrentProfile: "default",
		Profiles: map[string]Profile{
			"default": {
				Host:  "http://localhost:8000",
				Token: "eyJhbGciOiJIUzI1NiJ9.payload.signature",
			},
		},
	}

	masked := maskConfig(cfg)

	assert.Equal(t, "http://localhost:8000", masked.Profiles["default"].Host)
	assert.Contains(t, masked.Profiles["default"].Token, "****")

	// Original config not mutated.
	assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.payload.signature", cfg.Profiles["default"].Token)
}
