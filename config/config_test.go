package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	c, err := Load([]byte("gemini:\n  api_key: from-yaml\n"))
	require.NoError(t, err)
	require.Equal(t, "from-yaml", c.Gemini.APIKey)
	require.Equal(t, 3, c.Retry.MaxRetries)
	require.Equal(t, 1000, c.Retry.InitialDelayMs)
	require.Equal(t, []string{"gemini-2.5-flash-image", "gemini-3-pro-image-preview"}, c.Gemini.ImageModels)
	require.Equal(t, 6*time.Minute, c.Gemini.TimeoutDuration())
}

func TestLoadEnvOverridesKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "from-env")
	c, err := Load([]byte("gemini:\n  api_key: from-yaml\n"))
	require.NoError(t, err)
	require.Equal(t, "from-env", c.Gemini.APIKey)
}

func TestLoadMissingKeyIsNotAVerifyError(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	c, err := Load([]byte("log:\n  level: debug\n"))
	require.NoError(t, err)
	require.Empty(t, c.Gemini.APIKey)
}

func TestVerify(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"bad level", "log:\n  level: loud\n"},
		{"bad timeout", "gemini:\n  timeout: soon\n"},
		{"no image models", "gemini:\n  image_models: []\n"},
		{"negative retries", "retry:\n  max_retries: -1\n"},
		{"zero delay", "retry:\n  initial_delay_ms: 0\n"},
		{"too many variants", "furnish:\n  max_variants: 6\n"},
		{"default above max", "furnish:\n  max_variants: 2\n  default_variants: 3\n"},
		{"history without db", "invoke_history:\n  enabled: true\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load([]byte(tc.yaml))
			require.Error(t, err)
		})
	}
}
