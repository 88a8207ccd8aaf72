package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings_Defaults(t *testing.T) {
	for _, key := range []string{"CRUMBTRAIL_LOG_LEVEL", "CRUMBTRAIL_LOG_FORMAT", "CRUMBTRAIL_MAX_BREADCRUMBS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	s, err := ParseSettings()

	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.Equal(t, 100, s.MaxBreadcrumbs)
}

func TestParseSettings_FromEnv(t *testing.T) {
	t.Setenv("CRUMBTRAIL_LOG_LEVEL", "debug")
	t.Setenv("CRUMBTRAIL_LOG_FORMAT", "json")
	t.Setenv("CRUMBTRAIL_MAX_BREADCRUMBS", "25")

	s, err := ParseSettings()

	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, 25, s.MaxBreadcrumbs)
}

func TestParseSettings_InvalidNumber(t *testing.T) {
	t.Setenv("CRUMBTRAIL_MAX_BREADCRUMBS", "many")

	_, err := ParseSettings()
	require.Error(t, err)
}

func TestOTELConfig_GetEndpoint(t *testing.T) {
	tests := []struct {
		name string
		cfg  OTELConfig
		want string
	}{
		{name: "default", cfg: OTELConfig{}, want: "localhost:4318"},
		{name: "generic", cfg: OTELConfig{ExporterEndpoint: "collector:4318"}, want: "collector:4318"},
		{
			name: "traces wins",
			cfg:  OTELConfig{ExporterEndpoint: "collector:4318", TracesEndpoint: "traces:4318"},
			want: "traces:4318",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.GetEndpoint())
		})
	}
}

func TestOTELConfig_ParseResourceAttributes(t *testing.T) {
	cfg := OTELConfig{ResourceAttributes: "deployment.environment=dev, team = desktop ,broken,=nokey"}

	attrs := cfg.ParseResourceAttributes()

	require.Len(t, attrs, 2)
	assert.Equal(t, "deployment.environment", string(attrs[0].Key))
	assert.Equal(t, "dev", attrs[0].Value.AsString())
	assert.Equal(t, "team", string(attrs[1].Key))
	assert.Equal(t, "desktop", attrs[1].Value.AsString())
}

func TestOTELConfig_NoResourceAttributes(t *testing.T) {
	cfg := OTELConfig{}
	assert.Nil(t, cfg.ParseResourceAttributes())
}
