package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultConfigFile(t *testing.T) {
	generatedCfg := GenerateDefaultConfigFile()
	cfg, err := ReadConfig(bytes.NewReader(generatedCfg))
	require.NoError(t, err)
	require.EqualValues(t, DefaultConfig, *cfg)
}

func TestReadConfigPartial(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(`log_level = "debug"`))
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, DefaultConfig.Buffers, cfg.Buffers)
}

func TestReadConfigMalformed(t *testing.T) {
	_, err := ReadConfig(strings.NewReader(`log_level = [`))
	require.Error(t, err)
}
