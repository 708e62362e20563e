package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4556/api/hardware", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 8089, cfg.Scanner.Port)
	assert.Equal(t, "67130500426", cfg.Scanner.TestScanSubject)
	assert.Equal(t, GPIOModeAuto, cfg.Actuator.Mode)
	assert.Equal(t, 5*time.Second, cfg.Actuator.UnlockDuration)
	assert.Equal(t, 10*time.Second, cfg.SuccessDisplay)
	assert.Equal(t, UIHeadless, cfg.UI)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://10.0.0.5/api/hardware")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("ADMS_PORT", "9000")
	t.Setenv("GPIO_MODE", "mock")
	t.Setenv("UNLOCK_DURATION", "3s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5/api/hardware", cfg.Backend.BaseURL)
	assert.Equal(t, "secret", cfg.Backend.Token)
	assert.Equal(t, 9000, cfg.Scanner.Port)
	assert.Equal(t, GPIOModeMock, cfg.Actuator.Mode)
	assert.Equal(t, 3*time.Second, cfg.Actuator.UnlockDuration)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Run("unparseable port", func(t *testing.T) {
		t.Setenv("ADMS_PORT", "eighty")
		_, err := FromEnv()
		assert.Error(t, err)
	})
	t.Run("unknown gpio mode", func(t *testing.T) {
		t.Setenv("GPIO_MODE", "sysfs")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "GPIO_MODE")
	})
	t.Run("non-positive unlock duration", func(t *testing.T) {
		t.Setenv("UNLOCK_DURATION", "0s")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "UNLOCK_DURATION")
	})
}
