package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg := LoadWithDefaults()

	assert.NotNil(t, cfg)
	assert.Equal(t, 5, cfg.TopProcesses)
	assert.Equal(t, 10, cfg.FailedLoginCount)
	assert.Equal(t, "/dev/", cfg.DiskDevicePrefix)
	assert.True(t, cfg.DockerEnabled)
	assert.Equal(t, 10*time.Second, cfg.CommandTimeout)
}

func TestLoadNoEnvironment(t *testing.T) {
	// A bare run with nothing configured must still load
	os.Unsetenv("TOP_PROCESSES")
	os.Unsetenv("FAILED_LOGIN_COUNT")
	os.Unsetenv("DOCKER_ENABLED")

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, 5, cfg.TopProcesses)
	assert.Equal(t, 10, cfg.FailedLoginCount)
	assert.True(t, cfg.DockerEnabled)
}

func TestLoadWithEnvVars(t *testing.T) {
	os.Setenv("TOP_PROCESSES", "3")
	os.Setenv("FAILED_LOGIN_COUNT", "20")
	os.Setenv("DISK_DEVICE_PREFIX", "/dev/sd")
	os.Setenv("DOCKER_ENABLED", "false")
	os.Setenv("COMMAND_TIMEOUT_SECONDS", "2")
	defer func() {
		os.Unsetenv("TOP_PROCESSES")
		os.Unsetenv("FAILED_LOGIN_COUNT")
		os.Unsetenv("DISK_DEVICE_PREFIX")
		os.Unsetenv("DOCKER_ENABLED")
		os.Unsetenv("COMMAND_TIMEOUT_SECONDS")
	}()

	cfg := Load()

	assert.Equal(t, 3, cfg.TopProcesses)
	assert.Equal(t, 20, cfg.FailedLoginCount)
	assert.Equal(t, "/dev/sd", cfg.DiskDevicePrefix)
	assert.False(t, cfg.DockerEnabled)
	assert.Equal(t, 2*time.Second, cfg.CommandTimeout)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	os.Setenv("TOP_PROCESSES", "many")
	os.Setenv("DOCKER_ENABLED", "sometimes")
	defer func() {
		os.Unsetenv("TOP_PROCESSES")
		os.Unsetenv("DOCKER_ENABLED")
	}()

	cfg := Load()

	assert.Equal(t, 5, cfg.TopProcesses)
	assert.True(t, cfg.DockerEnabled)
}
