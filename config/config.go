package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the report generator. Every setting
// has a default matching the plain zero-argument invocation, so running
// without any environment set up produces the standard report.
type Config struct {
	// Report settings
	TopProcesses     int
	FailedLoginCount int
	DiskDevicePrefix string

	// Features
	DockerEnabled bool

	// External command execution
	CommandTimeout time.Duration
}

// Load reads configuration from environment variables. Every setting
// falls back to its default, so loading cannot fail.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load(getEnvFile())

	return &Config{
		TopProcesses:     getEnvInt("TOP_PROCESSES", 5),
		FailedLoginCount: getEnvInt("FAILED_LOGIN_COUNT", 10),
		DiskDevicePrefix: getEnv("DISK_DEVICE_PREFIX", "/dev/"),
		DockerEnabled:    getEnvBool("DOCKER_ENABLED", true),
		CommandTimeout:   time.Duration(getEnvInt("COMMAND_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

// getEnvFile returns the path to the .env file
func getEnvFile() string {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return envFile
	}

	if _, err := os.Stat(".env"); err == nil {
		return ".env"
	}

	// Try the executable's directory
	exe, err := os.Executable()
	if err == nil {
		dir := strings.TrimSuffix(exe, "/server-stats")
		envPath := dir + "/.env"
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	return ".env"
}

// LoadWithDefaults loads config with defaults for testing
func LoadWithDefaults() *Config {
	return &Config{
		TopProcesses:     5,
		FailedLoginCount: 10,
		DiskDevicePrefix: "/dev/",
		DockerEnabled:    true,
		CommandTimeout:   10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
