package cli

import "os"

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Secret    string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("ATLASCTL_SERVER", "http://localhost:4567"),
		Secret:    os.Getenv("ATLASCTL_SECRET"),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
