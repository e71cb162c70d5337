package cli

import (
	"os"
	"path/filepath"

	"github.com/forcadev/forca-online/internal/session"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	DataDir   string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("FORCA_SERVER", "http://localhost:8080"),
		DataDir:   getEnvOrDefault("FORCA_DATA_DIR", defaultDataDir()),
		Output:    "text",
		Verbose:   false,
	}
}

// OpenSession opens the local key/value store under the data directory.
// It holds the device player id and the active room id between runs.
func (c *Config) OpenSession() (*session.FileStore, error) {
	return session.NewFileStore(c.DataDir)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".forca"
	}
	return filepath.Join(home, ".forca")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
