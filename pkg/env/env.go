package env

import "os"

// Get reads an environment variable with a fallback default.
func Get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// IsDev reports whether the process runs in a development environment.
func IsDev() bool {
	switch Get("FORMCRAFT_ENV", "development") {
	case "development", "dev", "local", "test":
		return true
	}
	return false
}
