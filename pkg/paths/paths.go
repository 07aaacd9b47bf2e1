// Package paths resolves the process-wide base directory for persistent
// storage. Every durable artifact (knowledge collections, caches) lives
// under a subdirectory of this base.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvStorageDir is the environment variable that overrides the base
// storage directory when set.
const EnvStorageDir = "STRIX_STORAGE_DIR"

const appDirName = "strix"

// Storage returns the base directory for persistent storage. The
// EnvStorageDir environment variable wins when set, otherwise the
// platform's user cache directory is used with an app-specific suffix.
// The directory is not created here; the storage engine owns it.
func Storage() (string, error) {
	if dir := os.Getenv(EnvStorageDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("paths: resolve user cache dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}
