package appdirs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	envHomeOverride      = "WEBGATE_HOME"
	envUserDataOverride  = "WEBGATE_USER_DATA_DIR"
	envDownloadsOverride = "WEBGATE_DOWNLOAD_DIR"
)

func BaseDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(envHomeOverride)); dir != "" {
		return filepath.Clean(dir), nil
	}

	if cfgDir, err := os.UserConfigDir(); err == nil && strings.TrimSpace(cfgDir) != "" {
		return filepath.Join(cfgDir, "webgate"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		if err == nil {
			err = errors.New("empty home directory")
		}
		return "", fmt.Errorf("determine webgate base dir: %w", err)
	}

	return filepath.Join(home, ".webgate"), nil
}

// UserDataDir is where the launched browser keeps its profile.
func UserDataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(envUserDataOverride)); dir != "" {
		return filepath.Clean(dir), nil
	}

	base, err := BaseDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(base, "user_data"), nil
}

// DownloadsDir is the default destination for screenshots, PDFs and
// generated codegen tests when the caller gives no output path.
func DownloadsDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(envDownloadsOverride)); dir != "" {
		return filepath.Clean(dir), nil
	}

	base, err := BaseDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(base, "downloads"), nil
}

func EnsureDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("ensure dir: empty path")
	}
	return os.MkdirAll(path, 0o755)
}
