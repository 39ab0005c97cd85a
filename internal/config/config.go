// Package config loads pipeline configuration files. Files describe only
// the declarative part of a pipeline (toggles and the sanitize allowlist);
// stage implementations are code and are supplied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdfront/internal/fileutil"
	"github.com/alnah/go-mdfront/internal/frontmatter"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds the file-expressible pipeline configuration.
type Config struct {
	Slug     bool           `yaml:"slug"`
	Autolink bool           `yaml:"autolink"`
	Sanitize SanitizeConfig `yaml:"sanitize"`
}

// SanitizeConfig defines the HTML sanitization allowlist.
type SanitizeConfig struct {
	Enabled       bool                `yaml:"enabled"`
	AllowStandard bool                `yaml:"allowStandard"`
	AllowedTags   []string            `yaml:"allowedTags"`
	AllowedAttrs  map[string][]string `yaml:"allowedAttrs"`
}

// Load reads configuration from a file path or config name. If nameOrPath
// contains a path separator, it's treated as a file path. Otherwise, it's
// treated as a config name and searched in standard locations. Returns
// error if the file is not found; the caller decides fallback policy.
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := frontmatter.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard
// locations. Tries extensions in order: .yaml, .yml. Tries locations in
// order: current directory, then the user config dir under go-mdfront/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mdfront", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
