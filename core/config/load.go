package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
//
// An empty path returns the built-in defaults.
func Load(path string) (*Configuration, error) {
	if path == "" {
		return defaultConfig(), nil
	}

	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	configFs := afero.NewBasePathFs(afero.NewOsFs(), path)
	configContents, err := afero.ReadFile(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(path, ConfigurationName), err)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	out.configFs = configFs
	return &out, nil
}

// Initialize writes the default configuration to dir if it doesn't have one
// and loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	configFs := afero.NewBasePathFs(afero.NewOsFs(), dir)

	exists, err := afero.Exists(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	if exists {
		logger.Printf("%s already exists, leaving it alone\n", filepath.Join(dir, ConfigurationName))
	} else {
		logger.Printf("Writing %s\n", filepath.Join(dir, ConfigurationName))
		if err := afero.WriteFile(configFs, ConfigurationName, defaultConfigData, 0644); err != nil {
			return nil, err
		}
	}

	return Load(dir)
}

// LoadFromEnv loads the configuration named by EnvConfigPath, it's used by
// child processes that need the same configuration as their parent shell.
func LoadFromEnv() (*Configuration, error) {
	return Load(os.Getenv(EnvConfigPath))
}

// EnvConfigPath holds the configuration path passed to child processes.
const EnvConfigPath = "GOSH_CONFIG"
