package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home              string `mapstructure:"home" yaml:"home"`                             // key directory, e.g. $HOME/.keystone
	DerivationVersion string `mapstructure:"derivation_version" yaml:"derivation_version"` // legacy, argon2i, argon2id or current
	KDFMaxMemoryKiB   uint32 `mapstructure:"kdf_max_memory_kib" yaml:"kdf_max_memory_kib"` // 0 means no cap
	Encoding          string `mapstructure:"encoding" yaml:"encoding"`                     // hex, base64 or base58
	LogLevel          string `mapstructure:"log_level" yaml:"log_level"`
}

// flagKeys maps config keys to the command flags that override them.
var flagKeys = map[string]string{
	"home":               "home",
	"derivation_version": "kdf",
	"kdf_max_memory_kib": "kdf-max-memory",
	"encoding":           "encoding",
	"log_level":          "log-level",
}

// DefaultHome returns $HOME/.keystone.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".keystone"), nil
}

// Defaults returns the built-in configuration.
func Defaults() map[string]any {
	home, err := DefaultHome()
	if err != nil {
		home = ".keystone"
	}
	return map[string]any{
		"home":               home,
		"derivation_version": "current",
		"kdf_max_memory_kib": 0,
		"encoding":           "hex",
		"log_level":          "info",
	}
}

// ConfigPath returns the user config file path, keystone.yaml under the user
// config directory.
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "keystone", "keystone.yaml"), nil
}

// LoadConfig resolves Config from defaults, then the config file, then
// KEYSTONE_* environment variables, then flags set on cmd. configFile, when
// non-empty, replaces the config file search and must exist.
func LoadConfig(cmd *cobra.Command, configFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("keystone")
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if p, err := ConfigPath(); err == nil {
			v.AddConfigPath(filepath.Dir(p))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless it was asked for explicitly.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("keystone")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for key, name := range flagKeys {
			f := cmd.Flags().Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return c, err
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// WriteConfigFile renders c as YAML to path, creating the directory. An
// existing file is kept unless overwrite is set.
func WriteConfigFile(c Config, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	return os.WriteFile(path, data, 0o600)
}
