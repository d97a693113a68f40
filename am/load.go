package am

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/fsim/errors"
)

// ConfigFileName is the name searched for in system, user and project locations
const ConfigFileName = "am.toml"

// EnvPrefix prefixes every environment override (FSIM_RUN_DAYS, ...)
const EnvPrefix = "FSIM"

var (
	loadMu        sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	explicitFile  string

	// ConfigSources records, per dotted key, the file that last set it.
	// Populated while loading; keys absent here come from defaults or env.
	ConfigSources = map[string]SourceInfo{}

	// loadedFiles are the config files merged, lowest precedence first
	loadedFiles []string
)

// SetConfigFile makes Load read only path (plus defaults and environment)
// instead of searching the system, user and project locations. An empty
// path restores the search.
func SetConfigFile(path string) {
	loadMu.Lock()
	defer loadMu.Unlock()
	explicitFile = path
	resetLocked()
}

// Load reads the FSIM configuration using Viper
func Load() (*Config, error) {
	loadMu.Lock()
	defer loadMu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() (*viper.Viper, error) {
	loadMu.Lock()
	defer loadMu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set defaults but don't bind environment variables for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	loadMu.Lock()
	defer loadMu.Unlock()
	resetLocked()
}

func resetLocked() {
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
	loadedFiles = nil
}

// LoadedFiles returns the config files merged by the last load, lowest
// precedence first.
func LoadedFiles() []string {
	loadMu.Lock()
	defer loadMu.Unlock()
	return append([]string(nil), loadedFiles...)
}

// ActiveFile returns the highest-precedence config file that was merged,
// or "" when only defaults and environment are in effect.
func ActiveFile() string {
	files := LoadedFiles()
	if len(files) == 0 {
		return ""
	}
	return files[len(files)-1]
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold loadMu.
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()

	// Set up environment variable binding
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)

	// Set defaults first
	SetDefaults(v)

	// Merge configs in precedence order: system -> user -> project; env vars sit above all files
	if err := mergeConfigFiles(v); err != nil {
		return nil, err
	}

	viperInstance = v
	return v, nil
}

// findProjectConfig searches for am.toml by walking up the directory tree
// Returns the path to the first config file found, or empty string if none found
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		amPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(amPath); err == nil {
			return amPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			break
		}
		dir = parent
	}

	return ""
}

// UserConfigPath returns ~/.fsim/am.toml
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fsim", ConfigFileName)
}

// SystemConfigPath is the machine-wide config file
const SystemConfigPath = "/etc/fsim/am.toml"

type configCandidate struct {
	path   string
	source ConfigSource
}

func configCandidates() []configCandidate {
	if explicitFile != "" {
		return []configCandidate{{path: explicitFile, source: SourceExplicit}}
	}

	candidates := []configCandidate{{path: SystemConfigPath, source: SourceSystem}}
	if user := UserConfigPath(); user != "" {
		candidates = append(candidates, configCandidate{path: user, source: SourceUser})
	}
	if project := findProjectConfig(); project != "" {
		candidates = append(candidates, configCandidate{path: project, source: SourceProject})
	}
	return candidates
}

// mergeConfigFiles merges configuration files in the correct precedence order
// Precedence (lowest to highest): system < user < project < env vars
func mergeConfigFiles(v *viper.Viper) error {
	seen := map[string]bool{}
	for _, c := range configCandidates() {
		abs, err := filepath.Abs(c.path)
		if err == nil {
			if seen[abs] {
				continue
			}
			seen[abs] = true
		}

		if _, err := os.Stat(c.path); err != nil {
			if c.source == SourceExplicit {
				return errors.WithHint(
					errors.Wrapf(errors.ErrNotFound, "config file %s", c.path),
					"check the --config path")
			}
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(c.path)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", c.path)
		}

		settings := tempViper.AllSettings()
		if err := v.MergeConfigMap(settings); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", c.path)
		}
		for _, key := range flattenKeys(settings, "") {
			ConfigSources[key] = SourceInfo{Source: c.source, Path: c.path}
		}
		loadedFiles = append(loadedFiles, c.path)
	}
	return nil
}

// Get returns a configuration value using dot notation
func Get(key string) (interface{}, error) {
	v, err := GetViper()
	if err != nil {
		return nil, err
	}
	if !v.IsSet(key) {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrNotFound, "config key %q", key),
			"run 'fsim am show' to list every key")
	}
	return v.Get(key), nil
}
