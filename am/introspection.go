package am

import (
	"os"
	"sort"
	"strings"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/fsim/am.toml
	SourceUser        ConfigSource = "user"        // ~/.fsim/am.toml
	SourceProject     ConfigSource = "project"     // am.toml found walking up from cwd
	SourceExplicit    ConfigSource = "explicit"    // --config path
	SourceEnvironment ConfigSource = "environment" // FSIM_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource // The type of config source (default, system, user, etc.)
	Path   string       // File path or environment variable name
}

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key" yaml:"key"`
	Value      interface{}  `json:"value" yaml:"value"`
	Source     ConfigSource `json:"source" yaml:"source"`
	SourcePath string       `json:"source_path,omitempty" yaml:"source_path,omitempty"` // File path or env var name
}

// ConfigIntrospection provides metadata about the active configuration
type ConfigIntrospection struct {
	ConfigFiles []string      `json:"config_files" yaml:"config_files"` // Merged files, lowest precedence first
	Settings    []SettingInfo `json:"settings" yaml:"settings"`         // All settings with sources
}

// GetConfigIntrospection returns every effective setting with the source
// that supplied it.
func GetConfigIntrospection() (*ConfigIntrospection, error) {
	if _, err := Load(); err != nil {
		return nil, err
	}
	v, err := GetViper()
	if err != nil {
		return nil, err
	}

	loadMu.Lock()
	sources := make(map[string]SourceInfo, len(ConfigSources))
	for k, s := range ConfigSources {
		sources[k] = s
	}
	loadMu.Unlock()

	introspection := &ConfigIntrospection{
		ConfigFiles: LoadedFiles(),
		Settings:    make([]SettingInfo, 0),
	}
	flattenSettingsWithSources(v.AllSettings(), "", introspection, sources)
	return introspection, nil
}

// flattenKeys returns the dotted leaf keys of a nested settings map, sorted
func flattenKeys(settings map[string]interface{}, prefix string) []string {
	var keys []string
	for key, value := range settings {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			keys = append(keys, flattenKeys(nested, fullKey)...)
			continue
		}
		keys = append(keys, fullKey)
	}
	sort.Strings(keys)
	return keys
}

// envKey maps a dotted key to its environment variable name
func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// flattenSettingsWithSources flattens settings and assigns sources from sourceMap
func flattenSettingsWithSources(settings map[string]interface{}, prefix string, introspection *ConfigIntrospection, sourceMap map[string]SourceInfo) {
	for _, fullKey := range flattenKeys(settings, prefix) {
		value := lookup(settings, strings.TrimPrefix(strings.TrimPrefix(fullKey, prefix), "."))

		sourceInfo := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := sourceMap[fullKey]; ok {
			sourceInfo = si
		}

		// Environment overrides every file
		if env := envKey(fullKey); os.Getenv(env) != "" {
			sourceInfo = SourceInfo{Source: SourceEnvironment, Path: env}
		}

		introspection.Settings = append(introspection.Settings, SettingInfo{
			Key:        fullKey,
			Value:      value,
			Source:     sourceInfo.Source,
			SourcePath: sourceInfo.Path,
		})
	}
}

// lookup walks a dotted key through nested maps
func lookup(settings map[string]interface{}, key string) interface{} {
	var cur interface{} = settings
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}
