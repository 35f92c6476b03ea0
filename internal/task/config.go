package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/hujson"
)

// Color modes for rendered output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ConfigFileName is the project config file looked up in the work directory.
const ConfigFileName = ".tasks.json"

// DataFileName is the default task file name.
const DataFileName = "tasks.csv"

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	DataFile    string `json:"data_file"`
	Color       string `json:"color,omitempty"`
	Sometime    string `json:"sometime,omitempty"`
	DefaultView string `json:"default_view,omitempty"`

	// Resolved (computed, not serialized)
	EffectiveCwd string    `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	DataFileAbs  string    `json:"-"` // Absolute path to the task file
	SometimeDate time.Time `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration for env.
func DefaultConfig(env map[string]string) Config {
	return Config{
		DataFile:    defaultDataFile(env),
		Color:       ColorAuto,
		Sometime:    DefaultSometime.Format(DateLayout),
		DefaultView: ViewTag,
	}
}

// defaultDataFile uses $XDG_DATA_HOME/tasks/tasks.csv, then
// ~/.local/share/tasks/tasks.csv, then tasks.csv in the work directory.
func defaultDataFile(env map[string]string) string {
	if xdgData := env["XDG_DATA_HOME"]; xdgData != "" {
		return filepath.Join(xdgData, "tasks", DataFileName)
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share", "tasks", DataFileName)
	}

	return DataFileName
}

// getGlobalConfigPath uses $XDG_CONFIG_HOME/tasks/config.json if set,
// otherwise ~/.config/tasks/config.json. Empty when neither is known.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "tasks", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "tasks", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride  string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath       string            // -c/--config flag value
	DataFileOverride string            // --file flag value
	HasDataFile      bool              // --file was given (even if empty)
	Env              map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/tasks/config.json or ~/.config/tasks/config.json)
// 3. Project config file (.tasks.json in the work directory, if it exists)
// 4. Explicit config file via ConfigPath (replaces the project file)
// 5. CLI overrides.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig(input.Env)

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.HasDataFile {
		cfg.DataFile = input.DataFileOverride
	}

	validateErr := validateConfig(&cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir

	if filepath.IsAbs(cfg.DataFile) {
		cfg.DataFileAbs = cfg.DataFile
	} else {
		cfg.DataFileAbs = filepath.Join(workDir, cfg.DataFile)
	}

	return cfg, nil
}

func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	return loadCheckedConfigFile(globalCfgPath, false)
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	if configPath == "" {
		return loadCheckedConfigFile(filepath.Join(workDir, ConfigFileName), false)
	}

	cfgFile := configPath
	if !filepath.IsAbs(cfgFile) {
		cfgFile = filepath.Join(workDir, cfgFile)
	}

	_, statErr := os.Stat(cfgFile)
	if statErr != nil {
		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}

	return loadCheckedConfigFile(cfgFile, true)
}

// loadCheckedConfigFile loads path and rejects an explicitly empty data_file.
// Returns the config and the path if the file was loaded.
func loadCheckedConfigFile(path string, mustExist bool) (Config, string, error) {
	cfg, explicitEmpty, loaded, err := loadConfigFile(path, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["data_file"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrDataFileEmpty)
	}

	return cfg, path, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, a map of explicitly empty fields, whether file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, explicitEmpty, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, explicitEmpty, true, nil
}

func parseConfig(data []byte) (Config, map[string]bool, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	if val, exists := raw["data_file"]; exists {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty["data_file"] = true
		}
	}

	return cfg, explicitEmpty, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.DataFile != "" {
		base.DataFile = overlay.DataFile
	}

	if overlay.Color != "" {
		base.Color = overlay.Color
	}

	if overlay.Sometime != "" {
		base.Sometime = overlay.Sometime
	}

	if overlay.DefaultView != "" {
		base.DefaultView = overlay.DefaultView
	}

	return base
}

func validateConfig(cfg *Config) error {
	if cfg.DataFile == "" {
		return ErrDataFileEmpty
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be %s|%s|%s, got %q", ErrConfigInvalid, ColorAuto, ColorAlways, ColorNever, cfg.Color)
	}

	sometime, err := ParseDate(cfg.Sometime)
	if err != nil {
		return fmt.Errorf("%w: sometime: %w", ErrConfigInvalid, err)
	}

	cfg.SometimeDate = sometime

	if cfg.DefaultView != ViewTag && cfg.DefaultView != ViewDue {
		return fmt.Errorf("%w: default_view: %w", ErrConfigInvalid, ValidateView(cfg.DefaultView))
	}

	return nil
}
