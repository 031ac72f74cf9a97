package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"archcompare/internal/loader"
)

const (
	// DefaultConfigFile is read when no --config flag is given. It may be absent.
	DefaultConfigFile = "archcompare.yaml"
	// DefaultOutputDir holds the generator outputs and the comparison artifact.
	DefaultOutputDir = "comparison_output"

	envPrefix = "ARCHCOMPARE_"
)

// Config is the full tool configuration.
type Config struct {
	Inputs loader.Paths `yaml:"inputs"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
	AWS    AWSConfig    `yaml:"aws"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig controls where the comparator writes and what it prints.
type OutputConfig struct {
	Artifact string `yaml:"artifact"`
	CSV      string `yaml:"csv"`
	Format   string `yaml:"format"`
}

// ServerConfig controls the dashboard listener.
type ServerConfig struct {
	Address     string `yaml:"address"`
	Port        int    `yaml:"port"`
	ServiceName string `yaml:"service_name"`
}

// AWSConfig controls the snapshot command.
type AWSConfig struct {
	Region      string `yaml:"region"`
	BatchSize   int    `yaml:"batch_size"`
	Concurrency int    `yaml:"concurrency"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
// Input names follow the generator's output layout.
func DefaultConfig() *Config {
	return &Config{
		Inputs: loader.Paths{
			Baseline:          filepath.Join(DefaultOutputDir, "baseline_db_architectures_set_search_space_output.json"),
			Enhanced:          filepath.Join(DefaultOutputDir, "enhanced_db_architectures_set_search_space_output.json"),
			BaselineReasoning: filepath.Join(DefaultOutputDir, "baseline_db_architectures_set_search_space_reasoning_output.json"),
			EnhancedReasoning: filepath.Join(DefaultOutputDir, "enhanced_db_architectures_set_search_space_reasoning_output.json"),
		},
		Output: OutputConfig{
			Artifact: filepath.Join(DefaultOutputDir, "architecture_comparison.json"),
			Format:   "table",
		},
		Server: ServerConfig{
			Address:     "localhost",
			Port:        8501,
			ServiceName: "archcompare",
		},
		AWS: AWSConfig{
			BatchSize:   100,
			Concurrency: 4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path, the
// .env file and ARCHCOMPARE_* environment variables, in that order.
// An empty path falls back to DefaultConfigFile, which may be missing.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment. Variables that
// are already set win. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	strs := map[string]*string{
		"BASELINE":           &c.Inputs.Baseline,
		"ENHANCED":           &c.Inputs.Enhanced,
		"BASELINE_REASONING": &c.Inputs.BaselineReasoning,
		"ENHANCED_REASONING": &c.Inputs.EnhancedReasoning,
		"ARTIFACT":           &c.Output.Artifact,
		"CSV":                &c.Output.CSV,
		"FORMAT":             &c.Output.Format,
		"ADDRESS":            &c.Server.Address,
		"SERVICE_NAME":       &c.Server.ServiceName,
		"AWS_REGION":         &c.AWS.Region,
		"LOG_LEVEL":          &c.Log.Level,
	}
	for name, field := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
			*field = v
		}
	}

	ints := map[string]*int{
		"PORT":            &c.Server.Port,
		"AWS_BATCH_SIZE":  &c.AWS.BatchSize,
		"AWS_CONCURRENCY": &c.AWS.Concurrency,
	}
	for name, field := range ints {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", envPrefix, name, v, err)
		}
		*field = n
	}
	return nil
}

// ValidFormats lists the report formats the comparator can print.
var ValidFormats = []string{"table", "json"}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	format := strings.ToLower(c.Output.Format)
	if format != "table" && format != "json" {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, ValidFormats)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Output.Artifact == "" {
		return errors.New("artifact path must not be empty")
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
