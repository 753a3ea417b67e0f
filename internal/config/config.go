package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatPropTypes  = "proptypes"
	FormatJSONSchema = "jsonschema"
)

// Merge conflict policies
const (
	ConflictOverwrite = "overwrite"
	ConflictUnion     = "union"
)

// Name cases understood by NamingConfig
const (
	CaseVerbatim   = "verbatim"
	CaseCamel      = "camel"
	CaseLowerCamel = "lower_camel"
	CaseSnake      = "snake"
	CaseKebab      = "kebab"
)

// Config represents the complete configuration for proptyper
type Config struct {
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
	Naming NamingConfig `yaml:"naming"`
	Merge  MergeConfig  `yaml:"merge"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Dev    DevConfig    `yaml:"dev"`
}

// OutputConfig controls where and in which format the schema is written
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	Format     string `yaml:"format"`
	FileHeader string `yaml:"file_header"`
}

// RenderConfig controls the prop-types text
type RenderConfig struct {
	ImportName     string `yaml:"import_name"`
	ImportPath     string `yaml:"import_path"`
	Indent         string `yaml:"indent"`
	UnknownAsAny   bool   `yaml:"unknown_as_any"`
	RequiredFields bool   `yaml:"required_fields"`
}

// NamingConfig controls how the user supplied name becomes an identifier and
// a file name
type NamingConfig struct {
	IdentifierCase string `yaml:"identifier_case"`
	FileCase       string `yaml:"file_case"`
}

// MergeConfig controls how array elements are merged
type MergeConfig struct {
	Conflict string `yaml:"conflict"`
}

// FetchConfig controls the HTTP source
type FetchConfig struct {
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:    filepath.Join("src", "propTypes"),
			Format: FormatPropTypes,
		},
		Render: RenderConfig{
			ImportName: "PropType",
			ImportPath: "prop-types",
			Indent:     "  ",
		},
		Naming: NamingConfig{
			IdentifierCase: CaseVerbatim,
			FileCase:       CaseVerbatim,
		},
		Merge: MergeConfig{
			Conflict: ConflictOverwrite,
		},
		Fetch: FetchConfig{
			Headers: make(map[string]string),
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".proptyper.yml", ".proptyper.yaml", "proptyper.yml", "proptyper.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate rejects settings the pipeline cannot act on
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatPropTypes, FormatJSONSchema:
	default:
		return fmt.Errorf("invalid output format '%s': want %s or %s", c.Output.Format, FormatPropTypes, FormatJSONSchema)
	}
	switch c.Merge.Conflict {
	case ConflictOverwrite, ConflictUnion:
	default:
		return fmt.Errorf("invalid merge conflict policy '%s': want %s or %s", c.Merge.Conflict, ConflictOverwrite, ConflictUnion)
	}
	for _, nc := range []string{c.Naming.IdentifierCase, c.Naming.FileCase} {
		if !validCase(nc) {
			return fmt.Errorf("invalid naming case '%s'", nc)
		}
	}
	if strings.TrimSpace(c.Render.ImportName) == "" {
		return fmt.Errorf("render.import_name must not be empty")
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative")
	}
	return nil
}

func validCase(c string) bool {
	switch c {
	case CaseVerbatim, CaseCamel, CaseLowerCamel, CaseSnake, CaseKebab:
		return true
	}
	return false
}

func applyCase(name, c string) string {
	switch c {
	case CaseCamel:
		return strcase.ToCamel(name)
	case CaseLowerCamel:
		return strcase.ToLowerCamel(name)
	case CaseSnake:
		return strcase.ToSnake(name)
	case CaseKebab:
		return strcase.ToKebab(name)
	default:
		return name
	}
}

// IdentifierName returns the declaration name for the user supplied name
func (c *Config) IdentifierName(name string) string {
	return applyCase(name, c.Naming.IdentifierCase)
}

// FileName returns the output file name, extension included, for the user
// supplied name
func (c *Config) FileName(name string) string {
	base := applyCase(name, c.Naming.FileCase)
	if c.Output.Format == FormatJSONSchema {
		return base + ".schema.json"
	}
	return base + ".js"
}

// OutputPath returns the path the generated file is written to
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.Output.Dir, c.FileName(name))
}

// Overrides holds values given on the command line. Empty strings and nil
// pointers mean "not given".
type Overrides struct {
	Format string
	OutDir string
	Debug  *bool
}

// LoadConfigWithCLI loads the config file, if any, and applies CLI overrides
// on top of it
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	if o.OutDir != "" {
		cfg.Output.Dir = o.OutDir
	}
	if o.Debug != nil && *o.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
