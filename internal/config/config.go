// Package config loads tool configuration from an optional YAML file and
// merges CLI overrides on top of built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsontree
type Config struct {
	// Indent is the indentation unit used when pretty-printing JSON.
	Indent string `yaml:"indent"`

	// Package and RootName control Go struct generation.
	Package  string `yaml:"package"`
	RootName string `yaml:"root_name"`

	Naming NamingConfig `yaml:"naming"`
	Types  TypesConfig  `yaml:"types"`
	Dev    DevConfig    `yaml:"dev"`
}

// NamingConfig controls field and struct naming
type NamingConfig struct {
	PascalCaseFields bool              `yaml:"pascal_case_fields"`
	FieldMappings    map[string]string `yaml:"field_mappings"`
}

// TypesConfig controls type inference and mapping
type TypesConfig struct {
	Mappings []TypeMapping `yaml:"mappings"`
}

// TypeMapping defines a pattern-based type mapping
type TypeMapping struct {
	Pattern string `yaml:"pattern"`
	Type    string `yaml:"type"`
	Import  string `yaml:"import,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Indent:   "  ",
		Package:  "main",
		RootName: "RootType",
		Naming: NamingConfig{
			PascalCaseFields: true,
			FieldMappings:    make(map[string]string),
		},
		Types: TypesConfig{
			Mappings: []TypeMapping{},
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

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsontree.yml", ".jsontree.yaml", "jsontree.yml", "jsontree.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Types.Mappings {
		mapping := &c.Types.Mappings[i]
		regex, err := regexp.Compile(mapping.Pattern)
		if err != nil {
			return fmt.Errorf("invalid type mapping pattern '%s': %w", mapping.Pattern, err)
		}
		mapping.regex = regex
	}
	return nil
}

// MatchesField checks if this type mapping matches the given field name
func (tm *TypeMapping) MatchesField(fieldName string) bool {
	if tm.regex == nil {
		regex, err := regexp.Compile(tm.Pattern)
		if err != nil {
			return false
		}
		tm.regex = regex
	}
	return tm.regex.MatchString(fieldName)
}

// GetFieldName returns the Go field name for a JSON key, applying naming rules
func (c *Config) GetFieldName(jsonKey string) string {
	// Check custom mappings first
	if mapped, exists := c.Naming.FieldMappings[jsonKey]; exists {
		return mapped
	}

	if c.Naming.PascalCaseFields {
		return strcase.ToCamel(jsonKey)
	}

	return jsonKey
}

// FindTypeMapping finds the first type mapping that matches the field name
func (c *Config) FindTypeMapping(fieldName string) (TypeMapping, bool) {
	for _, mapping := range c.Types.Mappings {
		if mapping.MatchesField(fieldName) {
			return mapping, true
		}
	}
	return TypeMapping{}, false
}

// LoadConfigWithCLI loads config with CLI argument precedence. Empty or
// default-valued CLI arguments leave the config file values in place.
func LoadConfigWithCLI(configPath, cliIndent, cliPackage, cliRootName string) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliIndent != "" {
		cfg.Indent = cliIndent
	}
	if cliPackage != "" && cliPackage != "main" {
		cfg.Package = cliPackage
	}
	if cliRootName != "" && cliRootName != "RootType" {
		cfg.RootName = cliRootName
	}

	return cfg, nil
}
