package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"api-recon/internal/analyzer"
)

// EnvPrefix prefixes environment variables that override configuration keys,
// e.g. APIRECON_PROJECT_ROOT_DIR for project.root_dir.
const EnvPrefix = "APIRECON"

// Config represents the application configuration
type Config struct {
	Project  ProjectConfig  `mapstructure:"project"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Types    TypesConfig    `mapstructure:"types"`
	Output   OutputConfig   `mapstructure:"output"`
}

// ProjectConfig holds project-specific settings
type ProjectConfig struct {
	RootDir     string   `mapstructure:"root_dir" validate:"required"` // Root directory to analyze
	BasePackage string   `mapstructure:"base_package"`                 // Base Java package (e.g., "com.company")
	Encoding    []string `mapstructure:"encoding" validate:"min=1,dive,required"`
}

// AnalysisConfig holds analysis behavior settings
type AnalysisConfig struct {
	ExcludeDirs    []string `mapstructure:"exclude_dirs"`    // Directories to exclude
	ExcludeClasses []string `mapstructure:"exclude_classes"` // Controller name patterns to skip
	IncludeViews   bool     `mapstructure:"include_views"`   // Keep view-rendering controller methods
	TypeCacheSize  int      `mapstructure:"type_cache_size" validate:"gte=0"`
}

// TypesConfig holds the Java to API type mappings used by the exporters
type TypesConfig struct {
	Mappings []TypeMapping `mapstructure:"mappings" validate:"dive"`
}

// TypeMapping maps one qualified Java class to an API primitive
// (any, boolean, number, string) or to another class name.
type TypeMapping struct {
	Java string `mapstructure:"java" validate:"required"`
	API  string `mapstructure:"api" validate:"required"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir      string   `mapstructure:"dir" validate:"required"`       // Output directory
	FileName string   `mapstructure:"file_name" validate:"required"` // Output file name (without extension)
	Formats  []string `mapstructure:"formats" validate:"min=1,dive,oneof=openapi swagger json descriptor yaml excel xlsx html word docx"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report keys the way they are written in config.yaml
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Load reads the configuration from a file or uses defaults
// If configPath is empty, it looks for "config.yaml" in the current directory
// If the file doesn't exist, it uses sensible defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set sensible defaults
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Determine config file to use
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Set config file
	v.SetConfigFile(configPath)

	// Read config file (ignore error if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		// Check if it's just a file not found error
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			// Config file not found - use defaults
			fmt.Println("==========================================")
			fmt.Println("Config file not found. Using defaults:")
			fmt.Println("  Source: ./src")
			fmt.Println("  Output: ./output")
			fmt.Println("==========================================")
		} else {
			// Config file found but has some other error
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Normalize paths
	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	// Create output directory if it doesn't exist
	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	// Project defaults - use ./src for double-click usability
	v.SetDefault("project.root_dir", "./src")
	v.SetDefault("project.base_package", "")
	v.SetDefault("project.encoding", []string{"utf-8", "euc-kr", "windows-949"})

	// Analysis defaults
	v.SetDefault("analysis.exclude_dirs", []string{
		"**/test/**",
		"**/tests/**",
		"**/target/**",
		"**/build/**",
		"**/out/**",
		"**/.git/**",
		"**/.svn/**",
		"**/node_modules/**",
	})
	v.SetDefault("analysis.exclude_classes", []string{})
	v.SetDefault("analysis.include_views", false)
	v.SetDefault("analysis.type_cache_size", 4096)

	v.SetDefault("types.mappings", []map[string]string{})

	// Output defaults
	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", "api-recon-report")
	v.SetDefault("output.formats", []string{"openapi", "excel"})
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	// Normalize root directory
	absRoot, err := filepath.Abs(c.Project.RootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve root_dir: %w", err)
	}
	c.Project.RootDir = absRoot

	// Normalize output directory
	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// IsExcludedClass checks if a controller name matches any exclude_classes pattern
func (c *Config) IsExcludedClass(className string) bool {
	for _, pattern := range c.Analysis.ExcludeClasses {
		if matchPattern(className, pattern) {
			return true
		}
	}
	return false
}

// OutputPath returns the full path of the report file with the given extension
func (c *Config) OutputPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.FileName+"."+strings.TrimPrefix(ext, "."))
}

// TypeMappings returns the configured mappings keyed by Java class name
func (c *Config) TypeMappings() map[string]string {
	out := make(map[string]string, len(c.Types.Mappings))
	for _, m := range c.Types.Mappings {
		out[m.Java] = m.API
	}
	return out
}

// AnalyzerConfig converts the configuration into analyzer settings
func (c *Config) AnalyzerConfig() analyzer.Config {
	cfg := analyzer.Config{
		RootDir:         c.Project.RootDir,
		ExcludePatterns: c.Analysis.ExcludeDirs,
		IncludeViews:    c.Analysis.IncludeViews,
		EncodingHints:   c.Project.Encoding,
		TypeCacheSize:   c.Analysis.TypeCacheSize,
	}
	if len(c.Analysis.ExcludeClasses) > 0 {
		cfg.SkipController = c.IsExcludedClass
	}
	return cfg
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, formatFieldError(fe))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}

	// Check if root directory exists
	if _, err := os.Stat(c.Project.RootDir); os.IsNotExist(err) {
		return fmt.Errorf("root_dir does not exist: %s", c.Project.RootDir)
	}

	return nil
}

// formatFieldError renders a validator failure with its config key,
// e.g. "output.file_name: required"
func formatFieldError(fe validator.FieldError) string {
	// Namespace is "Config.output.file_name"
	_, key, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required":
		return key + ": required"
	case "min":
		return fmt.Sprintf("%s: must contain at least %s entries", key, fe.Param())
	case "gte":
		return fmt.Sprintf("%s: must be at least %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s validation", key, fe.Tag())
	}
}

// matchPattern checks if a string matches a simple glob pattern
// Supports only '*' wildcard at the beginning or end
func matchPattern(str, pattern string) bool {
	if pattern == "*" {
		return true
	}

	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		// *foo* - contains
		middle := pattern[1 : len(pattern)-1]
		return strings.Contains(str, middle)
	} else if strings.HasPrefix(pattern, "*") {
		// *foo - ends with
		suffix := pattern[1:]
		return strings.HasSuffix(str, suffix)
	} else if strings.HasSuffix(pattern, "*") {
		// foo* - starts with
		prefix := pattern[:len(pattern)-1]
		return strings.HasPrefix(str, prefix)
	}

	// Exact match
	return str == pattern
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== API Recon Configuration ===")
	fmt.Printf("Project Root:     %s\n", c.Project.RootDir)
	fmt.Printf("Base Package:     %s\n", c.Project.BasePackage)
	fmt.Printf("Encoding Hints:   %v\n", c.Project.Encoding)
	fmt.Printf("Exclude Dirs:     %v\n", c.Analysis.ExcludeDirs)
	fmt.Printf("Exclude Classes:  %v\n", c.Analysis.ExcludeClasses)
	fmt.Printf("Include Views:    %v\n", c.Analysis.IncludeViews)
	fmt.Printf("Type Mappings:    %d\n", len(c.Types.Mappings))
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output Formats:   %v\n", c.Output.Formats)
	fmt.Println("===============================")
}
