package thymeleaf

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file form of an engine configuration.
//
//	prefix: th
//	template_root: ./templates
//	template_suffix: .html
//	cache_ttl: 5m
//	max_expression_depth: 64
type Config struct {
	Prefix             string        `yaml:"prefix"`
	TemplateRoot       string        `yaml:"template_root"`
	TemplateSuffix     string        `yaml:"template_suffix"`
	CacheTTL           time.Duration `yaml:"cache_ttl"`
	MaxExpressionDepth int           `yaml:"max_expression_depth"`
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() Config {
	return Config{
		Prefix:             StandardDialectPrefix,
		TemplateSuffix:     DefaultTemplateSuffix,
		MaxExpressionDepth: DefaultMaxExpressionDepth,
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigReadFailed, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, NewConfigError(ErrMsgConfigParseFailed, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return NewConfigError(ErrMsgEmptyPrefix, nil)
	}
	if c.CacheTTL < 0 {
		return NewConfigError(ErrMsgConfigNegativeTTL, nil)
	}
	if c.MaxExpressionDepth < 0 {
		return NewConfigError(ErrMsgConfigNegativeDepth, nil)
	}
	return nil
}

// Resolver builds the template resolver described by the configuration: a
// FileResolver over TemplateRoot, cached when CacheTTL is set. It returns nil
// when no TemplateRoot is configured.
func (c *Config) Resolver() TemplateResolver {
	if c.TemplateRoot == "" {
		return nil
	}
	files := &FileResolver{Root: c.TemplateRoot, Suffix: c.TemplateSuffix}
	if c.CacheTTL > 0 {
		return NewCachingResolver(files, CacheConfig{TTL: c.CacheTTL})
	}
	return files
}

// Options converts the configuration into engine options.
func (c *Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	dialect, err := NewStandardDialectWithPrefix(c.Prefix)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithDialect(dialect),
		WithMaxExpressionDepth(c.MaxExpressionDepth),
	}
	if resolver := c.Resolver(); resolver != nil {
		opts = append(opts, WithResolver(resolver))
	}
	return opts, nil
}
