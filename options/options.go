// Package options holds the mapper configuration file model.
//
// Example:
//
//	categories: [all, -unsafe_number]
//	strict_collections: true
//	log:
//	  level: debug
//	  format: console
package options

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"expression-mapper/primitive"
)

var ErrUnknownCategory = errors.New("unknown conversion category")

// Config configures a mapper factory.
type Config struct {
	// Categories selects the primitive conversion categories; a leading "-" removes one.
	Categories []string `yaml:"categories" mapstructure:"categories"`
	// StrictCollections fails synthesis on enumerable pairs that are not both slices.
	StrictCollections bool `yaml:"strict_collections" mapstructure:"strict_collections"`
	// Log configures the logger of the command line tool.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // zerolog level name
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// Default returns the default configuration: every category, lenient collections, info logging.
func Default() Config {
	return Config{
		Categories: []string{"all"},
		Log: LogConfig{
			Level:  zerolog.InfoLevel.String(),
			Format: "console",
		},
	}
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if _, err := cfg.CategoryMask(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return Parse(data)
}

// CategoryMask combines the configured categories in order.
func (c Config) CategoryMask() (primitive.CategoryEnum, error) {
	var mask primitive.CategoryEnum

	for _, name := range c.Categories {
		remove := strings.HasPrefix(name, "-")

		category, err := ParseCategory(strings.TrimPrefix(name, "-"))
		if err != nil {
			return 0, err
		}

		if remove {
			mask &^= category
		} else {
			mask |= category
		}
	}

	return mask, nil
}

// LogLevel parses the configured level; an empty level means info.
func (c Config) LogLevel() (zerolog.Level, error) {
	if c.Log.Level == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level: %w", err)
	}

	return level, nil
}

// ParseCategory resolves one category name such as "text_number", "all" or "none".
func ParseCategory(name string) (primitive.CategoryEnum, error) {
	category, ok := primitive.CategoryByName(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}

	return category, nil
}
