// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for fincalc.
type Configuration struct {
	Logging     LoggingConfig                 `yaml:"logging,omitempty" mapstructure:"logging"`
	Output      OutputConfig                  `yaml:"output,omitempty" mapstructure:"output"`
	Locale      LocaleConfig                  `yaml:"locale,omitempty" mapstructure:"locale"`
	Calculators map[string]map[string]float64 `yaml:"calculators,omitempty" mapstructure:"calculators"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputfile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json, pdf
}

// LocaleConfig selects how amounts are printed.
type LocaleConfig struct {
	Language string `yaml:"language,omitempty" mapstructure:"language"`
	Currency string `yaml:"currency,omitempty" mapstructure:"currency"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputfile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("locale.language", constants.DefaultLanguage)
	v.SetDefault("locale.currency", constants.DefaultCurrency)
	return v
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	conf, err := decode(newViper())
	if err != nil {
		// Only defaults are set, which always decode.
		panic(err)
	}
	return conf
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with FINCALC_ override
// file values, e.g. FINCALC_OUTPUT_FORMAT=csv.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &configuration, nil
}

// Validate checks the output format and the locale.
func (c *Configuration) Validate() error {
	return c.validator().Validate()
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	return c.validator().ValidateAll()
}

// Formatter builds the amount formatter for the configured locale.
func (c *Configuration) Formatter() (*format.Formatter, error) {
	f, err := format.New(c.Locale.Language, c.Locale.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid locale configuration: %w", err)
	}
	return f, nil
}

func (c *Configuration) validator() *validation.ConfigValidator {
	return &validation.ConfigValidator{
		OutputFormat: c.Output.Format,
		Language:     c.Locale.Language,
		Currency:     c.Locale.Currency,
		Overrides:    c.Calculators,
	}
}

// ApplyDefaults returns reg with the configured default overrides applied.
// Keys are matched case-insensitively because the config loader folds them
// to lower case.
func (c *Configuration) ApplyDefaults(reg *calculator.Registry) (*calculator.Registry, []string) {
	if len(c.Calculators) == 0 {
		return reg, nil
	}

	overrides := make(map[string]map[string]float64, len(c.Calculators))
	for _, slug := range slices.Sorted(maps.Keys(c.Calculators)) {
		values := c.Calculators[slug]
		calc, err := reg.Get(strings.ToLower(slug))
		if err != nil {
			overrides[slug] = values
			continue
		}
		resolved := make(map[string]float64, len(values))
		for key, v := range values {
			resolved[fieldKey(calc, key)] = v
		}
		overrides[calc.Slug()] = resolved
	}
	return reg.WithDefaults(overrides)
}

func fieldKey(c calculator.Calculator, key string) string {
	for _, f := range c.Fields() {
		if strings.EqualFold(f.Key, key) {
			return f.Key
		}
	}
	return key
}
