// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/solebot/preventivatore/internal/quote"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete preventivatore configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Pricing constants used by the quote form
	Pricing PricingConfig `toml:"pricing" json:"pricing"`

	// Simulated assistant latency
	Timing TimingConfig `toml:"timing" json:"timing"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// PricingConfig holds the quote constants.
type PricingConfig struct {
	// VolumetricDivisor converts cm³ to volumetric kg (5000 by default).
	VolumetricDivisor float64 `toml:"volumetric_divisor" json:"volumetric_divisor"`
	// BasePrice is charged for every parcel.
	BasePrice float64 `toml:"base_price" json:"base_price"`
	// IncludedWeight is the billable weight covered by BasePrice.
	IncludedWeight float64 `toml:"included_weight" json:"included_weight"`
	// PricePerKg is charged per billable kg above IncludedWeight.
	PricePerKg float64 `toml:"price_per_kg" json:"price_per_kg"`
	// Currency is printed before the total.
	Currency string `toml:"currency" json:"currency"`
}

// TimingConfig holds the simulated delays in milliseconds.
type TimingConfig struct {
	FormDelayMs  int `toml:"form_delay_ms" json:"form_delay_ms"`
	ReplyDelayMs int `toml:"reply_delay_ms" json:"reply_delay_ms"`
}

// UIConfig contains user interface configuration.
type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme" json:"theme"`
	// ComposerLineHeight is the height of one composer row in units.
	ComposerLineHeight int `toml:"composer_line_height" json:"composer_line_height"`
	// ComposerMaxHeight caps composer growth, in the same units.
	ComposerMaxHeight int `toml:"composer_max_height" json:"composer_max_height"`
	// SidebarWidth is the sidebar width in cells.
	SidebarWidth int `toml:"sidebar_width" json:"sidebar_width"`
	// Mouse enables click handling for the hamburger, overlay and buttons.
	Mouse bool `toml:"mouse" json:"mouse"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// File is the log path; empty means <config dir>/preventivatore.log
	File string `toml:"file" json:"file"`
	// Pretty switches to the human-readable console format.
	Pretty bool `toml:"pretty" json:"pretty"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Pricing: PricingConfig{
			VolumetricDivisor: quote.DefaultVolumetricDivisor,
			BasePrice:         quote.DefaultBasePrice,
			IncludedWeight:    quote.DefaultIncludedWeight,
			PricePerKg:        quote.DefaultPricePerKg,
			Currency:          quote.DefaultCurrency,
		},

		Timing: TimingConfig{
			FormDelayMs:  300,
			ReplyDelayMs: 500,
		},

		UI: UIConfig{
			Theme:              "auto",
			ComposerLineHeight: 20,
			ComposerMaxHeight:  180,
			SidebarWidth:       26,
			Mouse:              true,
		},

		Log: LogConfig{
			Level:  "info",
			File:   "",
			Pretty: false,
		},
	}
}

// Policy returns the pricing constants as a quote policy.
func (p PricingConfig) Policy() quote.Policy {
	return quote.Policy{
		VolumetricDivisor: p.VolumetricDivisor,
		BasePrice:         p.BasePrice,
		IncludedWeight:    p.IncludedWeight,
		PricePerKg:        p.PricePerKg,
		Currency:          p.Currency,
	}
}

// FormDelay returns the delay before the quote form appears.
func (t TimingConfig) FormDelay() time.Duration {
	return time.Duration(t.FormDelayMs) * time.Millisecond
}

// ReplyDelay returns the delay before the stub reply appears.
func (t TimingConfig) ReplyDelay() time.Duration {
	return time.Duration(t.ReplyDelayMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the configuration directory path.
// PREVENTIVATORE_HOME overrides the default ~/.preventivatore.
func ConfigDir() (string, error) {
	if dir := os.Getenv("PREVENTIVATORE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".preventivatore"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns the log file path, resolving the default location.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "preventivatore.log"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			// Keep looking; the error is returned with the defaults
			loadErr = err
			continue
		}
		return cfg, nil
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid environment overrides: %w", err)
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file into cfg.
// Keys missing from the file keep the values already in cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys in %s: %s", filepath.Base(path), strings.Join(keys, ", "))
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	cfg.SetDefaults()
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# preventivatore configuration file\n")
	b.WriteString("# Generated by preventivatore - edit with care\n")
	b.WriteString("\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := writeFileAtomic(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Pricing
	// ==========================================================================

	pricing := []struct {
		field    string
		value    float64
		positive bool
	}{
		{"pricing.volumetric_divisor", c.Pricing.VolumetricDivisor, true},
		{"pricing.base_price", c.Pricing.BasePrice, false},
		{"pricing.included_weight", c.Pricing.IncludedWeight, false},
		{"pricing.price_per_kg", c.Pricing.PricePerKg, false},
	}
	for _, p := range pricing {
		switch {
		case math.IsNaN(p.value) || math.IsInf(p.value, 0):
			errs = append(errs, ValidationError{
				Field:   p.field,
				Message: fmt.Sprintf("must be a finite number, got %v", p.value),
			})
		case p.positive && p.value <= 0:
			errs = append(errs, ValidationError{
				Field:   p.field,
				Message: fmt.Sprintf("must be greater than 0, got %v", p.value),
			})
		case p.value < 0:
			errs = append(errs, ValidationError{
				Field:   p.field,
				Message: fmt.Sprintf("must not be negative, got %v", p.value),
			})
		}
	}

	// ==========================================================================
	// Timing
	// ==========================================================================

	if c.Timing.FormDelayMs < 0 || c.Timing.FormDelayMs > 60000 {
		errs = append(errs, ValidationError{
			Field:   "timing.form_delay_ms",
			Message: fmt.Sprintf("must be between 0 and 60000, got %d", c.Timing.FormDelayMs),
		})
	}
	if c.Timing.ReplyDelayMs < 0 || c.Timing.ReplyDelayMs > 60000 {
		errs = append(errs, ValidationError{
			Field:   "timing.reply_delay_ms",
			Message: fmt.Sprintf("must be between 0 and 60000, got %d", c.Timing.ReplyDelayMs),
		})
	}

	// ==========================================================================
	// UI
	// ==========================================================================

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.ComposerLineHeight <= 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.composer_line_height",
			Message: "must be greater than 0",
		})
	}
	if c.UI.ComposerMaxHeight < c.UI.ComposerLineHeight {
		errs = append(errs, ValidationError{
			Field:   "ui.composer_max_height",
			Message: fmt.Sprintf("must be at least composer_line_height (%d)", c.UI.ComposerLineHeight),
		})
	}
	if c.UI.SidebarWidth < 12 || c.UI.SidebarWidth > 80 {
		errs = append(errs, ValidationError{
			Field:   "ui.sidebar_width",
			Message: fmt.Sprintf("must be between 12 and 80, got %d", c.UI.SidebarWidth),
		})
	}

	// ==========================================================================
	// Log
	// ==========================================================================

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: trace, debug, info, warn, error, disabled", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields whose
// zero value is never meaningful.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.Pricing.VolumetricDivisor == 0 {
		c.Pricing.VolumetricDivisor = defaults.Pricing.VolumetricDivisor
	}
	if c.Pricing.Currency == "" {
		c.Pricing.Currency = defaults.Pricing.Currency
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.ComposerLineHeight == 0 {
		c.UI.ComposerLineHeight = defaults.UI.ComposerLineHeight
	}
	if c.UI.ComposerMaxHeight == 0 {
		c.UI.ComposerMaxHeight = defaults.UI.ComposerMaxHeight
	}
	if c.UI.SidebarWidth == 0 {
		c.UI.SidebarWidth = defaults.UI.SidebarWidth
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - PREVENTIVATORE_VOLUMETRIC_DIVISOR: overrides pricing.volumetric_divisor
//   - PREVENTIVATORE_BASE_PRICE: overrides pricing.base_price
//   - PREVENTIVATORE_PRICE_PER_KG: overrides pricing.price_per_kg
//   - PREVENTIVATORE_CURRENCY: overrides pricing.currency
//   - PREVENTIVATORE_THEME: overrides ui.theme
//   - PREVENTIVATORE_LOG_LEVEL: overrides log.level
//   - PREVENTIVATORE_LOG_FILE: overrides log.file
//
// Unparseable and non-finite numbers are ignored.
func (c *Config) ApplyEnvOverrides() {
	envFloat := func(name string, dst *float64) {
		if v := os.Getenv(name); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				*dst = f
			}
		}
	}

	envFloat("PREVENTIVATORE_VOLUMETRIC_DIVISOR", &c.Pricing.VolumetricDivisor)
	envFloat("PREVENTIVATORE_BASE_PRICE", &c.Pricing.BasePrice)
	envFloat("PREVENTIVATORE_PRICE_PER_KG", &c.Pricing.PricePerKg)

	if currency := os.Getenv("PREVENTIVATORE_CURRENCY"); currency != "" {
		c.Pricing.Currency = currency
	}
	if theme := os.Getenv("PREVENTIVATORE_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if level := os.Getenv("PREVENTIVATORE_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if file := os.Getenv("PREVENTIVATORE_LOG_FILE"); file != "" {
		c.Log.File = file
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "pricing.base_price").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "pricing.base_price").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(strVal == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"pricing.volumetric_divisor",
		"pricing.base_price",
		"pricing.included_weight",
		"pricing.price_per_kg",
		"pricing.currency",
		"timing.form_delay_ms",
		"timing.reply_delay_ms",
		"ui.theme",
		"ui.composer_line_height",
		"ui.composer_max_height",
		"ui.sidebar_width",
		"ui.mouse",
		"log.level",
		"log.file",
		"log.pretty",
	}
}

// String returns a JSON rendering of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
