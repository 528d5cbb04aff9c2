// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solebot/preventivatore/internal/quote"
)

// isolate points the config directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PREVENTIVATORE_HOME", dir)
	for _, name := range []string{
		"PREVENTIVATORE_VOLUMETRIC_DIVISOR", "PREVENTIVATORE_BASE_PRICE",
		"PREVENTIVATORE_PRICE_PER_KG", "PREVENTIVATORE_CURRENCY",
		"PREVENTIVATORE_THEME", "PREVENTIVATORE_LOG_LEVEL", "PREVENTIVATORE_LOG_FILE",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, quote.DefaultPolicy(), cfg.Pricing.Policy())
	assert.Equal(t, 300*time.Millisecond, cfg.Timing.FormDelay())
	assert.Equal(t, 500*time.Millisecond, cfg.Timing.ReplyDelay())
	assert.Equal(t, 20, cfg.UI.ComposerLineHeight)
	assert.Equal(t, 180, cfg.UI.ComposerMaxHeight)
}

// =============================================================================
// LOADING
// =============================================================================

func TestLoad_NoFileGivesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_TOMLPartialKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[pricing]
base_price = 12.5
currency = "CHF"

[ui]
theme = "light"
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12.5, cfg.Pricing.BasePrice)
	assert.Equal(t, "CHF", cfg.Pricing.Currency)
	assert.Equal(t, float64(5000), cfg.Pricing.VolumetricDivisor)
	assert.Equal(t, 1.2, cfg.Pricing.PricePerKg)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, 500, cfg.Timing.ReplyDelayMs)
}

func TestLoad_ZeroBasePriceAllowed(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[pricing]\nbase_price = 0\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, float64(0), cfg.Pricing.BasePrice)
}

func TestLoad_JSONFallback(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.json"), `{"pricing": {"price_per_kg": 2}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, float64(2), cfg.Pricing.PricePerKg)
	assert.Equal(t, float64(10), cfg.Pricing.BasePrice)
}

func TestLoad_InvalidFileReturnsDefaultsWithError(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[pricing]\nvolumetric_divisor = -1\n")

	cfg, err := Load()
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, float64(5000), cfg.Pricing.VolumetricDivisor)
}

func TestLoadTOML_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[pricing]\nbase_prize = 3\n")

	err := LoadTOML(Default(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pricing.base_prize")
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PREVENTIVATORE_BASE_PRICE", "7")
	t.Setenv("PREVENTIVATORE_PRICE_PER_KG", "not-a-number")
	t.Setenv("PREVENTIVATORE_THEME", "dark")

	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[pricing]\nbase_price = 3\n")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, float64(7), cfg.Pricing.BasePrice)
	assert.Equal(t, 1.2, cfg.Pricing.PricePerKg, "unparseable override is ignored")
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoad_NonFiniteEnvOverridesIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("PREVENTIVATORE_PRICE_PER_KG", "NaN")
	t.Setenv("PREVENTIVATORE_VOLUMETRIC_DIVISOR", "+Inf")
	t.Setenv("PREVENTIVATORE_BASE_PRICE", "-Inf")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.2, cfg.Pricing.PricePerKg)
	assert.Equal(t, float64(5000), cfg.Pricing.VolumetricDivisor)
	assert.Equal(t, float64(10), cfg.Pricing.BasePrice)

	res := cfg.Pricing.Policy().Compute(quote.Input{Weight: 5, Length: 50, Width: 40, Height: 30})
	assert.InDelta(t, 23.2, res.Price, 1e-9)
}

func TestSet_NonFiniteRejectedByValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Set("pricing.price_per_kg", "NaN"))
	assert.Error(t, cfg.Validate())
}

// =============================================================================
// SAVE
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Pricing.PricePerKg = 1.5
	cfg.Log.Level = "debug"

	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveJSON(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.UI.SidebarWidth = 30

	require.NoError(t, SaveJSON(cfg, path))
	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 30, loaded.UI.SidebarWidth)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero divisor", func(c *Config) { c.Pricing.VolumetricDivisor = 0 }, "pricing.volumetric_divisor"},
		{"negative base", func(c *Config) { c.Pricing.BasePrice = -1 }, "pricing.base_price"},
		{"negative included", func(c *Config) { c.Pricing.IncludedWeight = -1 }, "pricing.included_weight"},
		{"negative per kg", func(c *Config) { c.Pricing.PricePerKg = -0.1 }, "pricing.price_per_kg"},
		{"infinite divisor", func(c *Config) { c.Pricing.VolumetricDivisor = math.Inf(1) }, "pricing.volumetric_divisor"},
		{"NaN divisor", func(c *Config) { c.Pricing.VolumetricDivisor = math.NaN() }, "pricing.volumetric_divisor"},
		{"NaN base", func(c *Config) { c.Pricing.BasePrice = math.NaN() }, "pricing.base_price"},
		{"infinite base", func(c *Config) { c.Pricing.BasePrice = math.Inf(1) }, "pricing.base_price"},
		{"NaN included", func(c *Config) { c.Pricing.IncludedWeight = math.NaN() }, "pricing.included_weight"},
		{"NaN per kg", func(c *Config) { c.Pricing.PricePerKg = math.NaN() }, "pricing.price_per_kg"},
		{"infinite per kg", func(c *Config) { c.Pricing.PricePerKg = math.Inf(1) }, "pricing.price_per_kg"},
		{"form delay", func(c *Config) { c.Timing.FormDelayMs = -5 }, "timing.form_delay_ms"},
		{"reply delay", func(c *Config) { c.Timing.ReplyDelayMs = 120000 }, "timing.reply_delay_ms"},
		{"theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"line height", func(c *Config) { c.UI.ComposerLineHeight = 0 }, "ui.composer_line_height"},
		{"max height", func(c *Config) { c.UI.ComposerMaxHeight = 10 }, "ui.composer_max_height"},
		{"sidebar", func(c *Config) { c.UI.SidebarWidth = 5 }, "ui.sidebar_width"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

func TestValidateErrors_Error(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidateErrors{}.Error())
	errs := ValidateErrors{{Field: "a", Message: "x"}, {Field: "b", Message: "y"}}
	assert.Equal(t, "a: x; b: y", errs.Error())
}

// =============================================================================
// GET / SET
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("pricing.base_price", "15"))
	require.NoError(t, cfg.Set("ui.mouse", "false"))
	require.NoError(t, cfg.Set("timing.form_delay_ms", 100))

	v, err := cfg.Get("pricing.base_price")
	require.NoError(t, err)
	assert.Equal(t, float64(15), v)
	assert.False(t, cfg.UI.Mouse)
	assert.Equal(t, 100, cfg.Timing.FormDelayMs)

	_, err = cfg.Get("pricing.nope")
	assert.Error(t, err)
	_, err = cfg.Get("pricing")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("pricing.base_price", "abc"))
	assert.Error(t, cfg.Set("", "x"))
}

func TestGetAllKeys_Resolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestLogPath(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	p, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "preventivatore.log"), p)

	cfg.Log.File = "/tmp/x.log"
	p, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.log", p)
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[pricing]\nbase_price = 10\n")

	w, err := NewWatcher(path, 50*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	cfg := Default()
	cfg.Pricing.BasePrice = 20
	require.NoError(t, SaveTOML(cfg, path))

	select {
	case u := <-w.Updates():
		require.NoError(t, u.Err)
		assert.Equal(t, float64(20), u.Config.Pricing.BasePrice)
	case <-time.After(5 * time.Second):
		t.Fatal("no update delivered")
	}
}

func TestWatcher_InvalidFileReportsError(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "")

	w, err := NewWatcher(path, 50*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	writeFile(t, path, "[ui]\ntheme = \"neon\"\n")

	select {
	case u := <-w.Updates():
		assert.Error(t, u.Err)
		assert.Nil(t, u.Config)
	case <-time.After(5 * time.Second):
		t.Fatal("no update delivered")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "")

	w, err := NewWatcher(path, 20*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.toml"), "x = 1\n")

	select {
	case u := <-w.Updates():
		t.Fatalf("unexpected update: %+v", u)
	case <-time.After(400 * time.Millisecond):
	}
}
