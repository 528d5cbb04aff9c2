// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// preventivatore.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, validation and hot reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - PricingConfig: Quote constants (divisor, base price, per-kg rate)
//   - TimingConfig: Simulated assistant latency
//   - Watcher: Reloads the config file when it changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (PREVENTIVATORE_*)
//   - ~/.preventivatore/config.toml
//   - ~/.preventivatore/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	policy := cfg.Pricing.Policy()
package config
