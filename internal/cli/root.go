// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/solebot/preventivatore/internal/config"
	"github.com/solebot/preventivatore/internal/logging"
	"github.com/solebot/preventivatore/internal/ui/chat"
	"github.com/solebot/preventivatore/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	theme      string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "preventivatore",
		Short: "SoleBot, the shipping quote assistant",
		Long: `SoleBot estimates the shipping price of a parcel from its weight and size.

Open the menu and pick "Nuovo preventivo" to fill in the quote form. Once a
quote is shown the chat is locked until you reset it.

Without a terminal on stdin the chat runs in line mode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			if IsTTY() && IsStdoutTTY() {
				return runTUI(env)
			}
			return runLineMode(env, cmd.InOrStdin(), cmd.OutOrStdout(), nil)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.preventivatore/config.toml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled)")
	pf.StringVar(&opts.theme, "theme", "", "color theme (auto, dark, light)")

	cmd.AddCommand(
		newChatCmd(opts),
		newQuoteCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command and prints any error once.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		return err
	}
	return nil
}

// =============================================================================
// RUNTIME ENVIRONMENT
// =============================================================================

// runtimeEnv is the loaded configuration plus the open log.
type runtimeEnv struct {
	cfg      *config.Config
	cfgPath  string
	log      zerolog.Logger
	logFile  io.Closer
	warnings io.Writer
}

// Close releases the log file.
func (e *runtimeEnv) Close() {
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

// loadConfig loads the config file selected by --config, or the default
// location, then applies flag overrides.
func (o *globalOptions) loadConfig(warn io.Writer) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)

	if o.configPath != "" {
		cfg, err = config.LoadFromPath(o.configPath)
		if err != nil {
			return nil, "", err
		}
		path = o.configPath
	} else {
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintf(warn, "Warning: %v (using defaults)\n", err)
		}
		path, _ = config.ConfigPathTOML()
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.theme != "" {
		cfg.UI.Theme = o.theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid options: %w", err)
	}
	return cfg, path, nil
}

// setup loads the config and opens the log file.
func (o *globalOptions) setup(cmd *cobra.Command) (*runtimeEnv, error) {
	warn := cmd.ErrOrStderr()
	cfg, path, err := o.loadConfig(warn)
	if err != nil {
		return nil, err
	}

	env := &runtimeEnv{cfg: cfg, cfgPath: path, log: zerolog.Nop(), warnings: warn}

	logPath, err := cfg.LogPath()
	if err != nil {
		fmt.Fprintf(warn, "Warning: logging disabled: %v\n", err)
		return env, nil
	}
	f, err := logging.OpenFile(logPath)
	if err != nil {
		fmt.Fprintf(warn, "Warning: logging disabled: %v\n", err)
		return env, nil
	}
	env.logFile = f
	env.log = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: f,
	})
	env.log.Debug().Str("config", path).Str("version", Version).Msg("starting")
	return env, nil
}

// =============================================================================
// FULL-SCREEN CHAT
// =============================================================================

// runTUI runs the Bubble Tea chat until the user quits.
func runTUI(env *runtimeEnv) error {
	theme := styles.NewTheme(env.cfg.UI.Theme)
	opts := []chat.Option{
		chat.WithConfig(env.cfg),
		chat.WithLogger(logging.Component(env.log, "chat")),
	}

	if env.cfgPath != "" {
		w, err := config.NewWatcher(env.cfgPath, 100*time.Millisecond, logging.Component(env.log, "config"))
		if err == nil {
			err = w.Watch()
		}
		if err != nil {
			env.log.Warn().Err(err).Msg("config hot reload unavailable")
		} else {
			defer w.Close()
			opts = append(opts, chat.WithConfigUpdates(w.Updates()))
		}
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if env.cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(chat.New(theme, opts...), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running chat: %w", err)
	}
	return nil
}

// =============================================================================
// VERSION
// =============================================================================

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("preventivatore %s\n", Version)
			cmd.Printf("Git commit: %s\n", GitCommit)
			cmd.Printf("Build date: %s\n", BuildDate)
		},
	}
}
