// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solebot/preventivatore/internal/config"
	"github.com/solebot/preventivatore/internal/model"
	"github.com/solebot/preventivatore/internal/widget"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("PREVENTIVATORE_HOME", home)
	for _, k := range []string{
		"PREVENTIVATORE_VOLUMETRIC_DIVISOR",
		"PREVENTIVATORE_BASE_PRICE",
		"PREVENTIVATORE_PRICE_PER_KG",
		"PREVENTIVATORE_CURRENCY",
		"PREVENTIVATORE_THEME",
		"PREVENTIVATORE_LOG_LEVEL",
		"PREVENTIVATORE_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	return home
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// runScript feeds script to a line session that never sleeps.
func runScript(t *testing.T, script string) (string, *lineSession) {
	t.Helper()
	var out bytes.Buffer
	env := &runtimeEnv{cfg: config.Default(), log: zerolog.Nop()}
	in := &scanReader{sc: bufio.NewScanner(strings.NewReader(script)), out: &out}
	s := newLineSession(env, in, &out, func(time.Duration) {})
	require.NoError(t, s.run())
	return out.String(), s
}

// =============================================================================
// QUOTE COMMAND
// =============================================================================

func TestQuoteCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "quote", "--weight", "2", "--length", "50", "--width", "40", "--height", "30")
	require.NoError(t, err)

	assert.Contains(t, out, "Peso reale: 2.00 kg")
	assert.Contains(t, out, "Peso volumetrico: 12.00 kg")
	assert.Contains(t, out, "Peso tassabile: 12.00 kg")
	assert.Contains(t, out, "€ 23.20")
}

func TestQuoteCmd_LenientInput(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"comma decimal", []string{"-w", "1,5"}, "€ 10.60"},
		{"garbage is zero", []string{"--weight", "abc"}, "€ 10.00"},
		{"no flags", nil, "€ 10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", append([]string{"quote"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestQuoteCmd_JSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "quote", "-w", "2", "-l", "40", "-W", "30", "-H", "20", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 4.8, got["volumetric_weight_kg"], 1e-9)
	assert.InDelta(t, 4.8, got["billable_weight_kg"], 1e-9)
	assert.InDelta(t, 14.56, got["price"], 1e-9)
	assert.Equal(t, "€", got["currency"])
}

func TestQuoteCmd_RejectsArgs(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "quote", "extra")
	assert.Error(t, err)
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

func TestConfigPathAndInit(t *testing.T) {
	home := isolate(t)
	want := filepath.Join(home, "config.toml")

	out, err := execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, want, strings.TrimSpace(out))

	_, err = execute(t, "", "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, want)

	_, err = execute(t, "", "config", "init")
	assert.Error(t, err)

	_, err = execute(t, "", "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigSetGet(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "config", "set", "pricing.base_price", "12")
	require.NoError(t, err)

	out, err := execute(t, "", "config", "get", "pricing.base_price")
	require.NoError(t, err)
	assert.Equal(t, "12", strings.TrimSpace(out))

	out, err = execute(t, "", "quote")
	require.NoError(t, err)
	assert.Contains(t, out, "€ 12.00")
}

func TestConfigSet_Invalid(t *testing.T) {
	home := isolate(t)

	_, err := execute(t, "", "config", "set", "pricing.volumetric_divisor", "0")
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(home, "config.toml"))

	_, err = execute(t, "", "config", "set", "pricing.price_per_kg", "NaN")
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(home, "config.toml"))

	_, err = execute(t, "", "config", "set", "pricing.nope", "1")
	assert.Error(t, err)
}

func TestConfigGet_UnknownKey(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "config", "get", "nope")
	assert.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "volumetric_divisor = 5000.0")

	out, err = execute(t, "", "config", "show", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"price_per_kg": 1.2`)
}

func TestConfigKeys(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "config", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "pricing.volumetric_divisor")
	assert.Contains(t, out, "ui.composer_max_height")
}

func TestExplicitConfigFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pricing]\nbase_price = 7\n"), 0644))

	out, err := execute(t, "", "--config", path, "quote")
	require.NoError(t, err)
	assert.Contains(t, out, "€ 7.00")

	out, err = execute(t, "", "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
}

func TestInvalidThemeFlag(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "--theme", "neon", "quote")
	assert.Error(t, err)
}

// =============================================================================
// VERSION AND CHAT COMMANDS
// =============================================================================

func TestVersionCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "preventivatore "+Version)
}

func TestChatCmd_LineMode(t *testing.T) {
	home := isolate(t)
	out, err := execute(t, "/aiuto\n/esci\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "/preventivo")
	assert.FileExists(t, filepath.Join(home, "preventivatore.log"))
}

// =============================================================================
// LINE SESSION
// =============================================================================

func TestLineSession_Prompt(t *testing.T) {
	out, s := runScript(t, "ciao\n")
	assert.Contains(t, out, "Tu: ciao")
	assert.Contains(t, out, "sta scrivendo...")
	assert.Contains(t, out, widget.DefaultCopy().Processing)
	assert.False(t, s.widget.IsLocked())
}

func TestLineSession_QuoteLocks(t *testing.T) {
	out, s := runScript(t, "/preventivo\n2\n40\n30\n20\n")
	assert.Contains(t, out, widget.DefaultCopy().FormIntro)
	assert.Contains(t, out, "€ 14.56")
	assert.Contains(t, out, "/reset → "+widget.DefaultCopy().ResetLabel)
	assert.True(t, s.widget.IsLocked())
}

func TestLineSession_LockedNotifiesOnce(t *testing.T) {
	out, _ := runScript(t, "/preventivo\n1\n1\n1\n1\nciao\nciao\n/preventivo\n")
	// once in the banner, once as the explanation
	assert.Equal(t, 2, strings.Count(out, widget.DefaultCopy().LockNotice))
	assert.NotContains(t, out, "Tu: ciao")
}

func TestLineSession_Reset(t *testing.T) {
	out, s := runScript(t, "/reset\n/preventivo\n1\n1\n1\n1\n/reset\nciao\n")
	assert.Contains(t, out, "Niente da azzerare.")
	assert.Contains(t, out, widget.DefaultCopy().ResetDone)
	assert.Contains(t, out, "Tu: ciao")
	assert.False(t, s.widget.IsLocked())
}

func TestLineSession_Menu(t *testing.T) {
	out, s := runScript(t, "/menu\n9\n1\n2\n50\n40\n30\n")
	assert.Contains(t, out, "1) 📦 Nuovo preventivo")
	assert.Contains(t, out, "Scelta non valida.")
	assert.Contains(t, out, "€ 23.20")
	assert.False(t, s.surface.sidebarOpen)
}

func TestLineSession_Commands(t *testing.T) {
	out, _ := runScript(t, "/foo\n/esci\nciao\n")
	assert.Contains(t, out, "Comando sconosciuto: /foo")
	assert.NotContains(t, out, "Tu: ciao")
}

func TestLineSession_EOFInsideForm(t *testing.T) {
	out, s := runScript(t, "/preventivo\n2\n")
	assert.Contains(t, out, "Peso (kg)")
	assert.False(t, s.widget.IsLocked())
}

// =============================================================================
// TEXT SURFACE
// =============================================================================

func TestTextSurface_IgnoresUnknownHandles(t *testing.T) {
	var out bytes.Buffer
	s := newTextSurface(&out, nil, 80)

	s.ReplaceTyping("missing", model.Text("x"))
	s.CloseForm("missing")
	assert.Empty(t, out.String())

	s.SetSidebarOpen(false)
	assert.Empty(t, out.String())
}

func TestTextSurface_FormLifecycle(t *testing.T) {
	var out bytes.Buffer
	s := newTextSurface(&out, nil, 80)

	h := s.AppendMessage(model.RoleAssistant, model.Content{}, true)
	s.ReplaceTyping(h, model.Content{Markup: "Compila", Form: model.NewQuoteForm()})

	got, form := s.openForm()
	require.NotNil(t, form)
	assert.Equal(t, h, got)

	s.CloseForm(h)
	_, form = s.openForm()
	assert.Nil(t, form)

	s.ClearLog()
	_, form = s.openForm()
	assert.Nil(t, form)
}
