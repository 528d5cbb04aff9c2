// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/solebot/preventivatore/internal/config"
	"github.com/solebot/preventivatore/internal/logging"
	"github.com/solebot/preventivatore/internal/model"
	"github.com/solebot/preventivatore/internal/quote"
	"github.com/solebot/preventivatore/internal/ui/components"
	"github.com/solebot/preventivatore/internal/widget"
)

// =============================================================================
// CHAT COMMAND
// =============================================================================

func newChatCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in line mode",
		Long: `Chat with SoleBot one line at a time.

Commands:
  /preventivo   open the quote form
  /menu         show the menu
  /reset        reset a locked chat
  /aiuto        show this help
  /esci         quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			if IsTTY() && cmd.InOrStdin() == os.Stdin {
				in := newHistoryReader()
				defer in.Close()
				return newLineSession(env, in, cmd.OutOrStdout(), time.Sleep).run()
			}
			return runLineMode(env, cmd.InOrStdin(), cmd.OutOrStdout(), nil)
		},
	}
}

// runLineMode runs the line-mode chat over plain reader and writer. A nil
// sleep waits in real time.
func runLineMode(env *runtimeEnv, in io.Reader, out io.Writer, sleep func(time.Duration)) error {
	if sleep == nil {
		sleep = time.Sleep
	}
	return newLineSession(env, &scanReader{sc: bufio.NewScanner(in), out: out}, out, sleep).run()
}

// =============================================================================
// INPUT
// =============================================================================

// lineReader reads one line after showing prompt. *liner.State satisfies it.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// scanReader reads lines from a non-terminal input.
type scanReader struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (r *scanReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.sc.Scan() {
		fmt.Fprintln(r.out)
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

// historyReader provides line editing and input history on a terminal.
type historyReader struct {
	line        *liner.State
	historyFile string
}

func newHistoryReader() *historyReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	r := &historyReader{line: line, historyFile: filepath.Join(configDir, "chat_history")}

	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	return r
}

// Prompt reads a line and records it in the history.
func (r *historyReader) Prompt(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history and restores the terminal.
func (r *historyReader) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// =============================================================================
// LINE SESSION
// =============================================================================

// lineSession drives a widget from typed lines. Delays are honored by
// draining the scheduler after every line.
type lineSession struct {
	widget  *widget.Widget
	sched   *widget.ManualScheduler
	surface *textSurface
	in      lineReader
	out     io.Writer
	sleep   func(time.Duration)
}

func newLineSession(env *runtimeEnv, in lineReader, out io.Writer, sleep func(time.Duration)) *lineSession {
	width := DefaultTerminalWidth
	var md *components.Markdown
	if f, ok := out.(*os.File); ok && f == os.Stdout && IsStdoutTTY() {
		width = GetTerminalWidth()
		md = components.NewAutoMarkdown()
	}

	surface := newTextSurface(out, md, width)
	sched := widget.NewManualScheduler()
	w := widget.New(surface,
		widget.WithScheduler(sched),
		widget.WithPolicy(env.cfg.Pricing.Policy()),
		widget.WithDelays(env.cfg.Timing.FormDelay(), env.cfg.Timing.ReplyDelay()),
		widget.WithLogger(logging.Component(env.log, "chat")),
	)
	return &lineSession{widget: w, sched: sched, surface: surface, in: in, out: out, sleep: sleep}
}

// run reads lines until EOF, interrupt or /esci.
func (s *lineSession) run() error {
	defer s.widget.Close()
	fmt.Fprintln(s.out, dimStyle.Render("Scrivi /aiuto per i comandi, /esci per uscire."))

	for {
		line, err := s.in.Prompt(promptStyle.Render("tu> "))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}

		if s.handle(line) {
			return nil
		}
		if err := s.settle(); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}
	}
}

// handle runs one input line. It reports true when the session should end.
func (s *lineSession) handle(line string) bool {
	input := strings.TrimSpace(line)

	if s.surface.sidebarOpen {
		if n, err := strconv.Atoi(input); err == nil {
			if n >= 1 && n <= len(s.surface.actions) {
				s.widget.SidebarAction(s.surface.actions[n-1].ID)
			} else {
				fmt.Fprintln(s.out, errorStyle.Render("Scelta non valida."))
			}
			return false
		}
	}

	switch strings.ToLower(input) {
	case "/esci", "/exit", "/quit":
		return true
	case "/aiuto", "/help":
		s.printHelp()
	case "/menu":
		s.widget.ToggleSidebar()
	case "/preventivo":
		s.widget.SidebarAction("preventivo")
	case "/reset":
		if s.widget.IsLocked() {
			s.widget.Reset()
		} else {
			fmt.Fprintln(s.out, dimStyle.Render("Niente da azzerare."))
		}
	default:
		if strings.HasPrefix(input, "/") {
			fmt.Fprintln(s.out, errorStyle.Render("Comando sconosciuto: "+input))
			return false
		}
		s.widget.Submit(line)
	}
	return false
}

// settle waits out pending replies, then collects the values of a form
// that has appeared.
func (s *lineSession) settle() error {
	s.sched.Drain(s.sleep)

	h, form := s.surface.openForm()
	if form == nil {
		return nil
	}

	values := make(map[model.FieldKey]string, len(form.Fields))
	for _, f := range form.Fields {
		v, err := s.in.Prompt(labelStyle.Render(f.Placeholder) + ": ")
		if err != nil {
			return err
		}
		values[f.Key] = v
	}

	raw := quote.RawInput{
		Weight: values[model.FieldWeight],
		Length: values[model.FieldLength],
		Width:  values[model.FieldWidth],
		Height: values[model.FieldHeight],
	}
	if _, ok := s.widget.SubmitQuote(h, raw); !ok {
		// never prompt for the same form twice
		form.Closed = true
	}
	return nil
}

func (s *lineSession) printHelp() {
	help := []string{
		"/preventivo   apri il modulo di preventivo",
		"/menu         mostra il menu",
		"/reset        azzera la chat bloccata",
		"/aiuto        mostra questo aiuto",
		"/esci         esci",
	}
	for _, h := range help {
		fmt.Fprintln(s.out, dimStyle.Render(h))
	}
}
