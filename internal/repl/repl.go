// Package repl implements the interactive authoring shell.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/fablesmith/mythosforge/internal/audio"
	"github.com/fablesmith/mythosforge/internal/display"
	"github.com/fablesmith/mythosforge/internal/provider"
	"github.com/fablesmith/mythosforge/internal/session"
)

type REPL struct {
	in       io.Reader
	out      io.Writer
	err      io.Writer
	provider provider.Provider
	mgr      *session.Manager
	renderer *display.Renderer
	player   *audio.Player
	exporter *audio.Exporter
	confirm  session.Confirm
	rng      *rand.Rand
	commands map[string]Command
	running  bool

	lastSpeech *speech
}

// speech remembers the most recent synthesis so 'export' can write it out.
type speech struct {
	payload    string
	compressed bool
	extension  string
	name       string
	excerpt    string
}

type Config struct {
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
	Provider provider.Provider
	Manager  *session.Manager
	Renderer *display.Renderer
	Player   *audio.Player
	Exporter *audio.Exporter
	Confirm  session.Confirm
	Rand     *rand.Rand
}

func New(cfg *Config) *REPL {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	confirm := cfg.Confirm
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	r := &REPL{
		in:       cfg.In,
		out:      cfg.Out,
		err:      cfg.Err,
		provider: cfg.Provider,
		mgr:      cfg.Manager,
		renderer: cfg.Renderer,
		player:   cfg.Player,
		exporter: cfg.Exporter,
		confirm:  confirm,
		rng:      rng,
		commands: make(map[string]Command),
	}
	r.registerCommands()
	return r
}

func (r *REPL) Run(ctx context.Context) error {
	r.running = true
	r.printWelcome()

	scanner := bufio.NewScanner(r.in)
	for r.running {
		r.printPrompt()
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := r.execute(ctx, line); err != nil {
			fmt.Fprintf(r.err, "Error: %v\n", err)
		}
	}

	return scanner.Err()
}

func (r *REPL) execute(ctx context.Context, line string) error {
	parts := parseCommand(line)
	if len(parts) == 0 {
		return nil
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, ok := r.commands[cmdName]
	if !ok {
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmdName)
	}

	return cmd.Execute(ctx, r, args)
}

func (r *REPL) Stop() {
	r.running = false
}

// requireProvider guards commands that call the generation backend.
func (r *REPL) requireProvider() error {
	if r.provider == nil {
		return fmt.Errorf("no generation backend configured: set an API key with 'mythosforge keys set'")
	}
	return nil
}

func (r *REPL) printWelcome() {
	fmt.Fprintln(r.out, "mythosforge interactive mode")
	fmt.Fprintln(r.out, "Type 'help' for available commands, 'quit' to exit.")
	fmt.Fprintln(r.out)
}

func (r *REPL) printPrompt() {
	fmt.Fprintf(r.out, "forge [%s]> ", r.mgr.Mode())
}

func parseCommand(line string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	quoteChar := rune(0)

	for _, ch := range line {
		switch {
		case ch == '"' || ch == '\'':
			if inQuotes && ch == quoteChar {
				inQuotes = false
				quoteChar = 0
			} else if !inQuotes {
				inQuotes = true
				quoteChar = ch
			} else {
				current.WriteRune(ch)
			}
		case ch == ' ' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(ch)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}
