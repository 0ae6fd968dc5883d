package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fablesmith/mythosforge/internal/audio"
	"github.com/fablesmith/mythosforge/internal/config"
	"github.com/fablesmith/mythosforge/internal/display"
	"github.com/fablesmith/mythosforge/internal/keys"
	"github.com/fablesmith/mythosforge/internal/provider"
	"github.com/fablesmith/mythosforge/internal/provider/gemini"
	"github.com/fablesmith/mythosforge/internal/repl"
	"github.com/fablesmith/mythosforge/internal/server"
	"github.com/fablesmith/mythosforge/internal/session"
)

var (
	version = "dev"
	commit  = "none"
)

const (
	providerName = "gemini"
	apiKeyEnvVar = "GEMINI_API_KEY"
)

var (
	flagConfig string
	flagOwner  string
	flagDBPath string
	flagAddr   string
	flagAPIKey string
)

type App struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	GetEnv func(string) string

	NewProvider func(ctx context.Context, cfg *provider.Config) (provider.Provider, error)
}

func DefaultApp() *App {
	return &App{
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
		GetEnv: os.Getenv,
		NewProvider: func(ctx context.Context, cfg *provider.Config) (provider.Provider, error) {
			return gemini.New(ctx, cfg)
		},
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := DefaultApp()
	rootCmd := newRootCmd(app)
	return rootCmd.Execute()
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mythosforge",
		Short: "Interactive worldbuilding studio for characters, places and stories",
		Long: `mythosforge is a terminal studio for authoring fictional worlds:
character, environment and prop sheets, generated narratives and images,
character voices, and named sessions that capture the whole workspace.

Running without a subcommand starts the interactive shell.

Examples:
  mythosforge
  mythosforge serve --addr 127.0.0.1:8490
  mythosforge keys set
  mythosforge sessions`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd.Context(), app)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.mythosforge/config.yaml)")
	cmd.PersistentFlags().StringVar(&flagOwner, "owner", "", "owning identity for session scoping (default guest)")
	cmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "session database file")
	cmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key (defaults to stored key or "+apiKeyEnvVar+")")

	cmd.AddCommand(newREPLCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newKeysCmd(app))
	cmd.AddCommand(newSessionsCmd(app))

	return cmd
}

func newREPLCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive authoring shell",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd.Context(), app)
		},
	}
}

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the authoring stores over a JSON HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), app)
		},
	}
	cmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default from config)")
	return cmd
}

func newKeysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage stored API keys",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Store the API key",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := keys.NewStore()
			if err != nil {
				return err
			}

			key, err := readKey(app)
			if err != nil {
				return err
			}
			if key == "" {
				return fmt.Errorf("no key entered")
			}

			if err := store.Set(providerName, key); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "API key stored in %s\n", store.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored API key (masked)",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := keys.NewStore()
			if err != nil {
				return err
			}
			key, err := store.Get(providerName)
			if err != nil {
				return err
			}
			if key == "" {
				fmt.Fprintln(app.Out, "No key stored")
				return nil
			}
			fmt.Fprintf(app.Out, "%s: %s\n", providerName, keys.MaskKey(key))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete the stored API key",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := keys.NewStore()
			if err != nil {
				return err
			}
			if err := store.Delete(providerName); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "API key deleted")
			return nil
		},
	})

	return cmd
}

func newSessionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List saved sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := newLogger(app.Err)
			store, err := session.NewStoreWithPath(cfg.Storage.Path, log)
			if err != nil {
				return err
			}
			defer store.Close()

			mgr := session.NewManager(store, session.Config{
				Namespace: cfg.Storage.Namespace,
				Owner:     cfg.Owner,
				Logger:    log,
			})

			snapshots, err := mgr.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			display.New(app.Out).Sessions(snapshots, "")
			return nil
		},
	}
}

func runREPL(ctx context.Context, app *App) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(app.Err)

	store, err := session.NewStoreWithPath(cfg.Storage.Path, log)
	if err != nil {
		return err
	}
	defer store.Close()

	confirm := stdinConfirm(app)
	mgr := session.NewManager(store, session.Config{
		Namespace: cfg.Storage.Namespace,
		Owner:     cfg.Owner,
		Confirm:   confirm,
		Logger:    log,
	})

	prov := buildProvider(ctx, app, cfg)
	if prov == nil {
		fmt.Fprintln(app.Out, "Note: no API key configured; generation commands are disabled.")
		fmt.Fprintln(app.Out, "Run 'mythosforge keys set' or set "+apiKeyEnvVar+".")
	}

	r := repl.New(&repl.Config{
		In:       app.In,
		Out:      app.Out,
		Err:      app.Err,
		Provider: prov,
		Manager:  mgr,
		Renderer: display.New(app.Out),
		Player:   audio.NewPlayer(audio.NopSink{}, log),
		Exporter: audio.NewExporter(audio.DirSaver{Dir: cfg.Audio.ExportDir}),
		Confirm:  confirm,
	})
	return r.Run(ctx)
}

func runServe(ctx context.Context, app *App) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(app.Err)

	store, err := session.NewStoreWithPath(cfg.Storage.Path, log)
	if err != nil {
		return err
	}
	defer store.Close()

	// The HTTP caller's explicit request is the confirmation; the default
	// always-affirmative confirm port applies.
	mgr := session.NewManager(store, session.Config{
		Namespace: cfg.Storage.Namespace,
		Owner:     cfg.Owner,
		Logger:    log,
	})

	addr := flagAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	return server.New(mgr, log).ListenAndServe(ctx, addr)
}

// buildProvider resolves the API key and constructs the Gemini client. A
// missing key is not fatal; the REPL then runs with generation disabled.
func buildProvider(ctx context.Context, app *App, cfg *config.Config) provider.Provider {
	key, _, err := keys.GetAPIKey(flagAPIKey, providerName, apiKeyEnvVar)
	if err != nil {
		return nil
	}

	prov, err := app.NewProvider(ctx, &provider.Config{
		APIKey:     key,
		TextModel:  cfg.Provider.TextModel,
		ImageModel: cfg.Provider.ImageModel,
		TTSModel:   cfg.Provider.TTSModel,
	})
	if err != nil {
		fmt.Fprintf(app.Err, "Warning: provider unavailable: %v\n", err)
		return nil
	}
	return prov
}

func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flagOwner != "" {
		cfg.Owner = flagOwner
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	return cfg, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// stdinConfirm prompts on the terminal before destructive session
// operations. Non-interactive input proceeds without prompting.
func stdinConfirm(app *App) session.Confirm {
	return func(message string) bool {
		if !isTerminal(app.In) {
			return true
		}
		fmt.Fprintf(app.Out, "%s [Y/n] ", message)
		reader := bufio.NewReader(app.In)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		return response == "" || response == "y" || response == "yes"
	}
}

// readKey reads the API key, hiding the input when attached to a terminal.
func readKey(app *App) (string, error) {
	if f, ok := app.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(app.Out, "Enter API key: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(app.Out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	reader := bufio.NewReader(app.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func isTerminal(r io.Reader) bool {
	if f, ok := r.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
