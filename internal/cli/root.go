package cli

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tsawler/texta"
)

// Execute runs the texta command line and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by subcommands once the root command has run.
type app struct {
	cfg    texta.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		debug      bool
		configPath string
		envFile    string
	)

	a := &app{cfg: texta.DefaultConfig(), logger: newLogger(false)}

	cmd := &cobra.Command{
		Use:          "texta",
		Short:        "Texta: file lookup, custom lexicon and toolkit front end",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			a.logger = newLogger(debug)

			if err := loadEnvFile(envFile); err != nil {
				return err
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: "+texta.DefaultConfigFile+" if present)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before searching (ignored if missing)")

	cmd.AddCommand(findCmd(a))
	cmd.AddCommand(textCmds(a)...)
	cmd.AddCommand(lexiconCmd(a))
	return cmd
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadEnvFile loads KEY=VALUE pairs from path without overriding variables
// that are already set. A missing file is ignored.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// loadConfig reads path, or the default config file when path is empty and
// that file exists.
func loadConfig(path string) (texta.Config, error) {
	if path == "" {
		if !fileExists(texta.DefaultConfigFile) {
			return texta.DefaultConfig(), nil
		}
		path = texta.DefaultConfigFile
	}
	return texta.LoadConfig(path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (a *app) finder() *texta.Finder {
	opts := append(a.cfg.FinderOpts(), texta.WithFinderLogger(a.logger))
	return texta.NewFinder(opts...)
}

func (a *app) lexicon() *texta.CustomLexicon {
	return texta.NewCustomLexicon(
		texta.UsingFinder(a.finder()),
		texta.UsingLexiconFilename(a.cfg.Lexicon.Filename),
		texta.WithLexiconLogger(a.logger),
	)
}

func (a *app) facade() (*texta.Facade, error) {
	opts := []texta.ToolkitOpt{
		texta.UsingLexicon(a.lexicon()),
		texta.WithToolkitLogger(a.logger),
	}
	if len(a.cfg.Toolkit.Command) > 0 {
		backend, err := texta.NewCommandProcessor(a.cfg.Toolkit.Command,
			texta.WithCommandTimeout(a.cfg.Toolkit.Timeout),
			texta.WithCommandLogger(a.logger),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, texta.WithBackend(backend))
	}

	tk, err := texta.NewToolkit(opts...)
	if err != nil {
		return nil, err
	}
	// Calls to the backend carry their own timeout.
	return texta.NewFacade(tk, texta.WithTimeout(0)), nil
}
