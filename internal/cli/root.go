// Package cli wires minibook's cobra commands.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"minibook-cli/internal/format"
	"minibook-cli/internal/logging"
	"minibook-cli/internal/model"
	"minibook-cli/internal/progress"
	"minibook-cli/internal/publish"
	"minibook-cli/internal/store"
	"minibook-cli/internal/tui"
)

type App struct {
	File       string
	Profile    string
	Format     string
	PrettyJSON bool
	Force      bool
	LogFile    string
	LogMode    string

	cfg *store.Config
	log *logging.Logger
}

func NewRootCmd() *cobra.Command {
	// Best effort: a .env in the working directory may carry MINIBOOK_* defaults.
	_ = store.LoadDotEnv()

	app := &App{}

	cmd := &cobra.Command{
		Use:          "minibook",
		Short:        "Write a minibook: outline templates, markdown files, word-count goals",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor on a file
  minibook --file book.md

  # Scriptable commands
  minibook --file book.md new --template ws --title "Field Notes"
  minibook --file book.md outline
  minibook --file book.md set-content c0 --text "Who is this for?"
  minibook --file book.md stats --profile expanded
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) != 0 {
				return cmd.Help()
			}
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !format.Valid(app.Format) {
			return writeErr(cmd, fmt.Errorf("unknown format: %s (json|yaml)", app.Format))
		}
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		log, err := logging.New(app.LogMode, app.LogFile)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log = log.NewSession().With("cmd", cmd.CommandPath())
		app.log.Debug("start", "args", args)
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.log != nil {
			app.log.Sync()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.File, "file", envOr("MINIBOOK_FILE", ""), "Minibook markdown file")
	cmd.PersistentFlags().StringVar(&app.Profile, "profile", envOr("MINIBOOK_PROFILE", ""), "Length profile (mini|expanded|full)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("MINIBOOK_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Force, "force", false, "Rewrite files even when headings would be lost or chapters replaced")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("MINIBOOK_LOG_FILE", ""), "Write logs to this file (default: discard)")
	cmd.PersistentFlags().StringVar(&app.LogMode, "log-mode", envOr("MINIBOOK_LOG_MODE", "dev"), "Log encoding (dev|prod)")

	cmd.AddCommand(newNewCmd(app))
	cmd.AddCommand(newTemplatesCmd(app))
	cmd.AddCommand(newTemplateCmd(app))
	cmd.AddCommand(newProfilesCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newOutlineCmd(app))
	cmd.AddCommand(newGetCmd(app))
	cmd.AddCommand(newSetTitleCmd(app))
	cmd.AddCommand(newSetContentCmd(app))
	cmd.AddCommand(newSetMetaCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newLintCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newPreviewCmd(app))
	cmd.AddCommand(newRecentCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	file, err := requireFile(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	st, err := sessionStore()
	if err != nil {
		app.log.Warn("session state disabled", "err", err)
	}
	return tui.Run(tui.Options{
		File:    file,
		Profile: app.Profile,
		Store:   st,
		Config:  app.cfg,
		Log:     app.log,
	})
}

// sessionStore returns the store under ConfigDir, creating the directory.
func sessionStore() (*store.Store, error) {
	st, err := store.Default()
	if err != nil {
		return nil, err
	}
	if err := st.Ensure(); err != nil {
		return nil, err
	}
	return &st, nil
}

func requireFile(app *App) (string, error) {
	f := strings.TrimSpace(app.File)
	if f == "" {
		return "", errMissingFlag("file", "MINIBOOK_FILE")
	}
	return f, nil
}

// loadDoc reads --file. A missing file is reported with a hint to run `minibook new`.
func loadDoc(app *App) (string, model.Document, error) {
	file, err := requireFile(app)
	if err != nil {
		return "", model.Document{}, err
	}
	doc, err := publish.ReadDocument(file)
	if errors.Is(err, os.ErrNotExist) {
		return "", model.Document{}, errNotFound("file", file)
	}
	if err != nil {
		return "", model.Document{}, err
	}
	return file, doc, nil
}

// saveDoc writes doc back over file. Unless --force is set it refuses when the file on disk
// holds headings the parser dropped, since doc was read without them.
func saveDoc(app *App, file string, doc model.Document) error {
	if !app.Force {
		if err := publish.CheckRewrite(file); err != nil {
			app.log.Warn("rewrite refused", "file", file, "err", err)
			return err
		}
	}
	if _, err := publish.WriteDocument(file, doc, publish.WriteOptions{Overwrite: true}); err != nil {
		return err
	}
	app.log.Info("document written", "file", file, "words", progress.TotalWordCount(doc))
	return nil
}

// currentProfile resolves --profile, then the config default, then "mini".
func currentProfile(app *App) (progress.Profile, error) {
	key := strings.TrimSpace(app.Profile)
	if key == "" && app.cfg != nil {
		key = strings.TrimSpace(app.cfg.DefaultProfile)
	}
	if key == "" {
		key = progress.DefaultProfile
	}
	return progress.LookupProfile(key)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
