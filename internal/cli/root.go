package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskpad/internal/format"
	"taskpad/internal/store"
	"taskpad/internal/tui"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskpad",
		Short:        "Taskpad (local-first) task list CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskpad

  # Scriptable commands
  taskpad add "Buy milk"
  taskpad list --filter active
  taskpad done task-abc123de
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TASKPAD_DIR", ""), "Path to state dir (default: ~/.taskpad)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newThemeCmd(app))

	return cmd
}

func runTUI(app *App) error {
	ts, st, closeKV, err := loadTaskStore(app)
	if err != nil {
		return err
	}
	defer closeKV()
	return tui.Run(ts, st)
}

// loadStore opens the SQLite-backed KV under the resolved state dir. Commands
// that only touch a single key (theme) stop here; task commands go through
// loadTaskStore to parse the collection as well.
func loadStore(app *App) (store.Store, func(), error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, nil, err
		}
		dir = d
		app.Dir = dir
	}

	kv, err := store.OpenSQLiteKV(context.Background(), dir)
	if err != nil {
		return store.Store{}, nil, fmt.Errorf("opening state dir %s: %w", dir, err)
	}
	return store.Store{KV: kv}, func() { _ = kv.Close() }, nil
}

// loadTaskStore loads the persisted collection into a fresh TaskStore.
func loadTaskStore(app *App) (*store.TaskStore, store.Store, func(), error) {
	st, closeKV, err := loadStore(app)
	if err != nil {
		return nil, store.Store{}, nil, err
	}
	ts := store.NewTaskStore(st)
	ts.Load()
	return ts, st, closeKV, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
