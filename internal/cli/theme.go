package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"taskpad/internal/model"
	"taskpad/internal/store"
)

func newThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Show or set the persisted display mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Theme lives under its own key; the task collection is never read.
			st, closeKV, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeKV()

			if len(args) == 1 {
				if args[0] != string(model.ThemeDark) && args[0] != string(model.ThemeLight) {
					return writeErr(cmd, errors.New("unknown theme: "+args[0]+" (want dark|light)"))
				}
				if err := st.SaveTheme(model.ParseTheme(args[0])); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": themePayload(st)})
		},
	}
}

func themePayload(st store.Store) map[string]any {
	return map[string]any{"theme": string(st.LoadTheme())}
}
