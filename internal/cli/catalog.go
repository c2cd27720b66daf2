package cli

import (
	"github.com/spf13/cobra"

	"minibook-cli/internal/progress"
	"minibook-cli/internal/templates"
)

func newTemplatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List outline templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{
				"data":   templates.All(),
				"_hints": []string{"minibook --file book.md new --template ws"},
			})
		},
	}
}

func newProfilesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List length profiles and their per-chapter goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type row struct {
				progress.Profile `yaml:",inline"`
				GoalPerChapter   int `json:"goalPerChapter" yaml:"goalPerChapter"`
			}
			rows := []row{}
			for _, p := range progress.Profiles() {
				rows = append(rows, row{Profile: p, GoalPerChapter: progress.GoalPerChapter(p)})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
}
