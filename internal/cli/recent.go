package cli

import (
	"github.com/spf13/cobra"
)

func newRecentCmd(app *App) *cobra.Command {
	var limit int
	var forget string

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened minibook files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := sessionStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			if forget != "" {
				if err := st.ForgetFile(cmd.Context(), forget); err != nil {
					return writeErr(cmd, err)
				}
			}
			files, err := st.RecentFiles(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": files})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of files")
	cmd.Flags().StringVar(&forget, "forget", "", "Drop a file from the list first")
	return cmd
}
