package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"minibook-cli/internal/web"
)

func newPreviewCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve a live-reloading HTML preview of the file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := requireFile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(addr) == "" {
				addr = app.cfg.PreviewAddr()
			}
			p, err := currentProfile(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			srv, err := web.NewServer(web.ServerConfig{
				Addr:    strings.TrimSpace(addr),
				File:    file,
				Profile: p,
				Log:     app.log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "minibook preview: http://%s (ctrl+c to stop)\n", srv.Addr())
			if err := srv.ListenAndServe(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("MINIBOOK_PREVIEW_ADDR", ""), "Listen address (default from config, 127.0.0.1:3336)")
	return cmd
}
