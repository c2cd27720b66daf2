package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"minibook-cli/internal/publish"
)

func newExportCmd(app *App) *cobra.Command {
	var dir string
	var withHTML bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the minibook as <title>.md (and optionally .html)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !cmd.Flags().Changed("dir") && app.cfg != nil && strings.TrimSpace(app.cfg.ExportDir) != "" {
				dir = app.cfg.ExportDir
			}

			opt := publish.WriteOptions{Overwrite: overwrite}
			res, err := publish.Export(doc, dir, opt)
			if err != nil {
				return writeErr(cmd, err)
			}
			if withHTML {
				md := res.Written[0]
				htmlPath := strings.TrimSuffix(md, filepath.Ext(md)) + ".html"
				hr, err := publish.WriteHTML(htmlPath, doc, opt)
				if err != nil {
					return writeErr(cmd, err)
				}
				res.Written = append(res.Written, hr.Written...)
				res.Bytes += hr.Bytes
			}
			app.log.Info("exported", "files", res.Written, "bytes", res.Bytes)
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory (default from config exportDir)")
	cmd.Flags().BoolVar(&withHTML, "html", false, "Also write a standalone HTML page")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}
