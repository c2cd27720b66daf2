package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"minibook-cli/internal/model"
	"minibook-cli/internal/mutate"
	"minibook-cli/internal/outline"
)

// applyEdit loads --file, runs edit, writes the result when it changed and prints the node
// at the result path (or the document metadata for path-less edits).
func applyEdit(cmd *cobra.Command, app *App, edit func(doc model.Document) (mutate.Result, error)) error {
	file, doc, err := loadDoc(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	res, err := edit(doc)
	if err != nil {
		return writeErr(cmd, err)
	}
	if res.Changed {
		if err := saveDoc(app, file, res.Doc); err != nil {
			return writeErr(cmd, err)
		}
	}

	data := map[string]any{"changed": res.Changed}
	if res.Path.IsZero() {
		data["title"] = res.Doc.Title
		data["subtitle"] = res.Doc.Subtitle
	} else {
		n, err := outline.Resolve(res.Doc, res.Path)
		if err != nil {
			return writeErr(cmd, err)
		}
		data["node"] = newNodeView(res.Path, n, true)
	}
	return writeOut(cmd, app, map[string]any{"data": data})
}

func newSetTitleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-title <path> <title>",
		Short: "Rename a chapter, subpoint or paragraph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyEdit(cmd, app, func(doc model.Document) (mutate.Result, error) {
				p, err := outline.ParsePath(args[0])
				if err != nil {
					return mutate.Result{}, err
				}
				return mutate.SetTitle(doc, p, args[1])
			})
		},
	}
}

func newSetContentCmd(app *App) *cobra.Command {
	var text string
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "set-content <path>",
		Short: "Replace the content of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromStdin == cmd.Flags().Changed("text") {
				return writeErr(cmd, errors.New("pass exactly one of --text or --stdin"))
			}
			if fromStdin {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				text = strings.TrimRight(string(b), "\n")
			}
			return applyEdit(cmd, app, func(doc model.Document) (mutate.Result, error) {
				p, err := outline.ParsePath(args[0])
				if err != nil {
					return mutate.Result{}, err
				}
				return mutate.SetContent(doc, p, text)
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New content")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read new content from stdin")
	return cmd
}

func newSetMetaCmd(app *App) *cobra.Command {
	var title string
	var subtitle string

	cmd := &cobra.Command{
		Use:   "set-meta",
		Short: "Set the document title and/or subtitle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var m mutate.Meta
			if cmd.Flags().Changed("title") {
				m.Title = &title
			}
			if cmd.Flags().Changed("subtitle") {
				m.Subtitle = &subtitle
			}
			if m.Title == nil && m.Subtitle == nil {
				return writeErr(cmd, errors.New("nothing to set: pass --title and/or --subtitle"))
			}
			return applyEdit(cmd, app, func(doc model.Document) (mutate.Result, error) {
				return mutate.SetMeta(doc, m), nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Document title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Document subtitle")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add <parent-path>",
		Short: "Append a subpoint to a chapter or a paragraph to a subpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyEdit(cmd, app, func(doc model.Document) (mutate.Result, error) {
				p, err := outline.ParsePath(args[0])
				if err != nil {
					return mutate.Result{}, err
				}
				return mutate.Add(doc, p, title)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title for the new node (default: placeholder)")
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove a subpoint or paragraph (chapters come from the template)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyEdit(cmd, app, func(doc model.Document) (mutate.Result, error) {
				p, err := outline.ParsePath(args[0])
				if err != nil {
					return mutate.Result{}, err
				}
				return mutate.Remove(doc, p)
			})
		},
	}
}
