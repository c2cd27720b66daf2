package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"minibook-cli/internal/codec"
	"minibook-cli/internal/model"
	"minibook-cli/internal/outline"
	"minibook-cli/internal/progress"
	"minibook-cli/internal/publish"
	"minibook-cli/internal/templates"
)

type nodeView struct {
	Path    string `json:"path" yaml:"path"`
	Level   string `json:"level" yaml:"level"`
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
	Words   int    `json:"words" yaml:"words"`
}

func newNodeView(p outline.Path, n model.Node, withContent bool) nodeView {
	v := nodeView{
		Path:  p.String(),
		Level: n.NodeLevel().String(),
		ID:    n.NodeID(),
		Title: n.NodeTitle(),
		Words: progress.NodeWordCount(n),
	}
	if withContent {
		v.Content = n.NodeContent()
	}
	return v
}

type documentView struct {
	File         string           `json:"file" yaml:"file"`
	TemplateName string           `json:"templateName" yaml:"templateName"`
	Profile      string           `json:"profile" yaml:"profile"`
	Summary      progress.Summary `json:"summary" yaml:"summary"`
	Document     model.Document   `json:"document" yaml:"document"`
}

func newDocumentView(file string, doc model.Document, p progress.Profile) documentView {
	return documentView{
		File:         file,
		TemplateName: templates.Name(doc.StructureKind),
		Profile:      p.Key,
		Summary:      progress.Summarize(progress.TotalWordCount(doc), progress.DocumentGoal(doc, p)),
		Document:     doc,
	}
}

func parsePathArg(doc model.Document, s string) (outline.Path, model.Node, error) {
	p, err := outline.ParsePath(s)
	if err != nil {
		return outline.Path{}, nil, err
	}
	n, err := outline.Resolve(doc, p)
	if err != nil {
		return outline.Path{}, nil, err
	}
	return p, n, nil
}

func newNewCmd(app *App) *cobra.Command {
	var kind string
	var title string
	var subtitle string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a minibook file from a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := requireFile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !cmd.Flags().Changed("template") && app.cfg != nil {
				kind = app.cfg.DefaultTemplate
			}

			doc := model.NewDocument()
			doc.Title = strings.TrimSpace(title)
			doc.Subtitle = strings.TrimSpace(subtitle)
			if k := strings.TrimSpace(kind); k != "" && k != string(model.StructureNone) {
				sk, err := templates.ParseKind(k)
				if err != nil {
					return writeErr(cmd, err)
				}
				doc = templates.Instantiate(doc, sk)
			}

			if _, err := publish.WriteDocument(file, doc, publish.WriteOptions{Overwrite: overwrite}); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("document created", "file", file, "template", string(doc.StructureKind))

			p, err := currentProfile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			hints := []string{
				"minibook --file " + file + " outline",
				"minibook --file " + file,
			}
			if !publish.RoundTrips(doc) {
				hints = []string{
					"warning: " + templates.Name(doc.StructureKind) + " chapter ids do not read back as chapters; " +
						"later commands on this file refuse to rewrite it without --force",
					"minibook --file " + file + " lint",
					"minibook --file " + file + " export --html",
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data":   newDocumentView(file, doc, p),
				"_hints": hints,
			})
		},
	}

	cmd.Flags().StringVar(&kind, "template", "", "Template (ws|sequential|problems|none; default from config)")
	cmd.Flags().StringVar(&title, "title", "", "Document title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Document subtitle")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func newTemplateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "template <kind>",
		Short: "Switch the file to another template (replaces all chapters)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := templates.ParseKind(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			file, doc, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(doc.Chapters) > 0 && !app.Force {
				return writeErr(cmd, fmt.Errorf("%s already has %d chapters; rerun with --force to replace them", file, len(doc.Chapters)))
			}
			doc = templates.Instantiate(doc, kind)
			if err := saveDoc(app, file, doc); err != nil {
				return writeErr(cmd, err)
			}
			p, err := currentProfile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": newDocumentView(file, doc, p)})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the parsed document with its progress summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, doc, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := currentProfile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": newDocumentView(file, doc, p)})
		},
	}
}

func newOutlineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "outline",
		Short: "List every node in reading order with its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := []nodeView{}
			for _, p := range outline.Linearize(doc) {
				n, err := outline.Resolve(doc, p)
				if err != nil {
					return writeErr(cmd, err)
				}
				rows = append(rows, newNodeView(p, n, false))
			}
			var hints []string
			if len(rows) == 0 {
				hints = []string{"minibook --file " + app.File + " template ws"}
			}
			return writeOut(cmd, app, map[string]any{"data": rows, "_hints": hints})
		},
	}
}

func newGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Show one node (path like c0, c0.s1, c0.s1.p2)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, n, err := parsePathArg(doc, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": newNodeView(p, n, true)})
		},
	}
}

type chapterStats struct {
	Path    string           `json:"path" yaml:"path"`
	ID      string           `json:"id" yaml:"id"`
	Title   string           `json:"title" yaml:"title"`
	Summary progress.Summary `json:"summary" yaml:"summary"`
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Word counts and goal progress for the document and each chapter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, doc, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := currentProfile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			perChapter := progress.GoalPerChapter(p)
			chapters := []chapterStats{}
			for i, ch := range doc.Chapters {
				chapters = append(chapters, chapterStats{
					Path:    outline.ChapterPath(i).String(),
					ID:      ch.ID,
					Title:   ch.Title,
					Summary: progress.Summarize(progress.ChapterWordCount(ch), perChapter),
				})
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"file":           file,
					"profile":        p,
					"goalPerChapter": perChapter,
					"total":          progress.Summarize(progress.TotalWordCount(doc), progress.DocumentGoal(doc, p)),
					"chapters":       chapters,
				},
			})
		},
	}
}

func newLintCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report headings that will not become part of the outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := requireFile(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := os.ReadFile(file)
			if errors.Is(err, os.ErrNotExist) {
				return writeErr(cmd, errNotFound("file", file))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			diags := codec.Diagnose(string(b))
			issues := []codec.Diagnostic{}
			for _, d := range diags {
				if d.Message != "" {
					issues = append(issues, d)
				}
			}
			if err := writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"file":     file,
					"headings": diags,
					"issues":   issues,
				},
			}); err != nil {
				return err
			}
			if strict && len(issues) > 0 {
				return writeErr(cmd, fmt.Errorf("%d heading(s) will not be imported as outline nodes", len(issues)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any heading has an issue")
	return cmd
}
