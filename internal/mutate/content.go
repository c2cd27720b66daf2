// Package mutate applies addressed edits to a minibook.
//
// Every function takes a document value and returns a new one; the input is never modified.
package mutate

import (
	"minibook-cli/internal/model"
	"minibook-cli/internal/outline"
)

type Result struct {
	Doc     model.Document
	Path    outline.Path
	Changed bool
}

// SetContent replaces the content of the node at p.
func SetContent(doc model.Document, p outline.Path, text string) (Result, error) {
	return setField(doc, p, text, func(n nodeFields) *string { return n.content })
}

// SetTitle replaces the title of the node at p.
func SetTitle(doc model.Document, p outline.Path, text string) (Result, error) {
	return setField(doc, p, text, func(n nodeFields) *string { return n.title })
}

type Meta struct {
	Title    *string
	Subtitle *string
}

// SetMeta updates document-level title/subtitle. Nil fields are left alone.
func SetMeta(doc model.Document, m Meta) Result {
	out := doc.Clone()
	changed := false
	if m.Title != nil && *m.Title != out.Title {
		out.Title = *m.Title
		changed = true
	}
	if m.Subtitle != nil && *m.Subtitle != out.Subtitle {
		out.Subtitle = *m.Subtitle
		changed = true
	}
	return Result{Doc: out, Changed: changed}
}

type nodeFields struct {
	title   *string
	content *string
}

func setField(doc model.Document, p outline.Path, text string, pick func(nodeFields) *string) (Result, error) {
	if err := outline.Check(doc, p); err != nil {
		return Result{}, err
	}
	out := doc.Clone()
	f := pick(fieldsAt(&out, p))
	if *f == text {
		return Result{Doc: out, Path: p, Changed: false}, nil
	}
	*f = text
	return Result{Doc: out, Path: p, Changed: true}, nil
}

// fieldsAt assumes p was already checked against doc.
func fieldsAt(doc *model.Document, p outline.Path) nodeFields {
	ch := &doc.Chapters[p.Chapter()]
	switch p.Level() {
	case model.LevelChapter:
		return nodeFields{title: &ch.Title, content: &ch.Content}
	case model.LevelSubpoint:
		sp := &ch.Subpoints[p.Subpoint()]
		return nodeFields{title: &sp.Title, content: &sp.Content}
	default:
		para := &ch.Subpoints[p.Subpoint()].Paragraphs[p.Paragraph()]
		return nodeFields{title: &para.Title, content: &para.Content}
	}
}
