package mutate

import (
	"strconv"
	"strings"

	"minibook-cli/internal/model"
	"minibook-cli/internal/outline"
)

// Add appends a child under parent: a subpoint under a chapter, a paragraph under a subpoint.
// Chapters are only created by templates or import, so a zero parent is rejected.
// An empty title falls back to the template placeholder ("Subpoint n" / "Paragraph n").
func Add(doc model.Document, parent outline.Path, title string) (Result, error) {
	switch parent.Level() {
	case model.LevelChapter:
		return AddSubpoint(doc, parent, title)
	case model.LevelSubpoint:
		return AddParagraph(doc, parent, title)
	default:
		return Result{}, LevelError{Op: "add", Level: parent.Level()}
	}
}

func AddSubpoint(doc model.Document, chapter outline.Path, title string) (Result, error) {
	if chapter.Level() != model.LevelChapter {
		return Result{}, LevelError{Op: "add subpoint", Level: chapter.Level()}
	}
	if err := outline.Check(doc, chapter); err != nil {
		return Result{}, err
	}
	out := doc.Clone()
	ch := &out.Chapters[chapter.Chapter()]

	n := nextOrdinal(ch.ID, subpointIDs(ch.Subpoints), len(ch.Subpoints))
	if strings.TrimSpace(title) == "" {
		title = "Subpoint " + strconv.Itoa(len(ch.Subpoints)+1)
	}
	ch.Subpoints = append(ch.Subpoints, model.Subpoint{
		ID:         ch.ID + "." + strconv.Itoa(n),
		Title:      title,
		Paragraphs: []model.Paragraph{},
	})
	return Result{
		Doc:     out,
		Path:    outline.SubpointPath(chapter.Chapter(), len(ch.Subpoints)-1),
		Changed: true,
	}, nil
}

func AddParagraph(doc model.Document, subpoint outline.Path, title string) (Result, error) {
	if subpoint.Level() != model.LevelSubpoint {
		return Result{}, LevelError{Op: "add paragraph", Level: subpoint.Level()}
	}
	if err := outline.Check(doc, subpoint); err != nil {
		return Result{}, err
	}
	out := doc.Clone()
	sp := &out.Chapters[subpoint.Chapter()].Subpoints[subpoint.Subpoint()]

	n := nextOrdinal(sp.ID, paragraphIDs(sp.Paragraphs), len(sp.Paragraphs))
	if strings.TrimSpace(title) == "" {
		title = "Paragraph " + strconv.Itoa(len(sp.Paragraphs)+1)
	}
	sp.Paragraphs = append(sp.Paragraphs, model.Paragraph{
		ID:    sp.ID + "." + strconv.Itoa(n),
		Title: title,
	})
	return Result{
		Doc:     out,
		Path:    outline.ParagraphPath(subpoint.Chapter(), subpoint.Subpoint(), len(sp.Paragraphs)-1),
		Changed: true,
	}, nil
}

// Remove deletes the subpoint or paragraph at p. Later siblings shift down by one, so any
// path held for them now addresses a different node.
func Remove(doc model.Document, p outline.Path) (Result, error) {
	switch p.Level() {
	case model.LevelSubpoint:
		return RemoveSubpoint(doc, p)
	case model.LevelParagraph:
		return RemoveParagraph(doc, p)
	default:
		return Result{}, LevelError{Op: "remove", Level: p.Level()}
	}
}

func RemoveSubpoint(doc model.Document, p outline.Path) (Result, error) {
	if p.Level() != model.LevelSubpoint {
		return Result{}, LevelError{Op: "remove subpoint", Level: p.Level()}
	}
	if err := outline.Check(doc, p); err != nil {
		return Result{}, err
	}
	out := doc.Clone()
	ch := &out.Chapters[p.Chapter()]
	ch.Subpoints = append(ch.Subpoints[:p.Subpoint()], ch.Subpoints[p.Subpoint()+1:]...)
	parent, _ := p.Parent()
	return Result{Doc: out, Path: parent, Changed: true}, nil
}

func RemoveParagraph(doc model.Document, p outline.Path) (Result, error) {
	if p.Level() != model.LevelParagraph {
		return Result{}, LevelError{Op: "remove paragraph", Level: p.Level()}
	}
	if err := outline.Check(doc, p); err != nil {
		return Result{}, err
	}
	out := doc.Clone()
	sp := &out.Chapters[p.Chapter()].Subpoints[p.Subpoint()]
	sp.Paragraphs = append(sp.Paragraphs[:p.Paragraph()], sp.Paragraphs[p.Paragraph()+1:]...)
	parent, _ := p.Parent()
	return Result{Doc: out, Path: parent, Changed: true}, nil
}

func subpointIDs(xs []model.Subpoint) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, x.ID)
	}
	return out
}

func paragraphIDs(xs []model.Paragraph) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, x.ID)
	}
	return out
}

// nextOrdinal picks the child number for a new sibling: one past the highest existing
// "<parent>.<n>" suffix, so ids stay unique after removals.
func nextOrdinal(parentID string, siblingIDs []string, count int) int {
	hi := count
	prefix := parentID + "."
	for _, id := range siblingIDs {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil {
			continue
		}
		if n > hi {
			hi = n
		}
	}
	return hi + 1
}
