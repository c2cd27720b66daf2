package mutate

import (
	"errors"
	"testing"

	"minibook-cli/internal/model"
	"minibook-cli/internal/outline"
	"minibook-cli/internal/templates"
)

func wsDoc() model.Document {
	return templates.Instantiate(model.NewDocument(), model.StructureWs)
}

func TestSetContent_ReplacesOnlyAddressedNode(t *testing.T) {
	t.Parallel()

	doc := wsDoc()
	p := outline.ParagraphPath(1, 2, 0)

	res, err := SetContent(doc, p, "hello world")
	if err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	n, err := outline.Resolve(res.Doc, p)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if n.NodeContent() != "hello world" {
		t.Fatalf("expected content set; got %q", n.NodeContent())
	}

	for _, q := range outline.Linearize(res.Doc) {
		if q == p {
			continue
		}
		m, _ := outline.Resolve(res.Doc, q)
		if m.NodeContent() != "" {
			t.Fatalf("unexpected content on sibling %s: %q", q, m.NodeContent())
		}
	}

	// Input snapshot is untouched.
	old, _ := outline.Resolve(doc, p)
	if old.NodeContent() != "" {
		t.Fatalf("input document was mutated: %q", old.NodeContent())
	}

	again, err := SetContent(res.Doc, p, "hello world")
	if err != nil {
		t.Fatalf("SetContent (same): %v", err)
	}
	if again.Changed {
		t.Fatalf("expected changed=false when content is identical")
	}
}

func TestSetTitle_AllLevels(t *testing.T) {
	t.Parallel()

	doc := wsDoc()
	for _, p := range []outline.Path{outline.ChapterPath(0), outline.SubpointPath(0, 1), outline.ParagraphPath(0, 1, 2)} {
		res, err := SetTitle(doc, p, "Renamed "+p.String())
		if err != nil {
			t.Fatalf("SetTitle(%s): %v", p, err)
		}
		n, _ := outline.Resolve(res.Doc, p)
		if n.NodeTitle() != "Renamed "+p.String() {
			t.Fatalf("SetTitle(%s): got %q", p, n.NodeTitle())
		}
		doc = res.Doc
	}
	if doc.Chapters[1].Title != "What" {
		t.Fatalf("sibling chapter title changed: %q", doc.Chapters[1].Title)
	}
}

func TestSetContent_OutOfRange(t *testing.T) {
	t.Parallel()

	_, err := SetContent(wsDoc(), outline.SubpointPath(0, 7), "x")
	if !errors.Is(err, outline.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange; got %v", err)
	}
}

func TestRemoveSubpoint_ShiftsLaterSiblings(t *testing.T) {
	t.Parallel()

	doc := wsDoc()
	res, err := SetTitle(doc, outline.SubpointPath(2, 2), "Third")
	if err != nil {
		t.Fatalf("SetTitle: %v", err)
	}
	doc = res.Doc

	held := outline.SubpointPath(2, 2)
	before, _ := outline.Resolve(doc, held)
	if before.NodeTitle() != "Third" {
		t.Fatalf("setup: expected Third; got %q", before.NodeTitle())
	}

	res, err = RemoveSubpoint(doc, outline.SubpointPath(2, 1))
	if err != nil {
		t.Fatalf("RemoveSubpoint: %v", err)
	}
	if res.Path != outline.ChapterPath(2) {
		t.Fatalf("expected parent path after removal; got %s", res.Path)
	}
	doc = res.Doc

	if got := len(doc.Chapters[2].Subpoints); got != 2 {
		t.Fatalf("expected 2 subpoints after removal; got %d", got)
	}
	// The subpoint that was at index 2 now lives at index 1.
	shifted, err := outline.Resolve(doc, outline.SubpointPath(2, 1))
	if err != nil {
		t.Fatalf("Resolve shifted: %v", err)
	}
	if shifted.NodeTitle() != "Third" {
		t.Fatalf("expected shifted subpoint Third; got %q", shifted.NodeTitle())
	}
	// The held path is now stale.
	if _, err := outline.Resolve(doc, held); !errors.Is(err, outline.ErrOutOfRange) {
		t.Fatalf("expected held path to be out of range after removal; got %v", err)
	}
}

func TestRemoveParagraph_ShiftsAndResolvesDifferentNode(t *testing.T) {
	t.Parallel()

	doc := wsDoc()
	held := outline.ParagraphPath(0, 0, 1)
	before, _ := outline.Resolve(doc, held)

	res, err := Remove(doc, outline.ParagraphPath(0, 0, 0))
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	after, err := outline.Resolve(res.Doc, held)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if after.NodeID() == before.NodeID() {
		t.Fatalf("expected held path to address a different node after removal; both %q", after.NodeID())
	}
	if after.NodeID() != "1.1.1.3" {
		t.Fatalf("expected 1.1.1.3 at held path; got %q", after.NodeID())
	}
}

func TestRemove_ChapterRejected(t *testing.T) {
	t.Parallel()

	_, err := Remove(wsDoc(), outline.ChapterPath(0))
	if !errors.Is(err, ErrUnsupportedLevel) {
		t.Fatalf("expected ErrUnsupportedLevel; got %v", err)
	}
}

func TestAdd_SubpointAndParagraph(t *testing.T) {
	t.Parallel()

	doc := wsDoc()
	res, err := Add(doc, outline.ChapterPath(0), "")
	if err != nil {
		t.Fatalf("Add subpoint: %v", err)
	}
	if res.Path != outline.SubpointPath(0, 3) {
		t.Fatalf("unexpected new subpoint path %s", res.Path)
	}
	sp := res.Doc.Chapters[0].Subpoints[3]
	if sp.ID != "1.1.4" || sp.Title != "Subpoint 4" || len(sp.Paragraphs) != 0 {
		t.Fatalf("unexpected new subpoint %+v", sp)
	}

	res, err = Add(res.Doc, res.Path, "Opening")
	if err != nil {
		t.Fatalf("Add paragraph: %v", err)
	}
	p := res.Doc.Chapters[0].Subpoints[3].Paragraphs[0]
	if p.ID != "1.1.4.1" || p.Title != "Opening" {
		t.Fatalf("unexpected new paragraph %+v", p)
	}

	if _, err := Add(res.Doc, res.Path, "x"); !errors.Is(err, ErrUnsupportedLevel) {
		t.Fatalf("expected ErrUnsupportedLevel when adding under a paragraph; got %v", err)
	}
	if len(doc.Chapters[0].Subpoints) != 3 {
		t.Fatalf("input document was mutated")
	}
}

func TestAddSubpoint_IDUniqueAfterRemoval(t *testing.T) {
	t.Parallel()

	res, err := RemoveSubpoint(wsDoc(), outline.SubpointPath(0, 0))
	if err != nil {
		t.Fatalf("RemoveSubpoint: %v", err)
	}
	res, err = AddSubpoint(res.Doc, outline.ChapterPath(0), "")
	if err != nil {
		t.Fatalf("AddSubpoint: %v", err)
	}
	seen := map[string]bool{}
	for _, sp := range res.Doc.Chapters[0].Subpoints {
		if seen[sp.ID] {
			t.Fatalf("duplicate subpoint id %q", sp.ID)
		}
		seen[sp.ID] = true
	}
	if got := res.Doc.Chapters[0].Subpoints[2].ID; got != "1.1.4" {
		t.Fatalf("expected new id 1.1.4; got %q", got)
	}
}

func TestSetMeta(t *testing.T) {
	t.Parallel()

	title := "Book"
	res := SetMeta(wsDoc(), Meta{Title: &title})
	if !res.Changed || res.Doc.Title != "Book" || res.Doc.Subtitle != "" {
		t.Fatalf("unexpected meta result: changed=%v title=%q subtitle=%q", res.Changed, res.Doc.Title, res.Doc.Subtitle)
	}
	if again := SetMeta(res.Doc, Meta{Title: &title}); again.Changed {
		t.Fatalf("expected no change for identical title")
	}
}
