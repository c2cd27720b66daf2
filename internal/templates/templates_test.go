package templates

import (
	"errors"
	"testing"

	"minibook-cli/internal/model"
)

func TestInstantiate_WsShape(t *testing.T) {
	t.Parallel()

	doc := Instantiate(model.NewDocument(), model.StructureWs)
	if doc.StructureKind != model.StructureWs {
		t.Fatalf("expected structure ws; got %q", doc.StructureKind)
	}
	if len(doc.Chapters) != 6 {
		t.Fatalf("expected 6 chapters; got %d", len(doc.Chapters))
	}
	wantTitles := []string{"Who", "What", "When", "Where", "Why", "How"}
	for i, ch := range doc.Chapters {
		if ch.Title != wantTitles[i] {
			t.Fatalf("chapter %d: expected title %q; got %q", i, wantTitles[i], ch.Title)
		}
		if ch.Content != "" {
			t.Fatalf("chapter %d: expected empty content; got %q", i, ch.Content)
		}
		if len(ch.Subpoints) != 3 {
			t.Fatalf("chapter %d: expected 3 subpoints; got %d", i, len(ch.Subpoints))
		}
		for j, sp := range ch.Subpoints {
			if sp.Content != "" {
				t.Fatalf("subpoint %d.%d: expected empty content", i, j)
			}
			if len(sp.Paragraphs) != 3 {
				t.Fatalf("subpoint %d.%d: expected 3 paragraphs; got %d", i, j, len(sp.Paragraphs))
			}
			for _, p := range sp.Paragraphs {
				if p.Content != "" {
					t.Fatalf("paragraph %s: expected empty content", p.ID)
				}
			}
		}
	}

	sp := doc.Chapters[1].Subpoints[2]
	if sp.ID != "1.2.3" || sp.Title != "Subpoint 3" {
		t.Fatalf("unexpected subpoint id/title: %q %q", sp.ID, sp.Title)
	}
	p := sp.Paragraphs[0]
	if p.ID != "1.2.3.1" || p.Title != "Paragraph 1" {
		t.Fatalf("unexpected paragraph id/title: %q %q", p.ID, p.Title)
	}
}

func TestInstantiate_NumberedTemplates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind      model.StructureKind
		chapters  int
		lastID    string
		lastTitle string
	}{
		{model.StructureSequential, 8, "8", "Step 8"},
		{model.StructureProblems, 10, "10", "Problem 10"},
	}
	for _, tc := range cases {
		doc := Instantiate(model.NewDocument(), tc.kind)
		if len(doc.Chapters) != tc.chapters {
			t.Fatalf("%s: expected %d chapters; got %d", tc.kind, tc.chapters, len(doc.Chapters))
		}
		last := doc.Chapters[len(doc.Chapters)-1]
		if last.ID != tc.lastID || last.Title != tc.lastTitle {
			t.Fatalf("%s: unexpected last chapter %q %q", tc.kind, last.ID, last.Title)
		}
		if got := last.Subpoints[0].Paragraphs[2].ID; got != tc.lastID+".1.3" {
			t.Fatalf("%s: unexpected paragraph id %q", tc.kind, got)
		}
	}
}

func TestInstantiate_PreservesMetaAndDiscardsChapters(t *testing.T) {
	t.Parallel()

	doc := Instantiate(model.NewDocument(), model.StructureWs)
	doc.Title = "My Book"
	doc.Subtitle = "A subtitle"
	doc.Chapters[0].Content = "draft text"

	switched := Instantiate(doc, model.StructureSequential)
	if switched.Title != "My Book" || switched.Subtitle != "A subtitle" {
		t.Fatalf("expected title/subtitle preserved; got %q / %q", switched.Title, switched.Subtitle)
	}
	if switched.Chapters[0].Content != "" {
		t.Fatalf("expected edits discarded on switch; got %q", switched.Chapters[0].Content)
	}
	if doc.Chapters[0].Content != "draft text" {
		t.Fatalf("expected input document untouched; got %q", doc.Chapters[0].Content)
	}
}

func TestMustGet_PanicsOnUnknownKind(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown kind")
		}
	}()
	_ = Instantiate(model.NewDocument(), model.StructureNone)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := ParseKind(" WS ")
	if err != nil || k != model.StructureWs {
		t.Fatalf("expected ws; got %q err=%v", k, err)
	}
	if _, err := ParseKind("sm"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind; got %v", err)
	}
	if Name(model.StructureNone) != "Select model..." {
		t.Fatalf("unexpected name for none: %q", Name(model.StructureNone))
	}
}
