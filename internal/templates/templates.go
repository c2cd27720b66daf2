// Package templates holds the fixed catalog of outline skeletons a minibook can start from.
package templates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"minibook-cli/internal/model"
)

const (
	SubpointsPerChapter   = 3
	ParagraphsPerSubpoint = 3
)

var ErrUnknownKind = errors.New("unknown template")

type ChapterSeed struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

type Template struct {
	Kind     model.StructureKind `json:"kind" yaml:"kind"`
	Name     string              `json:"name" yaml:"name"`
	Chapters []ChapterSeed       `json:"chapters" yaml:"chapters"`
}

var registry = []Template{
	{
		Kind: model.StructureWs,
		Name: "W's Outline Model",
		Chapters: []ChapterSeed{
			{ID: "1.1", Title: "Who"},
			{ID: "1.2", Title: "What"},
			{ID: "1.3", Title: "When"},
			{ID: "1.4", Title: "Where"},
			{ID: "1.5", Title: "Why"},
			{ID: "1.6", Title: "How"},
		},
	},
	{
		Kind:     model.StructureSequential,
		Name:     "Sequential Outline Model",
		Chapters: numbered(8, "Step"),
	},
	{
		Kind:     model.StructureProblems,
		Name:     "10 Problems Outline Model",
		Chapters: numbered(10, "Problem"),
	},
}

func numbered(n int, label string) []ChapterSeed {
	out := make([]ChapterSeed, 0, n)
	for i := 1; i <= n; i++ {
		id := strconv.Itoa(i)
		out = append(out, ChapterSeed{ID: id, Title: label + " " + id})
	}
	return out
}

// All returns the registered templates in display order.
func All() []Template {
	out := make([]Template, len(registry))
	copy(out, registry)
	return out
}

func Lookup(kind model.StructureKind) (Template, bool) {
	for _, t := range registry {
		if t.Kind == kind {
			return t, true
		}
	}
	return Template{}, false
}

// MustGet returns the template for kind and panics when it is not registered.
// An unknown kind here is a programming error; user input goes through ParseKind first.
func MustGet(kind model.StructureKind) Template {
	t, ok := Lookup(kind)
	if !ok {
		panic(fmt.Sprintf("templates: unregistered kind %q", kind))
	}
	return t
}

// ParseKind validates a user-supplied template identifier.
func ParseKind(s string) (model.StructureKind, error) {
	k := model.StructureKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Lookup(k); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Name returns a display name for kind, including the "none" state.
func Name(kind model.StructureKind) string {
	if t, ok := Lookup(kind); ok {
		return t.Name
	}
	return "Select model..."
}

// Instantiate replaces the document's chapters with a fresh skeleton for kind.
// Title and subtitle are preserved; existing chapters and their edits are discarded.
func Instantiate(doc model.Document, kind model.StructureKind) model.Document {
	t := MustGet(kind)

	out := doc.Clone()
	out.StructureKind = t.Kind
	out.Chapters = make([]model.Chapter, 0, len(t.Chapters))
	for _, seed := range t.Chapters {
		out.Chapters = append(out.Chapters, expandChapter(seed))
	}
	return out
}

func expandChapter(seed ChapterSeed) model.Chapter {
	ch := model.Chapter{
		ID:        seed.ID,
		Title:     seed.Title,
		Subpoints: make([]model.Subpoint, 0, SubpointsPerChapter),
	}
	for i := 1; i <= SubpointsPerChapter; i++ {
		sp := model.Subpoint{
			ID:         seed.ID + "." + strconv.Itoa(i),
			Title:      "Subpoint " + strconv.Itoa(i),
			Paragraphs: make([]model.Paragraph, 0, ParagraphsPerSubpoint),
		}
		for j := 1; j <= ParagraphsPerSubpoint; j++ {
			sp.Paragraphs = append(sp.Paragraphs, model.Paragraph{
				ID:    sp.ID + "." + strconv.Itoa(j),
				Title: "Paragraph " + strconv.Itoa(j),
			})
		}
		ch.Subpoints = append(ch.Subpoints, sp)
	}
	return ch
}
