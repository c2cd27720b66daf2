package outline

import (
	"fmt"

	"minibook-cli/internal/model"
)

// Resolve returns the node addressed by p. Indices are never clamped.
func Resolve(doc model.Document, p Path) (model.Node, error) {
	switch p.level {
	case model.LevelChapter:
		ch, err := chapterAt(doc, p)
		if err != nil {
			return nil, err
		}
		return ch, nil
	case model.LevelSubpoint:
		sp, err := subpointAt(doc, p)
		if err != nil {
			return nil, err
		}
		return sp, nil
	case model.LevelParagraph:
		para, err := paragraphAt(doc, p)
		if err != nil {
			return nil, err
		}
		return para, nil
	default:
		return nil, fmt.Errorf("%w: zero path", ErrInvalidPath)
	}
}

// Check reports whether p still addresses a node in doc.
func Check(doc model.Document, p Path) error {
	_, err := Resolve(doc, p)
	return err
}

func chapterAt(doc model.Document, p Path) (model.Chapter, error) {
	if p.c < 0 || p.c >= len(doc.Chapters) {
		return model.Chapter{}, &OutOfRangeError{Path: p, Level: model.LevelChapter, Index: p.c, Len: len(doc.Chapters)}
	}
	return doc.Chapters[p.c], nil
}

func subpointAt(doc model.Document, p Path) (model.Subpoint, error) {
	ch, err := chapterAt(doc, p)
	if err != nil {
		return model.Subpoint{}, err
	}
	if p.s < 0 || p.s >= len(ch.Subpoints) {
		return model.Subpoint{}, &OutOfRangeError{Path: p, Level: model.LevelSubpoint, Index: p.s, Len: len(ch.Subpoints)}
	}
	return ch.Subpoints[p.s], nil
}

func paragraphAt(doc model.Document, p Path) (model.Paragraph, error) {
	sp, err := subpointAt(doc, p)
	if err != nil {
		return model.Paragraph{}, err
	}
	if p.p < 0 || p.p >= len(sp.Paragraphs) {
		return model.Paragraph{}, &OutOfRangeError{Path: p, Level: model.LevelParagraph, Index: p.p, Len: len(sp.Paragraphs)}
	}
	return sp.Paragraphs[p.p], nil
}
