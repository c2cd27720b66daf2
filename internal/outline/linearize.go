package outline

import "minibook-cli/internal/model"

// Linearize lists every node's path in document order: each chapter, then each of its
// subpoints followed by that subpoint's paragraphs.
func Linearize(doc model.Document) []Path {
	out := make([]Path, 0, doc.NodeCount())
	for c, ch := range doc.Chapters {
		out = append(out, ChapterPath(c))
		for s, sp := range ch.Subpoints {
			out = append(out, SubpointPath(c, s))
			for p := range sp.Paragraphs {
				out = append(out, ParagraphPath(c, s, p))
			}
		}
	}
	return out
}

// Next returns the path after cur in Linearize order. At the end of the sequence, or when
// cur is not part of doc, cur is returned unchanged.
func Next(doc model.Document, cur Path) Path {
	return step(doc, cur, 1)
}

// Previous is the mirror of Next.
func Previous(doc model.Document, cur Path) Path {
	return step(doc, cur, -1)
}

func step(doc model.Document, cur Path, delta int) Path {
	seq := Linearize(doc)
	i := indexOf(seq, cur)
	if i < 0 {
		return cur
	}
	j := i + delta
	if j < 0 || j >= len(seq) {
		return cur
	}
	return seq[j]
}

// IndexOf returns the position of p in Linearize(doc), or -1.
func IndexOf(doc model.Document, p Path) int {
	return indexOf(Linearize(doc), p)
}

func indexOf(seq []Path, p Path) int {
	for i, x := range seq {
		if x == p {
			return i
		}
	}
	return -1
}
