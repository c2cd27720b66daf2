package codec

import (
	"regexp"
	"strings"

	"minibook-cli/internal/model"
)

var (
	lineSplitRE  = regexp.MustCompile(`\r?\n`)
	chapterRE    = regexp.MustCompile(`^(\d+\.\d+)\s+(.+)$`)
	subpointRE   = regexp.MustCompile(`^(\d+\.\d+\.\d+)\s+(.+)$`)
	paragraphRE  = regexp.MustCompile(`^(\d+\.\d+\.\d+\.\d+)\s+(.+)$`)
	headingRoles = []struct {
		prefix string
		level  int
	}{
		{"#### ", 4},
		{"### ", 3},
		{"## ", 2},
		{"# ", 1},
	}
)

// ImportedStructure is the structure kind assigned to parsed documents.
const ImportedStructure = model.StructureWs

// Parse rebuilds a document from markdown in a single pass. It never fails: lines that do not
// fit the format are either adopted as the subtitle, appended as content, or dropped.
// Every "# " line sets the title, so a later title heading replaces an earlier one.
func Parse(text string) model.Document {
	doc := model.Document{StructureKind: ImportedStructure, Chapters: []model.Chapter{}}

	// Cursors index into doc so appended content lands on the live node.
	chapter, subpoint, paragraph := -1, -1, -1
	foundTitle := false

	for _, raw := range lineSplitRE.Split(text, -1) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		level, rest := classifyHeading(line)
		switch level {
		case 1:
			doc.Title = rest
			foundTitle = true

		case 2:
			if m := chapterRE.FindStringSubmatch(rest); m != nil {
				doc.Chapters = append(doc.Chapters, model.Chapter{ID: m[1], Title: m[2], Subpoints: []model.Subpoint{}})
				chapter, subpoint, paragraph = len(doc.Chapters)-1, -1, -1
			} else if foundTitle && doc.Subtitle == "" {
				doc.Subtitle = rest
			}

		case 3:
			m := subpointRE.FindStringSubmatch(rest)
			if m == nil || chapter < 0 {
				continue
			}
			ch := &doc.Chapters[chapter]
			ch.Subpoints = append(ch.Subpoints, model.Subpoint{ID: m[1], Title: m[2], Paragraphs: []model.Paragraph{}})
			subpoint, paragraph = len(ch.Subpoints)-1, -1

		case 4:
			m := paragraphRE.FindStringSubmatch(rest)
			if m == nil || subpoint < 0 {
				continue
			}
			sp := &doc.Chapters[chapter].Subpoints[subpoint]
			sp.Paragraphs = append(sp.Paragraphs, model.Paragraph{ID: m[1], Title: m[2]})
			paragraph = len(sp.Paragraphs) - 1

		default:
			switch {
			case paragraph >= 0:
				appendLine(&doc.Chapters[chapter].Subpoints[subpoint].Paragraphs[paragraph].Content, line)
			case subpoint >= 0:
				appendLine(&doc.Chapters[chapter].Subpoints[subpoint].Content, line)
			case chapter >= 0:
				appendLine(&doc.Chapters[chapter].Content, line)
			}
		}
	}
	return doc
}

// classifyHeading returns the heading level (1-4) and the text after the marker, or 0 for
// anything else (including "##### " and deeper).
func classifyHeading(line string) (int, string) {
	for _, h := range headingRoles {
		if strings.HasPrefix(line, h.prefix) {
			return h.level, line[len(h.prefix):]
		}
	}
	return 0, ""
}

func appendLine(dst *string, line string) {
	if *dst != "" {
		*dst += "\n"
	}
	*dst += line
}
