// Package codec converts a minibook to and from its heading-delimited markdown form.
//
//	# <title>
//	## <subtitle>
//
//	## <chapter id> <chapter title>
//	<chapter content>
//
//	### <subpoint id> <subpoint title>
//	#### <paragraph id> <paragraph title>
//
// The format is lossy: content lines are trimmed, blank lines inside content are dropped, and
// headings whose ids do not follow N.N / N.N.N / N.N.N.N are not recognized on parse.
package codec

import (
	"bytes"

	"minibook-cli/internal/model"
)

// Serialize renders doc as markdown. Every heading and non-empty content block is followed
// by a blank line; empty content emits only the heading.
func Serialize(doc model.Document) string {
	var buf bytes.Buffer
	writeBlock := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n\n")
	}

	writeBlock("# " + doc.Title)
	if doc.Subtitle != "" {
		writeBlock("## " + doc.Subtitle)
	}

	for _, ch := range doc.Chapters {
		writeBlock("## " + ch.ID + " " + ch.Title)
		if ch.Content != "" {
			writeBlock(ch.Content)
		}
		for _, sp := range ch.Subpoints {
			writeBlock("### " + sp.ID + " " + sp.Title)
			if sp.Content != "" {
				writeBlock(sp.Content)
			}
			for _, p := range sp.Paragraphs {
				writeBlock("#### " + p.ID + " " + p.Title)
				if p.Content != "" {
					writeBlock(p.Content)
				}
			}
		}
	}
	return buf.String()
}
