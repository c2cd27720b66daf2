package codec

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type HeadingRole string

const (
	RoleTitle     HeadingRole = "title"
	RoleSubtitle  HeadingRole = "subtitle"
	RoleChapter   HeadingRole = "chapter"
	RoleSubpoint  HeadingRole = "subpoint"
	RoleParagraph HeadingRole = "paragraph"
	// RoleDropped headings are discarded by Parse.
	RoleDropped HeadingRole = "dropped"
	// RoleContent headings are kept by Parse as plain content lines.
	RoleContent HeadingRole = "content"
)

// Diagnostic describes how Parse will treat one markdown heading.
type Diagnostic struct {
	Line    int         `json:"line" yaml:"line"`
	Level   int         `json:"level" yaml:"level"`
	Text    string      `json:"text" yaml:"text"`
	Role    HeadingRole `json:"role" yaml:"role"`
	Message string      `json:"message,omitempty" yaml:"message,omitempty"`
}

// Structural reports whether the heading becomes part of the outline tree.
func (d Diagnostic) Structural() bool {
	switch d.Role {
	case RoleChapter, RoleSubpoint, RoleParagraph:
		return true
	default:
		return false
	}
}

// Lossy reports whether rewriting a file from its parsed document would lose this heading:
// dropped headings, and a title or subtitle heading that Parse adopts over an earlier one or
// after the first chapter.
func (d Diagnostic) Lossy() bool {
	switch d.Role {
	case RoleDropped:
		return true
	case RoleTitle, RoleSubtitle:
		return d.Message != ""
	default:
		return false
	}
}

// LossyHeadings returns the headings of src that a parse-then-serialize cycle would lose.
func LossyHeadings(src string) []Diagnostic {
	out := []Diagnostic{}
	for _, d := range Diagnose(src) {
		if d.Lossy() {
			out = append(out, d)
		}
	}
	return out
}

// Diagnose walks the markdown AST and classifies each heading the way Parse will.
// Headings that Parse drops or adopts as a fallback carry a Message.
func Diagnose(src string) []Diagnostic {
	b := []byte(src)
	root := goldmark.New().Parser().Parse(text.NewReader(b))

	out := []Diagnostic{}
	foundTitle, haveSubtitle, haveChapter, haveSubpoint := false, false, false, false

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		d := Diagnostic{Level: h.Level, Text: strings.TrimSpace(string(h.Text(b))), Line: headingLine(h, b)}

		if !isATX(h, b) {
			d.Role = RoleContent
			d.Message = "setext heading is read as plain content; use a '#' heading"
			out = append(out, d)
			continue
		}

		if d.Text == "" {
			d.Role = RoleContent
			d.Message = "empty heading is read as plain content"
			out = append(out, d)
			continue
		}

		switch h.Level {
		case 1:
			d.Role = RoleTitle
			if foundTitle {
				d.Message = "repeated title heading replaces the earlier title"
			}
			foundTitle = true
		case 2:
			switch {
			case chapterRE.MatchString(d.Text):
				d.Role = RoleChapter
				haveChapter, haveSubpoint = true, false
			case foundTitle && !haveSubtitle:
				d.Role = RoleSubtitle
				haveSubtitle = true
				if haveChapter {
					d.Message = "heading after the first chapter was adopted as the subtitle"
				}
			default:
				d.Role = RoleDropped
				d.Message = "chapter heading needs an id like 1.2 followed by a title"
			}
		case 3:
			switch {
			case !subpointRE.MatchString(d.Text):
				d.Role = RoleDropped
				d.Message = "subpoint heading needs an id like 1.2.3 followed by a title"
			case !haveChapter:
				d.Role = RoleDropped
				d.Message = "subpoint heading before any chapter"
			default:
				d.Role = RoleSubpoint
				haveSubpoint = true
			}
		case 4:
			switch {
			case !paragraphRE.MatchString(d.Text):
				d.Role = RoleDropped
				d.Message = "paragraph heading needs an id like 1.2.3.4 followed by a title"
			case !haveSubpoint:
				d.Role = RoleDropped
				d.Message = "paragraph heading before any subpoint"
			default:
				d.Role = RoleParagraph
			}
		default:
			d.Role = RoleContent
			d.Message = "headings below level 4 are read as plain content"
		}
		out = append(out, d)
	}
	return out
}

func isATX(h *ast.Heading, src []byte) bool {
	start := headingStart(h)
	if start < 0 {
		// Empty ATX headings ("#") carry no segment.
		return true
	}
	lineStart := bytes.LastIndexByte(src[:start], '\n') + 1
	return strings.HasPrefix(strings.TrimSpace(string(src[lineStart:start])), "#")
}

func headingStart(h *ast.Heading) int {
	lines := h.Lines()
	if lines == nil || lines.Len() == 0 {
		return -1
	}
	return lines.At(0).Start
}

func headingLine(h *ast.Heading, src []byte) int {
	start := headingStart(h)
	if start < 0 {
		return 0
	}
	return bytes.Count(src[:start], []byte("\n")) + 1
}
