// Package outline addresses nodes of a minibook by position.
//
// A Path is a small value naming a chapter, subpoint or paragraph by zero-based indices.
// Paths are only valid for the document they were derived from: any structural edit
// (add/remove) may shift later siblings, so callers re-derive paths after mutating.
package outline

import (
	"fmt"
	"strconv"
	"strings"

	"minibook-cli/internal/model"
)

type Path struct {
	level model.Level
	c     int
	s     int
	p     int
}

func ChapterPath(c int) Path { return Path{level: model.LevelChapter, c: c} }

func SubpointPath(c, s int) Path { return Path{level: model.LevelSubpoint, c: c, s: s} }

func ParagraphPath(c, s, p int) Path { return Path{level: model.LevelParagraph, c: c, s: s, p: p} }

func (p Path) Level() model.Level { return p.level }
func (p Path) Chapter() int       { return p.c }
func (p Path) Subpoint() int      { return p.s }
func (p Path) Paragraph() int     { return p.p }
func (p Path) IsZero() bool       { return p.level == 0 }

// Parent returns the enclosing chapter/subpoint path. Chapters have no parent.
func (p Path) Parent() (Path, bool) {
	switch p.level {
	case model.LevelSubpoint:
		return ChapterPath(p.c), true
	case model.LevelParagraph:
		return SubpointPath(p.c, p.s), true
	default:
		return Path{}, false
	}
}

// String renders the flat key form: c0, c0.s1, c0.s1.p2.
func (p Path) String() string {
	switch p.level {
	case model.LevelChapter:
		return fmt.Sprintf("c%d", p.c)
	case model.LevelSubpoint:
		return fmt.Sprintf("c%d.s%d", p.c, p.s)
	case model.LevelParagraph:
		return fmt.Sprintf("c%d.s%d.p%d", p.c, p.s, p.p)
	default:
		return ""
	}
}

func (p Path) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Path) UnmarshalText(b []byte) error {
	parsed, err := ParsePath(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePath parses the flat key form produced by Path.String.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}
	prefixes := []string{"c", "s", "p"}
	idx := make([]int, len(parts))
	for i, part := range parts {
		if !strings.HasPrefix(part, prefixes[i]) {
			return Path{}, fmt.Errorf("%w: %q (segment %d must start with %q)", ErrInvalidPath, s, i+1, prefixes[i])
		}
		digits := part[1:]
		if !isCanonicalIndex(digits) {
			return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
		idx[i] = n
	}
	switch len(idx) {
	case 1:
		return ChapterPath(idx[0]), nil
	case 2:
		return SubpointPath(idx[0], idx[1]), nil
	default:
		return ParagraphPath(idx[0], idx[1], idx[2]), nil
	}
}

// isCanonicalIndex accepts the decimal form String writes: ASCII digits, no sign, no leading zero.
func isCanonicalIndex(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
