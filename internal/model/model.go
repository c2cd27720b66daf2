package model

// StructureKind identifies the template that produced a document's chapter list.
type StructureKind string

const (
	StructureNone       StructureKind = "none"
	StructureWs         StructureKind = "ws"
	StructureSequential StructureKind = "sequential"
	StructureProblems   StructureKind = "problems"
)

// Level is the nesting depth of a node in the outline.
type Level int

const (
	LevelChapter Level = iota + 1
	LevelSubpoint
	LevelParagraph
)

func (l Level) String() string {
	switch l {
	case LevelChapter:
		return "chapter"
	case LevelSubpoint:
		return "subpoint"
	case LevelParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Node is the read capability shared by chapters, subpoints and paragraphs.
type Node interface {
	NodeLevel() Level
	NodeID() string
	NodeTitle() string
	NodeContent() string
}

type Document struct {
	Title         string        `json:"title" yaml:"title"`
	Subtitle      string        `json:"subtitle" yaml:"subtitle"`
	StructureKind StructureKind `json:"structureKind" yaml:"structureKind"`
	Chapters      []Chapter     `json:"chapters" yaml:"chapters"`
}

type Chapter struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Content   string     `json:"content" yaml:"content"`
	Subpoints []Subpoint `json:"subpoints" yaml:"subpoints"`
}

type Subpoint struct {
	ID         string      `json:"id" yaml:"id"`
	Title      string      `json:"title" yaml:"title"`
	Content    string      `json:"content" yaml:"content"`
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs"`
}

type Paragraph struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

func (c Chapter) NodeLevel() Level    { return LevelChapter }
func (c Chapter) NodeID() string      { return c.ID }
func (c Chapter) NodeTitle() string   { return c.Title }
func (c Chapter) NodeContent() string { return c.Content }

func (s Subpoint) NodeLevel() Level    { return LevelSubpoint }
func (s Subpoint) NodeID() string      { return s.ID }
func (s Subpoint) NodeTitle() string   { return s.Title }
func (s Subpoint) NodeContent() string { return s.Content }

func (p Paragraph) NodeLevel() Level    { return LevelParagraph }
func (p Paragraph) NodeID() string      { return p.ID }
func (p Paragraph) NodeTitle() string   { return p.Title }
func (p Paragraph) NodeContent() string { return p.Content }

// NewDocument returns an empty document with no structure selected.
func NewDocument() Document {
	return Document{StructureKind: StructureNone, Chapters: []Chapter{}}
}

// Clone returns a deep copy. Mutations operate on clones so earlier snapshots stay intact.
func (d Document) Clone() Document {
	out := d
	out.Chapters = make([]Chapter, len(d.Chapters))
	for i, ch := range d.Chapters {
		out.Chapters[i] = ch.clone()
	}
	return out
}

func (c Chapter) clone() Chapter {
	out := c
	out.Subpoints = make([]Subpoint, len(c.Subpoints))
	for i, sp := range c.Subpoints {
		out.Subpoints[i] = sp.clone()
	}
	return out
}

func (s Subpoint) clone() Subpoint {
	out := s
	out.Paragraphs = make([]Paragraph, len(s.Paragraphs))
	copy(out.Paragraphs, s.Paragraphs)
	return out
}

// NodeCount returns the number of chapters, subpoints and paragraphs in the document.
func (d Document) NodeCount() int {
	n := 0
	for _, ch := range d.Chapters {
		n++
		for _, sp := range ch.Subpoints {
			n += 1 + len(sp.Paragraphs)
		}
	}
	return n
}
