package progress

import (
	"errors"
	"testing"

	"minibook-cli/internal/model"
	"minibook-cli/internal/templates"
)

func TestWordCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   \n\t ", 0},
		{"  a   b ", 2},
		{"a\nb\nc", 3},
		{"one,two three", 2},
	}
	for _, tc := range cases {
		if got := WordCount(tc.in); got != tc.want {
			t.Fatalf("WordCount(%q): got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTotalWordCountCountsEachLevel(t *testing.T) {
	t.Parallel()

	doc := templates.Instantiate(model.NewDocument(), model.StructureWs)
	doc.Chapters[0].Content = "one two"
	doc.Chapters[0].Subpoints[0].Content = "three"
	doc.Chapters[1].Subpoints[2].Paragraphs[1].Content = "four five six"

	if got := TotalWordCount(doc); got != 6 {
		t.Fatalf("expected 6 words, got %d", got)
	}
	if got := NodeWordCount(doc.Chapters[0]); got != 2 {
		t.Fatalf("chapter count should not include children, got %d", got)
	}
	if got := NodeWordCount(nil); got != 0 {
		t.Fatalf("nil node: got %d", got)
	}
	if got := ChapterWordCount(doc.Chapters[0]); got != 3 {
		t.Fatalf("chapter rollup: got %d", got)
	}
	if got := ChapterWordCount(doc.Chapters[1]); got != 3 {
		t.Fatalf("chapter rollup with paragraph: got %d", got)
	}
}

func TestGoals(t *testing.T) {
	t.Parallel()

	want := map[string]int{"mini": 375, "expanded": 1000, "full": 2000}
	for key, goal := range want {
		p, err := LookupProfile(key)
		if err != nil {
			t.Fatalf("LookupProfile(%q): %v", key, err)
		}
		if got := GoalPerChapter(p); got != goal {
			t.Fatalf("GoalPerChapter(%s): got %d, want %d", key, got, goal)
		}
	}

	p, _ := LookupProfile(" Mini ")
	doc := templates.Instantiate(model.NewDocument(), model.StructureProblems)
	if got := DocumentGoal(doc, p); got != 3750 {
		t.Fatalf("DocumentGoal: got %d", got)
	}
	if got := DocumentGoal(model.NewDocument(), p); got != 0 {
		t.Fatalf("empty document goal: got %d", got)
	}

	if _, err := LookupProfile("huge"); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		actual int
		want   State
	}{
		{49, Red},
		{50, Yellow},
		{79, Yellow},
		{80, Green},
		{100, Green},
		{120, Green},
		{121, Yellow},
		{150, Yellow},
		{151, Red},
	}
	for _, tc := range cases {
		if got := Status(tc.actual, 100); got != tc.want {
			t.Fatalf("Status(%d, 100): got %s, want %s", tc.actual, got, tc.want)
		}
	}
}

func TestZeroGoal(t *testing.T) {
	t.Parallel()

	if _, err := Percent(10, 0); !errors.Is(err, ErrZeroGoal) {
		t.Fatalf("expected ErrZeroGoal, got %v", err)
	}

	s := Summarize(10, 0)
	if s.HasGoal || s.Status != "" || s.Bar != 0 {
		t.Fatalf("unexpected summary for zero goal: %+v", s)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Status to panic on zero goal")
		}
	}()
	Status(1, 0)
}

func TestSummarizeClampsBar(t *testing.T) {
	t.Parallel()

	s := Summarize(300, 100)
	if !s.HasGoal || s.Percent != 300 || s.Bar != 100 || s.Status != Red {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
