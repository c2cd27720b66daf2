// Package progress counts words in a minibook and compares them with a length profile.
package progress

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"minibook-cli/internal/model"
)

var (
	ErrZeroGoal       = errors.New("word goal is zero")
	ErrUnknownProfile = errors.New("unknown length profile")
)

// Profile is a named words-per-page and inclusive page range.
type Profile struct {
	Key          string `json:"key" yaml:"key"`
	Name         string `json:"name" yaml:"name"`
	WordsPerPage int    `json:"wordsPerPage" yaml:"wordsPerPage"`
	Pages        [2]int `json:"pages" yaml:"pages"`
}

const DefaultProfile = "mini"

var profiles = []Profile{
	{Key: "mini", Name: "Mini", WordsPerPage: 250, Pages: [2]int{1, 2}},
	{Key: "expanded", Name: "Expanded", WordsPerPage: 250, Pages: [2]int{3, 5}},
	{Key: "full", Name: "Full", WordsPerPage: 250, Pages: [2]int{6, 10}},
}

func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

func LookupProfile(key string) (Profile, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, p := range profiles {
		if p.Key == k {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, key)
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// NodeWordCount counts only the node's own content; children are not rolled up.
func NodeWordCount(n model.Node) int {
	if n == nil {
		return 0
	}
	return WordCount(n.NodeContent())
}

// ChapterWordCount rolls up a chapter with its subpoints and paragraphs, for comparing
// against GoalPerChapter.
func ChapterWordCount(ch model.Chapter) int {
	total := WordCount(ch.Content)
	for _, sp := range ch.Subpoints {
		total += WordCount(sp.Content)
		for _, p := range sp.Paragraphs {
			total += WordCount(p.Content)
		}
	}
	return total
}

// TotalWordCount sums the content of every chapter, subpoint and paragraph independently.
func TotalWordCount(doc model.Document) int {
	total := 0
	for _, ch := range doc.Chapters {
		total += ChapterWordCount(ch)
	}
	return total
}

func GoalPerChapter(p Profile) int {
	avg := float64(p.Pages[0]+p.Pages[1]) / 2
	return int(math.Round(float64(p.WordsPerPage) * avg))
}

func DocumentGoal(doc model.Document, p Profile) int {
	return len(doc.Chapters) * GoalPerChapter(p)
}
