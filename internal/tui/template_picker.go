package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"minibook-cli/internal/templates"
)

type templateItem struct {
	t templates.Template
}

func (i templateItem) Title() string { return i.t.Name }
func (i templateItem) Description() string {
	return fmt.Sprintf("%s %s %d chapters", i.t.Kind, glyphSep(), len(i.t.Chapters))
}
func (i templateItem) FilterValue() string { return i.t.Name }

var _ list.Item = templateItem{}

func newTemplateList() list.Model {
	items := []list.Item{}
	for _, t := range templates.All() {
		items = append(items, templateItem{t: t})
	}
	l := list.New(items, list.NewDefaultDelegate(), 48, 12)
	l.Title = "Choose a template"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	// esc and q close the picker, not the program.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return l
}
