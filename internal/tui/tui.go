// Package tui is the interactive minibook editor.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"minibook-cli/internal/watch"
)

// Run opens the editor on opt.File and blocks until the user quits.
func Run(opt Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	if opt.Config != nil {
		applyGlyphPreference(opt.Config.Glyphs())
		setMarkdownStyle(opt.Config.MarkdownStyle())
	} else {
		applyGlyphPreference("")
	}

	m, err := newAppModel(opt)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if w, err := watch.NewFileWatcher(m.file, m.log); err != nil {
		m.log.Warn("file watcher unavailable", "file", m.file, "err", err)
	} else {
		defer w.Stop()
		events, err := w.Watch(ctx)
		if err != nil {
			m.log.Warn("file watcher unavailable", "file", m.file, "err", err)
		} else {
			go func() {
				for ev := range events {
					p.Send(fileChangedMsg{op: ev.Op})
				}
			}()
		}
	}

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(appModel); ok {
		fm.persistSession()
	}
	return nil
}
