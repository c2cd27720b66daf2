package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"minibook-cli/internal/codec"
	"minibook-cli/internal/model"
	"minibook-cli/internal/mutate"
	"minibook-cli/internal/outline"
	"minibook-cli/internal/publish"
	"minibook-cli/internal/templates"
	"minibook-cli/internal/watch"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeWidgets()
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibuffer = ""
		}
		return m, nil

	case externalEditorDoneMsg:
		m.applyExternalEditorResult(msg)
		return m, nil

	case fileChangedMsg:
		return m.updateFileChanged(msg)

	case tea.KeyMsg:
		switch {
		case m.modal == modalEditContent:
			return m.updateContentEditor(msg)
		case m.modal == modalPickTemplate:
			return m.updateTemplatePicker(msg)
		case m.modal.isConfirm():
			return m.updateConfirm(msg)
		case m.modal.isInput():
			return m.updateInput(msg)
		default:
			return m.updateOutline(msg)
		}
	}

	switch m.modal {
	case modalEditContent:
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	case modalPickTemplate:
		var cmd tea.Cmd
		m.templateList, cmd = m.templateList.Update(msg)
		return m, cmd
	}
	if m.modal.isInput() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) resizeWidgets() {
	bodyW := modalBodyWidth(m.width)
	m.input.Width = bodyW - 4
	m.textarea.SetWidth(bodyW)
	h := m.height - 12
	if h < 4 {
		h = 4
	}
	m.textarea.SetHeight(h)
	m.templateList.SetSize(bodyW, 12)
}

func (m appModel) updateFileChanged(msg fileChangedMsg) (tea.Model, tea.Cmd) {
	if msg.op == watch.Removed {
		return m, m.showMinibuffer("File removed on disk (w writes it again)")
	}
	if m.dirty {
		return m, m.showMinibuffer("File changed on disk; unsaved edits kept")
	}
	changed, err := m.reload()
	if err != nil {
		m.log.Warn("reload", "file", m.file, "err", err)
		return m, m.showMinibuffer("Reload failed: " + err.Error())
	}
	if !changed {
		return m, nil
	}
	m.log.Info("document reloaded", "file", m.file)
	return m, m.showMinibuffer("Reloaded from disk")
}

func (m appModel) updateOutline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.dirty {
			m.modal = modalConfirmQuit
			m.confirmFocus = confirmFocusCancel
			return m, nil
		}
		return m, tea.Quit

	case "j", "down":
		m.selected = outline.Next(m.doc, m.selected)
		return m, nil
	case "k", "up":
		m.selected = outline.Previous(m.doc, m.selected)
		return m, nil
	case "g", "home":
		m.selected = m.firstPath()
		return m, nil
	case "G", "end":
		if seq := outline.Linearize(m.doc); len(seq) > 0 {
			m.selected = seq[len(seq)-1]
		}
		return m, nil

	case "enter", "e":
		n, ok := m.selectedNode()
		if !ok {
			return m, m.showMinibuffer("Nothing selected (t picks a template)")
		}
		m.modal = modalEditContent
		m.textarea.SetValue(n.NodeContent())
		return m, m.textarea.Focus()

	case "E":
		n, ok := m.selectedNode()
		if !ok {
			return m, m.showMinibuffer("Nothing selected (t picks a template)")
		}
		m.modal = modalEditContent
		m.textarea.SetValue(n.NodeContent())
		cmd, err := m.openExternalEditor()
		if err != nil {
			return m, m.showMinibuffer("Editor failed: " + err.Error())
		}
		return m, tea.Batch(m.textarea.Focus(), cmd)

	case "r":
		n, ok := m.selectedNode()
		if !ok {
			return m, m.showMinibuffer("Nothing selected")
		}
		return m, m.openInput(modalEditTitle, n.NodeTitle())
	case "T":
		return m, m.openInput(modalEditDocTitle, m.doc.Title)
	case "S":
		return m, m.openInput(modalEditDocSubtitle, m.doc.Subtitle)

	case "a":
		if _, err := m.addParent(); err != nil {
			return m, m.showMinibuffer(err.Error())
		}
		return m, m.openInput(modalAddChild, "")

	case "x":
		if m.selected.IsZero() {
			return m, m.showMinibuffer("Nothing selected")
		}
		if m.selected.Level() == model.LevelChapter {
			return m, m.showMinibuffer("Chapters come from the template and cannot be removed")
		}
		m.modal = modalConfirmRemove
		m.confirmFocus = confirmFocusCancel
		return m, nil

	case "t":
		m.modal = modalPickTemplate
		m.templateList.Select(0)
		return m, nil

	case "L":
		m.profileIdx = (m.profileIdx + 1) % len(m.profiles)
		return m, m.showMinibuffer("Profile: " + m.profile().Name)

	case "w", "W":
		if err := m.save(msg.String() == "W"); err != nil {
			var lossy *publish.LossyRewriteError
			if errors.As(err, &lossy) {
				m.log.Warn("write refused", "file", m.file, "headings", len(lossy.Headings))
				return m, m.showMinibuffer(fmt.Sprintf("Not written: %d heading(s) on disk would be lost (line %d); W writes anyway",
					len(lossy.Headings), lossy.Headings[0].Line))
			}
			m.log.Error("write", "file", m.file, "err", err)
			return m, m.showMinibuffer("Write failed: " + err.Error())
		}
		return m, m.showMinibuffer("Wrote " + m.file)

	case "p":
		m.showPreview = !m.showPreview
		return m, nil

	case "y":
		if err := copyToClipboard(codec.Serialize(m.doc)); err != nil {
			return m, m.showMinibuffer("Copy failed: " + err.Error())
		}
		return m, m.showMinibuffer("Copied markdown")
	}
	return m, nil
}

// addParent is the node a new child goes under: the selected chapter or subpoint, or the
// parent subpoint of a selected paragraph.
func (m appModel) addParent() (outline.Path, error) {
	switch m.selected.Level() {
	case model.LevelChapter, model.LevelSubpoint:
		return m.selected, nil
	case model.LevelParagraph:
		p, _ := m.selected.Parent()
		return p, nil
	default:
		return outline.Path{}, errors.New("nothing selected (t picks a template)")
	}
}

func (m *appModel) openInput(kind modalKind, value string) tea.Cmd {
	m.modal = kind
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m appModel) updateContentEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "ctrl+s":
		res, err := mutate.SetContent(m.doc, m.selected, m.textarea.Value())
		m.closeModal()
		if err != nil {
			return m, m.showMinibuffer("Edit failed: " + err.Error())
		}
		if res.Changed {
			m.apply(res.Doc, res.Path)
		}
		return m, nil
	case "ctrl+o":
		cmd, err := m.openExternalEditor()
		if err != nil {
			return m, m.showMinibuffer("Editor failed: " + err.Error())
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		kind := m.modal
		value := strings.TrimSpace(m.input.Value())
		m.closeModal()
		return m.commitInput(kind, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) commitInput(kind modalKind, value string) (tea.Model, tea.Cmd) {
	var (
		res mutate.Result
		err error
	)
	switch kind {
	case modalEditTitle:
		res, err = mutate.SetTitle(m.doc, m.selected, value)
	case modalEditDocTitle:
		res = mutate.SetMeta(m.doc, mutate.Meta{Title: &value})
	case modalEditDocSubtitle:
		res = mutate.SetMeta(m.doc, mutate.Meta{Subtitle: &value})
	case modalAddChild:
		parent, perr := m.addParent()
		if perr != nil {
			return m, m.showMinibuffer(perr.Error())
		}
		res, err = mutate.Add(m.doc, parent, value)
	}
	if err != nil {
		return m, m.showMinibuffer(err.Error())
	}
	if res.Changed {
		m.apply(res.Doc, res.Path)
	}
	return m, nil
}

func (m appModel) updateTemplatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.closeModal()
		return m, nil
	case "enter":
		it, ok := m.templateList.SelectedItem().(templateItem)
		if !ok {
			m.closeModal()
			return m, nil
		}
		m.closeModal()
		if len(m.doc.Chapters) > 0 {
			m.modal = modalConfirmTemplate
			m.pendingKind = it.t.Kind
			m.confirmFocus = confirmFocusCancel
			return m, nil
		}
		return m.applyTemplate(it.t.Kind)
	}
	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m appModel) applyTemplate(kind model.StructureKind) (tea.Model, tea.Cmd) {
	doc := templates.Instantiate(m.doc, kind)
	m.doc = doc
	m.dirty = true
	m.selected = m.firstPath()
	m.log.Info("template applied", "kind", string(kind), "file", m.file)
	return m, m.showMinibuffer("Template: " + templates.Name(kind))
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirmed := false
	switch msg.String() {
	case "esc", "n":
		m.closeModal()
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case "y":
		confirmed = true
	case "enter":
		confirmed = m.confirmFocus == confirmFocusConfirm
	default:
		return m, nil
	}

	kind := m.modal
	pending := m.pendingKind
	m.closeModal()
	if !confirmed {
		return m, nil
	}

	switch kind {
	case modalConfirmQuit:
		return m, tea.Quit
	case modalConfirmTemplate:
		return m.applyTemplate(pending)
	case modalConfirmRemove:
		res, err := mutate.Remove(m.doc, m.selected)
		if err != nil {
			return m, m.showMinibuffer(err.Error())
		}
		m.apply(res.Doc, res.Path)
		return m, m.showMinibuffer(fmt.Sprintf("Removed; %d nodes left", m.doc.NodeCount()))
	}
	return m, nil
}
