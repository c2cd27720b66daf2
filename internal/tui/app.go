package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"minibook-cli/internal/codec"
	"minibook-cli/internal/model"
	"minibook-cli/internal/outline"
	"minibook-cli/internal/progress"
	"minibook-cli/internal/templates"
)

const barWidth = 20

func (m appModel) View() string {
	header := m.viewHeader()
	footer := m.viewFooter()

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 3 {
		bodyH = 3
	}

	leftW, rightW := splitWidths(m.width)
	tree := normalizePane(m.viewTree(bodyH), leftW, bodyH)
	body := tree
	if rightW > 0 {
		sep := styleMuted().Render(strings.TrimRight(strings.Repeat("│\n", bodyH), "\n"))
		detail := normalizePane(m.viewDetail(rightW-1, bodyH), rightW-1, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, tree, sep, " "+strings.ReplaceAll(detail, "\n", "\n "))
	}

	screen := strings.Join([]string{header, body, footer}, "\n")
	if overlay := m.viewModal(); overlay != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay,
			lipgloss.WithWhitespaceChars(" "))
	}
	return screen
}

func (m appModel) viewHeader() string {
	title := m.doc.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	line1 := styleHeading().Render(title)
	if m.doc.Subtitle != "" {
		line1 += styleMuted().Render("  " + m.doc.Subtitle)
	}
	if m.dirty {
		line1 += styleMuted().Render("  [modified]")
	}

	p := m.profile()
	sum := progress.Summarize(progress.TotalWordCount(m.doc), progress.DocumentGoal(m.doc, p))
	sep := " " + glyphSep() + " "
	line2 := styleMuted().Render(templates.Name(m.doc.StructureKind) + sep + p.Name + sep + wordsLabel(sum))
	line2 += "  " + renderBar(sum, barWidth)

	rule := styleMuted().Render(strings.Repeat(glyphHRule(), max(m.width, 1)))
	return strings.Join([]string{fitWidth(line1, m.width), fitWidth(line2, m.width), rule}, "\n")
}

func wordsLabel(s progress.Summary) string {
	if !s.HasGoal {
		return fmt.Sprintf("Total words: %d", s.Words)
	}
	return fmt.Sprintf("Total words: %d / Goal: %d", s.Words, s.Goal)
}

// renderBar draws a fixed-width bar filled to s.Bar percent in the status color.
func renderBar(s progress.Summary, width int) string {
	if !s.HasGoal {
		return styleMuted().Render(strings.Repeat(glyphBarEmpty(), width))
	}
	filled := int(s.Bar / 100 * float64(width))
	if filled > width {
		filled = width
	}
	fill := lipgloss.NewStyle().Foreground(statusColor(s.Status)).Render(strings.Repeat(glyphBarFill(), filled))
	empty := lipgloss.NewStyle().Foreground(colorBarEmpty).Render(strings.Repeat(glyphBarEmpty(), width-filled))
	return fill + empty + fmt.Sprintf(" %3.0f%%", s.Percent)
}

func (m appModel) viewTree(height int) string {
	seq := outline.Linearize(m.doc)
	if len(seq) == 0 {
		return styleMuted().Render("No chapters yet.\n\nPress t to choose a template.")
	}
	sel := outline.IndexOf(m.doc, m.selected)
	start, end := visibleWindow(len(seq), max(sel, 0), height)

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := seq[i]
		n, err := outline.Resolve(m.doc, p)
		if err != nil {
			continue
		}
		indent := strings.Repeat("  ", int(p.Level())-1)
		if p.Level() == model.LevelParagraph {
			indent += glyphBullet() + " "
		}
		row := indent + n.NodeID() + " " + n.NodeTitle()
		if i == sel {
			rows = append(rows, styleSelected().Render(glyphCursor()+" "+row))
			continue
		}
		if p.Level() == model.LevelParagraph {
			rows = append(rows, styleMuted().Render("  "+row))
			continue
		}
		rows = append(rows, "  "+row)
	}
	return strings.Join(rows, "\n")
}

func (m appModel) viewDetail(width, height int) string {
	if m.showPreview {
		return renderMarkdown(codec.Serialize(m.doc), width)
	}
	n, ok := m.selectedNode()
	if !ok {
		return ""
	}

	goal := progress.GoalPerChapter(m.profile())
	sum := progress.Summarize(progress.NodeWordCount(n), goal)
	lines := []string{
		styleHeading().Render(n.NodeID() + " " + n.NodeTitle()),
		styleMuted().Render(n.NodeLevel().String() + " " + glyphSep() + " " + fmt.Sprintf("%d / %d words", sum.Words, sum.Goal)),
		renderBar(sum, barWidth),
		"",
	}
	if content := strings.TrimSpace(n.NodeContent()); content != "" {
		lines = append(lines, renderMarkdown(content, width))
	} else {
		lines = append(lines, styleMuted().Render("(empty: enter to write)"))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewFooter() string {
	help := "j/k move  enter edit  r rename  a add  x remove  t template  L profile  w/W write  p preview  q quit"
	if m.minibuffer != "" {
		return fitWidth(m.minibuffer, m.width)
	}
	return styleMuted().Render(fitWidth(help, m.width))
}

func (m appModel) viewModal() string {
	bodyW := modalBodyWidth(m.width)
	switch m.modal {
	case modalEditContent:
		title := "Edit content"
		if n, ok := m.selectedNode(); ok {
			title = "Edit " + n.NodeID() + " " + n.NodeTitle()
		}
		help := styleMuted().Render("ctrl+s: save   ctrl+o: " + externalEditorName() + "   esc: cancel")
		return renderModalBox(m.width, title, m.textarea.View()+"\n\n"+help)
	case modalEditTitle, modalEditDocTitle, modalEditDocSubtitle, modalAddChild:
		help := styleMuted().Render("enter: save   esc: cancel")
		return renderModalBox(m.width, m.inputTitle(), renderInputLine(bodyW, m.input.View())+"\n\n"+help)
	case modalPickTemplate:
		return renderModalBox(m.width, "Template", m.templateList.View())
	case modalConfirmTemplate:
		body := fmt.Sprintf("Switch to %s? Existing chapters and their content are replaced.", templates.Name(m.pendingKind))
		return renderConfirmModal(m.width, "Replace outline", body, "Replace", "Cancel", m.confirmFocus)
	case modalConfirmRemove:
		body := "Remove " + m.selected.String() + " and everything under it?"
		if n, ok := m.selectedNode(); ok {
			body = fmt.Sprintf("Remove %s %s and everything under it?", n.NodeID(), n.NodeTitle())
		}
		return renderConfirmModal(m.width, "Remove", body, "Remove", "Cancel", m.confirmFocus)
	case modalConfirmQuit:
		return renderConfirmModal(m.width, "Unsaved changes", "Quit without writing?", "Quit", "Cancel", m.confirmFocus)
	}
	return ""
}

func (m appModel) inputTitle() string {
	switch m.modal {
	case modalEditTitle:
		return "Rename " + m.selected.String()
	case modalEditDocTitle:
		return "Document title"
	case modalEditDocSubtitle:
		return "Subtitle"
	case modalAddChild:
		if m.selected.Level() == model.LevelChapter {
			return "New subpoint"
		}
		return "New paragraph"
	}
	return ""
}
