package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"minibook-cli/internal/codec"
	"minibook-cli/internal/logging"
	"minibook-cli/internal/model"
	"minibook-cli/internal/outline"
	"minibook-cli/internal/progress"
	"minibook-cli/internal/publish"
	"minibook-cli/internal/store"
)

type Options struct {
	File string
	// Profile is an explicit profile key (flag or env). Empty falls back to the file's
	// saved profile, then the config default.
	Profile string
	Store   *store.Store
	Config  *store.Config
	Log     *logging.Logger
}

type appModel struct {
	file  string
	store *store.Store
	log   *logging.Logger

	doc      model.Document
	dirty    bool
	missing  bool
	selected outline.Path

	// lastWritten is the file content minibook itself last wrote or read, so watcher events
	// for our own saves do not trigger a reload.
	lastWritten string
	// savedText is what the last save put on disk. A file matching it needs no rewrite check.
	savedText string

	profiles   []progress.Profile
	profileIdx int

	width  int
	height int

	modal        modalKind
	input        textinput.Model
	textarea     textarea.Model
	templateList list.Model
	pendingKind  model.StructureKind
	confirmFocus confirmModalFocus

	showPreview bool

	minibuffer    string
	minibufferSeq int

	externalEditorPath   string
	externalEditorBefore string
}

func newAppModel(opt Options) (appModel, error) {
	if strings.TrimSpace(opt.File) == "" {
		return appModel{}, errors.New("tui: no file (use --file)")
	}
	log := opt.Log
	if log == nil {
		log = logging.Nop()
	}

	m := appModel{
		file:     opt.File,
		store:    opt.Store,
		log:      log.With("component", "tui"),
		profiles: progress.Profiles(),
		width:    100,
		height:   30,
	}

	b, err := os.ReadFile(opt.File)
	switch {
	case errors.Is(err, os.ErrNotExist):
		m.doc = model.NewDocument()
		m.missing = true
	case err != nil:
		return appModel{}, err
	default:
		m.lastWritten = string(b)
		m.doc = codec.Parse(m.lastWritten)
	}

	m.input = textinput.New()
	m.input.CharLimit = 200
	m.input.Width = 48

	m.textarea = textarea.New()
	m.textarea.Placeholder = "Write…"
	m.textarea.CharLimit = 0
	m.textarea.ShowLineNumbers = false
	m.textarea.SetWidth(60)
	m.textarea.SetHeight(12)

	m.templateList = newTemplateList()

	var saved store.FileState
	if m.store != nil {
		ctx := context.Background()
		if st, ok, err := m.store.LoadFileState(ctx, m.file); err != nil {
			m.log.Warn("load file state", "file", m.file, "err", err)
		} else if ok {
			saved = st
		}
		if err := m.store.TouchRecent(ctx, m.file, progress.TotalWordCount(m.doc)); err != nil {
			m.log.Warn("touch recent", "file", m.file, "err", err)
		}
	}

	profile := strings.TrimSpace(opt.Profile)
	if profile == "" {
		profile = saved.Profile
	}
	if profile == "" && opt.Config != nil {
		profile = opt.Config.DefaultProfile
	}
	m.setProfile(profile)

	m.selected = m.firstPath()
	if p, err := outline.ParsePath(saved.Selected); err == nil && outline.Check(m.doc, p) == nil {
		m.selected = p
	}

	if m.missing {
		m.minibuffer = "New file: press t to choose a template, w to write"
	} else if lossy := codec.LossyHeadings(m.lastWritten); len(lossy) > 0 {
		m.log.Warn("file has headings outside the outline", "file", m.file, "count", len(lossy))
		m.minibuffer = fmt.Sprintf("%d heading(s) are not part of the outline (first at line %d); w will not overwrite, W forces",
			len(lossy), lossy[0].Line)
	}
	return m, nil
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) setProfile(key string) {
	m.profileIdx = 0
	for i, p := range m.profiles {
		if p.Key == strings.ToLower(strings.TrimSpace(key)) {
			m.profileIdx = i
			return
		}
	}
	for i, p := range m.profiles {
		if p.Key == progress.DefaultProfile {
			m.profileIdx = i
		}
	}
}

func (m appModel) profile() progress.Profile {
	return m.profiles[m.profileIdx]
}

func (m appModel) firstPath() outline.Path {
	if seq := outline.Linearize(m.doc); len(seq) > 0 {
		return seq[0]
	}
	return outline.Path{}
}

func (m appModel) selectedNode() (model.Node, bool) {
	if m.selected.IsZero() {
		return nil, false
	}
	n, err := outline.Resolve(m.doc, m.selected)
	if err != nil {
		return nil, false
	}
	return n, true
}

// apply installs a mutated document and moves the selection to sel when it is valid.
func (m *appModel) apply(doc model.Document, sel outline.Path) {
	m.doc = doc
	m.dirty = true
	if !sel.IsZero() && outline.Check(doc, sel) == nil {
		m.selected = sel
		return
	}
	if outline.Check(doc, m.selected) != nil {
		m.selected = m.firstPath()
	}
}

// save writes the document to the file. Without force it refuses to replace a file whose
// headings would not survive the rewrite, unless that file is our own last save.
func (m *appModel) save(force bool) error {
	if !force {
		if b, err := os.ReadFile(m.file); err == nil && string(b) != m.savedText {
			if err := publish.CheckRewriteText(m.file, string(b)); err != nil {
				return err
			}
		}
	}
	text := codec.Serialize(m.doc)
	if _, err := publish.WriteDocument(m.file, m.doc, publish.WriteOptions{Overwrite: true}); err != nil {
		return err
	}
	m.lastWritten = text
	m.savedText = text
	m.dirty = false
	m.missing = false
	m.log.Info("document written", "file", m.file, "words", progress.TotalWordCount(m.doc))
	return nil
}

// reload re-reads the file from disk. It reports whether the document changed.
func (m *appModel) reload() (bool, error) {
	b, err := os.ReadFile(m.file)
	if err != nil {
		return false, err
	}
	text := string(b)
	if text == m.lastWritten {
		return false, nil
	}
	m.lastWritten = text
	m.doc = codec.Parse(text)
	m.dirty = false
	m.missing = false
	if outline.Check(m.doc, m.selected) != nil {
		m.selected = m.firstPath()
	}
	return true, nil
}

func (m appModel) persistSession() {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	st := store.FileState{Path: m.file, Profile: m.profile().Key}
	if !m.selected.IsZero() {
		st.Selected = m.selected.String()
	}
	if err := m.store.SaveFileState(ctx, st); err != nil {
		m.log.Warn("save file state", "file", m.file, "err", err)
	}
	if err := m.store.TouchRecent(ctx, m.file, progress.TotalWordCount(m.doc)); err != nil {
		m.log.Warn("touch recent", "file", m.file, "err", err)
	}
}
