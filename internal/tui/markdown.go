package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Cached by style + wrap width. WithAutoStyle can block on terminal queries, so a fixed
	// style is resolved up front instead.
	mdRenderers = map[string]*glamour.TermRenderer{}

	mdStyleOverride string
)

// setMarkdownStyle sets the configured style ("dark", "light", "notty"); empty means auto.
func setMarkdownStyle(s string) {
	mdRendererMu.Lock()
	mdStyleOverride = strings.ToLower(strings.TrimSpace(s))
	mdRendererMu.Unlock()
}

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		var opt glamour.TermRendererOption
		if style == "notty" {
			opt = glamour.WithStandardStyle(styles.NoTTYStyle)
		} else {
			opt = glamour.WithStyles(markdownStyleConfig(style))
		}
		rr, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	mdRendererMu.Lock()
	override := mdStyleOverride
	mdRendererMu.Unlock()

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("MINIBOOK_TUI_MD_STYLE"))); v != "" {
		override = v
	}
	switch override {
	case "light", "dark", "notty":
		return override
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if styleName == "light" {
		cfg = styles.LightStyleConfig
	}
	applyMarkdownPalette(&cfg, styleName)
	return cfg
}

// applyMarkdownPalette keeps headings and text on the surface foreground and links on the accent.
func applyMarkdownPalette(cfg *ansi.StyleConfig, styleName string) {
	headingColor := mdColor(colorSurfaceFg, styleName)
	cfg.Heading.Color = headingColor
	cfg.H1.Color = headingColor
	cfg.H2.Color = headingColor
	cfg.H3.Color = headingColor
	cfg.H4.Color = headingColor

	linkColor := mdColor(colorAccent, styleName)
	cfg.Link.Color = linkColor
	cfg.LinkText.Color = linkColor

	cfg.Text.Color = mdColor(colorSurfaceFg, styleName)
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
}

func mdColor(c lipgloss.AdaptiveColor, styleName string) *string {
	if styleName == "light" {
		return &c.Light
	}
	return &c.Dark
}
