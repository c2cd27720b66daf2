package codec

import (
	"bytes"

	"minibook-cli/internal/model"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var htmlRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		// Raw HTML in content stays escaped; html.WithUnsafe is deliberately not set.
		html.WithHardWraps(),
	),
)

// RenderHTML renders the serialized form of doc as an HTML fragment.
func RenderHTML(doc model.Document) (string, error) {
	return RenderMarkdownHTML(Serialize(doc))
}

func RenderMarkdownHTML(md string) (string, error) {
	var b bytes.Buffer
	if err := htmlRenderer.Convert([]byte(md), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
