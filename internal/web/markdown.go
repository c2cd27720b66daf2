package web

import (
	"html/template"

	"minibook-cli/internal/codec"
	"minibook-cli/internal/model"
)

// renderDocumentHTML renders doc for the preview page. On failure it falls back to the
// escaped markdown so the page still shows something useful.
func renderDocumentHTML(doc model.Document) template.HTML {
	out, err := codec.RenderHTML(doc)
	if err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(codec.Serialize(doc)) + "</pre>")
	}
	// goldmark output is trusted only because raw HTML is disabled in codec.
	return template.HTML(out)
}
