package publish

import (
	"bytes"
	"html/template"

	"minibook-cli/internal/codec"
	"minibook-cli/internal/model"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { max-width: 46rem; margin: 2rem auto; padding: 0 1rem; font: 16px/1.6 system-ui, sans-serif; color: #222; }
h1, h2, h3, h4 { line-height: 1.25; }
h4 { color: #555; }
</style>
</head>
<body>
<article>
{{.Body}}
</article>
</body>
</html>
`))

type page struct {
	Title string
	Body  template.HTML
}

// RenderHTMLPage wraps the rendered document in a standalone HTML page.
func RenderHTMLPage(doc model.Document) ([]byte, error) {
	body, err := codec.RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	title := doc.Title
	if title == "" {
		title = DefaultExportBase
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, page{Title: title, Body: template.HTML(body)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteHTML writes a standalone HTML rendering of doc to path.
func WriteHTML(path string, doc model.Document, opt WriteOptions) (WriteResult, error) {
	b, err := RenderHTMLPage(doc)
	if err != nil {
		return WriteResult{}, err
	}
	return writeFile(path, b, opt.Overwrite)
}
