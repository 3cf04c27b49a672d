package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Markdown render laporan analisis (markdown + tabel GFM) ke HTML.
// Raw HTML inside the markdown is escaped by goldmark's default renderer.
type Markdown struct {
	md   goldmark.Markdown
	page *template.Template
}

func New() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		page: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// HTML converts markdown to an HTML fragment.
func (m *Markdown) HTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Page wraps the rendered markdown in a standalone document.
func (m *Markdown) Page(title, src string) (string, error) {
	body, err := m.HTML(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err = m.page.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body)})
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Analisis CV - {{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;max-width:860px;margin:2rem auto;padding:0 1rem;line-height:1.55}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ccc;padding:.4rem .6rem;text-align:left}
th{background:#f3f4f6}
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`
