package flatten

import (
	"html"
	"strings"

	"github.com/malzubaidi/portfolio-sync/workspace"
)

// Markup renders text runs as inline HTML, nesting one tag per active
// annotation flag. The nesting order is fixed here but not part of the
// output contract; only the semantic effect is.
func Markup(runs []workspace.RichText) string {
	var b strings.Builder
	for _, r := range runs {
		text := html.EscapeString(r.PlainText)
		a := r.Annotations
		if a.Code {
			text = "<code>" + text + "</code>"
		}
		if a.Bold {
			text = "<strong>" + text + "</strong>"
		}
		if a.Italic {
			text = "<em>" + text + "</em>"
		}
		if a.Strikethrough {
			text = "<del>" + text + "</del>"
		}
		if a.Underline {
			text = "<u>" + text + "</u>"
		}
		if r.Href != "" {
			text = `<a href="` + html.EscapeString(r.Href) + `">` + text + "</a>"
		}
		b.WriteString(text)
	}
	return b.String()
}

// MarkupMarkdown renders text runs with Markdown inline syntax. Underline
// has no Markdown form, so it stays an HTML tag; the renderer is configured
// to pass raw HTML through.
func MarkupMarkdown(runs []workspace.RichText) string {
	var b strings.Builder
	for _, r := range runs {
		text := r.PlainText
		a := r.Annotations
		if a.Code {
			text = "`" + text + "`"
		}
		if a.Bold {
			text = "**" + text + "**"
		}
		if a.Italic {
			text = "*" + text + "*"
		}
		if a.Strikethrough {
			text = "~~" + text + "~~"
		}
		if a.Underline {
			text = "<u>" + text + "</u>"
		}
		if r.Href != "" {
			text = "[" + text + "](" + r.Href + ")"
		}
		b.WriteString(text)
	}
	return b.String()
}

// Text concatenates the plain text of runs, ignoring formatting.
func Text(runs []workspace.RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}
	return b.String()
}
