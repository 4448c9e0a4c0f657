package flatten

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/malzubaidi/portfolio-sync/workspace"
)

// renderer converts the intermediate Markdown into HTML. Tables and
// strikethrough come from the GFM extensions; hard wraps turn source line
// breaks into <br>. Unsafe rendering is required because inline underline
// markup stays as raw HTML.
var renderer = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	goldmark.WithRendererOptions(ghtml.WithHardWraps(), ghtml.WithUnsafe()),
)

// Markdown flattens raw workspace blocks into one intermediate Markdown
// string. This variant loses the structured block representation; callers
// that need typed blocks use Blocks instead.
func Markdown(blocks []workspace.Block) string {
	var parts []string
	number := 0
	for _, b := range blocks {
		if b.Type != "numbered_list_item" {
			number = 0
		}

		switch b.Type {
		case "paragraph":
			parts = append(parts, spanOf(b.Paragraph))
		case "heading_1":
			parts = append(parts, "# "+spanOf(b.Heading1))
		case "heading_2":
			parts = append(parts, "## "+spanOf(b.Heading2))
		case "heading_3":
			parts = append(parts, "### "+spanOf(b.Heading3))
		case "bulleted_list_item":
			parts = append(parts, "- "+spanOf(b.Bulleted))
		case "numbered_list_item":
			number++
			parts = append(parts, fmt.Sprintf("%d. %s", number, spanOf(b.Numbered)))
		case "quote":
			parts = append(parts, "> "+spanOf(b.Quote))
		case "toggle":
			parts = append(parts, spanOf(b.Toggle))
		case "code":
			if b.Code != nil {
				parts = append(parts, "```"+b.Code.Language+"\n"+Text(b.Code.RichText)+"\n```")
			}
		case "callout":
			if b.Callout != nil {
				line := MarkupMarkdown(b.Callout.RichText)
				if b.Callout.Icon != nil && b.Callout.Icon.Emoji != "" {
					line = b.Callout.Icon.Emoji + " " + line
				}
				parts = append(parts, "> "+line)
			}
		case "image":
			if b.Image != nil && b.Image.URL() != "" {
				parts = append(parts, fmt.Sprintf("![%s](%s)", Text(b.Image.Caption), b.Image.URL()))
			}
		case "divider":
			parts = append(parts, "---")
		}
	}
	return strings.Join(parts, "\n\n")
}

func spanOf(tb *workspace.TextBlock) string {
	if tb == nil {
		return ""
	}
	return MarkupMarkdown(tb.RichText)
}

// RenderHTML converts intermediate Markdown into HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// PlainText extracts unformatted body text from raw blocks, one line per
// block. Used for read-time derivation.
func PlainText(blocks []workspace.Block) string {
	var parts []string
	add := func(tb *workspace.TextBlock) {
		if tb != nil {
			if s := Text(tb.RichText); s != "" {
				parts = append(parts, s)
			}
		}
	}

	for _, b := range blocks {
		switch b.Type {
		case "paragraph":
			add(b.Paragraph)
		case "heading_1":
			add(b.Heading1)
		case "heading_2":
			add(b.Heading2)
		case "heading_3":
			add(b.Heading3)
		case "bulleted_list_item":
			add(b.Bulleted)
		case "numbered_list_item":
			add(b.Numbered)
		case "quote":
			add(b.Quote)
		case "toggle":
			add(b.Toggle)
		case "code":
			if b.Code != nil {
				if s := Text(b.Code.RichText); s != "" {
					parts = append(parts, s)
				}
			}
		case "callout":
			if b.Callout != nil {
				if s := Text(b.Callout.RichText); s != "" {
					parts = append(parts, s)
				}
			}
		}
	}
	return strings.Join(parts, "\n")
}
