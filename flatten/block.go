package flatten

import "github.com/malzubaidi/portfolio-sync/workspace"

// ContentBlock is one flattened unit of a record's body in the structured
// pipeline variant. Type selects which of the remaining fields are
// meaningful.
type ContentBlock struct {
	Type     string   `json:"type"`
	Text     string   `json:"text,omitempty"`
	Language string   `json:"language,omitempty"`
	Icon     string   `json:"icon,omitempty"`
	URL      string   `json:"url,omitempty"`
	Caption  string   `json:"caption,omitempty"`
	Items    []string `json:"items,omitempty"`
	Width    int      `json:"width,omitempty"`
}

// Blocks flattens raw workspace blocks into structured content blocks. One
// output block is produced per recognized input block; unrecognized kinds
// are dropped without error.
func Blocks(blocks []workspace.Block) []ContentBlock {
	out := []ContentBlock{}
	for _, b := range blocks {
		switch b.Type {
		case "paragraph":
			out = append(out, textBlock("paragraph", b.Paragraph))
		case "heading_1":
			out = append(out, textBlock("heading_1", b.Heading1))
		case "heading_2":
			out = append(out, textBlock("heading_2", b.Heading2))
		case "heading_3":
			out = append(out, textBlock("heading_3", b.Heading3))
		case "bulleted_list_item":
			out = append(out, textBlock("bullet", b.Bulleted))
		case "numbered_list_item":
			out = append(out, textBlock("number", b.Numbered))
		case "quote":
			out = append(out, textBlock("quote", b.Quote))
		case "toggle":
			out = append(out, textBlock("toggle", b.Toggle))
		case "code":
			if b.Code != nil {
				out = append(out, ContentBlock{
					Type:     "code",
					Text:     Text(b.Code.RichText),
					Language: b.Code.Language,
				})
			}
		case "callout":
			if b.Callout != nil {
				cb := ContentBlock{Type: "callout", Text: Markup(b.Callout.RichText)}
				if b.Callout.Icon != nil {
					cb.Icon = b.Callout.Icon.Emoji
				}
				out = append(out, cb)
			}
		case "image":
			if b.Image != nil {
				out = append(out, ContentBlock{
					Type:    "image",
					URL:     b.Image.URL(),
					Caption: Text(b.Image.Caption),
				})
			}
		case "divider":
			out = append(out, ContentBlock{Type: "divider"})
		case "table":
			if b.Table != nil {
				out = append(out, ContentBlock{Type: "table", Width: b.Table.TableWidth})
			}
		}
	}
	return out
}

func textBlock(kind string, tb *workspace.TextBlock) ContentBlock {
	cb := ContentBlock{Type: kind}
	if tb != nil {
		cb.Text = Markup(tb.RichText)
	}
	return cb
}

// GroupLists merges consecutive bullet items and consecutive number items
// into single list containers. Grouping is strictly adjacency-based: a
// bullet run interrupted by any other block kind, including a number item,
// starts a new container.
func GroupLists(blocks []ContentBlock) []ContentBlock {
	out := []ContentBlock{}
	for i := 0; i < len(blocks); i++ {
		b := blocks[i]
		if b.Type != "bullet" && b.Type != "number" {
			out = append(out, b)
			continue
		}

		kind := b.Type
		items := []string{b.Text}
		for i+1 < len(blocks) && blocks[i+1].Type == kind {
			i++
			items = append(items, blocks[i].Text)
		}

		container := "bulleted_list"
		if kind == "number" {
			container = "numbered_list"
		}
		out = append(out, ContentBlock{Type: container, Items: items})
	}
	return out
}
