package assets

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/malzubaidi/portfolio-sync/logger"
)

// RewriteImages downloads every remote image referenced by the rendered
// HTML and rewrites its src to the local path. Images are processed in
// document order; the positional index feeds the deterministic filename.
// References that are already local are left untouched, and any parse
// failure returns the input unchanged.
func (m *Materializer) RewriteImages(ctx context.Context, html, recordID string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		m.log.Warn("failed to parse content html, skipping image rewrite",
			logger.String("record", recordID), logger.Err(err))
		return html
	}

	index := 0
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || !isRemote(src) {
			return
		}
		local := m.Download(ctx, src, ContentName(recordID, index))
		index++
		sel.SetAttr("src", local)
	})

	// goquery parses fragments into a full document; return the body's
	// inner HTML to keep the snapshot a fragment.
	out, err := doc.Find("body").Html()
	if err != nil {
		return html
	}
	return out
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
