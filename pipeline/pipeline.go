// Package pipeline wires the workspace client, body flattener, asset
// materializer and snapshot writer into the two sync jobs. Each job is one
// shot: query the collection, process every record, write one snapshot.
package pipeline

import (
	"context"
	"strings"

	"github.com/malzubaidi/portfolio-sync/workspace"
)

// Source is the slice of the workspace client the pipelines consume.
// Keeping it an interface leaves room for a retrying wrapper without
// touching call sites.
type Source interface {
	QueryCollection(ctx context.Context, collectionID string) ([]workspace.Page, error)
	FetchBlocks(ctx context.Context, pageID string) ([]workspace.Block, error)
}

const wordsPerMinute = 200

// readTime resolves a record's reading time in minutes. An explicit source
// value always wins, even zero; only the derived word-count path clamps to
// a minimum of one minute.
func readTime(page workspace.Page, property, bodyText string) int {
	if n, ok := page.Number(property); ok {
		return int(n)
	}
	minutes := len(strings.Fields(bodyText)) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// byDateDesc orders records newest first. Records sharing a date are
// tie-broken by id ascending so the output is stable across runs; records
// without a date sort last.
func byDateDesc(dateI, idI, dateJ, idJ string) bool {
	if dateI != dateJ {
		return dateI > dateJ
	}
	return idI < idJ
}
