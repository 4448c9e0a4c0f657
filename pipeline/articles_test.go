package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malzubaidi/portfolio-sync/logger"
	"github.com/malzubaidi/portfolio-sync/snapshot"
	"github.com/malzubaidi/portfolio-sync/workspace"
)

func readArticleSnapshot(t *testing.T, path string) snapshot.ArticleSnapshot {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap snapshot.ArticleSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	return snap
}

func TestArticlesRun_WritesSnapshot(t *testing.T) {
	src := &fakeSource{
		pages: []workspace.Page{
			pageOf("aaaa1111-2222-3333-4444-555566667777", map[string]workspace.Property{
				"Title": titleProp("First"),
				"Date":  dateProp("2024-03-01"),
				"Tags": {Type: "multi_select", MultiSelect: []workspace.SelectValue{
					{Name: "go"},
				}},
			}),
		},
		blocks: map[string][]workspace.Block{
			"aaaa1111-2222-3333-4444-555566667777": {
				paragraph("Hello world"),
				{Type: "bulleted_list_item", Bulleted: &workspace.TextBlock{
					RichText: []workspace.RichText{{PlainText: "one"}},
				}},
				{Type: "bulleted_list_item", Bulleted: &workspace.TextBlock{
					RichText: []workspace.RichText{{PlainText: "two"}},
				}},
			},
		},
	}

	out := filepath.Join(t.TempDir(), "data", "articles.json")
	p := NewArticles(src, "col-a", out, logger.Nop())
	require.NoError(t, p.Run(context.Background()))

	snap := readArticleSnapshot(t, out)
	require.Equal(t, 1, snap.Count)
	require.Len(t, snap.Articles, snap.Count)

	a := snap.Articles[0]
	assert.Equal(t, "aaaa1111222233334444555566667777", a.ID)
	assert.NotContains(t, a.ID, "-")
	assert.Equal(t, "First", a.Title)
	assert.Equal(t, "2024-03-01", a.Date)
	assert.Equal(t, []string{"go"}, a.Tags)
	assert.Equal(t, 1, a.ReadTime)
	assert.Contains(t, a.ContentHTML, "Hello world")

	// Structured content: one paragraph plus one grouped bullet list.
	require.Len(t, a.Content, 2)
	assert.Equal(t, "paragraph", a.Content[0].Type)
	assert.Equal(t, "bulleted_list", a.Content[1].Type)
	assert.Equal(t, []string{"one", "two"}, a.Content[1].Items)
}

// TestArticlesRun_MissingTitleDefaults verifies the Untitled placeholder.
func TestArticlesRun_MissingTitleDefaults(t *testing.T) {
	src := &fakeSource{
		pages:  []workspace.Page{pageOf("p1", nil)},
		blocks: map[string][]workspace.Block{},
	}

	out := filepath.Join(t.TempDir(), "articles.json")
	require.NoError(t, NewArticles(src, "col-a", out, logger.Nop()).Run(context.Background()))

	snap := readArticleSnapshot(t, out)
	require.Equal(t, 1, snap.Count)
	assert.Equal(t, "Untitled", snap.Articles[0].Title)
}

// TestArticlesRun_SkipsFailedRecord verifies a per-record failure omits the
// record without aborting the run.
func TestArticlesRun_SkipsFailedRecord(t *testing.T) {
	src := &fakeSource{
		pages: []workspace.Page{
			pageOf("ok", map[string]workspace.Property{"Title": titleProp("Good")}),
			pageOf("bad", map[string]workspace.Property{"Title": titleProp("Broken")}),
		},
		blocks:  map[string][]workspace.Block{"ok": {paragraph("fine")}},
		failFor: map[string]bool{"bad": true},
	}

	out := filepath.Join(t.TempDir(), "articles.json")
	require.NoError(t, NewArticles(src, "col-a", out, logger.Nop()).Run(context.Background()))

	snap := readArticleSnapshot(t, out)
	require.Equal(t, 1, snap.Count)
	assert.Equal(t, "Good", snap.Articles[0].Title)
}

// TestArticlesRun_QueryFailureIsFatal verifies a query error aborts the run
// and writes no partial snapshot.
func TestArticlesRun_QueryFailureIsFatal(t *testing.T) {
	src := &fakeSource{queryErr: errors.New("auth failed")}

	out := filepath.Join(t.TempDir(), "articles.json")
	err := NewArticles(src, "col-a", out, logger.Nop()).Run(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no snapshot should be written on fatal error")
}

// TestArticlesRun_TieBreakByID verifies records sharing a date are ordered
// by id ascending.
func TestArticlesRun_TieBreakByID(t *testing.T) {
	src := &fakeSource{
		pages: []workspace.Page{
			pageOf("zz", map[string]workspace.Property{"Title": titleProp("Z"), "Date": dateProp("2024-01-01")}),
			pageOf("aa", map[string]workspace.Property{"Title": titleProp("A"), "Date": dateProp("2024-01-01")}),
			pageOf("mm", map[string]workspace.Property{"Title": titleProp("M"), "Date": dateProp("2024-06-01")}),
		},
		blocks: map[string][]workspace.Block{},
	}

	out := filepath.Join(t.TempDir(), "articles.json")
	require.NoError(t, NewArticles(src, "col-a", out, logger.Nop()).Run(context.Background()))

	snap := readArticleSnapshot(t, out)
	require.Equal(t, 3, snap.Count)
	assert.Equal(t, "M", snap.Articles[0].Title)
	assert.Equal(t, "A", snap.Articles[1].Title)
	assert.Equal(t, "Z", snap.Articles[2].Title)
}

// TestArticlesRun_RerunIsStable verifies two runs against unchanged source
// content produce identical records; only the snapshot timestamp moves.
func TestArticlesRun_RerunIsStable(t *testing.T) {
	src := &fakeSource{
		pages: []workspace.Page{
			pageOf("p1", map[string]workspace.Property{
				"Title": titleProp("Stable"),
				"Date":  dateProp("2024-01-15"),
			}),
		},
		blocks: map[string][]workspace.Block{
			"p1": {paragraph("same body every time")},
		},
	}

	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	require.NoError(t, NewArticles(src, "col-a", first, logger.Nop()).Run(context.Background()))
	require.NoError(t, NewArticles(src, "col-a", second, logger.Nop()).Run(context.Background()))

	a := readArticleSnapshot(t, first)
	b := readArticleSnapshot(t, second)
	assert.Equal(t, a.Articles, b.Articles)
	assert.Equal(t, a.Count, b.Count)
}

// TestArticlesRun_EmptyCollection verifies an empty result still writes a
// valid snapshot with a zero count.
func TestArticlesRun_EmptyCollection(t *testing.T) {
	src := &fakeSource{}

	out := filepath.Join(t.TempDir(), "articles.json")
	require.NoError(t, NewArticles(src, "col-a", out, logger.Nop()).Run(context.Background()))

	snap := readArticleSnapshot(t, out)
	assert.Equal(t, 0, snap.Count)
	assert.NotNil(t, snap.Articles)
}
