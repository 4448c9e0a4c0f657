package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/malzubaidi/portfolio-sync/flatten"
	"github.com/malzubaidi/portfolio-sync/logger"
	"github.com/malzubaidi/portfolio-sync/snapshot"
	"github.com/malzubaidi/portfolio-sync/workspace"
)

// Articles is the articles sync job. Records are processed sequentially,
// each to completion, before the next begins.
type Articles struct {
	source     Source
	collection string
	outPath    string
	log        logger.Logger
}

// NewArticles creates the articles pipeline.
func NewArticles(source Source, collection, outPath string, log logger.Logger) *Articles {
	return &Articles{
		source:     source,
		collection: collection,
		outPath:    outPath,
		log:        log,
	}
}

// Run queries the collection and writes the articles snapshot. A failed
// query is fatal; a failed record is logged and skipped, and never aborts
// the run.
func (p *Articles) Run(ctx context.Context) error {
	pages, err := p.source.QueryCollection(ctx, p.collection)
	if err != nil {
		return fmt.Errorf("articles query failed: %w", err)
	}

	articles := []snapshot.Article{}
	for _, page := range pages {
		article, err := p.build(ctx, page)
		if err != nil {
			p.log.Warn("skipping article",
				logger.String("page", page.ID), logger.Err(err))
			continue
		}
		articles = append(articles, article)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return byDateDesc(articles[i].Date, articles[i].ID, articles[j].Date, articles[j].ID)
	})

	snap := snapshot.NewArticleSnapshot(articles)
	if err := snapshot.Write(p.outPath, snap); err != nil {
		return err
	}

	p.log.Info("articles snapshot written",
		logger.Int("count", snap.Count),
		logger.Int("skipped", len(pages)-snap.Count),
		logger.String("path", p.outPath))
	return nil
}

func (p *Articles) build(ctx context.Context, page workspace.Page) (snapshot.Article, error) {
	blocks, err := p.source.FetchBlocks(ctx, page.ID)
	if err != nil {
		return snapshot.Article{}, err
	}

	html, err := flatten.RenderHTML(flatten.Markdown(blocks))
	if err != nil {
		return snapshot.Article{}, err
	}

	title := page.Title("Title")
	if title == "" {
		title = "Untitled"
	}

	return snapshot.Article{
		ID:          workspace.RecordID(page.ID),
		Title:       title,
		TitleEN:     page.Text("Title_EN"),
		Description: page.Text("Description"),
		Date:        page.Date("Date"),
		Category:    page.Select("Category"),
		Tags:        page.MultiSelect("Tags"),
		Cover:       page.FileURL("Cover"),
		Content:     flatten.GroupLists(flatten.Blocks(blocks)),
		ContentHTML: html,
		ReadTime:    readTime(page, "ReadTime", flatten.PlainText(blocks)),
		Featured:    page.Checkbox("Featured"),
		URL:         page.URL,
		LastEdited:  page.LastEditedTime,
	}, nil
}
