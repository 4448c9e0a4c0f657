package pipeline

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/malzubaidi/portfolio-sync/assets"
	"github.com/malzubaidi/portfolio-sync/flatten"
	"github.com/malzubaidi/portfolio-sync/logger"
	"github.com/malzubaidi/portfolio-sync/snapshot"
	"github.com/malzubaidi/portfolio-sync/workspace"
)

// fanOutLimit bounds concurrent record processing. Image downloads dominate
// project sync time, so a small amount of parallelism pays for itself
// without hammering the workspace API.
const fanOutLimit = 4

// Projects is the projects sync job. Record bodies are processed
// concurrently; completion order is unspecified but the snapshot preserves
// query order regardless.
type Projects struct {
	source     Source
	collection string
	outPath    string
	assets     *assets.Materializer
	log        logger.Logger
}

// NewProjects creates the projects pipeline.
func NewProjects(source Source, collection, outPath string, m *assets.Materializer, log logger.Logger) *Projects {
	return &Projects{
		source:     source,
		collection: collection,
		outPath:    outPath,
		assets:     m,
		log:        log,
	}
}

// Run queries the collection, processes all records with a bounded fan-out,
// and writes the projects snapshot. Per-record failures are logged and the
// record is skipped; only the query itself is fatal.
func (p *Projects) Run(ctx context.Context) error {
	pages, err := p.source.QueryCollection(ctx, p.collection)
	if err != nil {
		return fmt.Errorf("projects query failed: %w", err)
	}

	// Results are index-addressed so the output keeps query order no
	// matter which record finishes first.
	results := make([]*snapshot.Project, len(pages))
	var g errgroup.Group
	g.SetLimit(fanOutLimit)

	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			project, err := p.build(ctx, page)
			if err != nil {
				p.log.Warn("skipping project",
					logger.String("page", page.ID), logger.Err(err))
				return nil
			}
			results[i] = &project
			return nil
		})
	}
	// Workers never return errors; failures are skips.
	_ = g.Wait()

	projects := []snapshot.Project{}
	for _, r := range results {
		if r != nil {
			projects = append(projects, *r)
		}
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return byDateDesc(projects[i].Date, projects[i].ID, projects[j].Date, projects[j].ID)
	})

	snap := snapshot.NewProjectSnapshot(projects)
	if err := snapshot.Write(p.outPath, snap); err != nil {
		return err
	}

	p.log.Info("projects snapshot written",
		logger.Int("count", snap.Count),
		logger.Int("skipped", len(pages)-snap.Count),
		logger.String("path", p.outPath))
	return nil
}

func (p *Projects) build(ctx context.Context, page workspace.Page) (snapshot.Project, error) {
	blocks, err := p.source.FetchBlocks(ctx, page.ID)
	if err != nil {
		return snapshot.Project{}, err
	}

	html, err := flatten.RenderHTML(flatten.Markdown(blocks))
	if err != nil {
		return snapshot.Project{}, err
	}

	id := workspace.RecordID(page.ID)
	html = p.assets.RewriteImages(ctx, html, id)

	cover := page.FileURL("Cover")
	if cover != "" {
		cover = p.assets.Download(ctx, cover, assets.CoverName(id))
	}

	title := page.Title("Name")
	if title == "" {
		title = "Untitled"
	}

	return snapshot.Project{
		ID:          id,
		Title:       title,
		Summary:     page.Text("Summary"),
		Date:        page.Date("Date"),
		Categories:  page.MultiSelect("Categories"),
		Cover:       cover,
		PreviewLink: page.Link("Preview"),
		ContentHTML: html,
		ReadTime:    readTime(page, "ReadTime", flatten.PlainText(blocks)),
		Featured:    page.Checkbox("Featured"),
		URL:         page.URL,
		LastEdited:  page.LastEditedTime,
	}, nil
}
