package snapshot

import (
	"time"

	"github.com/malzubaidi/portfolio-sync/flatten"
)

// Article is one flattened article record. Field names match what the
// rendering layer reads from data/articles.json; every optional field must
// be tolerated as absent by consumers.
type Article struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	TitleEN     string                 `json:"title_en,omitempty"`
	Description string                 `json:"description"`
	Date        string                 `json:"date,omitempty"`
	Category    string                 `json:"category,omitempty"`
	Tags        []string               `json:"tags"`
	Cover       string                 `json:"cover,omitempty"`
	Content     []flatten.ContentBlock `json:"content"`
	ContentHTML string                 `json:"content_html"`
	ReadTime    int                    `json:"read_time"`
	Featured    bool                   `json:"featured"`
	URL         string                 `json:"url,omitempty"`
	LastEdited  string                 `json:"last_edited,omitempty"`
}

// Project is one flattened project record for data/projects.json.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Date        string   `json:"date,omitempty"`
	Categories  []string `json:"categories"`
	Cover       string   `json:"cover,omitempty"`
	PreviewLink string   `json:"preview_link,omitempty"`
	ContentHTML string   `json:"content_html"`
	ReadTime    int      `json:"read_time"`
	Featured    bool     `json:"featured"`
	URL         string   `json:"url,omitempty"`
	LastEdited  string   `json:"last_edited,omitempty"`
}

// ArticleSnapshot is the full articles document written per sync run.
type ArticleSnapshot struct {
	LastUpdated time.Time `json:"last_updated"`
	Count       int       `json:"count"`
	Articles    []Article `json:"articles"`
}

// ProjectSnapshot is the full projects document written per sync run.
type ProjectSnapshot struct {
	LastUpdated time.Time `json:"last_updated"`
	Count       int       `json:"count"`
	Projects    []Project `json:"projects"`
}

// NewArticleSnapshot assembles a snapshot stamped with the current time.
// Count always equals the list length.
func NewArticleSnapshot(articles []Article) ArticleSnapshot {
	if articles == nil {
		articles = []Article{}
	}
	return ArticleSnapshot{
		LastUpdated: time.Now().UTC(),
		Count:       len(articles),
		Articles:    articles,
	}
}

// NewProjectSnapshot assembles a snapshot stamped with the current time.
func NewProjectSnapshot(projects []Project) ProjectSnapshot {
	if projects == nil {
		projects = []Project{}
	}
	return ProjectSnapshot{
		LastUpdated: time.Now().UTC(),
		Count:       len(projects),
		Projects:    projects,
	}
}
