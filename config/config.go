package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default output locations, relative to the working directory. The rendering
// layer fetches these paths as-is, so overrides normally come from the
// optional config file rather than per-run flags.
const (
	DefaultDataDir      = "data"
	DefaultAssetDir     = "assets/images/projects"
	DefaultFetchTimeout = 30 * time.Second
)

// Config holds everything a sync run needs. The workspace token is the only
// unconditionally required value; each pipeline additionally requires its
// own collection ID.
type Config struct {
	Token              string // workspace API token
	ArticlesCollection string // collection ID for the articles pipeline
	ProjectsCollection string // collection ID for the projects pipeline
	BaseURL            string // workspace API base URL, empty = default

	DataDir  string // directory for JSON snapshots
	AssetDir string // directory for downloaded project images

	LogLevel  string
	PrettyLog bool

	FetchTimeout time.Duration // per-request timeout for workspace API calls
}

// Load reads configuration from the environment, then applies overrides from
// the optional config file. It fails only when the workspace token is
// missing; collection IDs are validated per pipeline so that running just
// one job doesn't require credentials for the other.
func Load() (*Config, error) {
	cfg := &Config{
		Token:              os.Getenv("WORKSPACE_TOKEN"),
		ArticlesCollection: os.Getenv("ARTICLES_COLLECTION_ID"),
		ProjectsCollection: os.Getenv("PROJECTS_COLLECTION_ID"),
		BaseURL:            os.Getenv("WORKSPACE_BASE_URL"),
		DataDir:            getenv("SYNC_DATA_DIR", DefaultDataDir),
		AssetDir:           getenv("SYNC_ASSET_DIR", DefaultAssetDir),
		LogLevel:           getenv("SYNC_LOG_LEVEL", "info"),
		PrettyLog:          os.Getenv("SYNC_PRETTY_LOG") != "false",
		FetchTimeout:       DefaultFetchTimeout,
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf("required environment variable WORKSPACE_TOKEN is not set")
	}

	if v := os.Getenv("SYNC_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SYNC_FETCH_TIMEOUT %q: %w", v, err)
		}
		cfg.FetchTimeout = d
	}

	fileCfg, err := LoadConfigFile(os.Getenv("SYNC_CONFIG_FILE"))
	if err != nil {
		return nil, err
	}
	if fileCfg != nil {
		cfg.applyFile(fileCfg)
	}

	return cfg, nil
}

// ValidateArticles checks that the articles pipeline can run.
func (c *Config) ValidateArticles() error {
	if c.ArticlesCollection == "" {
		return fmt.Errorf("required environment variable ARTICLES_COLLECTION_ID is not set")
	}
	return nil
}

// ValidateProjects checks that the projects pipeline can run.
func (c *Config) ValidateProjects() error {
	if c.ProjectsCollection == "" {
		return fmt.Errorf("required environment variable PROJECTS_COLLECTION_ID is not set")
	}
	return nil
}

// ArticlesPath returns the articles snapshot path.
func (c *Config) ArticlesPath() string {
	return filepath.Join(c.DataDir, "articles.json")
}

// ProjectsPath returns the projects snapshot path.
func (c *Config) ProjectsPath() string {
	return filepath.Join(c.DataDir, "projects.json")
}

func (c *Config) applyFile(fc *FileConfig) {
	if fc.Output.DataDir != "" {
		c.DataDir = fc.Output.DataDir
	}
	if fc.Output.AssetDir != "" {
		c.AssetDir = fc.Output.AssetDir
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
