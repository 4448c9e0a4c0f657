package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/malzubaidi/portfolio-sync/assets"
	"github.com/malzubaidi/portfolio-sync/config"
	"github.com/malzubaidi/portfolio-sync/logger"
	"github.com/malzubaidi/portfolio-sync/pipeline"
	"github.com/malzubaidi/portfolio-sync/workspace"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// A local .env is optional; in scheduled runs the environment is set
	// by the job runner.
	_ = godotenv.Load()

	subcommand := os.Args[1]
	switch subcommand {
	case "articles", "projects", "all":
		runSync(subcommand)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func runSync(job string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer log.Sync()

	client, err := workspace.NewClient(cfg.Token, cfg.BaseURL, cfg.FetchTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if job == "articles" || job == "all" {
		if err := cfg.ValidateArticles(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		p := pipeline.NewArticles(client, cfg.ArticlesCollection, cfg.ArticlesPath(), log)
		if err := p.Run(ctx); err != nil {
			log.Error("articles sync failed", logger.Err(err))
			os.Exit(1)
		}
	}

	if job == "projects" || job == "all" {
		if err := cfg.ValidateProjects(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		m := assets.New(cfg.AssetDir, cfg.AssetDir, log)
		p := pipeline.NewProjects(client, cfg.ProjectsCollection, cfg.ProjectsPath(), m, log)
		if err := p.Run(ctx); err != nil {
			log.Error("projects sync failed", logger.Err(err))
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Println("portfolio-sync - sync workspace content into static JSON snapshots")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  portfolio-sync <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  articles   Sync the articles collection to data/articles.json")
	fmt.Println("  projects   Sync the projects collection to data/projects.json")
	fmt.Println("  all        Run both syncs (articles first)")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  WORKSPACE_TOKEN           Workspace API token (required)")
	fmt.Println("  ARTICLES_COLLECTION_ID    Articles collection ID")
	fmt.Println("  PROJECTS_COLLECTION_ID    Projects collection ID")
	fmt.Println("  SYNC_CONFIG_FILE          Optional YAML config path (default: sync.yaml)")
	fmt.Println("  SYNC_LOG_LEVEL            debug | info | warn | error (default: info)")
	fmt.Println("  SYNC_FETCH_TIMEOUT        Workspace API request timeout (default: 30s)")
}
