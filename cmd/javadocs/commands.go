package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/MrSnakeDoc/javadocs/internal/app"
	"github.com/MrSnakeDoc/javadocs/internal/config"
	"github.com/MrSnakeDoc/javadocs/internal/content"
	"github.com/MrSnakeDoc/javadocs/internal/logger"
	"github.com/MrSnakeDoc/javadocs/internal/views"
)

// Global is passed to every command's Run.
type Global struct {
	Out io.Writer
}

// CLI is the root command. Environment variables and .env files configure
// the server; flags only override what each command needs.
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Print version and exit."`

	Serve  ServeCmd  `cmd:"" default:"1" help:"Run the documentation server (default)."`
	Check  CheckCmd  `cmd:"" help:"Load and validate the dataset."`
	Topics TopicsCmd `cmd:"" help:"Print the route of every topic."`
}

// ServeCmd implements 'serve'.
type ServeCmd struct{}

func (s *ServeCmd) Run(_ *Global) error {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = loggerClient.Sync() }()

	a, err := app.New(context.Background(), cfg, loggerClient)
	if err != nil {
		return err
	}
	return a.Run()
}

// ContentFlags select the dataset for offline commands.
type ContentFlags struct {
	Dir string `short:"d" type:"existingdir" help:"Content directory (default: JAVADOCS_CONTENT_DIR, else the embedded dataset)."`
}

func (f ContentFlags) load() (*content.Dataset, error) {
	cfg := config.Load()
	if f.Dir != "" {
		cfg.ContentDir = f.Dir
	}

	loader := app.NewLoader(cfg)
	ds, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", loader.Source(), err)
	}
	return ds, nil
}

// CheckCmd implements 'check'.
type CheckCmd struct {
	Content ContentFlags `embed:""`
}

func (c *CheckCmd) Run(g *Global) error {
	ds, err := c.Content.load()
	if err != nil {
		return err
	}
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("dataset %s is invalid:\n%w", ds.Source, err)
	}

	_, err = fmt.Fprintf(g.Out, "✅ %s: %d categories, %d topics\n", ds.Source, len(ds.Categories), ds.TopicCount())
	return err
}

// TopicsCmd implements 'topics'.
type TopicsCmd struct {
	Content ContentFlags `embed:""`
}

func (t *TopicsCmd) Run(g *Global) error {
	ds, err := t.Content.load()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CATEGORY\tROUTE\tTITLE")
	for _, cat := range ds.Categories {
		for _, ref := range cat.Topics {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", cat.Name, views.TopicURL(cat.Name, ref.Slug), ref.Title)
		}
	}
	return tw.Flush()
}
