package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"mainyu/pkg/report"
	"mainyu/pkg/search"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search archived reports and headlines",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Search keyword",
			},
			&cli.StringFlag{
				Name:  "scope",
				Usage: "Headline search scope: all or recent",
				Value: "all",
			},
			&cli.BoolFlag{
				Name:  "reports-only",
				Usage: "Skip the headline store and only scan report files",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return searchSite(c.String("config"), c.String("query"), c.String("scope"), c.Bool("reports-only"))
		},
	}
}

func searchSite(configPath, query, scope string, reportsOnly bool) error {
	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			fmt.Printf("Warning: failed to close store: %v\n", err)
		}
	}()

	scanner := report.NewDirScanner(cfg.ReportsDir)
	matches, err := scanner.Search(query)
	if err != nil {
		return fmt.Errorf("searching reports: %w", err)
	}

	fmt.Printf("=== Reports (%d matches) ===\n", len(matches))
	for i, m := range matches {
		fmt.Printf("%d. %s (%s)\n", i+1, m.DisplayName, m.Filename)
	}

	if reportsOnly {
		return nil
	}

	service := newSearchService(cfg, st)
	groups, err := service.SearchHeadlines(search.Params{
		Query: query,
		Scope: search.ParseScope(scope),
	})
	if err != nil {
		return fmt.Errorf("searching headlines: %w", err)
	}

	total := 0
	for _, g := range groups {
		total += len(g.Items)
		fmt.Printf("\n=== %s (%d headlines) ===\n", g.DisplayName, len(g.Items))
		for i, item := range g.Items {
			fmt.Printf("%d. %s\n   %s\n", i+1, item.Title, item.URL)
		}
	}

	if total == 0 {
		fmt.Println("\nNo headlines found")
	} else {
		fmt.Printf("\nTotal: %d headlines across %d reports\n", total, len(groups))
	}

	return nil
}
