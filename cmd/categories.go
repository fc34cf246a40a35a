package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"mainyu/pkg/headline"
	"mainyu/pkg/render"
)

// CategoriesCommand creates the categories command
func CategoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List categories, or the headlines in one category",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "Category to list headlines for",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return listCategories(c.String("config"), c.String("name"))
		},
	}
}

func listCategories(configPath, name string) error {
	if name == "" {
		for _, c := range headline.Categories() {
			fmt.Printf("%-15s %s\n", c, render.CategoryLabel(c))
		}
		return nil
	}

	category, ok := headline.ParseCategory(name)
	if !ok {
		fmt.Printf("Unknown category %q, nothing to list\n", name)
		return nil
	}

	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			fmt.Printf("Warning: failed to close store: %v\n", err)
		}
	}()

	service := newSearchService(cfg, st)
	headlines, err := service.ListByCategory(category)
	if err != nil {
		return fmt.Errorf("listing category %s: %w", category, err)
	}

	fmt.Printf("=== %s (%d headlines) ===\n", render.CategoryLabel(category), len(headlines))
	for i, h := range headlines {
		fmt.Printf("%d. [%s] %s\n   %s\n", i+1, render.FormatDate(h.Date), h.Title, h.URL)
	}
	return nil
}
