package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"mainyu/pkg/headline"
)

// ClassifyCommand creates the classify command
func ClassifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "classify",
		Usage: "Re-run the keyword categorizer over every stored headline",
		Action: func(ctx context.Context, c *cli.Command) error {
			return classifyHeadlines(c.String("config"))
		},
	}
}

func classifyHeadlines(configPath string) error {
	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			fmt.Printf("Warning: failed to close store: %v\n", err)
		}
	}()

	titles, err := st.AllTitles()
	if err != nil {
		return fmt.Errorf("loading titles: %w", err)
	}

	updated := 0
	for id, title := range titles {
		if err := st.UpdateCategory(id, headline.Categorize(title)); err != nil {
			return err
		}
		updated++
	}

	fmt.Printf("Reclassified %d headlines\n", updated)
	return nil
}
