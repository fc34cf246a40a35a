package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"mainyu/pkg/headline"
)

// importRow is the on-disk shape of one headline in an import file. Dates are
// ISO strings; category is optional and classified from the title when
// absent.
type importRow struct {
	Source   string `json:"source"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Date     string `json:"date"`
	Category string `json:"category,omitempty"`
}

// ImportCommand creates the import command
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import headlines from a JSON file into the store",
		ArgsUsage: "<file.json>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one import file")
			}
			return importHeadlines(c.String("config"), c.Args().First())
		},
	}
}

func importHeadlines(configPath, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}

	var rows []importRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("parsing import file: %w", err)
	}

	headlines := make([]headline.Headline, 0, len(rows))
	for i, row := range rows {
		if row.Title == "" || row.URL == "" {
			return fmt.Errorf("row %d: title and url are required", i)
		}
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			return fmt.Errorf("row %d: invalid date %q: %w", i, row.Date, err)
		}
		category := headline.Category(row.Category)
		if row.Category != "" {
			parsed, ok := headline.ParseCategory(row.Category)
			if !ok {
				return fmt.Errorf("row %d: unknown category %q", i, row.Category)
			}
			category = parsed
		}
		headlines = append(headlines, headline.Headline{
			Source:   row.Source,
			Title:    row.Title,
			URL:      row.URL,
			Date:     date,
			Category: category,
		})
	}

	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			fmt.Printf("Warning: failed to close store: %v\n", err)
		}
	}()

	if err := st.InitSchema(); err != nil {
		return err
	}

	inserted, err := st.InsertHeadlines(headlines)
	if err != nil {
		return fmt.Errorf("importing headlines: %w", err)
	}

	fmt.Printf("Imported %d headlines (%d duplicates skipped)\n", inserted, len(headlines)-inserted)
	return nil
}
