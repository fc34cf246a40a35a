package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"mainyu/pkg/config"
)

// InitCommand creates the init command
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a template configuration and create the headline database schema",
		Action: func(ctx context.Context, c *cli.Command) error {
			return initSite(c.String("config"))
		},
	}
}

func initSite(configPath string) error {
	cfg, err := config.GetDefaultConfig()
	if err != nil {
		return fmt.Errorf("building default config: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := cfg.SaveTemplateConfig(configPath); err != nil {
			return fmt.Errorf("writing config template: %w", err)
		}
		fmt.Printf("Wrote config template to %s\n", configPath)
	} else {
		fmt.Printf("Config already exists at %s, leaving it alone\n", configPath)
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	if err := os.MkdirAll(cfg.ReportsDir, 0755); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
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

	fmt.Printf("Initialized headline database at %s\n", cfg.DBPath)
	fmt.Printf("Reports directory: %s\n", cfg.ReportsDir)
	return nil
}
