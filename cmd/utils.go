package cmd

import (
	"fmt"

	"mainyu/pkg/config"
	"mainyu/pkg/search"
	"mainyu/pkg/store"
)

// openStore loads the configuration and opens the headline database. Callers
// own the returned store and must close it.
func openStore(configPath string) (*config.Config, *store.Store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	st, err := store.New(cfg.DBPath, cfg.CaseSensitive)
	if err != nil {
		return nil, nil, fmt.Errorf("opening headline store: %w", err)
	}

	return cfg, st, nil
}

func newSearchService(cfg *config.Config, st *store.Store) *search.Service {
	return search.NewService(st, cfg.RecentDays, cfg.HeadlineLimit)
}
