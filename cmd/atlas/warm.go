package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-atlas/internal/config"
	"github.com/couchcryptid/climate-atlas/internal/dataset"
	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/couchcryptid/climate-atlas/internal/observability"
)

// newWarmCmd fetches all twelve monthly datasets once, as a smoke test of
// the data host and a dry run of the serve-time warm.
func newWarmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Prefetch every monthly dataset from the data host",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
			client := dataset.NewClient(cfg.DataBaseURL, cfg.FetchTimeout, logger)
			cache := dataset.NewMonthCache(client, clockwork.NewRealClock(), observability.NewMetrics())

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = fmt.Sprintf(" warming %d months from %s", len(domain.MonthKeys), cfg.DataBaseURL)
			s.Start()

			var mu sync.Mutex
			var failed []domain.MonthKey
			err = cache.WarmAll(cmd.Context(), func(key domain.MonthKey, fetchErr error) {
				if fetchErr != nil {
					mu.Lock()
					failed = append(failed, key)
					mu.Unlock()
				}
			})
			s.Stop()

			fmt.Printf("warmed %d/%d months\n", cache.Len(), len(domain.MonthKeys))
			for _, key := range failed {
				fmt.Printf("  failed: %s\n", key)
			}
			return err
		},
	}
}
