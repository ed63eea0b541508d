package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/pwnwatch/internal/app"
)

func scanCmd(opts *rootOptions) *cobra.Command {
	var watchlistFile string
	var publishersFile string

	c := &cobra.Command{
		Use:   "scan",
		Short: "Check every enabled watch once and publish new exposures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, done, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer done()

			if cmd.Flags().Changed("watchlist") {
				cfg.WatchlistFile = watchlistFile
			}
			if cmd.Flags().Changed("publishers") {
				cfg.PublishersFile = publishersFile
			}

			rt, err := app.Build(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}

			sum, scanErr := rt.Scan(cmd.Context())
			closeErr := rt.Close()
			if err := writeJSON(cmd.OutOrStdout(), sum); err != nil {
				return err
			}
			if scanErr != nil || closeErr != nil {
				return fmt.Errorf("scan finished with errors: %w", errors.Join(scanErr, closeErr))
			}
			return nil
		},
	}
	c.Flags().StringVar(&watchlistFile, "watchlist", "", "watchlist file (overrides WATCHLIST_FILE)")
	c.Flags().StringVar(&publishersFile, "publishers", "", "publishers file; empty disables publishing")
	return c
}
