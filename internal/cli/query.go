package cli

import (
	"github.com/spf13/cobra"

	"github.com/samvad-hq/pwnwatch/pkg/hibp"
)

func accountCmd(opts *rootOptions) *cobra.Command {
	var domain string
	var truncate bool

	c := &cobra.Command{
		Use:   "account <account>",
		Short: "List the breaches an account appears in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := opts.client(cmd)
			if err != nil {
				return err
			}
			defer done()

			breaches, err := client.BreachedAccount(cmd.Context(), args[0], hibp.BreachedAccountOptions{
				Domain:   domain,
				Truncate: truncate,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), breaches)
		},
	}
	c.Flags().StringVar(&domain, "domain", "", "only return breaches against this domain")
	c.Flags().BoolVar(&truncate, "truncate", false, "return breach names only")
	return c
}

func breachesCmd(opts *rootOptions) *cobra.Command {
	var domain string

	c := &cobra.Command{
		Use:   "breaches",
		Short: "List all breaches in the system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, done, err := opts.client(cmd)
			if err != nil {
				return err
			}
			defer done()

			breaches, err := client.Breaches(cmd.Context(), domain)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), breaches)
		},
	}
	c.Flags().StringVar(&domain, "domain", "", "only return breaches against this domain")
	return c
}

func breachCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "breach <name>",
		Short: "Show a single breach by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := opts.client(cmd)
			if err != nil {
				return err
			}
			defer done()

			breach, err := client.Breach(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), breach)
		},
	}
}

func dataClassesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dataclasses",
		Short: "List the data classes used to describe breaches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, done, err := opts.client(cmd)
			if err != nil {
				return err
			}
			defer done()

			classes, err := client.DataClasses(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), classes)
		},
	}
}

func pastesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pastes <email>",
		Short: "List the pastes an email address appears in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := opts.client(cmd)
			if err != nil {
				return err
			}
			defer done()

			pastes, err := client.PasteAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), pastes)
		},
	}
}
