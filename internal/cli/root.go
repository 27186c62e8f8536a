package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	return newRootCmd(version, commit, date).ExecuteContext(context.Background())
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Back-office API for the fit-out company site",
		Long: `backoffice serves the admin API behind the company site: admin login and
token refresh, the contact form and enquiry inbox, and dashboard stats.

Configuration is read from the environment (JWT_ACCESS_SECRET, MONGO_URI, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}
