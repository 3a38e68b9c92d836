package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the shopcli CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shopcli",
		Short:         "Terminal client for the shop catalog, cart, and admin panel",
		Long:          "shopcli talks to the remote shop API: browse products, manage a cart,\nplace orders, and administer the catalog from an interactive panel.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newLoginCommand())
	cmd.AddCommand(newLogoutCommand())
	cmd.AddCommand(newWhoamiCommand())
	cmd.AddCommand(newShopCommand())
	cmd.AddCommand(newCartCommand())
	cmd.AddCommand(newOrderCommand())
	cmd.AddCommand(newAdminCommand())

	return cmd
}
