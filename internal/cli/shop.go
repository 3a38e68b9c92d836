package cli

import (
	"github.com/spf13/cobra"
)

func newShopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse the public storefront catalog",
	}
	cmd.AddCommand(newShopListCommand())
	cmd.AddCommand(newShopShowCommand())
	return cmd
}

func newShopListCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List storefront products",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			res, err := app.Client.Products(cmd.Context(), page)
			if err != nil {
				return err
			}
			printProductPage(res)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	return cmd
}

func newShopShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			p, err := app.Client.Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProduct(p)
			return nil
		},
	}
}
