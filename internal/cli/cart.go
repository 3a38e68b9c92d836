package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keybtech/shopcli/internal/notify"
)

func newCartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(newCartShowCommand())
	cmd.AddCommand(newCartAddCommand())
	cmd.AddCommand(newCartSetCommand())
	cmd.AddCommand(newCartRemoveCommand())
	cmd.AddCommand(newCartClearCommand())
	return cmd
}

func newCartShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			cart, err := app.Client.Cart(cmd.Context())
			if err != nil {
				return err
			}
			printCart(cart)
			return nil
		},
	}
}

func newCartAddCommand() *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.Client.AddToCart(cmd.Context(), args[0], qty); err != nil {
				return err
			}
			app.Notifier.Notify(notify.Success("Added to cart", fmt.Sprintf("%s × %d", args[0], qty)))
			return nil
		},
	}
	cmd.Flags().IntVar(&qty, "qty", 1, "quantity to add")
	return cmd
}

func newCartSetCommand() *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "set <item-id>",
		Short: "Set the quantity of a cart row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			// The update route wants the product id alongside the new qty.
			cart, err := app.Client.Cart(cmd.Context())
			if err != nil {
				return err
			}
			productID := ""
			for _, it := range cart.Carts {
				if it.ID == args[0] {
					productID = it.ProductID
					break
				}
			}
			if productID == "" {
				return fmt.Errorf("no cart row with id %q", args[0])
			}

			if err := app.Client.UpdateCartItem(cmd.Context(), args[0], productID, qty); err != nil {
				return err
			}
			app.Notifier.Notify(notify.Success("Cart updated", fmt.Sprintf("qty set to %d", qty)))
			return nil
		},
	}
	cmd.Flags().IntVar(&qty, "qty", 1, "new quantity")
	return cmd
}

func newCartRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Remove one cart row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.Client.RemoveCartItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.Notifier.Notify(notify.Success("Removed from cart", args[0]))
			return nil
		},
	}
}

func newCartClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the whole cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			confirm := &stdinConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout(), assumeYes: yes}
			if !confirm.Confirm("Clear the cart? This cannot be undone.") {
				return nil
			}
			if err := app.Client.ClearCart(cmd.Context()); err != nil {
				return err
			}
			app.Notifier.Notify(notify.Success("Cart cleared", ""))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
