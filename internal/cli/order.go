package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keybtech/shopcli/internal/model"
	"github.com/keybtech/shopcli/internal/notify"
)

func newOrderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place orders",
	}
	cmd.AddCommand(newOrderSubmitCommand())
	return cmd
}

func newOrderSubmitCommand() *cobra.Command {
	var user model.OrderUser
	var message string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an order for the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user.Name == "" || user.Email == "" || user.Tel == "" || user.Address == "" {
				return fmt.Errorf("--name, --email, --tel, and --address are required")
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := app.Client.SubmitOrder(cmd.Context(), model.Order{User: user, Message: message})
			if err != nil {
				return err
			}
			app.Notifier.Notify(notify.Success("Order placed", "id "+id))
			return nil
		},
	}

	cmd.Flags().StringVar(&user.Name, "name", "", "buyer name")
	cmd.Flags().StringVar(&user.Email, "email", "", "buyer email")
	cmd.Flags().StringVar(&user.Tel, "tel", "", "buyer phone number")
	cmd.Flags().StringVar(&user.Address, "address", "", "delivery address")
	cmd.Flags().StringVar(&message, "message", "", "note for the shop")
	return cmd
}
