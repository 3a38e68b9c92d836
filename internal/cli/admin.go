package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keybtech/shopcli/internal/api"
	"github.com/keybtech/shopcli/internal/catalog"
	"github.com/keybtech/shopcli/internal/model"
	"github.com/keybtech/shopcli/internal/session"
	"github.com/keybtech/shopcli/internal/ui"
	"github.com/keybtech/shopcli/internal/workflow"
)

// cliRouter is the one-shot command rendition of navigation: being sent to
// the login route just means telling the user which command to run.
type cliRouter struct{}

func (cliRouter) Navigate(to session.Route) {
	if to == session.RouteLogin {
		fmt.Fprintln(os.Stderr, "run 'shopcli login' to sign in")
	}
}

func (cliRouter) Current() session.Route { return session.RouteAdminProducts }

// errNotSignedIn keeps guard denials from printing a second generic error.
var errNotSignedIn = fmt.Errorf("not signed in")

type adminSession struct {
	app   *App
	guard *session.Guard
	list  *catalog.Controller
}

// newAdminSession wires the guard and list controller, then runs the guard.
// Every admin command is a fresh entry into a protected view.
func newAdminSession(ctx context.Context) (*adminSession, error) {
	app, err := newApp()
	if err != nil {
		return nil, err
	}
	guard := session.New(app.Creds, app.Client, cliRouter{}, app.Notifier, app.Log)
	if !guard.Enter(ctx) {
		return nil, errNotSignedIn
	}
	return &adminSession{
		app:   app,
		guard: guard,
		list:  catalog.New(app.Client.AdminProducts, app.Notifier, app.Log),
	}, nil
}

func (s *adminSession) workflows(confirm workflow.Confirmer) *workflow.Workflows {
	return workflow.New(s.app.Client, s.list, s.app.Notifier, s.guard, confirm, s.app.Log)
}

// findProduct walks the admin listing until it sees the id, returning the
// product and the page it sits on.
func (s *adminSession) findProduct(ctx context.Context, id string) (*model.Product, int, error) {
	for page := 1; ; page++ {
		res, err := s.app.Client.AdminProducts(ctx, page)
		if err != nil {
			return nil, 0, err
		}
		for _, p := range res.Products {
			if p.ID == id {
				return &p, page, nil
			}
		}
		if !res.Pagination.HasNext {
			return nil, 0, fmt.Errorf("no product with id %q", id)
		}
	}
}

func (s *adminSession) printCurrentPage() {
	printProductPage(&api.ProductPage{Products: s.list.Items(), Pagination: s.list.Pagination()})
}

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer the catalog (sign-in required)",
	}
	cmd.AddCommand(newAdminUICommand())
	cmd.AddCommand(newAdminProductsCommand())
	cmd.AddCommand(newAdminCreateCommand())
	cmd.AddCommand(newAdminUpdateCommand())
	cmd.AddCommand(newAdminDeleteCommand())
	return cmd
}

func newAdminUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive admin panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return ui.Run(app.Client, app.Creds, app.Log)
		},
	}
}

func newAdminProductsCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newAdminSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.list.FetchPage(cmd.Context(), page); err != nil {
				return err
			}
			s.printCurrentPage()
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	return cmd
}

func draftFlags(cmd *cobra.Command, d *workflow.Draft) {
	cmd.Flags().StringVar(&d.Title, "title", "", "product title")
	cmd.Flags().StringVar(&d.Category, "category", "", "product category")
	cmd.Flags().StringVar(&d.Unit, "unit", "", "sales unit, e.g. 'set'")
	cmd.Flags().StringVar(&d.OriginPrice, "origin-price", "", "original price")
	cmd.Flags().StringVar(&d.Price, "price", "", "selling price")
	cmd.Flags().StringVar(&d.Description, "description", "", "short description")
	cmd.Flags().StringVar(&d.Content, "content", "", "long-form content")
	cmd.Flags().StringVar(&d.ImageURL, "image", "", "main image URL")
	cmd.Flags().BoolVar(&d.Enabled, "enabled", true, "visible on the storefront")
}

func newAdminCreateCommand() *cobra.Command {
	var draft workflow.Draft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newAdminSession(cmd.Context())
			if err != nil {
				return err
			}
			wf := s.workflows(&stdinConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout()})
			if err := wf.Create(cmd.Context(), draft); err != nil {
				return err
			}
			s.printCurrentPage()
			return nil
		},
	}
	draftFlags(cmd, &draft)
	return cmd
}

func newAdminUpdateCommand() *cobra.Command {
	var draft workflow.Draft

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Update a product (unset flags keep their current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newAdminSession(cmd.Context())
			if err != nil {
				return err
			}

			existing, page, err := s.findProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			merged := workflow.DraftFrom(*existing)
			if cmd.Flags().Changed("title") {
				merged.Title = draft.Title
			}
			if cmd.Flags().Changed("category") {
				merged.Category = draft.Category
			}
			if cmd.Flags().Changed("unit") {
				merged.Unit = draft.Unit
			}
			if cmd.Flags().Changed("origin-price") {
				merged.OriginPrice = draft.OriginPrice
			}
			if cmd.Flags().Changed("price") {
				merged.Price = draft.Price
			}
			if cmd.Flags().Changed("description") {
				merged.Description = draft.Description
			}
			if cmd.Flags().Changed("content") {
				merged.Content = draft.Content
			}
			if cmd.Flags().Changed("image") {
				merged.ImageURL = draft.ImageURL
			}
			if cmd.Flags().Changed("enabled") {
				merged.Enabled = draft.Enabled
			}

			// Land the view on the item's page so the refresh shows it.
			if err := s.list.FetchPage(cmd.Context(), page); err != nil {
				return err
			}
			wf := s.workflows(&stdinConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout()})
			if err := wf.Update(cmd.Context(), args[0], merged); err != nil {
				return err
			}
			s.printCurrentPage()
			return nil
		},
	}
	draftFlags(cmd, &draft)
	return cmd
}

func newAdminDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newAdminSession(cmd.Context())
			if err != nil {
				return err
			}

			target, page, err := s.findProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := s.list.FetchPage(cmd.Context(), page); err != nil {
				return err
			}

			wf := s.workflows(&stdinConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout(), assumeYes: yes})
			if err := wf.Delete(cmd.Context(), *target); err != nil {
				return err
			}
			s.printCurrentPage()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
