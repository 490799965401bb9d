package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/StellaShiina/inventory-ui/client"
	"github.com/StellaShiina/inventory-ui/dashboard"
	"github.com/StellaShiina/inventory-ui/login"
	"github.com/StellaShiina/inventory-ui/register"
	"github.com/StellaShiina/inventory-ui/ui"
)

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := a.flags("login")
	username := fs.StringP("username", "u", "", "username (prompted when omitted)")
	password := fs.StringP("password", "p", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !fs.Changed("username") {
		*username = a.term.askRaw("Username: ")
	}
	if !fs.Changed("password") {
		*password = a.term.askSecret("Password: ")
	}

	c := login.NewController(a.api, a.term, a.logger, a.cfg.LoginRedirectDelay)
	return shown(c.Submit(ctx, login.Form{Username: *username, Password: *password}))
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := a.flags("register")
	var f register.Form
	fs.StringVar(&f.FullName, "full-name", "", "full name")
	fs.StringVar(&f.Email, "email", "", "email address")
	fs.StringVar(&f.Phone, "phone", "", "phone number (optional)")
	fs.StringVarP(&f.Username, "username", "u", "", "username: letters, digits and underscore")
	fs.StringVarP(&f.Password, "password", "p", "", "password (prompted when omitted)")
	fs.StringVar(&f.ConfirmPassword, "confirm-password", "", "password again (prompted when omitted)")
	fs.BoolVar(&f.AcceptTerms, "accept-terms", false, "accept the terms of use")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !fs.Changed("password") {
		f.Password = a.term.askSecret("Password: ")
	}
	if !fs.Changed("confirm-password") {
		f.ConfirmPassword = a.term.askSecret("Confirm password: ")
	}

	c := register.NewController(a.api, a.term, a.logger, a.cfg.RegisterRedirectDelay)
	if err := c.Submit(ctx, f); err != nil {
		return shown(err)
	}
	fmt.Fprintln(a.term.out, "You can now run 'stockctl login'.")
	return nil
}

func runLogout(ctx context.Context, a *app, args []string) error {
	if err := a.flags("logout").Parse(args); err != nil {
		return err
	}
	return shown(a.dashboard().Logout(ctx))
}

// loadDashboard builds a dashboard controller and loads the item list.
func loadDashboard(ctx context.Context, a *app) (*dashboard.Controller, error) {
	c := a.dashboard()
	if err := c.Load(ctx); err != nil {
		if errors.Is(err, dashboard.ErrNotAuthenticated) {
			return nil, errNotLoggedIn
		}
		return nil, shown(err)
	}
	return c, nil
}

func runItems(ctx context.Context, a *app, args []string) error {
	fs := a.flags("items")
	html := fs.Bool("html", false, "print the table as an HTML fragment")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := loadDashboard(ctx, a); err != nil {
		return err
	}
	if *html {
		return a.term.printHTML()
	}
	return a.term.printTable()
}

func runAdd(ctx context.Context, a *app, args []string) error {
	fs := a.flags("add")
	var f dashboard.AddForm
	fs.StringVar(&f.Name, "name", "", "product name")
	fs.StringVar(&f.ItemType, "type", "", "product type")
	fs.StringVar(&f.Quantity, "quantity", "", "whole number greater than zero")
	fs.StringVar(&f.Value, "value", "", "unit value")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := loadDashboard(ctx, a)
	if err != nil {
		return err
	}
	if _, err := c.AddItem(ctx, f); err != nil {
		return shown(err)
	}
	return a.term.printSummary()
}

// itemID reads the single positional id argument.
func itemID(fs *pflag.FlagSet) (int64, error) {
	if fs.NArg() != 1 {
		return 0, errors.New("expected exactly one product id")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", fs.Arg(0))
	}
	return id, nil
}

func runEdit(ctx context.Context, a *app, args []string) error {
	fs := a.flags("edit")
	name := fs.String("name", "", "new name")
	itemType := fs.String("type", "", "new type")
	quantity := fs.String("quantity", "", "new quantity")
	value := fs.String("value", "", "new unit value")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := itemID(fs)
	if err != nil {
		return err
	}

	c, err := loadDashboard(ctx, a)
	if err != nil {
		return err
	}
	if !c.OpenEdit(id) {
		return fmt.Errorf("no product with id %d", id)
	}
	f := c.Editing()
	if fs.Changed("name") {
		f.Name = *name
	}
	if fs.Changed("type") {
		f.ItemType = *itemType
	}
	if fs.Changed("quantity") {
		f.Quantity = *quantity
	}
	if fs.Changed("value") {
		f.Value = *value
	}
	if _, err := c.SubmitEdit(ctx, f); err != nil {
		return shown(err)
	}
	return a.term.printSummary()
}

func runDelete(ctx context.Context, a *app, args []string) error {
	fs := a.flags("delete")
	fs.BoolVarP(&a.term.assumeYes, "yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := itemID(fs)
	if err != nil {
		return err
	}

	c, err := loadDashboard(ctx, a)
	if err != nil {
		return err
	}
	switch err := c.DeleteItem(ctx, id); {
	case errors.Is(err, dashboard.ErrDeclined):
		fmt.Fprintln(a.term.errOut, "Cancelled.")
		return nil
	case err != nil:
		return shown(err)
	}
	return a.term.printSummary()
}

func runReport(ctx context.Context, a *app, args []string) error {
	if err := a.flags("report").Parse(args); err != nil {
		return err
	}
	r, err := a.api.Report(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			return errNotLoggedIn
		}
		return err
	}
	return ui.WriteReport(a.term.out, r)
}

func runWhoami(ctx context.Context, a *app, args []string) error {
	if err := a.flags("whoami").Parse(args); err != nil {
		return err
	}
	u, err := a.api.Profile(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			return errNotLoggedIn
		}
		return err
	}
	fmt.Fprintf(a.term.out, "%s (%s) <%s>\n", u.Username, u.FullName, u.Email)
	if s, ok := a.api.Session(); ok && !s.ExpiresAt.IsZero() {
		fmt.Fprintf(a.term.out, "session expires %s\n", s.ExpiresAt.Local().Format("02/01/2006 15:04"))
	}
	return nil
}
