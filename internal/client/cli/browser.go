package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/mkraev/costlens/internal/client/authority"
	"github.com/mkraev/costlens/internal/client/gate"
	"github.com/mkraev/costlens/internal/client/scope"
)

// Run starts the interactive dashboard browser. The persisted session is
// restored exactly once, before the first navigation, so no authorization
// decision is ever made against an unresolved session.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.restore(ctx)
	a.navigate(ctx, gate.RootPath)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("costlens %s> ", a.promptStatus())
		if !scanner.Scan() {
			return nil
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.printHelp()

		case "routes":
			a.printRoutes()

		case "open":
			if len(args) == 0 {
				pterm.Println("Usage: open <path>")
				continue
			}
			a.navigate(ctx, args[0])

		case "login":
			a.navigate(ctx, gate.LoginPath)

		case "logout":
			a.session.Logout(ctx)
			pterm.Info.Println("Logged out")

		case "whoami", "status":
			a.printStatus()

		case "use":
			if len(args) == 0 {
				a.printAccountOptions(ctx)
				continue
			}
			a.setAccountFilter(args[0])

		case "filter":
			if len(args) == 0 {
				pterm.Println("Usage: filter <user-id>|all")
				continue
			}
			a.setActivityFilter(args[0])

		case "revoke":
			if len(args) == 0 {
				pterm.Println("Usage: revoke <session-id>")
				continue
			}
			a.revoke(ctx, args[0])

		case "revoke-all":
			if len(args) == 0 {
				pterm.Println("Usage: revoke-all <user-id>")
				continue
			}
			a.revokeAll(ctx, args[0])

		case "refresh":
			a.navigate(ctx, "/admin/activity")

		case "exit", "quit":
			pterm.Println("Bye!")
			return nil

		default:
			// Bare route paths work as navigation shorthand.
			if strings.HasPrefix(cmd, "/") {
				a.navigate(ctx, cmd)
				continue
			}
			pterm.Println("Unknown command:", cmd)
		}
	}
}

// restore resolves the persisted session behind a spinner. This is the
// only place Restore is invoked from the browser; the controller makes
// repeated calls harmless anyway.
func (a *App) restore(ctx context.Context) {
	spinner, _ := pterm.DefaultSpinner.Start("Restoring session...")
	a.session.Restore(ctx)
	if user := a.session.CurrentUser(); user != nil {
		spinner.Success(fmt.Sprintf("Signed in as %s", user.Username))
	} else {
		spinner.Stop()
	}
}

// navigate resolves a path through the gate and renders the target view.
// Redirect decisions loop until a view renders; the route table has no
// cycles (login and root both terminate).
func (a *App) navigate(ctx context.Context, path string) {
	for {
		route := gate.Lookup(path)
		snap := a.session.Snapshot()

		if route.Path == gate.LoginPath {
			switch gate.DecideLogin(snap) {
			case gate.Wait:
				return
			case gate.RedirectRoot:
				path = gate.RootPath
				continue
			default:
				if a.loginForm(ctx) {
					path = gate.RootPath
					continue
				}
				return
			}
		}

		switch gate.Decide(snap, route.Access) {
		case gate.Wait:
			return
		case gate.RedirectLogin:
			path = gate.LoginPath
		case gate.RedirectRoot:
			pterm.Warning.Println("Administrator access required")
			path = gate.RootPath
		case gate.Allow:
			a.renderRoute(ctx, route)
			return
		}
	}
}

// loginForm prompts for credentials until login succeeds or the user backs
// out with an empty username. A rejection shows the authority's message
// verbatim and keeps the form; it never navigates.
func (a *App) loginForm(ctx context.Context) bool {
	for {
		username, err := GetSimpleText(a.reader, "Username (empty to cancel)", os.Stdout)
		if err != nil || username == "" {
			return false
		}

		password, err := GetPassword(os.Stdout)
		if err != nil {
			return false
		}

		err = a.session.Login(ctx, username, password)
		if err == nil {
			pterm.Success.Println("Signed in")
			return true
		}
		if errors.Is(err, authority.ErrInvalidCredentials) {
			pterm.Error.Println(err.Error())
			continue
		}
		pterm.Error.Println("Login failed:", err.Error())
	}
}

func (a *App) promptStatus() string {
	if user := a.session.CurrentUser(); user != nil {
		if user.IsAdmin {
			return fmt.Sprintf("(%s, admin)", user.Username)
		}
		return fmt.Sprintf("(%s)", user.Username)
	}
	return ""
}

// accountOptions resolves the selector entries for the signed-in user from
// the authority's account listing. A denied listing yields no options, not
// an error.
func (a *App) accountOptions(ctx context.Context) ([]scope.Option, error) {
	return scope.Options(ctx, a.client, a.session.CurrentUser())
}

// printAccountOptions renders the account selector, marking the current
// filter. Shown by "use" with no arguments before the user picks one.
func (a *App) printAccountOptions(ctx context.Context) {
	if a.session.CurrentUser() == nil {
		pterm.Error.Println("Not signed in")
		return
	}
	options, err := a.accountOptions(ctx)
	if err != nil {
		a.errorBanner(err)
		return
	}
	if len(options) == 0 {
		pterm.Info.Println("No accounts available")
		return
	}
	for _, opt := range options {
		marker := " "
		if opt.ID == a.accountFilter {
			marker = "*"
		}
		pterm.Printfln("%s %d  %s", marker, opt.ID, opt.Name)
	}
	pterm.Println("Pick with 'use <account-id>', clear with 'use all'")
}

func (a *App) setAccountFilter(arg string) {
	if arg == "all" {
		a.accountFilter = 0
		pterm.Info.Println("Account filter cleared")
		return
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		pterm.Error.Println("Invalid account id:", arg)
		return
	}
	user := a.session.CurrentUser()
	if user == nil {
		pterm.Error.Println("Not signed in")
		return
	}
	// The selector never offers accounts outside the user's scope.
	if !user.IsAdmin && !user.HasAccount(id) {
		pterm.Error.Println("Account is not in your scope")
		return
	}
	a.accountFilter = id
	pterm.Info.Printfln("Filtering on account %d", id)
}

func (a *App) setActivityFilter(arg string) {
	if arg == "all" {
		a.activityFilter = 0
		pterm.Info.Println("Showing all users")
		return
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		pterm.Error.Println("Invalid user id:", arg)
		return
	}
	a.activityFilter = id
}

func (a *App) requireAdmin() bool {
	user := a.session.CurrentUser()
	if user == nil || !user.IsAdmin {
		pterm.Warning.Println("Administrator access required")
		return false
	}
	return true
}

func (a *App) revoke(ctx context.Context, arg string) {
	if !a.requireAdmin() {
		return
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		pterm.Error.Println("Invalid session id:", arg)
		return
	}
	if err := a.activity.RevokeSession(ctx, id, a.activityFilter); err != nil {
		a.errorBanner(err)
	}
	a.renderActivity(ctx, false)
}

func (a *App) revokeAll(ctx context.Context, arg string) {
	if !a.requireAdmin() {
		return
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		pterm.Error.Println("Invalid user id:", arg)
		return
	}
	if err := a.activity.RevokeAll(ctx, id, a.activityFilter); err != nil {
		a.errorBanner(err)
	}
	a.renderActivity(ctx, false)
}

func (a *App) printHelp() {
	if a.session.CurrentUser() == nil {
		pterm.Println("Available commands: login, open <path>, routes, status, help, exit")
		return
	}
	pterm.Println("Available commands: open <path>, routes, use [account|all], whoami, logout, exit")
	if user := a.session.CurrentUser(); user != nil && user.IsAdmin {
		pterm.Println("Admin commands: filter <user>|all, revoke <session>, revoke-all <user>, refresh")
	}
}

func (a *App) printRoutes() {
	snap := a.session.Snapshot()
	for _, r := range gate.Routes() {
		if gate.Decide(snap, r.Access) == gate.Allow {
			pterm.Printfln("%-20s %s", r.Path, r.Title)
		}
	}
}

func (a *App) printStatus() {
	user := a.session.CurrentUser()
	if user == nil {
		pterm.Println("Not signed in")
		return
	}
	role := "standard"
	if user.IsAdmin {
		role = "administrator"
	}
	pterm.Printfln("Signed in as %s (%s), accounts: %v", user.Username, role, user.AccountIDs)
}
