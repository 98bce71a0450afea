package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/mkraev/costlens/internal/client/gate"
	"github.com/mkraev/costlens/internal/client/scope"
)

func (a *App) renderRoute(ctx context.Context, route gate.Route) {
	pterm.DefaultSection.Println(route.Title)

	switch route.Path {
	case gate.RootPath:
		a.renderCost(ctx)
	case "/admin/activity":
		a.renderActivity(ctx, true)
	case "/admin/accounts":
		a.renderAccounts(ctx)
	case "/admin/users":
		a.renderUsers(ctx)
	default:
		a.renderScoped(ctx)
	}
}

// effectiveScope is the one place views derive the account scope attached
// to their data requests.
func (a *App) effectiveScope() scope.Scope {
	return scope.Resolve(a.session.CurrentUser(), a.accountFilter)
}

func (a *App) renderCost(ctx context.Context) {
	s := a.effectiveScope()
	if s.IsEmpty() {
		pterm.Info.Println("No accessible accounts, nothing to show")
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)

	overview, err := a.costs.Overview(ctx, s,
		start.Format("2006-01-02"), end.Format("2006-01-02"), "DAILY")
	if err != nil {
		a.errorBanner(err)
		return
	}

	currency := overview.Currency
	if currency == "" {
		currency = "USD"
	}
	pterm.Printfln("Last 30 days, accounts %s", s.Param())
	pterm.Printfln("Total cost: %.2f %s", overview.TotalCost, currency)
	if overview.PreviousPeriodCost != nil {
		pterm.Printfln("Previous period: %.2f %s", *overview.PreviousPeriodCost, currency)
	}
	if overview.ChangePercent != nil {
		pterm.Printfln("Change: %+.2f%%", *overview.ChangePercent)
	}
}

// renderScoped covers the data views whose services live outside this
// client (forecast, optimizer, anomalies, optimization hub, news, AI).
// They all share the cost view's scope contract, so the view shows the
// scope its requests would carry.
func (a *App) renderScoped(_ context.Context) {
	s := a.effectiveScope()
	if s.IsEmpty() {
		pterm.Info.Println("No accessible accounts, nothing to show")
		return
	}
	pterm.Printfln("Account scope: %s", s.Param())
	pterm.Println("Open the web dashboard for the full view.")
}

// renderActivity is the admin session-control view. On the very first load
// a failure empties the screen behind a spinner; afterwards failures keep
// the previous data visible under a retryable banner.
func (a *App) renderActivity(ctx context.Context, refetch bool) {
	if refetch {
		if !a.activity.State().Loaded {
			spinner, _ := pterm.DefaultSpinner.Start("Loading activity...")
			err := a.activity.Refresh(ctx, a.activityFilter)
			spinner.Stop()
			if err != nil {
				a.errorBanner(err)
				return
			}
		} else if err := a.activity.Refresh(ctx, a.activityFilter); err != nil {
			a.errorBanner(err)
		}
	}

	state := a.activity.State()
	if !state.Loaded {
		return
	}

	pterm.Printfln("Active sessions: %d   Total sessions: %d   Login events: %d",
		state.ActiveSessionCount(), len(state.Sessions), len(state.History))

	sessionRows := pterm.TableData{
		{"ID", "User", "IP Address", "Browser", "Created", "Last Activity", "Duration", "Status"},
	}
	for _, s := range state.Sessions {
		status := "expired"
		if s.IsActive {
			status = "active"
		}
		sessionRows = append(sessionRows, []string{
			fmt.Sprintf("%d", s.ID),
			state.DisplayName(s.UserID),
			s.IPAddress,
			s.Browser,
			s.CreatedAt.Format(time.DateTime),
			s.LastActivity.Format(time.DateTime),
			fmt.Sprintf("%dmin", s.DurationMinutes()),
			status,
		})
	}
	if len(state.Sessions) == 0 {
		pterm.Info.Println("No sessions found")
	} else {
		_ = pterm.DefaultTable.WithHasHeader().WithData(sessionRows).Render()
	}

	historyRows := pterm.TableData{
		{"User", "IP Address", "Browser", "Result", "Time"},
	}
	for _, h := range state.History {
		result := "failure"
		if h.Success {
			result = "success"
		}
		historyRows = append(historyRows, []string{
			state.DisplayName(h.UserID),
			h.IPAddress,
			h.Browser,
			result,
			h.Timestamp.Format(time.DateTime),
		})
	}
	if len(state.History) == 0 {
		pterm.Info.Println("No login history")
	} else {
		pterm.DefaultSection.WithLevel(2).Println("Login History")
		_ = pterm.DefaultTable.WithHasHeader().WithData(historyRows).Render()
	}
}

func (a *App) renderAccounts(ctx context.Context) {
	accounts, err := a.client.Accounts(ctx)
	if err != nil {
		a.errorBanner(err)
		return
	}
	if len(accounts) == 0 {
		pterm.Info.Println("No accounts configured")
		return
	}

	rows := pterm.TableData{{"ID", "Account", "Name", "Region", "Root", "Active"}}
	for _, acc := range accounts {
		rows = append(rows, []string{
			fmt.Sprintf("%d", acc.ID),
			acc.AccountID,
			acc.AccountName,
			acc.Region,
			yesNo(acc.IsRoot),
			yesNo(acc.IsActive),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func (a *App) renderUsers(ctx context.Context) {
	users, err := a.client.Users(ctx)
	if err != nil {
		a.errorBanner(err)
		return
	}

	rows := pterm.TableData{{"ID", "Username", "Admin", "Active", "Failed Attempts", "Accounts", "Created"}}
	for _, u := range users {
		rows = append(rows, []string{
			fmt.Sprintf("%d", u.ID),
			u.Username,
			yesNo(u.IsAdmin),
			yesNo(u.IsActive),
			fmt.Sprintf("%d", u.LoginAttempts),
			fmt.Sprintf("%v", u.AccountIDs),
			u.CreatedAt.Format(time.DateOnly),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func (a *App) errorBanner(err error) {
	pterm.Error.Printfln("Request failed: %v (retry with 'refresh' or reopen the view)", err)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
