package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mkraev/costlens/internal/client/authority"
	"github.com/mkraev/costlens/internal/client/config"
)

func newApp(cmd *cobra.Command) (*App, error) {
	return NewApp(cmd.Context(), config.LoadConfig())
}

var rootCmd = &cobra.Command{
	Use:     "costlens",
	Short:   "Terminal client for the cloud cost-management platform",
	Long:    "costlens browses the cost platform's dashboards from the terminal,\nkeeping a locally cached session that is re-validated on start.",
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Run(cmd.Context())
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		app.session.Restore(ctx)
		if user := app.session.CurrentUser(); user != nil {
			pterm.Info.Printfln("Already signed in as %s", user.Username)
			return nil
		}

		username, err := GetSimpleText(app.reader, "Username", os.Stdout)
		if err != nil {
			return err
		}
		password, err := GetPassword(os.Stdout)
		if err != nil {
			return err
		}

		if err := app.session.Login(ctx, username, password); err != nil {
			if errors.Is(err, authority.ErrInvalidCredentials) {
				// The authority's message is shown verbatim (it carries the
				// remaining-attempts and lockout wording).
				return fmt.Errorf("%s", err.Error())
			}
			return err
		}
		pterm.Success.Printfln("Signed in as %s", username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		app.session.Restore(ctx)
		app.session.Logout(ctx)
		pterm.Info.Println("Logged out")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		app.session.Restore(cmd.Context())
		app.printStatus()
		return nil
	},
}

func init() {
	// Config flags (-a, -d, -t, -c/-config) are parsed by the config
	// package from the raw argument list; cobra only needs to tolerate them.
	rootCmd.PersistentFlags().StringP("server-url", "a", "", "base URL of the platform API")
	rootCmd.PersistentFlags().StringP("cache-dsn", "d", "", "sqlite DSN of the local session cache")
	rootCmd.PersistentFlags().IntP("timeout", "t", 0, "request timeout (seconds)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to JSON config file")

	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd)
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}
