package cmd

import (
	"errors"
	"io"

	"github.com/nfrund/finassist/internal/console"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in, run finassist login first")

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print accounts, budgets, goals, investments and spending",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		sess.ctrl.CheckAuthStatus(ctx)
		if !sess.ctrl.Page().LoggedIn() {
			return errNotLoggedIn
		}

		snap := sess.ctrl.LoadDashboardData(ctx)
		return console.New(sess.ctrl, io.Discard).WriteDashboard(cmd.OutOrStdout(), snap)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
