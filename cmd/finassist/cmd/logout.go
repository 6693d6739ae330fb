package cmd

import (
	"fmt"
	"log/slog"

	"github.com/nfrund/finassist/internal/assistant"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		sess.ctrl.Logout(cmd.Context())

		last, ok := sess.ctrl.Page().LastMessage()
		if !ok || last.Text != assistant.FarewellText {
			slog.Warn("Upstream logout failed, forgetting the local session anyway")
		}
		if err := sess.forget(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
