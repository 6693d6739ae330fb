package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nfrund/finassist/internal/assistant"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	Long: `Sign in to the financial API. The password is read without echo when
stdin is a terminal, otherwise from the next line of stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		username := loginUsername
		if username == "" {
			fmt.Fprint(out, "username: ")
			line, err := readLine(in)
			if err != nil {
				return err
			}
			username = line
		}
		fmt.Fprint(out, "password: ")
		password, err := readPassword(cmd, in)
		if err != nil {
			return err
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		sess.ctrl.HandleLogin(cmd.Context(), assistant.LoginForm{Username: username, Password: password})

		p := sess.ctrl.Take()
		if len(p.Alerts) > 0 {
			return errors.New(strings.Join(p.Alerts, "; "))
		}
		if err := sess.save(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Logged in as %s\n", p.User.DisplayName())
		return nil
	},
}

// readPassword reads without echo from a terminal stdin and falls back to a
// plain line otherwise.
func readPassword(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(in)
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted when empty)")
	rootCmd.AddCommand(loginCmd)
}
