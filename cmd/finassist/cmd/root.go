package cmd

import (
	"os"
	"strings"

	"github.com/nfrund/finassist/internal/config"
	"github.com/nfrund/finassist/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	apiURLFlag string
)

var rootCmd = &cobra.Command{
	Use:   "finassist",
	Short: "Finance Assistant front end",
	Long: `finassist serves the Finance Assistant web front end and talks to the
financial API from the terminal.

Available commands:
  serve        Run the web front end
  chat         Chat with the assistant in the terminal
  login        Sign in and remember the session
  logout       Sign out and forget the session
  dashboard    Print accounts, budgets, goals, investments and spending
  query        Run one of the financial tools

Configuration comes from the environment (and an optional .env file).
Use "finassist [command] --help" for more information about a command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if apiURLFlag != "" {
			c.APIURL = strings.TrimRight(apiURLFlag, "/")
		}
		logging.New(c.LogFormat, c.LogLevel, cmd.ErrOrStderr())
		cfg = c
		return nil
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "financial API base URL (overrides FINASSIST_API_URL)")
}
