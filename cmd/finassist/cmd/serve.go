package cmd

import (
	"github.com/nfrund/finassist/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front end",
	Long: `Serve the Finance Assistant page and its htmx endpoints on FINASSIST_ADDR.
Every browser gets its own assistant and upstream session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := server.New(server.Dependencies{Config: cfg})
		if err != nil {
			return err
		}
		s.RegisterRoutes()
		return s.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
