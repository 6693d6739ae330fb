package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/nfrund/finassist/internal/assistant"
	"github.com/nfrund/finassist/internal/console"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long: `Start an interactive chat. Lines are sent to the assistant; lines starting
with a slash are commands (type /help to list them).

The upstream session is restored from and saved to FINASSIST_STATE_DIR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}

		sess, err := openSession(assistant.WithReplyDelay(cfg.ReplyDelay))
		if err != nil {
			return err
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          console.Prompt,
			HistoryFile:     filepath.Join(cfg.StateDir, "history"),
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		fmt.Fprintln(rl.Stdout(), "Finance Assistant. Type /help for commands, /quit to leave.")

		con := console.New(sess.ctrl, rl.Stdout())
		runErr := con.Run(cmd.Context(), rl)
		con.Close()

		if err := sess.save(); err != nil {
			return err
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
