package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nfrund/finassist/internal/assistant"
)

// Prompt is shown before each chat line.
const Prompt = "you> "

// LineReader is the part of *readline.Instance the chat loop uses.
type LineReader interface {
	Readline() (string, error)
	ReadPassword(prompt string) ([]byte, error)
	SetPrompt(prompt string)
}

const helpText = `Commands:
  /login               sign in
  /register            create an account
  /logout              sign out
  /action <label>      press an action button, e.g. /action View Budgets
  /dashboard           load and print the dashboard
  /alerts              list all alerts
  /help                show this help
  /quit                leave
Anything else is sent to the assistant.
`

// Run bootstraps the session the way a page load does and then reads lines
// until /quit, end of input or an interrupt on an empty line.
func (c *Console) Run(ctx context.Context, rl LineReader) error {
	c.ctrl.Reset()
	c.ctrl.CheckAuthStatus(ctx)
	c.Flush(ctx)

	for {
		rl.SetPrompt(Prompt)
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			quit, err := c.command(ctx, rl, line)
			if err != nil || quit {
				return err
			}
		} else {
			c.ctrl.SendMessage(ctx, line)
		}
		c.Flush(ctx)
	}
}

func (c *Console) command(ctx context.Context, rl LineReader, line string) (quit bool, err error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Fprint(c.out, helpText)
	case "/login":
		return false, c.login(ctx, rl)
	case "/register":
		return false, c.register(ctx, rl)
	case "/logout":
		c.ctrl.Logout(ctx)
	case "/action":
		if arg == "" {
			fmt.Fprintln(c.out, "usage: /action <label>")
			return false, nil
		}
		if assistant.CommandForButton(arg) == "" {
			fmt.Fprintf(c.out, "unknown action %q\n", arg)
			return false, nil
		}
		c.ctrl.PressActionButton(ctx, arg)
	case "/dashboard":
		snap := c.ctrl.LoadDashboardData(ctx)
		return false, c.WriteDashboard(c.out, snap)
	case "/alerts":
		alerts := c.ctrl.GetAlerts(ctx, false)
		if len(alerts) == 0 {
			fmt.Fprintln(c.out, "No alerts.")
		}
		for _, a := range alerts {
			mark := "*"
			if a.Read() {
				mark = " "
			}
			fmt.Fprintf(c.out, "%s %s: %s\n", mark, a.AlertType, a.Message)
		}
	default:
		fmt.Fprintf(c.out, "unknown command %s\n", name)
		fmt.Fprint(c.out, helpText)
	}
	return false, nil
}

func (c *Console) login(ctx context.Context, rl LineReader) error {
	c.ctrl.ShowModal(assistant.LoginModal)
	defer c.ctrl.CloseModal(assistant.LoginModal)

	username, err := ask(rl, "username: ")
	if err != nil {
		return err
	}
	password, err := rl.ReadPassword("password: ")
	if err != nil {
		return err
	}
	c.ctrl.HandleLogin(ctx, assistant.LoginForm{Username: username, Password: string(password)})
	return nil
}

func (c *Console) register(ctx context.Context, rl LineReader) error {
	c.ctrl.ShowModal(assistant.RegisterModal)
	defer c.ctrl.CloseModal(assistant.RegisterModal)

	var form assistant.RegisterForm
	var err error
	if form.Username, err = ask(rl, "username: "); err != nil {
		return err
	}
	if form.Email, err = ask(rl, "email: "); err != nil {
		return err
	}
	password, err := rl.ReadPassword("password: ")
	if err != nil {
		return err
	}
	form.Password = string(password)
	if form.FullName, err = ask(rl, "full name (optional): "); err != nil {
		return err
	}
	if form.Phone, err = ask(rl, "phone (optional): "); err != nil {
		return err
	}
	c.ctrl.HandleRegister(ctx, form)
	if c.ctrl.Page().Modal != assistant.LoginModal {
		return nil
	}
	c.Flush(ctx)
	return c.login(ctx, rl)
}

func ask(rl LineReader, prompt string) (string, error) {
	rl.SetPrompt(prompt)
	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
