package assistant

import (
	"context"

	"github.com/nfrund/finassist/internal/finapi"
)

const (
	loginFailedText    = "Login failed. Please check your credentials."
	loginErrorText     = "An error occurred during login. Please try again."
	registerFailedText = "Registration failed. Please try again."
	registerErrorText  = "An error occurred during registration. Please try again."
)

// LoginForm holds the login overlay's fields.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm holds the register overlay's fields.
type RegisterForm struct {
	Username string `form:"username" validate:"required"`
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
	FullName string `form:"full_name"`
	Phone    string `form:"phone"`
}

// WelcomeBackText is the greeting shown once a user is known.
func WelcomeBackText(u finapi.User) string {
	return "Welcome back, " + u.DisplayName() + "! How can I assist you today?"
}

// CheckAuthStatus asks the upstream for the current account. A known user
// gets the chat screen and a greeting; anything else gets the welcome screen.
func (c *Controller) CheckAuthStatus(ctx context.Context) {
	info, err := c.api.Account(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if !finapi.IsUnauthorized(err) {
			c.logger.Warn("Account lookup failed", "error", err)
		}
		c.showWelcomeLocked()
		return
	}
	if info.User.Username == "" {
		c.logger.Warn("Account lookup returned no user")
		c.showWelcomeLocked()
		return
	}
	c.signedInLocked(info.User)
}

// HandleLogin submits the login overlay.
func (c *Controller) HandleLogin(ctx context.Context, form LoginForm) {
	if err := c.validate.Struct(form); err != nil {
		c.alert(MissingFieldsText)
		return
	}

	res, err := c.api.Login(ctx, finapi.Credentials{Username: form.Username, Password: form.Password})

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err != nil:
		c.logger.Error("Login error", "error", err)
		c.alertLocked(loginErrorText)
	case !res.Success || res.User == nil:
		c.alertLocked(messageOr(res.Message, loginFailedText))
	default:
		c.closeModalLocked(LoginModal)
		c.signedInLocked(*res.User)
	}
}

// HandleRegister submits the register overlay. A successful registration
// sends the visitor on to the login overlay.
func (c *Controller) HandleRegister(ctx context.Context, form RegisterForm) {
	if err := c.validate.Struct(form); err != nil {
		c.alert(MissingFieldsText)
		return
	}

	res, err := c.api.Register(ctx, finapi.Registration{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		FullName: form.FullName,
		Phone:    form.Phone,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err != nil:
		c.logger.Error("Registration error", "error", err)
		c.alertLocked(registerErrorText)
	case !res.Success:
		c.alertLocked(messageOr(res.Message, registerFailedText))
	default:
		c.alertLocked(RegisteredText)
		c.closeModalLocked(RegisterModal)
		c.page.Modal = LoginModal
	}
}

// Logout ends the upstream session. Failures are only logged and leave the
// page untouched.
func (c *Controller) Logout(ctx context.Context) {
	res, err := c.api.Logout(ctx)
	if err != nil {
		c.logger.Error("Logout error", "error", err)
		return
	}
	if !res.Success {
		return
	}

	c.mu.Lock()
	c.showWelcomeLocked()
	c.mu.Unlock()
	c.AddBotMessage(FarewellText)
}

func (c *Controller) signedInLocked(u finapi.User) {
	c.showChatLocked()
	c.updateUserInfoLocked(u)
	c.addBotMessageLocked(WelcomeBackText(u))
}

func (c *Controller) alert(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alertLocked(msg)
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
