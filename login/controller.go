// Package login drives the sign-in form: validate, submit once, then either
// redirect to the dashboard or hand the form back with an error.
package login

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/StellaShiina/inventory-ui/client"
	"github.com/StellaShiina/inventory-ui/ui"
	"github.com/StellaShiina/inventory-ui/validate"
)

// DashboardPath is where a successful login leads.
const DashboardPath = "/dashboard"

const (
	msgSuccess     = "OK - Logged in! Redirecting..."
	msgRejected    = "Login failed"
	msgUnreachable = "Could not connect to the server"
)

// ErrBusy is returned when a submission is already in flight or the page is
// about to navigate away.
var ErrBusy = errors.New("login already in progress")

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateRedirecting
	// StateFailed is idle with an error on display.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateRedirecting:
		return "redirecting"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Page is what the controller needs from the front end.
type Page interface {
	Show(ui.Result)
	// SetSubmitting disables the form and shows a loading label while busy.
	SetSubmitting(busy bool)
	// Redirect navigates to target once after has elapsed.
	Redirect(target string, after time.Duration)
}

type Authenticator interface {
	Login(ctx context.Context, creds client.Credentials) (*client.AuthResponse, error)
}

type Form struct {
	Username string
	Password string
}

type Controller struct {
	api           Authenticator
	page          Page
	logger        *zap.Logger
	redirectDelay time.Duration
	state         State
}

func NewController(api Authenticator, page Page, logger *zap.Logger, redirectDelay time.Duration) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{api: api, page: page, logger: logger, redirectDelay: redirectDelay}
}

func (c *Controller) State() State { return c.state }

// Submit validates f and, when it passes, posts the credentials.
func (c *Controller) Submit(ctx context.Context, f Form) error {
	if c.state == StateSubmitting || c.state == StateRedirecting {
		return ErrBusy
	}

	username := strings.TrimSpace(f.Username)
	if err := validate.Login(username, f.Password); err != nil {
		return c.fail(ui.Invalid(err))
	}

	c.state = StateSubmitting
	c.page.SetSubmitting(true)

	_, err := c.api.Login(ctx, client.Credentials{Username: username, Password: f.Password})
	if err != nil {
		c.page.SetSubmitting(false)
		return c.fail(err)
	}

	c.state = StateRedirecting
	c.page.Show(ui.Success(msgSuccess))
	c.page.Redirect(DashboardPath, c.redirectDelay)
	return nil
}

func (c *Controller) fail(err error) error {
	if !ui.IsInvalid(err) {
		c.logger.Warn("login failed", zap.Error(err))
	}
	c.state = StateFailed
	c.page.Show(ui.FailureFrom(err, msgRejected, msgUnreachable))
	return err
}
