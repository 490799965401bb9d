// Package register drives the signup form. Client-side rules run first and
// stop at the first failure; only a clean form reaches the server.
package register

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/StellaShiina/inventory-ui/client"
	"github.com/StellaShiina/inventory-ui/ui"
	"github.com/StellaShiina/inventory-ui/validate"
)

// EntryPath is the login page, shown after a successful signup.
const EntryPath = "/"

const (
	msgSuccess     = "OK - Account created! Redirecting..."
	msgRejected    = "Could not create account"
	msgUnreachable = "Could not connect to the server"
)

var ErrBusy = errors.New("registration already in progress")

type State int

const (
	StateIdle State = iota
	// StateRejected means the form failed a client-side rule; nothing was sent.
	StateRejected
	StateSubmitting
	StateRedirecting
	// StateFailed means the server refused or could not be reached.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRejected:
		return "rejected"
	case StateSubmitting:
		return "submitting"
	case StateRedirecting:
		return "redirecting"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

type Page interface {
	Show(ui.Result)
	SetSubmitting(busy bool)
	Redirect(target string, after time.Duration)
}

type Registrar interface {
	Register(ctx context.Context, r client.Registration) (*client.AuthResponse, error)
}

// Form is the signup form as typed.
type Form = validate.Signup

type Controller struct {
	api           Registrar
	page          Page
	logger        *zap.Logger
	redirectDelay time.Duration
	state         State
}

func NewController(api Registrar, page Page, logger *zap.Logger, redirectDelay time.Duration) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{api: api, page: page, logger: logger, redirectDelay: redirectDelay}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Submit(ctx context.Context, f Form) error {
	if c.state == StateSubmitting || c.state == StateRedirecting {
		return ErrBusy
	}

	f = f.Normalize()
	if err := validate.Registration(f); err != nil {
		c.state = StateRejected
		c.page.Show(ui.Failure(err.Error()))
		return ui.Invalid(err)
	}

	c.state = StateSubmitting
	c.page.SetSubmitting(true)

	_, err := c.api.Register(ctx, client.Registration{
		FullName: f.FullName,
		Email:    f.Email,
		Phone:    f.Phone,
		Username: f.Username,
		Password: f.Password,
	})
	if err != nil {
		c.logger.Warn("registration failed", zap.String("username", f.Username), zap.Error(err))
		c.page.SetSubmitting(false)
		c.state = StateFailed
		c.page.Show(ui.FailureFrom(err, msgRejected, msgUnreachable))
		return err
	}

	c.state = StateRedirecting
	c.page.Show(ui.Success(msgSuccess))
	c.page.Redirect(EntryPath, c.redirectDelay)
	return nil
}
