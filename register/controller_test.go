package register

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StellaShiina/inventory-ui/client"
	"github.com/StellaShiina/inventory-ui/ui"
	"github.com/StellaShiina/inventory-ui/validate"
)

type fakePage struct {
	results    []ui.Result
	busy       []bool
	redirected string
	after      time.Duration
}

func (p *fakePage) Show(r ui.Result)                   { p.results = append(p.results, r) }
func (p *fakePage) SetSubmitting(busy bool)            { p.busy = append(p.busy, busy) }
func (p *fakePage) Redirect(t string, d time.Duration) { p.redirected, p.after = t, d }

func (p *fakePage) last() ui.Result { return p.results[len(p.results)-1] }

type fakeAPI struct {
	calls int
	got   client.Registration
	err   error
}

func (a *fakeAPI) Register(_ context.Context, r client.Registration) (*client.AuthResponse, error) {
	a.calls++
	a.got = r
	if a.err != nil {
		return nil, a.err
	}
	return &client.AuthResponse{Message: "User registered successfully"}, nil
}

func form() Form {
	return Form{
		FullName:        " Ana Souza ",
		Email:           "ana@example.com ",
		Phone:           "555-0100",
		Username:        "ab_1",
		Password:        "abcdef",
		ConfirmPassword: "abcdef",
		AcceptTerms:     true,
	}
}

func TestClientSideRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		want   error
	}{
		{"terms", func(f *Form) { f.AcceptTerms = false }, validate.ErrTermsNotAccepted},
		{"short password", func(f *Form) { f.Password, f.ConfirmPassword = "abc12", "abc12" }, validate.ErrPasswordTooShort},
		{"mismatch", func(f *Form) { f.Password, f.ConfirmPassword = "abcdef", "abcdeg" }, validate.ErrPasswordMismatch},
		{"short username", func(f *Form) { f.Username = "ab" }, validate.ErrUsernameTooShort},
		{"bad username", func(f *Form) { f.Username = "ab$" }, validate.ErrUsernameCharset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, page := &fakeAPI{}, &fakePage{}
			c := NewController(api, page, nil, time.Second)
			f := form()
			tt.mutate(&f)

			err := c.Submit(context.Background(), f)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, ui.IsInvalid(err))
			assert.Zero(t, api.calls, "no request may be sent")
			assert.Empty(t, page.busy)
			assert.Equal(t, tt.want.Error(), page.last().Message)
			assert.Equal(t, StateRejected, c.State())
		})
	}
}

func TestSubmitSendsOnlyAccountFields(t *testing.T) {
	api, page := &fakeAPI{}, &fakePage{}
	c := NewController(api, page, nil, 2*time.Second)

	require.NoError(t, c.Submit(context.Background(), form()))
	assert.Equal(t, client.Registration{
		FullName: "Ana Souza",
		Email:    "ana@example.com",
		Phone:    "555-0100",
		Username: "ab_1",
		Password: "abcdef",
	}, api.got)
	assert.Equal(t, EntryPath, page.redirected)
	assert.Equal(t, 2*time.Second, page.after)
	assert.True(t, page.last().OK())
	assert.Equal(t, StateRedirecting, c.State())
	assert.ErrorIs(t, c.Submit(context.Background(), form()), ErrBusy)
}

func TestServerRefusal(t *testing.T) {
	api := &fakeAPI{err: &client.APIError{StatusCode: http.StatusBadRequest, Message: "Username already exists"}}
	page := &fakePage{}
	c := NewController(api, page, nil, time.Second)

	assert.Error(t, c.Submit(context.Background(), form()))
	assert.Equal(t, "Username already exists", page.last().Message)
	assert.Equal(t, []bool{true, false}, page.busy)
	assert.Equal(t, StateFailed, c.State())
	assert.Empty(t, page.redirected)

	api.err = errors.New("dial tcp: refused")
	assert.Error(t, c.Submit(context.Background(), form()))
	assert.Equal(t, msgUnreachable, page.last().Message)
	assert.Equal(t, 2, api.calls)
}
