package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StellaShiina/inventory-ui/internal/testbackend"
	"github.com/StellaShiina/inventory-ui/ui"
)

type cli struct {
	t       *testing.T
	api     string
	session string
}

func newCLI(t *testing.T) *cli {
	srv := testbackend.New(t)
	return &cli{t: t, api: srv.URL, session: filepath.Join(t.TempDir(), "session")}
}

func (c *cli) run(stdin string, args ...string) (string, string, error) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--api", c.api, "--session", c.session}, args...)
	err := run(context.Background(), full, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func (c *cli) ok(stdin string, args ...string) string {
	c.t.Helper()
	out, errOut, err := c.run(stdin, args...)
	require.NoError(c.t, err, "stderr: %s", errOut)
	return out
}

func (c *cli) signup() {
	c.t.Helper()
	c.ok("", "register", "--full-name", "Ana Souza", "--email", "ana@example.com",
		"-u", "ana", "-p", "secret1", "--confirm-password", "secret1", "--accept-terms")
	c.ok("", "login", "-u", "ana", "-p", "secret1")
}

func TestInventoryRoundTrip(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.run("", "items")
	assert.ErrorIs(t, err, errNotLoggedIn)

	c.signup()
	_, err = os.Stat(c.session)
	require.NoError(t, err, "login persists the session")

	out := c.ok("", "items")
	assert.Contains(t, out, ui.EmptyStateMessage)
	assert.Contains(t, out, "Total value: R$ 0.00")

	out = c.ok("", "add", "--name", "Widget", "--type", "Tool", "--quantity", "2", "--value", "5")
	assert.Contains(t, out, "OK - Product added!")
	assert.Contains(t, out, "Total items: 2")
	assert.Contains(t, out, "Total value: R$ 10.00")

	out = c.ok("", "items")
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "R$ 5.00")

	out = c.ok("", "items", "--html")
	assert.Contains(t, out, `data-action="edit"`)

	out = c.ok("", "edit", "1", "--quantity", "3")
	assert.Contains(t, out, "Total value: R$ 15.00")

	out = c.ok("", "report")
	assert.Contains(t, out, "Tool")

	out = c.ok("", "whoami")
	assert.Contains(t, out, "ana (Ana Souza) <ana@example.com>")

	out = c.ok("n\n", "delete", "1")
	assert.NotContains(t, out, "Product deleted")
	assert.Contains(t, c.ok("", "items"), "Widget")

	out = c.ok("y\n", "delete", "1")
	assert.Contains(t, out, "OK - Product deleted!")
	assert.Contains(t, c.ok("", "items"), ui.EmptyStateMessage)

	c.ok("", "logout")
	_, err = os.Stat(c.session)
	assert.True(t, os.IsNotExist(err), "logout removes the session file")
	_, _, err = c.run("", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestFailuresAreReported(t *testing.T) {
	c := newCLI(t)

	_, errOut, err := c.run("", "register", "--full-name", "Ana", "--email", "ana@example.com",
		"-u", "ana", "-p", "secret1", "--confirm-password", "secret1")
	assert.Error(t, err)
	assert.Contains(t, errOut, "You must accept the terms of use")

	_, errOut, err = c.run("nope!!\n", "login", "-u", "ana")
	assert.Error(t, err)
	assert.Contains(t, errOut, "Invalid username or password")

	c.signup()

	_, errOut, err = c.run("", "add", "--name", "Widget", "--type", "Tool", "--quantity", "two", "--value", "5")
	assert.Error(t, err)
	assert.Contains(t, errOut, "Quantity must be a whole number")

	_, errOut, err = c.run("", "add", "--name", "Widget", "--type", "Tool", "--quantity", "0", "--value", "5")
	assert.Error(t, err)
	assert.Contains(t, errOut, "Quantity must be greater than zero")

	_, _, err = c.run("", "edit", "99", "--name", "Ghost")
	assert.ErrorContains(t, err, "no product with id 99")

	_, _, err = c.run("", "delete", "abc", "-y")
	assert.ErrorContains(t, err, "invalid product id")

	_, _, err = c.run("", "frobnicate")
	assert.ErrorContains(t, err, "unknown command")
}
