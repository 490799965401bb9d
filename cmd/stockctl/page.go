package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/StellaShiina/inventory-ui/dashboard"
	"github.com/StellaShiina/inventory-ui/inventory"
	"github.com/StellaShiina/inventory-ui/ui"
)

// terminal is the CLI's page for all three controllers. Messages go to out
// (success) or errOut (failure); the table and summary are kept until the
// command prints them.
type terminal struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	// ttyFd is the descriptor of in when it is a terminal, -1 otherwise.
	ttyFd  int

	// assumeYes answers every confirmation with yes.
	assumeYes bool

	rows    []inventory.Row
	summary inventory.Summary
	editing *dashboard.EditForm
	target  string
}

func newTerminal(in io.Reader, out, errOut io.Writer) *terminal {
	t := &terminal{in: bufio.NewReader(in), out: out, errOut: errOut, ttyFd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.ttyFd = int(f.Fd())
	}
	return t
}

func (t *terminal) Show(r ui.Result) {
	if r.OK() {
		fmt.Fprintln(t.out, r.Message)
		return
	}
	fmt.Fprintln(t.errOut, "error: "+r.Message)
}

func (t *terminal) SetSubmitting(busy bool) {
	if busy {
		fmt.Fprintln(t.errOut, "...")
	}
}

// Redirect records the target; a CLI has nowhere to wait for.
func (t *terminal) Redirect(target string, _ time.Duration) { t.target = target }

func (t *terminal) Navigate(target string) { t.target = target }

func (t *terminal) RenderItems(rows []inventory.Row) { t.rows = rows }

func (t *terminal) RenderSummary(s inventory.Summary) { t.summary = s }

func (t *terminal) ResetAddForm() {}

func (t *terminal) OpenEditModal(f dashboard.EditForm) { t.editing = &f }

func (t *terminal) CloseEditModal() { t.editing = nil }

func (t *terminal) Confirm(prompt string) bool {
	if t.assumeYes {
		return true
	}
	switch t.ask(prompt + " [y/N] ") {
	case "y", "yes":
		return true
	}
	return false
}

// ask prompts on errOut and reads one trimmed line from in. EOF reads as an
// empty answer.
func (t *terminal) ask(prompt string) string {
	fmt.Fprint(t.errOut, prompt)
	line, _ := t.in.ReadString('\n')
	return strings.ToLower(strings.TrimSpace(line))
}

// askRaw is ask without case folding or trimming beyond the line ending.
func (t *terminal) askRaw(prompt string) string {
	fmt.Fprint(t.errOut, prompt)
	line, _ := t.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// askSecret reads a password. On a terminal echo is turned off; piped input
// is read like askRaw.
func (t *terminal) askSecret(prompt string) string {
	if t.ttyFd < 0 {
		return t.askRaw(prompt)
	}
	fmt.Fprint(t.errOut, prompt)
	b, err := term.ReadPassword(t.ttyFd)
	fmt.Fprintln(t.errOut)
	if err != nil {
		return ""
	}
	return string(b)
}

func (t *terminal) printTable() error {
	if err := ui.WriteItems(t.out, t.rows); err != nil {
		return err
	}
	return t.printSummary()
}

func (t *terminal) printSummary() error {
	fmt.Fprintln(t.out)
	return ui.WriteSummary(t.out, t.summary)
}

func (t *terminal) printHTML() error {
	html, err := ui.ItemsHTML(t.rows)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(t.out, html)
	return err
}
