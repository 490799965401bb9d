// Command stockctl is a terminal front end for the inventory panel. It drives
// the same login, register and dashboard controllers a browser page would.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/StellaShiina/inventory-ui/client"
	"github.com/StellaShiina/inventory-ui/config"
	"github.com/StellaShiina/inventory-ui/dashboard"
	"github.com/StellaShiina/inventory-ui/logging"
)

type app struct {
	cfg    *config.Config
	api    *client.Client
	term   *terminal
	logger *zap.Logger
}

func (a *app) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("stockctl "+name, pflag.ContinueOnError)
	fs.SetOutput(a.term.errOut)
	return fs
}

func (a *app) dashboard() *dashboard.Controller {
	return dashboard.NewController(a.api, a.term, a.logger)
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":    {"login [-u user] [-p password]", runLogin},
	"register": {"register --full-name N --email E --username U [--phone P] --accept-terms", runRegister},
	"logout":   {"logout", runLogout},
	"items":    {"items [--html]", runItems},
	"add":      {"add --name N --type T --quantity Q --value V", runAdd},
	"edit":     {"edit ID [--name N] [--type T] [--quantity Q] [--value V]", runEdit},
	"delete":   {"delete ID [-y]", runDelete},
	"report":   {"report", runReport},
	"whoami":   {"whoami", runWhoami},
}

var errNotLoggedIn = errors.New("not logged in; run 'stockctl login' first")

// shownError wraps an error the page has already reported to the user.
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return shownError{err}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		var se shownError
		if !errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, "stockctl: "+err.Error())
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	config.LoadEnv()
	cfg := config.LoadConfig()

	global := pflag.NewFlagSet("stockctl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(stderr)
	apiURL := global.String("api", cfg.APIURL, "backend base URL")
	sessionFile := global.String("session", cfg.SessionFile, "file holding the session token")
	timeout := global.Duration("timeout", cfg.RequestTimeout, "per-request timeout")
	logLevel := global.String("log-level", "warn", "log level: debug, info, warn or error")
	global.Usage = func() { usage(stderr, global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr, global)
		return errors.New("no command given")
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	logger, err := logging.NewConsole(*logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if *sessionFile == "" {
		if *sessionFile, err = client.DefaultSessionFile(); err != nil {
			return fmt.Errorf("locate session file: %w", err)
		}
	}
	api, err := client.New(*apiURL, client.WithTimeout(*timeout), client.WithLogger(logger))
	if err != nil {
		return err
	}
	if _, err := api.LoadSession(*sessionFile); err != nil {
		return err
	}

	a := &app{cfg: cfg, api: api, term: newTerminal(stdin, stdout, stderr), logger: logger}
	err = cmd.run(ctx, a, rest[1:])
	if errors.Is(err, pflag.ErrHelp) {
		err = nil
	}
	if serr := api.SaveSession(*sessionFile); serr != nil {
		logger.Warn("saving session", zap.String("path", *sessionFile), zap.Error(serr))
		if err == nil {
			err = serr
		}
	}
	return err
}

func usage(w io.Writer, global *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage: stockctl [flags] <command> [args]")
	fmt.Fprintln(w, "\nCommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, "  "+commands[name].usage)
	}
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprint(w, global.FlagUsages())
}
