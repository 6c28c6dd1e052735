// Command notaspace is the NotaSpace command line client. It signs in, keeps
// the session token in the configured keychain and can run a loopback agent
// that exposes the client screens as a JSON API.
//
//	@title						NotaSpace local agent
//	@version					1.0
//	@description				Loopback API over the NotaSpace client session and screens.
//	@host						127.0.0.1:7878
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/notaspace/notaspace-client/internal/pkg/config"
	"github.com/notaspace/notaspace-client/pkg/logger"
)

type command struct {
	name    string
	summary string
	// keychain is false for commands that never touch the stored session.
	keychain bool
	run      func(ctx context.Context, a *app, args []string, out io.Writer) error
}

var commands = []command{
	{"serve", "run the local agent API", true, runServe},
	{"login", "sign in with email or phone and password", true, runLogin},
	{"send-code", "send a one-time login code", true, runSendCode},
	{"verify", "sign in with a received code", true, runVerify},
	{"sign-up", "create an account", true, runSignUp},
	{"logout", "end the session (-local only forgets the stored token)", true, runLogout},
	{"status", "print the session state", true, runStatus},
	{"pages", "list pages, most recently updated first", true, runPages},
	{"agent-token", "issue a bearer token for the local agent", false, runAgentToken},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		usage(stderr)
		return 2
	}
	cmd, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(stderr, "notaspace: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	cfg := config.Load()
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Output:  stderr,
		Service: "notaspace",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, cmd.keychain)
	if err != nil {
		fmt.Fprintf(stderr, "notaspace: %v\n", err)
		return 1
	}
	defer a.close(context.Background())

	if err := cmd.run(ctx, a, args[1:], stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintf(stderr, "notaspace %s: %v\n", cmd.name, err)
		return 1
	}
	return 0
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: notaspace <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "environment:")
	fmt.Fprintln(w, "  KEYCHAIN_PASSPHRASE  required by the file, redis and mongo keychain backends")
	fmt.Fprintln(w, "  KEYCHAIN_BACKEND     file (default), redis, mongo or memory")
	fmt.Fprintln(w, "  AGENT_SECRET         signing key for serve and agent-token")
}
