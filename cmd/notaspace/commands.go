package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/notaspace/notaspace-client/internal/api"
	"github.com/notaspace/notaspace-client/internal/api/middleware"
	"github.com/notaspace/notaspace-client/internal/core/domain"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, a *app, args []string, _ io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.Agent.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if a.cfg.Agent.Secret == "" {
		return errors.New("AGENT_SECRET is required to serve the agent")
	}

	workers, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.dispatcher.Start(workers)

	if a.session.Restore(ctx) {
		a.log.Info().Msg("restored stored session")
	}

	e := api.NewRouter(a.agentDeps())
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", *addr).Msg("agent listening")
		if err := e.Start(*addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down agent")
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	// Pending edits of the open page go out before the workers stop.
	a.editor.Close()
	a.autosaver.Stop()
	if err := a.dispatcher.Drain(shutdownCtx); err != nil {
		a.log.Warn().Err(err).Msg("unsent edits dropped at shutdown")
	}
	return nil
}

// identityFlags registers the channel flags shared by login, send-code and verify.
func identityFlags(fs *flag.FlagSet) func() domain.Identity {
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	country := fs.String("country", domain.DefaultCountryCode, "country dialing code for -phone")
	return func() domain.Identity {
		if *email != "" {
			if *phone != "" {
				return domain.Identity{Email: *email, Phone: *phone, CountryCode: *country}
			}
			return domain.EmailIdentity(*email)
		}
		if *phone == "" {
			return domain.Identity{}
		}
		return domain.PhoneIdentity(*phone, *country)
	}
}

func runLogin(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	identity := identityFlags(fs)
	password := fs.String("password", "", "password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw, err := secretOrStdin(*password, "password")
	if err != nil {
		return err
	}
	if err := a.session.Login(ctx, identity(), pw); err != nil {
		return err
	}
	return printSignedIn(out, a)
}

func runSendCode(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("send-code", flag.ContinueOnError)
	identity := identityFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.session.SendCode(ctx, identity()); err != nil {
		return err
	}
	fmt.Fprintln(out, "code sent; run `notaspace verify` with the same identity and -code")
	return nil
}

func runVerify(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	identity := identityFlags(fs)
	code := fs.String("code", "", "four digit code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.session.CheckCode(ctx, identity(), *code); err != nil {
		return err
	}
	return printSignedIn(out, a)
}

func runSignUp(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("sign-up", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw, err := secretOrStdin(*password, "password")
	if err != nil {
		return err
	}
	if err := a.session.SignUp(ctx, *name, *email, pw); err != nil {
		return err
	}
	return printSignedIn(out, a)
}

func runLogout(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	local := fs.Bool("local", false, "forget the stored token without contacting the server")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !a.session.Restore(ctx) {
		fmt.Fprintln(out, "not signed in")
		return nil
	}
	if *local {
		a.session.ForgetLocal(ctx)
		fmt.Fprintln(out, "local session forgotten")
		return nil
	}
	if err := a.session.Logout(ctx); err != nil {
		return fmt.Errorf("%w (use -local to forget the session anyway)", err)
	}
	fmt.Fprintln(out, "signed out")
	return nil
}

func runStatus(ctx context.Context, a *app, _ []string, out io.Writer) error {
	a.session.Restore(ctx)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(a.session.State())
}

func runPages(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pages", flag.ContinueOnError)
	search := fs.String("search", "", "title filter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !a.session.Restore(ctx) {
		return errors.New("not signed in")
	}
	a.pageList.SetSearch(*search)
	if err := a.pageList.Load(ctx); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UUID\tTYPE\tFAV\tUPDATED\tTITLE")
	for _, p := range a.pageList.State().Pages {
		fav := ""
		if p.Favorite {
			fav = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.UUID, p.Type, fav, p.UpdatedAt.Local().Format(time.DateTime), p.Title)
	}
	return tw.Flush()
}

func runAgentToken(_ context.Context, a *app, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("agent-token", flag.ContinueOnError)
	scope := fs.String("scope", middleware.ScopeRead+","+middleware.ScopeWrite, "comma separated scopes")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	subject := fs.String("subject", "cli", "token subject")
	if err := fs.Parse(args); err != nil {
		return err
	}
	scopes := strings.FieldsFunc(*scope, func(r rune) bool { return r == ',' || r == ' ' })
	tok, err := middleware.IssueToken(a.cfg.Agent.Secret, *subject, scopes, *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, tok)
	return nil
}

func printSignedIn(out io.Writer, a *app) error {
	st := a.session.State()
	if st.CurrentUser != nil {
		fmt.Fprintf(out, "signed in as %s\n", st.CurrentUser.Name)
		return nil
	}
	fmt.Fprintln(out, "signed in")
	return nil
}

// secretOrStdin returns value, or reads one line from stdin when it is empty.
func secretOrStdin(value, what string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(os.Stderr, "%s: ", what)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", what, err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("%s is required", what)
	}
	return line, nil
}
