package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

func TestRun_UsageAndUnknownCommand(t *testing.T) {
	var stderr bytes.Buffer
	if code := run(nil, io.Discard, &stderr); code != 2 {
		t.Fatalf("expected exit 2 without a command, got %d", code)
	}
	if !strings.Contains(stderr.String(), "agent-token") || !strings.Contains(stderr.String(), "KEYCHAIN_PASSPHRASE") {
		t.Fatalf("usage must list commands and required environment, got %q", stderr.String())
	}

	stderr.Reset()
	if code := run([]string{"fly"}, io.Discard, &stderr); code != 2 {
		t.Fatalf("expected exit 2 for unknown command, got %d", code)
	}
	if !strings.Contains(stderr.String(), `unknown command "fly"`) {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"serve", "login", "send-code", "verify", "sign-up", "logout", "status", "pages", "agent-token"} {
		if _, ok := lookup(name); !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestIdentityFlags(t *testing.T) {
	cases := []struct {
		args []string
		want domain.Identity
	}{
		{[]string{"-email", "ann@example.com"}, domain.EmailIdentity("ann@example.com")},
		{[]string{"-phone", "9991234567"}, domain.PhoneIdentity("9991234567", domain.DefaultCountryCode)},
		{[]string{"-phone", "5551234", "-country", "+1"}, domain.PhoneIdentity("5551234", "+1")},
		{nil, domain.Identity{}},
	}
	for _, tc := range cases {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		identity := identityFlags(fs)
		if err := fs.Parse(tc.args); err != nil {
			t.Fatalf("parse %v: %v", tc.args, err)
		}
		if got := identity(); got != tc.want {
			t.Errorf("%v: got %+v, want %+v", tc.args, got, tc.want)
		}
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	identity := identityFlags(fs)
	_ = fs.Parse([]string{"-email", "a@b.c", "-phone", "999"})
	if err := identity().Validate(); err == nil {
		t.Fatalf("both channels must fail validation")
	}
}

func withoutPassphrase(t *testing.T) {
	t.Helper()
	t.Setenv("KEYCHAIN_PASSPHRASE", "unset")
	os.Unsetenv("KEYCHAIN_PASSPHRASE")
	t.Setenv("KEYCHAIN_BACKEND", "file")
	t.Setenv("KEYCHAIN_PATH", filepath.Join(t.TempDir(), "keychain.json"))
}

func TestRun_AgentTokenSkipsKeychain(t *testing.T) {
	withoutPassphrase(t)
	t.Setenv("AGENT_SECRET", "s3cret")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"agent-token", "-scope", "read"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if strings.Count(strings.TrimSpace(stdout.String()), ".") != 2 {
		t.Fatalf("expected a JWT, got %q", stdout.String())
	}
}

func TestRun_KeychainCommandExplainsMissingPassphrase(t *testing.T) {
	withoutPassphrase(t)

	var stderr bytes.Buffer
	if code := run([]string{"status"}, io.Discard, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "set KEYCHAIN_PASSPHRASE") {
		t.Fatalf("expected a passphrase hint, got %q", stderr.String())
	}
}
