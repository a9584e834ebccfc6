package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/plugfox/foxy-fib/internal/config"
	"github.com/stretchr/testify/require"
)

var decimalLine = regexp.MustCompile(`^(0|[1-9][0-9]*)\n$`)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T, enabled bool) *config.Config {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			Enabled:    enabled,
			Driver:     "sqlite3",
			Connection: fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		},
	}
}

func TestRun(t *testing.T) {
	testcases := []struct {
		Name     string
		N        int64
		Expected string
	}{
		{Name: "fib(0)", N: 0, Expected: "0\n"},
		{Name: "fib(10)", N: 10, Expected: "55\n"},
		{Name: "fib(26)", N: 26, Expected: "121393\n"},
		{Name: "fib(35)", N: 35, Expected: "9227465\n"},
	}

	for _, testcase := range testcases {
		t.Run(testcase.Name, func(t *testing.T) {
			var out bytes.Buffer
			err := Run(context.Background(), testConfig(t, true), discardLogger(), testcase.N, &out)
			require.NoError(t, err)
			require.Equal(t, testcase.Expected, out.String())
			require.Regexp(t, decimalLine, out.String())
		})
	}
}

func TestRunWithoutLedger(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), testConfig(t, false), discardLogger(), 26, &out))
	require.Equal(t, "121393\n", out.String())
}

func TestRunBrokenLedgerStillPrints(t *testing.T) {
	cfg := testConfig(t, true)
	cfg.Database.Driver = "oracle"

	var out, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	require.NoError(t, Run(context.Background(), cfg, logger, 10, &out))
	require.Equal(t, "55\n", out.String())
	require.Contains(t, logs.String(), "results ledger unavailable")
}

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestRunWriteFailure(t *testing.T) {
	err := Run(context.Background(), testConfig(t, false), discardLogger(), 10, failingWriter{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "writing result")
}

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()

	previous, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(previous)
	})
}

func TestExecute(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, Execute(26, &stdout, &stderr))
	require.Equal(t, "121393\n", stdout.String())
	require.NotContains(t, stderr.String(), "config load failed")
}

func TestExecuteFallsBackToDefaultConfig(t *testing.T) {
	testcases := []struct {
		Name string
		Vars map[string]string
		Env  string
	}{
		{Name: "Malformed whitelist", Vars: map[string]string{"CONFIG_PATH": "", "TELEGRAM_WHITELIST": "abc"}},
		{Name: "Malformed port", Vars: map[string]string{"CONFIG_PATH": "", "API_PORT": "http"}},
		{Name: "Missing config file", Vars: map[string]string{"CONFIG_PATH": "/nonexistent/config.yml"}},
		{Name: "Broken .env file", Vars: map[string]string{"CONFIG_PATH": ""}, Env: "FOO=\"unterminated\n"},
	}

	for _, testcase := range testcases {
		t.Run(testcase.Name, func(t *testing.T) {
			for key, value := range testcase.Vars {
				t.Setenv(key, value)
			}

			dir := t.TempDir()
			if testcase.Env != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(testcase.Env), 0o600))
			}
			chdir(t, dir)

			var stdout, stderr bytes.Buffer
			require.Equal(t, 0, Execute(10, &stdout, &stderr))
			require.Equal(t, "55\n", stdout.String())
			require.Contains(t, stderr.String(), "config load failed, using defaults")
		})
	}
}

func TestLedgerEnabled(t *testing.T) {
	testcases := []struct {
		Name     string
		Config   config.DatabaseConfig
		Expected bool
	}{
		{Name: "Defaults", Config: config.Defaults().Database, Expected: false},
		{Name: "Empty connection", Config: config.DatabaseConfig{Enabled: true, Driver: "sqlite3"}, Expected: false},
		{Name: "Disabled", Config: config.DatabaseConfig{Enabled: false, Driver: "sqlite3", Connection: "fib.db"}, Expected: false},
		{Name: "File database", Config: config.DatabaseConfig{Enabled: true, Driver: "sqlite3", Connection: "fib.db"}, Expected: true},
		{Name: "Postgres", Config: config.DatabaseConfig{Enabled: true, Driver: "postgres", Connection: "host=localhost"}, Expected: true},
	}

	for _, testcase := range testcases {
		t.Run(testcase.Name, func(t *testing.T) {
			require.Equal(t, testcase.Expected, ledgerEnabled(&testcase.Config))
		})
	}
}
