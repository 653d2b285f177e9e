package main

// Notes:
// - runMain is exercised through an injected Environment: process env vars,
//   .env loading, catalog reads, and the preview server are all replaced, so
//   these tests run in parallel and never bind a port.
// - main() itself (maxprocs, os.Exit) is not tested.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	booklist "github.com/alnah/go-booklist"
	"github.com/alnah/go-booklist/internal/server"
)

const sampleCSV = "Book Title,Author,Key themes,Description,ISBN,Target Age\n" +
	"Dune,Frank Herbert,\"politics, ecology\",A desert planet,0441013597,Adult\n"

const sampleHTML = "<table>\n" +
	"    <thead>\n" +
	"        <tr>\n" +
	"            <th class='mobile-title'>Title</th>\n" +
	"            <th class='desktop-only'>Author</th>\n" +
	"            <th class='desktop-only'>Key themes</th>\n" +
	"            <th class='desktop-only'>Description</th>\n" +
	"            <th class='mobile-isbn'>ISBN</th>\n" +
	"            <th class='desktop-only'>Target Age</th>\n" +
	"        </tr>\n" +
	"    </thead>\n" +
	"    <tbody>\n" +
	"        <tr id='0441013597'>\n" +
	"            <td><span class='book-title mobile-title'>Dune</span></td>\n" +
	"            <td class='desktop-only'>Frank Herbert</td>\n" +
	"            <td class='desktop-only'><ul class='theme-list'>\n" +
	"                <li>politics</li>\n" +
	"                <li>ecology</li>\n" +
	"            </ul></td>\n" +
	"            <td class='desktop-only'><span class='description'>A desert planet</span></td>\n" +
	"            <td><a href='https://isbnsearch.org/isbn/0441013597' target='_blank' class='mobile-isbn'>0441013597</a></td>\n" +
	"            <td class='desktop-only'><ul class='theme-list'>\n" +
	"                <li>Adult</li>\n" +
	"            </ul></td>\n" +
	"        </tr>\n" +
	"    </tbody>\n" +
	"</table>"

// testEnv is an Environment with captured output and a counted catalog reader.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	reads  *atomic.Int32
}

func newTestEnv(vars map[string]string) *testEnv {
	var stdout, stderr bytes.Buffer
	reads := &atomic.Int32{}
	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	return &testEnv{
		Environment: &Environment{
			Stdout:  &stdout,
			Stderr:  &stderr,
			Getenv:  func(k string) string { return vars[k] },
			Environ: func() []string { return environ },
			ReadCatalog: func(ctx context.Context, path string) (*booklist.Catalog, error) {
				reads.Add(1)
				return booklist.ReadCatalog(ctx, path)
			},
			Serve: func(context.Context, *server.Server, string) error {
				return errors.New("serve not expected")
			},
		},
		stdout: &stdout,
		stderr: &stderr,
		reads:  reads,
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunMain_Usage - Argument count and informational flags
// ---------------------------------------------------------------------------

func TestRunMain_Usage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
	}{
		{"no args", []string{"booklist"}, ExitUsage, "Usage: booklist <csv_file_path>\n"},
		{"two args", []string{"booklist", "a.csv", "b.csv"}, ExitUsage, "Usage: booklist <csv_file_path>\n"},
		{"program path is shortened", []string{"/usr/local/bin/booklist"}, ExitUsage, "Usage: booklist <csv_file_path>\n"},
		{"empty argv", nil, ExitUsage, "Usage: booklist <csv_file_path>\n"},
		{"flags are not positional", []string{"booklist", "--document", "--markdown"}, ExitUsage, "Usage: booklist <csv_file_path>\n"},
		{"version", []string{"booklist", "--version"}, ExitSuccess, "booklist dev\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			code := runMain(tt.args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d", code, tt.wantCode)
			}
			if got := env.stdout.String(); got != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", got, tt.wantStdout)
			}
			if n := env.reads.Load(); n != 0 {
				t.Errorf("catalog read %d times, want 0", n)
			}
		})
	}
}

func TestRunMain_Help(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	if code := runMain([]string{"booklist", "-h"}, env.Environment); code != ExitSuccess {
		t.Fatalf("runMain(-h) = %d, want 0", code)
	}
	out := env.stdout.String()
	for _, want := range []string{"Usage: booklist <csv_file_path>", "--legacy-row-id", "--serve", "BOOKLIST_CONFIG"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestRunMain_BadFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	code := runMain([]string{"booklist", "--no-such-flag", "books.csv"}, env.Environment)
	if code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(env.stderr.String(), "no-such-flag") {
		t.Errorf("stderr should name the flag, got %q", env.stderr.String())
	}
	if env.reads.Load() != 0 {
		t.Error("catalog should not be read on flag errors")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Render - Successful rendering
// ---------------------------------------------------------------------------

func TestRunMain_Render(t *testing.T) {
	t.Parallel()

	t.Run("prints table to stdout", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)

		if code := runMain([]string{"booklist", path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
		}
		if got := env.stdout.String(); got != sampleHTML+"\n" {
			t.Errorf("stdout mismatch\ngot:\n%s\nwant:\n%s", got, sampleHTML)
		}
		if env.reads.Load() != 1 {
			t.Errorf("catalog read %d times, want 1", env.reads.Load())
		}
	})

	t.Run("legacy row id reads eighth cell", func(t *testing.T) {
		t.Parallel()

		csv := "Top 10,Genre,Book Title,Author,Key themes,For therapists,Description,ISBN,Amazon Price,Target Age\n" +
			"1,Fiction,Dune,Frank Herbert,politics,No,Desert,0441013597,9.99,Adult\n"
		path := writeFile(t, "books.csv", csv)
		env := newTestEnv(nil)

		if code := runMain([]string{"booklist", "--legacy-row-id", path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
		}
		if !strings.Contains(env.stdout.String(), "<tr id='0441013597'>") {
			t.Errorf("expected positional row id, got:\n%s", env.stdout.String())
		}
	})

	t.Run("legacy row id past header fails", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)

		code := runMain([]string{"booklist", "--legacy-row-id", path}, env.Environment)
		if code != ExitData {
			t.Errorf("runMain() = %d, want %d", code, ExitData)
		}
		if !strings.HasPrefix(env.stdout.String(), "An error occurred: ") {
			t.Errorf("stdout = %q, want legacy message", env.stdout.String())
		}
	})

	t.Run("writes output file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		out := filepath.Join(t.TempDir(), "table.html")
		env := newTestEnv(nil)

		if code := runMain([]string{"booklist", "-o", out, path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
		}
		if env.stdout.Len() != 0 {
			t.Errorf("stdout should be empty, got %q", env.stdout.String())
		}
		got, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != sampleHTML+"\n" {
			t.Errorf("file content mismatch:\n%s", got)
		}
	})

	t.Run("document mode embeds stylesheet", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)

		args := []string{"booklist", "--document", "--title", "Shelf", path}
		if code := runMain(args, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
		}
		out := env.stdout.String()
		for _, want := range []string{"<!DOCTYPE html>", "<title>Shelf</title>", "<style>", ".book-title", sampleHTML} {
			if !strings.Contains(out, want) {
				t.Errorf("document missing %q", want)
			}
		}
	})

	t.Run("document mode with unknown style", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)

		code := runMain([]string{"booklist", "--document", "--style", "neon", path}, env.Environment)
		if code != ExitUsage {
			t.Errorf("runMain() = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(env.stderr.String(), "available: ") {
			t.Errorf("expected style hint, got %q", env.stderr.String())
		}
	})

	t.Run("stylesheet path", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		css := writeFile(t, "shelf.css", "table { border: 0; }")
		env := newTestEnv(nil)

		code := runMain([]string{"booklist", "--document", "--style", css, path}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
		}
		if !strings.Contains(env.stdout.String(), "table { border: 0; }") {
			t.Error("custom stylesheet not inlined")
		}
	})

	t.Run("missing stylesheet path", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)

		missing := filepath.Join(t.TempDir(), "none.css")
		code := runMain([]string{"booklist", "--document", "--style", missing, path}, env.Environment)
		if code != ExitIO {
			t.Errorf("runMain() = %d, want %d", code, ExitIO)
		}
	})

	t.Run("color output", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)

		if code := runMain([]string{"booklist", "--color", path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
		}
		if !strings.Contains(env.stdout.String(), "\x1b[") {
			t.Error("expected ANSI escapes with --color")
		}
	})

	t.Run("unknown column warning and quiet", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", "Book Title,Publisher\nDune,Ace\n")

		env := newTestEnv(nil)
		if code := runMain([]string{"booklist", path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d", code)
		}
		if !strings.Contains(env.stderr.String(), "Publisher") {
			t.Errorf("expected unknown column warning, got %q", env.stderr.String())
		}

		quiet := newTestEnv(nil)
		if code := runMain([]string{"booklist", "-q", path}, quiet.Environment); code != ExitSuccess {
			t.Fatalf("runMain(-q) = %d", code)
		}
		if quiet.stderr.Len() != 0 {
			t.Errorf("quiet stderr = %q, want empty", quiet.stderr.String())
		}
	})

	t.Run("verbose logs summary", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)

		if code := runMain([]string{"booklist", "-v", path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d", code)
		}
		if !strings.Contains(env.stderr.String(), "rows=1") {
			t.Errorf("expected render summary, got %q", env.stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Failures - Legacy messages and exit codes
// ---------------------------------------------------------------------------

func TestRunMain_Failures(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.csv")
		env := newTestEnv(nil)

		code := runMain([]string{"booklist", path}, env.Environment)
		if code != ExitIO {
			t.Errorf("runMain() = %d, want %d", code, ExitIO)
		}
		if got, want := env.stdout.String(), "Error: File not found at "+path+"\n"; got != want {
			t.Errorf("stdout = %q, want %q", got, want)
		}
		if !strings.Contains(env.stderr.String(), "error: ") {
			t.Errorf("stderr = %q, want error line", env.stderr.String())
		}
	})

	t.Run("malformed row", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", "Book Title,ISBN\nDune\n")
		env := newTestEnv(nil)

		code := runMain([]string{"booklist", path}, env.Environment)
		if code != ExitData {
			t.Errorf("runMain() = %d, want %d", code, ExitData)
		}
		if !strings.HasPrefix(env.stdout.String(), "An error occurred: malformed row") {
			t.Errorf("stdout = %q", env.stdout.String())
		}
		if !strings.Contains(env.stderr.String(), "hint: quote values") {
			t.Errorf("expected malformed row hint, got %q", env.stderr.String())
		}
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", "Book Title,ISBN\n\xff\xfeDune,1\n")
		env := newTestEnv(nil)

		code := runMain([]string{"booklist", path}, env.Environment)
		if code != ExitData {
			t.Errorf("runMain() = %d, want %d", code, ExitData)
		}
		out := env.stdout.String()
		if !strings.HasPrefix(out, "An error occurred: catalog is not valid CSV") {
			t.Errorf("stdout = %q", out)
		}
		if strings.Contains(out, "<table>") || strings.Contains(out, "\xff") {
			t.Errorf("no markup or raw bytes expected, got %q", out)
		}
		if !strings.Contains(env.stderr.String(), "hint: save the file as UTF-8") {
			t.Errorf("expected encoding hint, got %q", env.stderr.String())
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		code := runMain([]string{"booklist", "books.ods"}, env.Environment)
		if code != ExitData {
			t.Errorf("runMain() = %d, want %d", code, ExitData)
		}
	})

	t.Run("output directory missing", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		out := filepath.Join(t.TempDir(), "missing", "table.html")
		env := newTestEnv(nil)

		code := runMain([]string{"booklist", "-o", out, path}, env.Environment)
		if code != ExitIO {
			t.Errorf("runMain() = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(env.stderr.String(), "writable") {
			t.Errorf("expected output hint, got %q", env.stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Config - Config files, environment, precedence
// ---------------------------------------------------------------------------

func TestRunMain_Config(t *testing.T) {
	t.Parallel()

	t.Run("missing config", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)

		code := runMain([]string{"booklist", "-c", "no-such-config-4b1e", path}, env.Environment)
		if code != ExitUsage {
			t.Errorf("runMain() = %d, want %d", code, ExitUsage)
		}
		if env.reads.Load() != 0 {
			t.Error("catalog should not be read when config fails")
		}
		if !strings.Contains(env.stderr.String(), "--config") {
			t.Errorf("expected config hint, got %q", env.stderr.String())
		}
	})

	t.Run("config file enables document mode", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeFile(t, "booklist.yaml", "output:\n  document: true\n  title: From YAML\n")
		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)

		if code := runMain([]string{"booklist", "-c", cfgPath, path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
		}
		if !strings.Contains(env.stdout.String(), "<title>From YAML</title>") {
			t.Error("expected title from config")
		}
	})

	t.Run("env overrides config and flag overrides env", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeFile(t, "booklist.yaml", "output:\n  document: true\n  title: From YAML\n")
		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(map[string]string{
			"BOOKLIST_CONFIG": cfgPath,
			"BOOKLIST_TITLE":  "From Env",
		})

		if code := runMain([]string{"booklist", path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
		}
		if !strings.Contains(env.stdout.String(), "<title>From Env</title>") {
			t.Error("env should override config file")
		}

		flagEnv := newTestEnv(map[string]string{
			"BOOKLIST_CONFIG": cfgPath,
			"BOOKLIST_TITLE":  "From Env",
		})
		args := []string{"booklist", "--title", "From Flag", path}
		if code := runMain(args, flagEnv.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d", code)
		}
		if !strings.Contains(flagEnv.stdout.String(), "<title>From Flag</title>") {
			t.Error("flag should override env")
		}
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(map[string]string{"BOOKLIST_ROW_ID": "title"})

		if code := runMain([]string{"booklist", path}, env.Environment); code != ExitUsage {
			t.Errorf("runMain() = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("unknown env var warns", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(map[string]string{"BOOKLIST_STYEL": "compact"})

		if code := runMain([]string{"booklist", path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d", code)
		}
		if !strings.Contains(env.stderr.String(), "BOOKLIST_STYEL") {
			t.Errorf("expected unknown env warning, got %q", env.stderr.String())
		}
	})

	t.Run("dotenv loader runs", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)
		called := false
		env.LoadDotEnv = func() error {
			called = true
			return fmt.Errorf("open .env: %w", os.ErrNotExist)
		}

		if code := runMain([]string{"booklist", path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d", code)
		}
		if !called {
			t.Error("LoadDotEnv was not called")
		}
		if strings.Contains(env.stderr.String(), ".env") {
			t.Errorf("missing .env should be silent, got %q", env.stderr.String())
		}
	})

	t.Run("print config", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain([]string{"booklist", "--print-config", "--legacy-row-id"}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
		}
		out := env.stdout.String()
		if !strings.Contains(out, "rowId: position") || !strings.Contains(out, "rowIdIndex: 7") {
			t.Errorf("print-config output:\n%s", out)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Serve - Preview server wiring
// ---------------------------------------------------------------------------

func TestRunMain_Serve(t *testing.T) {
	t.Parallel()

	t.Run("starts server on address", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)
		var gotAddr string
		env.Serve = func(_ context.Context, srv *server.Server, addr string) error {
			if srv == nil {
				return errors.New("nil server")
			}
			gotAddr = addr
			return nil
		}

		if code := runMain([]string{"booklist", "--serve", "127.0.0.1:8080", path}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
		}
		if gotAddr != "127.0.0.1:8080" {
			t.Errorf("addr = %q", gotAddr)
		}
		if env.stdout.Len() != 0 {
			t.Errorf("serve mode should not print the table, got %q", env.stdout.String())
		}
	})

	t.Run("listen failure", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "books.csv", sampleCSV)
		env := newTestEnv(nil)
		env.Serve = func(context.Context, *server.Server, string) error {
			return fmt.Errorf("%w on :80: permission denied", server.ErrListen)
		}

		code := runMain([]string{"booklist", "--serve", ":80", path}, env.Environment)
		if code != ExitIO {
			t.Errorf("runMain() = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(env.stderr.String(), "hint: is another process using :80") {
			t.Errorf("expected listen hint, got %q", env.stderr.String())
		}
	})
}
