package main

// Notes:
// - runMain: we test exit codes and output for each command. Preview serving
//   is covered in preview_test.go with a bounded context.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestHasVerboseFlag - Early verbose detection for maxprocs logging
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no flags", args: []string{"staticpages"}, want: false},
		{name: "short flag", args: []string{"staticpages", "-v"}, want: true},
		{name: "long flag after command", args: []string{"staticpages", "generate", "--verbose"}, want: true},
		{name: "after terminator", args: []string{"staticpages", "--", "-v"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hasVerboseFlag(tt.args); got != tt.want {
				t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSplitCommand - Command dispatch
// ---------------------------------------------------------------------------

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCmd  string
		wantRest []string
	}{
		{name: "no arguments runs generate", args: []string{"staticpages"}, wantCmd: "generate", wantRest: nil},
		{name: "leading flag runs generate", args: []string{"staticpages", "-d", "www"}, wantCmd: "generate", wantRest: []string{"-d", "www"}},
		{name: "explicit command", args: []string{"staticpages", "preview", "--addr", ":0"}, wantCmd: "preview", wantRest: []string{"--addr", ":0"}},
		{name: "unknown word is a command", args: []string{"staticpages", "deploy"}, wantCmd: "deploy", wantRest: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, rest := splitCommand(tt.args)
			if cmd != tt.wantCmd {
				t.Errorf("cmd = %q, want %q", cmd, tt.wantCmd)
			}
			if strings.Join(rest, " ") != strings.Join(tt.wantRest, " ") {
				t.Errorf("rest = %v, want %v", rest, tt.wantRest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Command behavior and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	site := writeSite(t, nil)
	collision := writeSite(t, map[string]string{"queue.html": "<p>costs $page$</p>"})
	missing := writeSite(t, nil)
	if err := os.Remove(filepath.Join(missing, "analytics.html")); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "version command exits 0",
			args:         []string{"staticpages", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"staticpages dev"},
		},
		{
			name:         "help command exits 0",
			args:         []string{"staticpages", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: staticpages", "Commands:"},
		},
		{
			name:         "help generate shows generate help",
			args:         []string{"staticpages", "help", "generate"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: staticpages generate", "--delimiter"},
		},
		{
			name:         "help preview shows preview help",
			args:         []string{"staticpages", "help", "preview"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"--addr"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"staticpages", "deploy"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: deploy"},
		},
		{
			name:     "generate --help exits 0",
			args:     []string{"staticpages", "generate", "--help"},
			wantCode: ExitSuccess,
		},
		{
			name:         "generate writes migration to stdout",
			args:         []string{"staticpages", "generate", "-d", site},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"DELETE FROM static_pages;", "INSERT INTO static_pages (path, content) VALUES ('analytics.html', $page$"},
		},
		{
			name:         "flags without command run generate",
			args:         []string{"staticpages", "--dir", site, "--table", "public.pages"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"DELETE FROM public.pages;"},
		},
		{
			name:         "custom delimiter",
			args:         []string{"staticpages", "-d", site, "--delimiter", "$body$"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"$body$<!DOCTYPE html>"},
		},
		{
			name:         "delimiter collision exits 4",
			args:         []string{"staticpages", "-d", collision},
			wantCode:     ExitCollision,
			wantInStderr: []string{"queue.html", "--delimiter $body$"},
		},
		{
			name:         "missing page exits 3",
			args:         []string{"staticpages", "-d", missing},
			wantCode:     ExitIO,
			wantInStderr: []string{"analytics.html", "hint:"},
		},
		{
			name:         "missing directory exits 3",
			args:         []string{"staticpages", "-d", filepath.Join(site, "nope")},
			wantCode:     ExitIO,
			wantInStderr: []string{"--dir"},
		},
		{
			name:     "invalid delimiter exits 2",
			args:     []string{"staticpages", "-d", site, "--delimiter", "page"},
			wantCode: ExitUsage,
		},
		{
			name:     "invalid table exits 2",
			args:     []string{"staticpages", "-d", site, "--table", "pages; DROP"},
			wantCode: ExitUsage,
		},
		{
			name:     "negative workers exits 2",
			args:     []string{"staticpages", "-d", site, "--workers", "-1"},
			wantCode: ExitUsage,
		},
		{
			name:     "unknown flag exits 2",
			args:     []string{"staticpages", "--bogus"},
			wantCode: ExitUsage,
		},
		{
			name:     "stray argument exits 2",
			args:     []string{"staticpages", "generate", "index.html"},
			wantCode: ExitUsage,
		},
		{
			name:         "missing config exits 2 with hint",
			args:         []string{"staticpages", "-c", filepath.Join(site, "missing.yaml")},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found", "hint:"},
		},
		{
			name:         "config prints effective configuration",
			args:         []string{"staticpages", "config", "-d", site, "--table", "public.pages"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"table: public.pages", "dir: " + site},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_NoPartialOutput - Failed runs write nothing
// ---------------------------------------------------------------------------

func TestRunMain_NoPartialOutput(t *testing.T) {
	t.Parallel()

	dir := writeSite(t, map[string]string{"analytics.html": "<p>$page$</p>"})
	out := filepath.Join(t.TempDir(), "migration.sql")

	env, stdout, _ := testEnv(nil)
	code := runMain([]string{"staticpages", "-d", dir, "-o", out}, env)

	if code != ExitCollision {
		t.Fatalf("runMain() = %d, want %d", code, ExitCollision)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_OutputFile - --output writes the same document as stdout
// ---------------------------------------------------------------------------

func TestRunMain_OutputFile(t *testing.T) {
	t.Parallel()

	dir := writeSite(t, nil)
	out := filepath.Join(t.TempDir(), "migration.sql")

	envFile, fileStdout, _ := testEnv(nil)
	if code := runMain([]string{"staticpages", "-d", dir, "-o", out, "-q"}, envFile); code != ExitSuccess {
		t.Fatalf("runMain(-o) = %d, want %d", code, ExitSuccess)
	}
	if fileStdout.Len() != 0 {
		t.Errorf("stdout should be empty with --output, got %q", fileStdout.String())
	}

	envStdout, stdout, _ := testEnv(nil)
	if code := runMain([]string{"staticpages", "-d", dir, "-w", "4"}, envStdout); code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d", code, ExitSuccess)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != stdout.String() {
		t.Error("file output differs from stdout output")
	}
	if n := strings.Count(string(got), "INSERT INTO static_pages"); n != 6 {
		t.Errorf("INSERT count = %d, want 6", n)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Diagnose - Zero-match rules are reported
// ---------------------------------------------------------------------------

func TestRunMain_Diagnose(t *testing.T) {
	t.Parallel()

	dir := writeSite(t, map[string]string{"queue.html": "<p>no markers here</p>"})

	env, _, stderr := testEnv(nil)
	code := runMain([]string{"staticpages", "-d", dir, "--diagnose"}, env)

	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}
	log := stderr.String()
	if !strings.Contains(log, "rule matched nothing") {
		t.Errorf("expected diagnostic warnings, got %q", log)
	}
	if !strings.Contains(log, "page=queue.html rule=inline-stylesheet") {
		t.Errorf("expected queue.html stylesheet warning, got %q", log)
	}
}

func TestRunMain_DiagnoseReportsRelativeLinks(t *testing.T) {
	t.Parallel()

	dir := writeSite(t, map[string]string{"new.html": `<a href="about.html">About</a><a href="index.html">Home</a>`})

	env, _, stderr := testEnv(nil)
	code := runMain([]string{"staticpages", "-d", dir, "--diagnose"}, env)

	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}
	log := stderr.String()
	if !strings.Contains(log, `msg="relative reference not rewritten" page=new.html element=a attr=href value=about.html`) {
		t.Errorf("expected relative reference warning, got %q", log)
	}
	if strings.Contains(log, "value=www?page=index.html") {
		t.Errorf("route link reported as relative: %q", log)
	}
}

func TestRunMain_NoAuditWithoutDiagnose(t *testing.T) {
	t.Parallel()

	dir := writeSite(t, map[string]string{"new.html": `<a href="about.html">About</a>`})

	env, _, stderr := testEnv(nil)
	if code := runMain([]string{"staticpages", "-d", dir}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d", code, ExitSuccess)
	}
	if strings.Contains(stderr.String(), "relative reference") {
		t.Errorf("audit ran without --diagnose: %q", stderr.String())
	}
}

func TestRunMain_QuietSuppressesInfo(t *testing.T) {
	t.Parallel()

	dir := writeSite(t, nil)

	env, _, stderr := testEnv(nil)
	if code := runMain([]string{"staticpages", "-d", dir, "-q"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d", code, ExitSuccess)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr should be empty with --quiet, got %q", stderr.String())
	}
}
