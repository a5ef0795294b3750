package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/capreq/staticpages"
)

// testPage is a minimal page exercising the stylesheet, config and link rules.
const testPage = `<!DOCTYPE html>
<html>
<head>
  <link rel="stylesheet" href="style.css">
  <script src="config.js"></script>
</head>
<body><a href="index.html">Home</a></body>
</html>
`

// writeSite creates a pages directory with every default page and style.css.
// Entries in overrides replace or add files.
func writeSite(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{"style.css": "body{color:red}"}
	for _, p := range staticpages.DefaultPages() {
		files[p] = testPage
	}
	for name, content := range overrides {
		files[name] = content
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return dir
}

// testEnv returns an Environment with captured output and a fixed environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}
