package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCLIConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	dbPath := filepath.Join(base, "records.db")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[store]\ndb_path = %q\n", dbPath)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func writeEDL(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cut.edl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write edl: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}
