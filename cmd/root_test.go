package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckConfigCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("request_id:\n  header: CorrelationId\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", cfgPath, "system", "check-config"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "request id header: CorrelationId") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestGenDocsCommand(t *testing.T) {
	dir := t.TempDir()

	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"system", "gendocs", "--outdir", dir})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "reqtrace.md")); err != nil {
		t.Errorf("root command doc not generated: %v", err)
	}
}
