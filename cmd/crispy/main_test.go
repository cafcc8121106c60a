package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/crispy/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := execute(t, "render", "--position=top-left", "--title=Greetings", "--count=2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`id="crispy-toaster"`,
		`data-position="top-left"`,
		"Greetings",
		"Toast 1 of 2",
		"Toast 2 of 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Top positions show the newest toast first.
	if strings.Index(out, "Toast 2 of 2") > strings.Index(out, "Toast 1 of 2") {
		t.Error("expected newest toast first")
	}
}

func TestRenderInvalidPosition(t *testing.T) {
	_, err := execute(t, "render", "--position=middle")
	if !errors.HasCode(err, errors.CodeInvalidPosition) {
		t.Errorf("err = %v, want T002", err)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}

func TestLoadServeConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crispy.yaml")
	if err := os.WriteFile(path, []byte("position: top-right\nduration: 1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		position string
		duration int
		address  string
		code     string
	}{
		{"file only", []string{"--config", path}, "top-right", 1000, "localhost:4000", ""},
		{"flags override", []string{"--config", path, "--position=bottom-center", "--duration=500", "--addr=127.0.0.1:9999"}, "bottom-center", 500, "127.0.0.1:9999", ""},
		{"bad position flag", []string{"--config", path, "--position=nowhere"}, "", 0, "", errors.CodeInvalidPosition},
		{"bad addr", []string{"--config", path, "--addr=9999"}, "", 0, "", errors.CodeInvalidPort},
		{"missing file", []string{"--config", filepath.Join(dir, "none.json")}, "", 0, "", errors.CodeConfigRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := serveCmd()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			opts := serveOptions{}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.position, _ = cmd.Flags().GetString("position")
			opts.duration, _ = cmd.Flags().GetInt("duration")
			opts.addr, _ = cmd.Flags().GetString("addr")

			cfg, err := loadServeConfig(cmd, opts)
			if tt.code != "" {
				if !errors.HasCode(err, tt.code) {
					t.Fatalf("err = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Position != tt.position {
				t.Errorf("position = %q, want %q", cfg.Position, tt.position)
			}
			if cfg.Duration != tt.duration {
				t.Errorf("duration = %d, want %d", cfg.Duration, tt.duration)
			}
			if cfg.Address() != tt.address {
				t.Errorf("address = %q, want %q", cfg.Address(), tt.address)
			}
		})
	}
}
