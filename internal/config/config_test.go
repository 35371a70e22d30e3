package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeConfig writes content to a config file in a temporary directory
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(writeConfig(t, "core:\n  verbose: true\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !cfg.Core.Verbose {
		t.Error("core.verbose should be read from the file")
	}
	if cfg.Core.Method != "auto" {
		t.Errorf("core.method = %q, want default auto", cfg.Core.Method)
	}
	if cfg.Direct.Metadata != "xattr" {
		t.Errorf("direct.metadata = %q, want default xattr", cfg.Direct.Metadata)
	}
	if cfg.Logging.Rotation.MaxSize != "10MB" {
		t.Errorf("logging.rotation.max_size = %q, want default 10MB", cfg.Logging.Rotation.MaxSize)
	}
}

func TestParseExpandsPaths(t *testing.T) {
	t.Setenv("PUTBACK_TEST_DIR", "/srv/data")
	cfg, err := Parse(writeConfig(t, "direct:\n  trash_dir: $PUTBACK_TEST_DIR/trash\n  metadata: sidecar\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Direct.TrashDir != "/srv/data/trash" {
		t.Errorf("direct.trash_dir = %q", cfg.Direct.TrashDir)
	}
	if cfg.DirectTrashDir("/home/me") != "/srv/data/trash" {
		t.Errorf("DirectTrashDir() = %q", cfg.DirectTrashDir("/home/me"))
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown method",
			content: "core:\n  method: shred\n",
			wantErr: "core.method",
		},
		{
			name:    "bad glob",
			content: "core:\n  protected: [\"/tmp/[\"]\n",
			wantErr: "core.protected[0]",
		},
		{
			name:    "bad metadata store",
			content: "direct:\n  metadata: database\n",
			wantErr: "direct.metadata",
		},
		{
			name:    "bad size",
			content: "logging:\n  rotation:\n    max_size: lots\n",
			wantErr: "logging.rotation.max_size",
		},
		{
			name:    "bad max age",
			content: "logging:\n  rotation:\n    max_age: forever\n",
			wantErr: "logging.rotation.max_age",
		},
		{
			name:    "unknown field",
			content: "core:\n  strategy: xdg\n",
			wantErr: "strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Parse() should fail")
	}
	if !strings.Contains(err.Error(), "Couldn't find") || !strings.Contains(err.Error(), "method: auto") {
		t.Errorf("Parse() error = %q, want the example config", err)
	}
}

func TestResolveMethod(t *testing.T) {
	want := "service"
	if runtime.GOOS == "darwin" {
		want = "finder"
	}
	if got := (Core{Method: "auto"}).ResolveMethod(); got != want {
		t.Errorf("ResolveMethod() = %q, want %q", got, want)
	}
	for _, method := range []string{"Auto", "AUTO"} {
		if got := (Core{Method: method}).ResolveMethod(); got != want {
			t.Errorf("ResolveMethod(%q) = %q, want %q", method, got, want)
		}
	}
	if got := (Core{Method: "direct"}).ResolveMethod(); got != "direct" {
		t.Errorf("ResolveMethod() = %q, want direct", got)
	}
}

func TestDirectTrashDirDefault(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	got := NewDefaultConfig().DirectTrashDir("/home/me")
	want := filepath.Join(dataHome, "putback", "trash")
	if runtime.GOOS == "darwin" {
		want = filepath.Join("/home/me", ".Trash")
	}
	if got != want {
		t.Errorf("DirectTrashDir() = %q, want %q", got, want)
	}
	if strings.HasPrefix(got, filepath.Join(dataHome, "Trash")) {
		t.Errorf("DirectTrashDir() = %q must stay out of the freedesktop trash", got)
	}
}

func TestCompileProtected(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip(err)
	}

	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/", "/", true},
		{"/*", "/usr", true},
		{"/*", "/usr/local", false},
		{"/usr/**", "/usr/local/bin", true},
		{"~", home, true},
		{"~", filepath.Join(home, "notes.txt"), false},
		{"~/.ssh/**", filepath.Join(home, ".ssh", "id_ed25519"), true},
	}

	for _, tt := range tests {
		g, err := CompileProtected(tt.pattern)
		if err != nil {
			t.Fatalf("CompileProtected(%q) error = %v", tt.pattern, err)
		}
		if got := g.Match(tt.path); got != tt.want {
			t.Errorf("%q matches %q = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}
