package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// createTempDir creates a temporary directory for testing
func createTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "putback-fs-test-")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// createTestFile creates a test file with given content
func createTestFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestCreateExclusive(t *testing.T) {
	dir := createTempDir(t)
	testPath := filepath.Join(dir, "testfile.txt")

	f, err := CreateExclusive(testPath, 0644)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	f.Close()

	_, err = CreateExclusive(testPath, 0644)
	if err == nil {
		t.Fatal("Expected error when creating existing file, got nil")
	}
}

func TestMove(t *testing.T) {
	dir := createTempDir(t)
	srcPath := filepath.Join(dir, "source.txt")
	dstPath := filepath.Join(dir, "destination.txt")
	content := "test content"

	createTestFile(t, srcPath, content)

	if err := Move(srcPath, dstPath); err != nil {
		t.Fatalf("Failed to move file: %v", err)
	}

	if _, err := os.Lstat(srcPath); !os.IsNotExist(err) {
		t.Fatal("Source file should not exist after move")
	}

	dstContent, err := os.ReadFile(dstPath)
	if err != nil {
		t.Fatalf("Failed to read destination file: %v", err)
	}
	if string(dstContent) != content {
		t.Fatalf("Destination file content mismatch. Expected %q, got %q", content, dstContent)
	}
}

func TestMoveDestinationExists(t *testing.T) {
	dir := createTempDir(t)
	srcPath := filepath.Join(dir, "source.txt")
	dstPath := filepath.Join(dir, "destination.txt")
	createTestFile(t, srcPath, "src")
	createTestFile(t, dstPath, "dst")

	err := Move(srcPath, dstPath)
	if !IsDestinationExists(err) {
		t.Fatalf("Move() error = %v, want ErrDestinationExists", err)
	}

	var me *MoveError
	if !errors.As(err, &me) || !me.SourceIntact() {
		t.Errorf("Move() error = %v, want a MoveError with the source intact", err)
	}
	if got, _ := os.ReadFile(srcPath); string(got) != "src" {
		t.Errorf("source content = %q", got)
	}
	if got, _ := os.ReadFile(dstPath); string(got) != "dst" {
		t.Errorf("destination content = %q", got)
	}
}

func TestMoveMissingSource(t *testing.T) {
	dir := createTempDir(t)

	err := Move(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("Move() error = %v, want ErrSourceNotFound", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Move() error = %v, want it to wrap os.ErrNotExist", err)
	}
}

func TestCopyAndDelete(t *testing.T) {
	dir := createTempDir(t)
	src := filepath.Join(dir, "tree")
	dst := filepath.Join(dir, "moved")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	createTestFile(t, filepath.Join(src, "sub", "file.txt"), "nested")
	if err := os.Symlink("sub/file.txt", filepath.Join(src, "link")); err != nil {
		t.Fatal(err)
	}

	if err := copyAndDelete(src, dst); err != nil {
		t.Fatalf("copyAndDelete() error = %v", err)
	}

	if _, err := os.Lstat(src); !os.IsNotExist(err) {
		t.Error("Source tree should not exist after copyAndDelete")
	}
	got, err := os.ReadFile(filepath.Join(dst, "sub", "file.txt"))
	if err != nil || string(got) != "nested" {
		t.Errorf("nested file = %q, %v", got, err)
	}
	fi, err := os.Lstat(filepath.Join(dst, "link"))
	if err != nil {
		t.Fatalf("Lstat(link) error = %v", err)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		t.Error("symlink should be copied as a link")
	}
}

func TestMoveConcurrentSameDestination(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("no atomic no-replace rename on " + runtime.GOOS)
	}
	dir := createTempDir(t)
	dst := filepath.Join(dir, "claimed")

	const n = 16
	srcs := make([]string, n)
	for i := range srcs {
		srcs[i] = filepath.Join(dir, fmt.Sprintf("src%d", i))
		createTestFile(t, srcs[i], srcs[i])
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range srcs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = Move(srcs[i], dst)
		}(i)
	}
	wg.Wait()

	var winner string
	for i, err := range errs {
		if err == nil {
			if winner != "" {
				t.Fatalf("both %s and %s were moved to the same destination", winner, srcs[i])
			}
			winner = srcs[i]
			continue
		}
		if !IsDestinationExists(err) {
			t.Errorf("Move(%s) error = %v, want ErrDestinationExists", srcs[i], err)
		}
		if _, err := os.Lstat(srcs[i]); err != nil {
			t.Errorf("losing source %s should stay in place: %v", srcs[i], err)
		}
	}
	if winner == "" {
		t.Fatal("no Move succeeded")
	}
	if got, _ := os.ReadFile(dst); string(got) != winner {
		t.Errorf("destination content = %q, want %q", got, winner)
	}
}

func TestCopyAndDeleteDestinationTaken(t *testing.T) {
	dir := createTempDir(t)
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	createTestFile(t, src, "src")
	createTestFile(t, dst, "dst")

	err := copyAndDelete(src, dst)
	if !IsDestinationExists(err) {
		t.Fatalf("copyAndDelete() error = %v, want ErrDestinationExists", err)
	}
	if got, _ := os.ReadFile(dst); string(got) != "dst" {
		t.Errorf("destination content = %q, want it untouched", got)
	}
	if got, _ := os.ReadFile(src); string(got) != "src" {
		t.Errorf("source content = %q, want it untouched", got)
	}
	stages, _ := filepath.Glob(filepath.Join(dir, stagePrefix+"*"))
	if len(stages) != 0 {
		t.Errorf("staging directories left behind: %v", stages)
	}
}

func TestCopyAndDeleteSourceRemovalFails(t *testing.T) {
	dir := createTempDir(t)
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	createTestFile(t, src, "content")

	removeSource = func(string) error { return os.ErrPermission }
	t.Cleanup(func() { removeSource = os.RemoveAll })

	err := copyAndDelete(src, dst)
	var me *MoveError
	if !errors.As(err, &me) || me.Op != "remove_source" || me.SourceIntact() {
		t.Fatalf("copyAndDelete() error = %v, want a remove_source MoveError", err)
	}
	if got, _ := os.ReadFile(dst); string(got) != "content" {
		t.Errorf("destination content = %q, want the complete copy", got)
	}
}

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{
		"a.txt": true, "a_1.txt": true,
		"b": true,
		".bashrc": true,
		"x.tar.gz": true,
	}
	tests := []struct {
		base string
		want string
	}{
		{"a.txt", "a_2.txt"},
		{"b", "b_1"},
		{"c", "c"},
		{".bashrc", ".bashrc_1"},
		{"x.tar.gz", "x.tar_1.gz"},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			if got := UniqueName(tt.base, func(n string) bool { return taken[n] }); got != tt.want {
				t.Errorf("UniqueName(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}

	got := UniqueName("c.txt", func(n string) bool { return !strings.Contains(n, "-") })
	if !strings.HasPrefix(got, "c_") || !strings.HasSuffix(got, ".txt") || len(got) < len("c_.txt")+36 {
		t.Errorf("UniqueName() = %q, want a random suffix before the extension", got)
	}
}

// Benchmark Move operation
func BenchmarkMove(b *testing.B) {
	dir := b.TempDir()
	srcPath := filepath.Join(dir, "benchsrc.txt")
	dstPath := filepath.Join(dir, "benchdst.txt")

	if err := os.WriteFile(srcPath, []byte("benchmark content"), 0644); err != nil {
		b.Fatalf("Failed to create source file: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Move(srcPath, dstPath); err != nil {
			b.Fatal(err)
		}
		srcPath, dstPath = dstPath, srcPath
	}
}
