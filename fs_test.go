package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func entryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func TestListDir(t *testing.T) {
	tests := []struct {
		name       string
		setupFunc  func(dir string)
		showHidden bool
		maxEntries int
		want       []string
	}{
		{
			name: "dotfiles hidden by default",
			setupFunc: func(dir string) {
				os.MkdirAll(filepath.Join(dir, ".git"), 0o755)
				writeFile(t, filepath.Join(dir, "README.md"), []byte("readme"))
				writeFile(t, filepath.Join(dir, "app.py"), []byte("app"))
				writeFile(t, filepath.Join(dir, "Zz.txt"), []byte("zz"))
			},
			want: []string{"README.md", "Zz.txt", "app.py"},
		},
		{
			name: "dotfiles shown when enabled, directories still first",
			setupFunc: func(dir string) {
				os.MkdirAll(filepath.Join(dir, ".git"), 0o755)
				writeFile(t, filepath.Join(dir, "README.md"), []byte("readme"))
				writeFile(t, filepath.Join(dir, "app.py"), []byte("app"))
				writeFile(t, filepath.Join(dir, "Zz.txt"), []byte("zz"))
			},
			showHidden: true,
			want:       []string{".git", "README.md", "Zz.txt", "app.py"},
		},
		{
			name: "directories before files, each group case-insensitive",
			setupFunc: func(dir string) {
				os.MkdirAll(filepath.Join(dir, "src"), 0o755)
				os.MkdirAll(filepath.Join(dir, "Docs"), 0o755)
				writeFile(t, filepath.Join(dir, "b.txt"), []byte("b"))
				writeFile(t, filepath.Join(dir, "A.txt"), []byte("a"))
			},
			want: []string{"Docs", "src", "A.txt", "b.txt"},
		},
		{
			name: "listing is capped at maxEntries",
			setupFunc: func(dir string) {
				for i := 0; i < 6; i++ {
					writeFile(t, filepath.Join(dir, fmt.Sprintf("f%d.txt", i)), []byte("x"))
				}
			},
			maxEntries: 3,
			want:       []string{"f0.txt", "f1.txt", "f2.txt"},
		},
		{
			name:      "empty directory",
			setupFunc: func(dir string) {},
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setupFunc(dir)

			entries, err := listDir(dir, tt.showHidden, tt.maxEntries)
			if err != nil {
				t.Fatalf("listDir: %v", err)
			}

			got := entryNames(entries)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestListDirMissing(t *testing.T) {
	_, err := listDir(filepath.Join(t.TempDir(), "nope"), false, 0)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if kind := classifyError(err); kind != ErrNotFound {
		t.Errorf("got kind %v, want ErrNotFound", kind)
	}
}

func TestListDirEntryFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), []byte("SECRET=1"))
	writeFile(t, filepath.Join(dir, "data.bin"), bytes.Repeat([]byte("a"), 42))
	os.MkdirAll(filepath.Join(dir, "sub"), 0o755)

	entries, err := listDir(dir, true, 0)
	if err != nil {
		t.Fatalf("listDir: %v", err)
	}

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	if e := byName["sub"]; !e.IsDir || e.Hidden {
		t.Errorf("sub: got %+v, want directory, not hidden", e)
	}
	if e := byName[".env"]; !e.Hidden || e.IsDir {
		t.Errorf(".env: got %+v, want hidden file", e)
	}
	if e := byName["data.bin"]; e.Size != 42 {
		t.Errorf("data.bin size: got %d, want 42", e.Size)
	}
	if e := byName["data.bin"]; e.Path != filepath.Join(dir, "data.bin") {
		t.Errorf("data.bin path: got %q", e.Path)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"permission", fmt.Errorf("open: %w", fs.ErrPermission), ErrPermission},
		{"not found", fmt.Errorf("stat: %w", fs.ErrNotExist), ErrNotFound},
		{"other", fmt.Errorf("boom"), ErrOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreviewFile(t *testing.T) {
	limits := PreviewLimits{MaxBytes: 1024, MaxLines: 5}

	tests := []struct {
		name          string
		data          []byte
		limits        PreviewLimits
		wantReason    PreviewReason
		wantLines     []string
		wantTruncated bool
	}{
		{
			name:       "small text file returns exact content",
			data:       []byte("hello\nworld\n"),
			limits:     limits,
			wantReason: PreviewOK,
			wantLines:  []string{"hello", "world"},
		},
		{
			name:       "no trailing newline",
			data:       []byte("one\ntwo"),
			limits:     limits,
			wantReason: PreviewOK,
			wantLines:  []string{"one", "two"},
		},
		{
			name:          "line limit truncates",
			data:          []byte("1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"),
			limits:        limits,
			wantReason:    PreviewOK,
			wantLines:     []string{"1", "2", "3", "4", "5"},
			wantTruncated: true,
		},
		{
			name:       "null byte means binary",
			data:       []byte("abc\x00def"),
			limits:     limits,
			wantReason: PreviewBinary,
		},
		{
			name:       "invalid utf8 means binary",
			data:       []byte{0xff, 0xfe, 0x41},
			limits:     limits,
			wantReason: PreviewBinary,
		},
		{
			name:       "oversized file is not read",
			data:       bytes.Repeat([]byte("a"), 2048),
			limits:     limits,
			wantReason: PreviewTooLarge,
		},
		{
			name:       "empty file",
			data:       []byte{},
			limits:     limits,
			wantReason: PreviewOK,
			wantLines:  []string{},
		},
		{
			name:       "file exactly at the byte limit is previewed whole",
			data:       bytes.Repeat([]byte("b"), 16),
			limits:     PreviewLimits{MaxBytes: 16, MaxLines: 5},
			wantReason: PreviewOK,
			wantLines:  []string{strings.Repeat("b", 16)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file")
			writeFile(t, path, tt.data)

			got := previewFile(path, tt.limits)
			if got.Reason != tt.wantReason {
				t.Fatalf("reason: got %v, want %v", got.Reason, tt.wantReason)
			}
			if got.Reason != PreviewOK {
				return
			}
			if got.Truncated != tt.wantTruncated {
				t.Errorf("truncated: got %v, want %v", got.Truncated, tt.wantTruncated)
			}
			if len(got.Lines) != len(tt.wantLines) {
				t.Fatalf("lines: got %v, want %v", got.Lines, tt.wantLines)
			}
			for i := range got.Lines {
				if got.Lines[i] != tt.wantLines[i] {
					t.Errorf("line %d: got %q, want %q", i, got.Lines[i], tt.wantLines[i])
				}
			}
		})
	}
}

func TestPreviewFileMissing(t *testing.T) {
	got := previewFile(filepath.Join(t.TempDir(), "nope.txt"), PreviewLimits{MaxBytes: 1024, MaxLines: 5})
	if got.Reason != PreviewUnreadable {
		t.Errorf("got reason %v, want PreviewUnreadable", got.Reason)
	}
}

func TestReadMetadata(t *testing.T) {
	dir := t.TempDir()

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		writeFile(t, path, []byte("some text\n"))

		md := readMetadata(path)
		if !md.Exists {
			t.Fatal("expected Exists=true")
		}
		if md.IsDir {
			t.Error("expected file, got directory")
		}
		if md.Size != 10 {
			t.Errorf("size: got %d, want 10", md.Size)
		}
		if md.Name != "notes.txt" {
			t.Errorf("name: got %q", md.Name)
		}
		if md.ModTime.IsZero() {
			t.Error("expected a modification time")
		}
	})

	t.Run("directory omits size", func(t *testing.T) {
		md := readMetadata(dir)
		if !md.Exists || !md.IsDir {
			t.Fatalf("got %+v, want existing directory", md)
		}
		if md.Size != 0 {
			t.Errorf("directory size: got %d, want 0", md.Size)
		}
		if md.ContentType != "" {
			t.Errorf("directory content type: got %q, want empty", md.ContentType)
		}
	})

	t.Run("missing path returns unavailable sentinel", func(t *testing.T) {
		md := readMetadata(filepath.Join(dir, "vanished"))
		if md.Exists {
			t.Error("expected Exists=false")
		}
		if md.Name != "vanished" {
			t.Errorf("name: got %q, want %q", md.Name, "vanished")
		}
	})
}

func TestSummarizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("a"))
	writeFile(t, filepath.Join(dir, "b.txt"), []byte("b"))

	got := summarizeDir(dir, 2)
	if !strings.Contains(got, dir) {
		t.Errorf("summary missing path: %q", got)
	}
	if !strings.Contains(got, "Items: 2") {
		t.Errorf("summary missing item count: %q", got)
	}
}
