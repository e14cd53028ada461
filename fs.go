package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// Entry represents one child of a directory as shown in the sidebar
type Entry struct {
	Name   string
	Path   string
	IsDir  bool
	Hidden bool
	Size   int64
}

// PreviewReason classifies why a file has no textual preview
type PreviewReason int

const (
	PreviewOK PreviewReason = iota
	PreviewBinary
	PreviewTooLarge
	PreviewUnreadable
)

// PreviewResult is a bounded text excerpt or a placeholder reason
type PreviewResult struct {
	Reason    PreviewReason
	Lines     []string
	Truncated bool
	Size      int64
}

// PreviewLimits bounds how much of a file the previewer samples
type PreviewLimits struct {
	MaxBytes int64
	MaxLines int
}

// Metadata describes a path for the properties pane. Exists is false when
// the stat call failed (e.g., the path vanished after listing).
type Metadata struct {
	Name        string
	Path        string
	IsDir       bool
	Size        int64
	ModTime     time.Time
	ContentType string
	Exists      bool
}

// ErrorKind buckets filesystem failures for status messages
type ErrorKind int

const (
	ErrOther ErrorKind = iota
	ErrPermission
	ErrNotFound
)

func classifyError(err error) ErrorKind {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	default:
		return ErrOther
	}
}

func (k ErrorKind) String() string {
	switch k {
	case ErrPermission:
		return "permission denied"
	case ErrNotFound:
		return "not found"
	default:
		return "error"
	}
}

// listDir returns the children of dir, directories before files, each group
// sorted case-insensitively by name. Dotfiles are skipped unless showHidden.
// maxEntries bounds huge directories (0 means unbounded).
func listDir(dir string, showHidden bool, maxEntries int) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		hidden := strings.HasPrefix(d.Name(), ".")
		if hidden && !showHidden {
			continue
		}

		var size int64
		if !d.IsDir() {
			if info, err := d.Info(); err == nil {
				size = info.Size()
			}
		}

		entries = append(entries, Entry{
			Name:   d.Name(),
			Path:   filepath.Join(dir, d.Name()),
			IsDir:  d.IsDir(),
			Hidden: hidden,
			Size:   size,
		})
	}

	// Sort entries: directories first, then files, both case-insensitively
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	if maxEntries > 0 && len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	return entries, nil
}

// previewFile returns a bounded text excerpt of the file at path. It never
// returns an error: missing or unreadable files yield PreviewUnreadable,
// oversized files PreviewTooLarge (without reading the content), and
// non-text content PreviewBinary.
func previewFile(path string, limits PreviewLimits) PreviewResult {
	info, err := os.Stat(path)
	if err != nil {
		return PreviewResult{Reason: PreviewUnreadable}
	}

	if info.Size() > limits.MaxBytes {
		return PreviewResult{Reason: PreviewTooLarge, Size: info.Size()}
	}

	f, err := os.Open(path)
	if err != nil {
		return PreviewResult{Reason: PreviewUnreadable, Size: info.Size()}
	}
	defer f.Close()

	// Size is within MaxBytes, so the sample is the whole file and UTF-8
	// validation cannot trip over a rune split at the read boundary.
	sample, err := io.ReadAll(io.LimitReader(f, limits.MaxBytes))
	if err != nil {
		return PreviewResult{Reason: PreviewUnreadable, Size: info.Size()}
	}

	if bytes.IndexByte(sample, 0) >= 0 || !utf8.Valid(sample) {
		return PreviewResult{Reason: PreviewBinary, Size: info.Size()}
	}

	lines := strings.Split(string(sample), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	truncated := false
	if len(lines) > limits.MaxLines {
		lines = lines[:limits.MaxLines]
		truncated = true
	}

	return PreviewResult{
		Reason:    PreviewOK,
		Lines:     lines,
		Truncated: truncated,
		Size:      info.Size(),
	}
}

// readMetadata returns the attributes of path for the properties pane.
// Stat failures come back as the unavailable sentinel (Exists=false),
// never as an error.
func readMetadata(path string) Metadata {
	info, err := os.Lstat(path)
	if err != nil {
		return Metadata{Name: filepath.Base(path), Path: path}
	}

	md := Metadata{
		Name:    info.Name(),
		Path:    path,
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
		Exists:  true,
	}

	if !md.IsDir {
		md.Size = info.Size()
		// Content type is best effort only
		if mtype, err := mimetype.DetectFile(path); err == nil {
			md.ContentType = mtype.String()
		}
	}

	return md
}

// summarizeDir renders the content-pane text for a selected directory
func summarizeDir(path string, shown int) string {
	total := "?"
	if dirents, err := os.ReadDir(path); err == nil {
		total = fmt.Sprintf("%d", len(dirents))
	}
	return fmt.Sprintf("Directory:\n%s\n\nItems: %s (%d shown)\n", path, total, shown)
}
