// Package fileutil provides the transient file handling used by the
// conversion engines.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePrefix starts every transient file name so stray files are easy to spot.
const FilePrefix = "invoice2pdf-"

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrInvalidJobID           = errors.New("invalid job id")
)

// Transient names the markup and artifact files of a single conversion.
// Both names embed the job ID, so concurrent conversions never share a path.
type Transient struct {
	Markup   string
	Artifact string
}

// NewTransient builds the transient paths for jobID inside dir.
// An empty dir means os.TempDir().
func NewTransient(dir, jobID string) (Transient, error) {
	if jobID == "" || strings.ContainsAny(jobID, "/\\.\x00") {
		return Transient{}, fmt.Errorf("%w: %q", ErrInvalidJobID, jobID)
	}
	if dir == "" {
		dir = os.TempDir()
	}

	base := filepath.Join(dir, FilePrefix+jobID)
	return Transient{
		Markup:   base + ".html",
		Artifact: base + ".pdf",
	}, nil
}

// WriteMarkup creates the markup file. It fails if the file already exists,
// which would mean another conversion owns the same job ID.
func (t Transient) WriteMarkup(content string) error {
	// #nosec G304 -- path built by NewTransient from a validated job ID
	f, err := os.OpenFile(t.Markup, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("creating markup file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = os.Remove(t.Markup)
		return fmt.Errorf("writing markup file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(t.Markup)
		return fmt.Errorf("closing markup file: %w", err)
	}
	return nil
}

// ReadArtifact reads the produced artifact fully into memory.
func (t Transient) ReadArtifact() ([]byte, error) {
	data, err := os.ReadFile(t.Artifact) // #nosec G304 -- path built by NewTransient
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	return data, nil
}

// Cleanup removes both files. Missing files are not an error; the first
// other failure is returned after attempting both removals.
func (t Transient) Cleanup() error {
	var errs []error
	for _, p := range []string{t.Markup, t.Artifact} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", FilePrefix+"*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirWritable reports whether a file can be created inside dir.
func DirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, FilePrefix+"probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
