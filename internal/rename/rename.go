// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package rename changes the extensions of files on disk, avoiding or
// overwriting conflicting destinations as requested.
package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.astrophena.name/zipext/internal/zipfile"
)

// ErrInvalidExtension is returned by EnsureDotPrefix for extensions that
// cannot form a filename suffix.
var ErrInvalidExtension = errors.New("invalid extension")

// EnsureDotPrefix normalizes ext to start with a dot, like ".ben". It
// returns an error wrapping [ErrInvalidExtension] if ext is empty after
// trimming whitespace or contains path separators.
func EnsureDotPrefix(ext string) (string, error) {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return "", fmt.Errorf("%w: extension cannot be empty", ErrInvalidExtension)
	}
	if strings.ContainsRune(ext, '/') || strings.ContainsRune(ext, os.PathSeparator) {
		return "", fmt.Errorf("%w: extension cannot contain path separators", ErrInvalidExtension)
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext, nil
}

// NextAvailablePath returns target unchanged if nothing exists there.
// Otherwise it probes target with a numeric suffix inserted before the
// extension (file-1.ben, file-2.ben, ...) until an unused path is found.
//
// The check and the later use of the returned path are not atomic; a
// concurrent process can win the name in between.
func NextAvailablePath(target string) string {
	if !exists(target) {
		return target
	}
	stem, ext := splitExt(target)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

// Options control how [ChangeExtension] treats a single file.
type Options struct {
	// VerifyZip skips files that are not structurally valid ZIP archives.
	VerifyZip bool
	// Overwrite replaces an existing destination instead of picking a
	// conflict-free name.
	Overwrite bool
	// DryRun reports the rename that would happen without performing it.
	DryRun bool
}

// Result is the outcome of processing a single file.
type Result struct {
	// OK reports whether the file was renamed (or would be, on a dry run).
	OK bool
	// Message is a human-readable, single-line description of the outcome.
	Message string
}

// ChangeExtension renames the file at path so that its final suffix becomes
// ext; the directory and stem are preserved. Skips and OS-level rename
// failures are folded into the returned [Result], never into an error or a
// panic, so a batch caller can keep going.
//
// ext must be valid per [EnsureDotPrefix]: the caller is expected to have
// validated it up front, and a malformed extension here panics.
func ChangeExtension(path, ext string, opts Options) Result {
	if !isFile(path) {
		return Result{Message: fmt.Sprintf("Skip: '%s' is not a file.", path)}
	}

	next, err := EnsureDotPrefix(ext)
	if err != nil {
		panic(err)
	}

	if opts.VerifyZip && !zipfile.Valid(path) {
		return Result{Message: fmt.Sprintf("Skip: '%s' is not a valid ZIP (use --no-verify to force).", path)}
	}

	stem, _ := splitExt(path)
	dst := stem + next

	if opts.DryRun {
		var note string
		if opts.Overwrite && exists(dst) {
			note = " (will overwrite)"
		}
		return Result{
			OK:      true,
			Message: fmt.Sprintf("Would rename: %s -> %s%s", filepath.Base(path), filepath.Base(dst), note),
		}
	}

	overwrote := opts.Overwrite && exists(dst)
	final := dst
	if !opts.Overwrite {
		final = NextAvailablePath(dst)
	}

	// os.Rename is the platform's atomic replace primitive: an existing
	// destination is substituted in a single step.
	if err := os.Rename(path, final); err != nil {
		return Result{Message: fmt.Sprintf("Error renaming '%s': %v", path, err)}
	}

	if overwrote {
		return Result{
			OK:      true,
			Message: fmt.Sprintf("Renamed (overwrote): %s -> %s", filepath.Base(path), filepath.Base(dst)),
		}
	}

	var note string
	if final != dst {
		note = fmt.Sprintf(" (renamed to avoid conflict: %s)", filepath.Base(final))
	}
	return Result{
		OK:      true,
		Message: fmt.Sprintf("Renamed: %s -> %s%s", filepath.Base(path), filepath.Base(final), note),
	}
}

// splitExt splits path into everything before the final suffix and the
// suffix itself. Dotfiles like ".bashrc" are treated as having no suffix.
func splitExt(path string) (stem, ext string) {
	ext = filepath.Ext(path)
	if ext == filepath.Base(path) {
		ext = ""
	}
	return strings.TrimSuffix(path, ext), ext
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
