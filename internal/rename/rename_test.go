// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package rename

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/zipext/internal/testutil"
)

func TestEnsureDotPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		ext     string
		want    string
		wantErr error
	}{
		"plain":              {ext: "ben", want: ".ben"},
		"already dotted":     {ext: ".ben", want: ".ben"},
		"surrounding space":  {ext: "  zz  ", want: ".zz"},
		"empty":              {ext: "", wantErr: ErrInvalidExtension},
		"only space":         {ext: "   ", wantErr: ErrInvalidExtension},
		"contains separator": {ext: "a/b", wantErr: ErrInvalidExtension},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := EnsureDotPrefix(tc.ext)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("EnsureDotPrefix(%q): got error %v, want %v", tc.ext, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EnsureDotPrefix(%q): %v", tc.ext, err)
			}
			if !strings.HasPrefix(got, ".") {
				t.Fatalf("EnsureDotPrefix(%q) = %q, doesn't start with a dot", tc.ext, got)
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestNextAvailablePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.ben")
	testutil.AssertEqual(t, NextAvailablePath(missing), missing)

	target := filepath.Join(dir, "file.ben")
	write(t, target, "first")
	got := NextAvailablePath(target)
	testutil.AssertEqual(t, got, filepath.Join(dir, "file-1.ben"))
	if exists(got) {
		t.Fatalf("NextAvailablePath returned an existing path: %s", got)
	}

	write(t, got, "second")
	testutil.AssertEqual(t, NextAvailablePath(target), filepath.Join(dir, "file-2.ben"))

	// Dotfiles have no extension to insert the suffix before.
	dotfile := filepath.Join(dir, ".bashrc")
	write(t, dotfile, "dot")
	testutil.AssertEqual(t, NextAvailablePath(dotfile), filepath.Join(dir, ".bashrc-1"))
}

func TestChangeExtensionSkips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	res := ChangeExtension(filepath.Join(dir, "missing.zip"), ".ben", Options{})
	if res.OK {
		t.Fatal("renaming a missing file must not succeed")
	}
	if !strings.Contains(res.Message, "is not a file") {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	res = ChangeExtension(dir, ".ben", Options{})
	if res.OK || !strings.Contains(res.Message, "is not a file") {
		t.Fatalf("directories must be skipped, got: %+v", res)
	}

	notZip := filepath.Join(dir, "fake.zip")
	write(t, notZip, "not an archive")
	res = ChangeExtension(notZip, ".ben", Options{VerifyZip: true})
	if res.OK || !strings.Contains(res.Message, "is not a valid ZIP") {
		t.Fatalf("invalid ZIP must be skipped, got: %+v", res)
	}
	if !exists(notZip) {
		t.Fatal("skipped file must not be touched")
	}
}

func TestChangeExtensionRenames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.zip")
	writeZip(t, src)

	res := ChangeExtension(src, "ben", Options{VerifyZip: true})
	if !res.OK {
		t.Fatalf("rename failed: %s", res.Message)
	}
	testutil.AssertEqual(t, res.Message, "Renamed: a.zip -> a.ben")
	if exists(src) || !exists(filepath.Join(dir, "a.ben")) {
		t.Fatal("a.zip must become a.ben")
	}
}

func TestChangeExtensionNoVerify(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "fake.zip")
	write(t, src, "not an archive")

	res := ChangeExtension(src, ".ben", Options{VerifyZip: false})
	if !res.OK {
		t.Fatalf("rename failed: %s", res.Message)
	}
	if !exists(filepath.Join(dir, "fake.ben")) {
		t.Fatal("fake.zip must be renamed unconditionally without verification")
	}
}

func TestChangeExtensionConflict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.zip")
	writeZip(t, src)
	existing := filepath.Join(dir, "a.ben")
	write(t, existing, "keep me")

	res := ChangeExtension(src, ".ben", Options{VerifyZip: true})
	if !res.OK {
		t.Fatalf("rename failed: %s", res.Message)
	}
	testutil.AssertEqual(t, res.Message, "Renamed: a.zip -> a-1.ben (renamed to avoid conflict: a-1.ben)")
	testutil.AssertEqual(t, read(t, existing), "keep me")
	if !exists(filepath.Join(dir, "a-1.ben")) {
		t.Fatal("conflicting rename must land on a-1.ben")
	}
}

func TestChangeExtensionOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.zip")
	write(t, src, "new content")
	existing := filepath.Join(dir, "a.ben")
	write(t, existing, "old content")

	res := ChangeExtension(src, ".ben", Options{Overwrite: true})
	if !res.OK {
		t.Fatalf("rename failed: %s", res.Message)
	}
	testutil.AssertEqual(t, res.Message, "Renamed (overwrote): a.zip -> a.ben")
	testutil.AssertEqual(t, read(t, existing), "new content")
	if exists(src) {
		t.Fatal("source must be gone after an overwrite")
	}
}

func TestChangeExtensionDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.zip")
	writeZip(t, src)
	existing := filepath.Join(dir, "a.ben")
	write(t, existing, "keep me")

	res := ChangeExtension(src, ".ben", Options{VerifyZip: true, DryRun: true})
	if !res.OK {
		t.Fatalf("dry run failed: %s", res.Message)
	}
	testutil.AssertEqual(t, res.Message, "Would rename: a.zip -> a.ben")
	if !exists(src) {
		t.Fatal("dry run must not mutate the filesystem")
	}

	res = ChangeExtension(src, ".ben", Options{Overwrite: true, DryRun: true})
	testutil.AssertEqual(t, res.Message, "Would rename: a.zip -> a.ben (will overwrite)")
	if !exists(src) || read(t, existing) != "keep me" {
		t.Fatal("dry run must not mutate the filesystem")
	}
}

func TestChangeExtensionBadExtensionPanics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.zip")
	writeZip(t, src)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("ChangeExtension did not panic on an empty extension")
		}
	}()
	ChangeExtension(src, "   ", Options{})
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func writeZip(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("entry.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}
