// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Zipext renames ZIP archives to another extension (default .ben). Supports
globs, including recursive ** patterns.

# Usage

	$ zipext [flags...] [paths or globs...]

Each positional argument is a file path or a glob pattern; the -pattern flag
adds more patterns and can be given multiple times. Every matched file is
verified to be a valid ZIP archive (disable with -no-verify) and renamed so
that only its final extension changes.

If the destination already exists, a numeric suffix is added (file.ben
becomes file-1.ben), unless -force is given, in which case the destination
is atomically replaced. Use -dry-run to preview the renames without touching
anything.

Zipext exits with status 0 if every file was renamed, 1 if anything was
skipped or failed, and 2 if no inputs were supplied at all.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/zipext/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
