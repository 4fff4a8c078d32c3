// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package expand resolves a mix of literal paths and glob patterns into a
// deduplicated, ordered list of candidate files.
package expand

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Inputs expands each token as a glob pattern (recursive ** patterns are
// supported) and collects the matches. A token that is not a valid pattern,
// or that matches nothing, is kept as a literal path; whether it actually
// exists is checked later, when the file is processed.
//
// Duplicates are dropped, keeping first-seen order, so a file matched by two
// overlapping patterns is processed once.
func Inputs(tokens []string) []string {
	var (
		seen    = make(map[string]struct{})
		results []string
	)

	for _, tok := range tokens {
		matches, err := doublestar.FilepathGlob(tok)
		if err != nil || len(matches) == 0 {
			matches = []string{tok}
		}

		for _, m := range matches {
			p := canonicalize(m)
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			results = append(results, p)
		}
	}

	return results
}

// canonicalize resolves an existing path to its absolute, symlink-free form
// so that different relative spellings of the same file dedupe to a single
// entry. Paths that don't exist pass through untouched.
func canonicalize(path string) string {
	if _, err := os.Lstat(path); err != nil {
		return path
	}
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}
