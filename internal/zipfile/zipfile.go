// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package zipfile reports whether files on disk are well-formed ZIP
// containers.
package zipfile

import "archive/zip"

// Valid reports whether the file at path is a structurally valid ZIP
// archive, that is, whether its central directory parses. Every I/O or
// format error is treated as "not a ZIP"; Valid never fails.
func Valid(path string) bool {
	r, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	r.Close()
	return true
}
