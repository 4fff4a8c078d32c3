// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.astrophena.name/zipext/internal/cli"
	"go.astrophena.name/zipext/internal/cli/restrict"
	"go.astrophena.name/zipext/internal/expand"
	"go.astrophena.name/zipext/internal/rename"

	"github.com/landlock-lsm/go-landlock/landlock"
)

func main() { cli.Main(new(app)) }

var errSomeFailed = errors.New("some files were not renamed")

type app struct {
	patterns stringSlice
	to       string
	force    bool
	noVerify bool
	dryRun   bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.Var(&a.patterns, "pattern", "Glob `pattern` of files to convert. Can be given multiple times.")
	fs.StringVar(&a.to, "to", ".ben", "Target `extension`.")
	fs.BoolVar(&a.force, "force", false, "Overwrite destination if it exists. Without this, a numeric suffix is added.")
	fs.BoolVar(&a.noVerify, "no-verify", false, "Do not verify that the input files are ZIP archives.")
	fs.BoolVar(&a.dryRun, "dry-run", false, "Show what would happen without making changes.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	ext, err := rename.EnsureDotPrefix(a.to)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
	}

	inputs := append(slices.Clone(env.Args), a.patterns...)
	if len(inputs) == 0 {
		return usageError{"No inputs provided. Specify files or use --pattern."}
	}

	files := expand.Inputs(inputs)
	if len(files) == 0 {
		return errors.New("No files matched the provided paths/patterns.")
	}

	// Drop privileges if not inside tests.
	if !testing.Testing() {
		restrict.Do(ctx, landlock.RWDirs(candidateDirs(files)...))
	}

	ok := true
	for _, f := range files {
		res := rename.ChangeExtension(f, ext, rename.Options{
			VerifyZip: !a.noVerify,
			Overwrite: a.force,
			DryRun:    a.dryRun,
		})
		fmt.Fprintln(env.Stdout, res.Message)
		ok = ok && res.OK
	}

	if !ok {
		return errSomeFailed
	}
	return nil
}

// candidateDirs returns the sorted set of existing directories holding the
// candidate files, for sandboxing. Renames never cross directories, so
// read-write access to these is all zipext needs.
func candidateDirs(files []string) []string {
	seen := make(map[string]struct{})
	for _, f := range files {
		dir := filepath.Dir(f)
		if realdir, err := filepath.EvalSymlinks(dir); err == nil {
			seen[realdir] = struct{}{}
		}
	}
	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	slices.Sort(dirs)
	return dirs
}

// usageError is reported to the user as-is and makes the process exit with
// the usage error status.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }
func (e usageError) Unwrap() error { return cli.ErrInvalidArgs }

// stringSlice is a repeatable string flag.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }

func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}
