// Package main implements ptbench, a small CLI that drives a PieceTable
// through a scripted insert/remove workload and reports timing and
// the resulting document length, the command-line descendant of the original crate's stress
// driver in src/main.rs.
package main

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/tajtiattila/basedir"
)

// Profile configures one ptbench run. Zero value is not usable; LoadProfile
// always returns a profile with the same defaults the original stress
// driver hard-coded, even on error.
type Profile struct {
	Seed              string
	InsertCount       int
	InsertAt          int
	RemoveStart       int
	RemoveEnd         int
	Lines             bool
	UnicodeLineBreaks bool
	ContiguousInserts bool
}

func defaultProfile() Profile {
	return Profile{
		Seed:              "asdfjlkajslkdfjlkajsldkfjlkasjdlkfj",
		InsertCount:       10000,
		InsertAt:          10,
		RemoveStart:       4,
		RemoveEnd:         294,
		ContiguousInserts: true,
	}
}

// LoadProfile reads a benchmark profile from path. If path is empty, it
// resolves the default profile location under the user's XDG config
// directory (ptbench/profile.toml) the way dpinela-mflg's config package
// resolves its own config file. It always returns a usable Profile, even
// alongside a non-nil error, matching that same convention.
func LoadProfile(path string) (Profile, error) {
	p := defaultProfile()

	if path == "" {
		f, err := basedir.Config.Open(filepath.Join("ptbench", "profile.toml"))
		if err != nil {
			return p, errors.WithMessage(err, "error loading profile")
		}
		defer f.Close()
		_, err = toml.DecodeReader(f, &p)
		return p, errors.WithMessage(err, "error decoding profile")
	}

	_, err := toml.DecodeFile(path, &p)
	return p, errors.WithMessage(err, "error decoding profile")
}
