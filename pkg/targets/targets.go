// Package targets turns INPUT:OUTPUT arguments into concrete file pairs.
package targets

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/types"
)

// Separator splits a target argument into input and output.
const Separator = ":"

// Spec is one parsed INPUT:OUTPUT argument.
type Spec struct {
	Raw    string
	Input  string
	Output string
}

func (s Spec) String() string {
	return s.Raw
}

// FilePair is a single template file and the path its output goes to.
type FilePair struct {
	Input  string
	Output string
}

// ParseSpec requires exactly two non-empty parts.
func ParseSpec(raw string) (Spec, error) {
	parts := strings.Split(raw, Separator)
	if len(parts) != 2 {
		return Spec{}, errors.Newf(errors.ErrTargetFormat,
			"invalid target %q: expected INPUT:OUTPUT, found %d part(s)", raw, len(parts)).
			WithDetail("target", raw)
	}
	if parts[0] == "" || parts[1] == "" {
		return Spec{}, errors.Newf(errors.ErrTargetFormat,
			"invalid target %q: input and output must both be set", raw).
			WithDetail("target", raw)
	}
	return Spec{Raw: raw, Input: parts[0], Output: parts[1]}, nil
}

// ParseSpecs parses every argument, stopping at the first malformed one.
func ParseSpecs(raws []string) ([]Spec, error) {
	specs := make([]Spec, 0, len(raws))
	for _, raw := range raws {
		spec, err := ParseSpec(raw)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Resolver checks specs against the filesystem and expands them.
type Resolver struct {
	FS        types.FS
	Overwrite bool
}

// Validate runs the pre-render checks for a spec in a fixed order: the input
// must exist, a directory may not target a plain file, and an existing output
// needs Overwrite.
func (r Resolver) Validate(spec Spec) error {
	in, err := r.FS.Stat(spec.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrInputNotFound, "input %s does not exist", spec.Input).
				WithDetails(specDetails(spec))
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access input %s", spec.Input).
			WithDetails(specDetails(spec))
	}

	out, err := r.FS.Stat(spec.Output)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access output %s", spec.Output).
			WithDetails(specDetails(spec))
	}

	if in.IsDir() && !out.IsDir() {
		return errors.Newf(errors.ErrTargetConflict,
			"input %s is a directory but output %s is a file", spec.Input, spec.Output).
			WithDetails(specDetails(spec))
	}
	if !r.Overwrite {
		return errors.Newf(errors.ErrOutputExists,
			"output %s already exists; pass --overwrite to replace it", spec.Output).
			WithDetails(specDetails(spec))
	}
	return nil
}

// IsDir reports whether the spec's input is a directory.
func (r Resolver) IsDir(spec Spec) (bool, error) {
	info, err := r.FS.Stat(spec.Input)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot access input %s", spec.Input).
			WithDetails(specDetails(spec))
	}
	return info.IsDir(), nil
}

// Expand lists the pairs a spec produces. A file input yields one pair. A
// directory input yields one pair per file found below it, ordered by path
// relative to the input, with the same relative layout under the output.
func (r Resolver) Expand(spec Spec) ([]FilePair, error) {
	isDir, err := r.IsDir(spec)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return []FilePair{{Input: spec.Input, Output: spec.Output}}, nil
	}

	var rels []string
	if err := r.walk(spec.Input, "", &rels); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", spec.Input).
			WithDetails(specDetails(spec))
	}
	sort.Strings(rels)

	pairs := make([]FilePair, len(rels))
	for i, rel := range rels {
		pairs[i] = FilePair{
			Input:  filepath.Join(spec.Input, filepath.FromSlash(rel)),
			Output: filepath.Join(spec.Output, filepath.FromSlash(rel)),
		}
	}
	return pairs, nil
}

// walk collects slash-separated paths of regular files below root/rel.
// Symlinks to files are followed; symlinks to directories are not.
func (r Resolver) walk(root, rel string, out *[]string) error {
	entries, err := r.FS.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		child := entry.Name()
		if rel != "" {
			child = rel + "/" + child
		}

		switch {
		case entry.IsDir():
			if err := r.walk(root, child, out); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			*out = append(*out, child)
		case entry.Type()&fs.ModeSymlink != 0:
			info, err := r.FS.Stat(filepath.Join(root, filepath.FromSlash(child)))
			if err == nil && info.Mode().IsRegular() {
				*out = append(*out, child)
			}
		}
	}
	return nil
}

func specDetails(spec Spec) map[string]interface{} {
	return map[string]interface{}{
		"target": spec.Raw,
		"input":  spec.Input,
		"output": spec.Output,
	}
}
