// Package renderctx assembles the root object templates are executed against.
//
// Templates see two maps:
//
//	.Env  environment variables at the time of the render
//	.Os   facts about the running process; currently only UID
package renderctx

import (
	"os"
	"sort"
	"strconv"
	"strings"
)

// Context is the immutable data handed to a template.
type Context struct {
	Env map[string]string `json:"Env" yaml:"Env" toml:"Env"`
	Os  map[string]string `json:"Os" yaml:"Os" toml:"Os"`
}

// Builder snapshots the process state into a Context. The zero value reads
// the real environment and effective uid.
type Builder struct {
	Environ func() []string
	EUID    func() int
}

// Fixed returns a Builder whose environment is always env.
func Fixed(env map[string]string) Builder {
	entries := make([]string, 0, len(env))
	for k, v := range env {
		entries = append(entries, k+"="+v)
	}
	sort.Strings(entries)
	return Builder{
		Environ: func() []string { return entries },
	}
}

// Build takes a fresh snapshot. Entries without "=" are skipped and the value
// is everything after the first "=". A later duplicate key wins.
func (b Builder) Build() Context {
	environ := b.Environ
	if environ == nil {
		environ = os.Environ
	}
	euid := b.EUID
	if euid == nil {
		euid = os.Geteuid
	}

	entries := environ()
	env := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, val, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		env[key] = val
	}

	uid := euid()
	if uid < 0 {
		// os.Geteuid reports -1 on platforms without uids.
		uid = 0
	}

	return Context{
		Env: env,
		Os:  map[string]string{"UID": strconv.Itoa(uid)},
	}
}
