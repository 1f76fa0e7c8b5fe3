package config

import (
	"path/filepath"
	"strings"

	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/types"
)

// GenerateConfigContent generates the configuration file content with commented values
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultsContent())
}

// WriteConfigFile writes the commented defaults to path. An existing file is
// only replaced when force is set.
func WriteConfigFile(fsys types.FS, path string, force bool) error {
	if _, err := fsys.Stat(path); err == nil && !force {
		return errors.Newf(errors.ErrOutputExists, "config file %s already exists", path).
			WithDetail("path", path)
	}
	if err := fsys.MkdirAll(filepath.Dir(path), types.DirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := fsys.WriteFile(path, []byte(GenerateConfigContent()), types.FilePerm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path)
	}
	return nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			// Section headers stay so uncommenting a value is enough
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
