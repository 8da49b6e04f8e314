package nativeext

import (
	"bufio"
	"bytes"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

var pythonVersionPattern = regexp.MustCompile(`(?m)^__version__\s*=\s*['"]([^'"]+)['"]`)

// ReadVersionFile reads the package version declared in path.
//
// Three layouts are understood:
//   - a Python version module: __version__ = '0.2.1'
//   - a TOML project file: [project] version = "0.2.1"
//   - a plain file whose first non-blank line is the version
func ReadVersionFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithMessagef(err, "reading version file %q", path)
	}

	var version string
	switch {
	case strings.HasSuffix(path, ".py"):
		if m := pythonVersionPattern.FindSubmatch(data); m != nil {
			version = string(m[1])
		}
	case strings.HasSuffix(path, ".toml"):
		version, err = tomlVersion(data)
		if err != nil {
			return "", errors.WithMessagef(err, "parsing version file %q", path)
		}
	default:
		version = firstLine(data)
	}

	version = strings.TrimSpace(version)
	if version == "" {
		return "", errors.WithMessagef(ErrVersionNotFound, "in %q", path)
	}

	return version, nil
}

type tomlProject struct {
	Project struct {
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func tomlVersion(data []byte) (string, error) {
	var doc tomlProject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", err
	}
	if doc.Project.Version != "" {
		return doc.Project.Version, nil
	}
	return doc.Tool.Poetry.Version, nil
}

func firstLine(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			return line
		}
	}
	return ""
}

// ResolveVersion picks the ref for the bundled build.
// A non-empty override (the CI ref name) always wins over the file version.
func ResolveVersion(fileVersion, override string) string {
	if override != "" {
		return override
	}
	return fileVersion
}
