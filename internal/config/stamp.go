package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
)

const stampFileName = "version"

// VersionStamp records the running binary version in the data directory
// and returns the version that ran before, or "" on first run. The stamp
// lets startup announce upgrades and gives future migrations a floor to
// work from.
func (c *Config) VersionStamp(version string) (previous string, err error) {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	path := c.Path(stampFileName)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read version stamp: %w", err)
	}
	previous = strings.TrimSpace(string(data))

	if previous != version {
		if err := os.WriteFile(path, []byte(version+"\n"), 0644); err != nil {
			return "", fmt.Errorf("failed to write version stamp: %w", err)
		}
	}
	return previous, nil
}

// IsUpgrade reports whether current is a strictly newer semantic version
// than previous. Unparseable or missing versions never count as upgrades.
func IsUpgrade(previous, current string) bool {
	p, cur := canonical(previous), canonical(current)
	if p == "" || cur == "" {
		return false
	}
	return semver.Compare(cur, p) > 0
}

func canonical(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
