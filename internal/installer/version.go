package installer

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion 从 "Python 3.11.2" 这类输出中提取版本号
func ParseVersion(output string) (string, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return "", fmt.Errorf("no version found in %q", strings.TrimSpace(output))
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return fmt.Sprintf("%s.%s.%s", m[1], m[2], patch), nil
}

// AtLeast reports whether version >= min. Both are dotted numeric versions
// without a "v" prefix; "3.8" is accepted as shorthand for "3.8.0".
func AtLeast(version, min string) bool {
	v, m := "v"+version, "v"+min
	if !semver.IsValid(v) || !semver.IsValid(m) {
		return false
	}
	return semver.Compare(v, m) >= 0
}
