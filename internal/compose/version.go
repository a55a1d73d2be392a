package compose

import (
	"regexp"

	"golang.org/x/mod/semver"
)

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z.-]+)?)`)

// ParseVersion extracts the compose version from the output of the version
// probe, e.g. "docker-compose version 1.29.2, build 5becea4c" or
// "Docker Compose version v2.24.5". It returns the canonical semver form
// ("v1.29.2") or an empty string when no version can be found.
func ParseVersion(output []byte) string {
	match := versionPattern.FindSubmatch(output)
	if match == nil {
		return ""
	}
	v := "v" + string(match[1])
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// MajorVersion returns "v1", "v2", ... or an empty string.
func MajorVersion(version string) string {
	return semver.Major(version)
}
