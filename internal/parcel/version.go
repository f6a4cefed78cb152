package parcel

import (
	"fmt"
	"regexp"
)

// releasePattern matches the MAJOR.MINOR.PATCH prefix of a full parcel version.
var releasePattern = regexp.MustCompile(`^(\d+\.\d+\.\d+)`)

// ReleaseVersion extracts the release triplet from a full parcel version.
//
//	ReleaseVersion("1.4.0-1.cdh5.12.0.p0.814") // "1.4.0"
func ReleaseVersion(version string) (string, error) {
	m := releasePattern.FindStringSubmatch(version)
	if m == nil {
		return "", fmt.Errorf("could not get the release version from %q: %w", version, ErrMalformedVersion)
	}
	return m[1], nil
}

// SameRelease reports whether two full versions share the release triplet.
func SameRelease(a, b string) (bool, error) {
	ra, err := ReleaseVersion(a)
	if err != nil {
		return false, err
	}
	rb, err := ReleaseVersion(b)
	if err != nil {
		return false, err
	}
	return ra == rb, nil
}
