// Package version parses and compares remote gateway protocol versions.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Current is the remote gateway protocol version spoken by this module.
const Current = "1.0"

// ErrInvalid is returned for strings that are not "major.minor".
var ErrInvalid = errors.New("invalid protocol version")

// Version is a "major.minor" protocol version. Peers interoperate when their
// majors match; minors only add methods.
type Version struct {
	Major uint16
	Minor uint16
}

// Parse parses "major.minor". A bare major ("1") reads as minor 0.
func Parse(s string) (Version, error) {
	majorStr, minorStr, hasMinor := strings.Cut(strings.TrimSpace(s), ".")
	major, err := strconv.ParseUint(majorStr, 10, 16)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	var minor uint64
	if hasMinor {
		if minor, err = strconv.ParseUint(minorStr, 10, 16); err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalid, s)
		}
	}
	if major == 0 {
		return Version{}, fmt.Errorf("%w: %q has major 0", ErrInvalid, s)
	}
	return Version{Major: uint16(major), Minor: uint16(minor)}, nil
}

// MustParse is Parse for constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible reports whether peers at v and other can talk.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major
}

// Supports reports whether a peer at other accepts the current version.
func Supports(other Version) bool {
	return MustParse(Current).Compatible(other)
}
