// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package policy

import (
	"regexp"
	"strings"

	vrs "github.com/hashicorp/go-version"
)

// leading dotted numeric run, e.g. 8.9 in 8.9p1
var numericVersion = regexp.MustCompile(`^\d+(\.\d+)*`)

var sentinelVersion = vrs.Must(vrs.NewVersion("0.0"))

// Version is the comparable version of the installed SSH daemon.
// The zero value and nil both behave like the 0.0 sentinel.
type Version struct {
	raw string
	v   *vrs.Version
}

// ParseVersion extracts the SSH daemon version from raw input. It accepts
// bare numbers ("7.4") as well as the output of `ssh -V`
// ("OpenSSH_8.9p1 Ubuntu-3ubuntu0.1, OpenSSL 3.0.2 15 Mar 2022").
// Anything it cannot make sense of resolves to 0.0.
func ParseVersion(raw string) *Version {
	res := &Version{raw: raw, v: sentinelVersion}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return res
	}

	// same as `ssh -V | cut -f1 -d" " | cut -f2 -d"_"`, but tolerant of
	// banners with more than one underscore like OpenSSH_for_Windows_8.1p1
	token := fields[0]
	if idx := strings.LastIndex(token, "_"); idx >= 0 {
		token = token[idx+1:]
	}

	num := numericVersion.FindString(token)
	if num == "" {
		return res
	}

	v, err := vrs.NewVersion(num)
	if err != nil {
		return res
	}
	res.v = v
	return res
}

// MustVersion parses a plain dotted version and panics if it is invalid.
// It is meant for thresholds defined in code.
func MustVersion(s string) *Version {
	return &Version{raw: s, v: vrs.Must(vrs.NewVersion(s))}
}

func (v *Version) semver() *vrs.Version {
	if v == nil || v.v == nil {
		return sentinelVersion
	}
	return v.v
}

// Raw returns the input the version was parsed from.
func (v *Version) Raw() string {
	if v == nil {
		return ""
	}
	return v.raw
}

// IsUnknown is true if no version could be parsed from the input
func (v *Version) IsUnknown() bool {
	return v.semver().Equal(sentinelVersion)
}

// Compare returns -1, 0 or 1 depending on whether v is smaller, equal or
// larger than o. Components are compared numerically, so 6.10 > 6.9.
func (v *Version) Compare(o *Version) int {
	return v.semver().Compare(o.semver())
}

func (v *Version) AtLeast(o *Version) bool {
	return v.Compare(o) >= 0
}

// String returns the normalized version, e.g. 8.9 for OpenSSH_8.9p1
func (v *Version) String() string {
	return v.semver().Original()
}
