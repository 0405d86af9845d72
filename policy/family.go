// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package policy

import "strings"

// Family groups operating systems that share the same key exchange
// calibration.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyUbuntu
	FamilyDebian
	// redhat, centos, oracle, rocky, almalinux
	FamilyRedhat
	// alpine, arch, fedora, opensuse: these track upstream OpenSSH closely,
	// so the key exchange rule keys on the sshd version instead of the release
	FamilyRolling
	FamilyAmazon
	FamilyMacOS
)

var familyNames = map[Family]string{
	FamilyUnknown: "unknown",
	FamilyUbuntu:  "ubuntu",
	FamilyDebian:  "debian",
	FamilyRedhat:  "redhat",
	FamilyRolling: "rolling",
	FamilyAmazon:  "amazon",
	FamilyMacOS:   "mac_os_x",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return familyNames[FamilyUnknown]
}

// platform names as reported by InSpec and the local detector
var platformFamilies = map[string]Family{
	"ubuntu": FamilyUbuntu,
	"debian": FamilyDebian,

	"redhat":     FamilyRedhat,
	"rhel":       FamilyRedhat,
	"centos":     FamilyRedhat,
	"oracle":     FamilyRedhat,
	"ol":         FamilyRedhat,
	"rocky":      FamilyRedhat,
	"rockylinux": FamilyRedhat,
	"almalinux":  FamilyRedhat,

	"alpine":              FamilyRolling,
	"arch":                FamilyRolling,
	"fedora":              FamilyRolling,
	"opensuse":            FamilyRolling,
	"opensuse-leap":       FamilyRolling,
	"opensuse-tumbleweed": FamilyRolling,

	"amazon":      FamilyAmazon,
	"amzn":        FamilyAmazon,
	"amazonlinux": FamilyAmazon,

	"mac_os_x": FamilyMacOS,
	"macos":    FamilyMacOS,
}

// NormalizeFamily maps a platform name coming from an OS probe onto the
// closed set of families the rules know about. Unrecognized names map to
// FamilyUnknown.
func NormalizeFamily(name string) Family {
	f, ok := platformFamilies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return FamilyUnknown
	}
	return f
}

// OSDescriptor identifies the operating system a policy is resolved for.
type OSDescriptor struct {
	Family Family
	// Name is the platform name as reported by the probe, kept for reporting
	Name    string
	Release string
}

// NewOSDescriptor normalizes a raw platform name and release
func NewOSDescriptor(name string, release string) OSDescriptor {
	return OSDescriptor{
		Family:  NormalizeFamily(name),
		Name:    name,
		Release: release,
	}
}
