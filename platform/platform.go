// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package platform

import (
	"go.mondoo.com/sshcrypto/policy"
)

// often used family names
const (
	FAMILY_UNIX   = "unix"
	FAMILY_DARWIN = "darwin"
	FAMILY_LINUX  = "linux"
)

// Platform is the operating system detected on a target
type Platform struct {
	Name    string   `json:"name" yaml:"name"`
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	Release string   `json:"release" yaml:"release"`
	Arch    string   `json:"arch,omitempty" yaml:"arch,omitempty"`
	Family  []string `json:"family,omitempty" yaml:"family,omitempty"`
}

func (p *Platform) IsFamily(family string) bool {
	for i := range p.Family {
		if p.Family[i] == family {
			return true
		}
	}
	return false
}

// Descriptor converts the platform into the input of the policy resolver
func (p *Platform) Descriptor() policy.OSDescriptor {
	if p == nil {
		return policy.OSDescriptor{}
	}
	return policy.NewOSDescriptor(p.Name, p.Release)
}
