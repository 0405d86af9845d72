// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package policy

import (
	"encoding/json"
	"strings"

	"golang.org/x/crypto/ssh"
)

// AlgorithmSet is an ordered list of algorithm names, most preferred first.
type AlgorithmSet []string

// Clone returns a copy that does not share its backing array with s
func (s AlgorithmSet) Clone() AlgorithmSet {
	if s == nil {
		return nil
	}
	res := make(AlgorithmSet, len(s))
	copy(res, s)
	return res
}

func (s AlgorithmSet) Contains(name string) bool {
	for i := range s {
		if s[i] == name {
			return true
		}
	}
	return false
}

// String renders the set the way it is written in sshd_config
func (s AlgorithmSet) String() string {
	return strings.Join(s, ",")
}

// Recommendation is either a known algorithm set or Unspecified. An
// unspecified recommendation means there is no calibrated policy for the
// platform, which is not the same as a known but empty set.
type Recommendation struct {
	set   AlgorithmSet
	known bool
}

// Unspecified is the recommendation for platforms without a known policy
var Unspecified = Recommendation{}

func Known(set AlgorithmSet) Recommendation {
	if set == nil {
		set = AlgorithmSet{}
	}
	return Recommendation{set: set.Clone(), known: true}
}

// Get returns a copy of the recommended set and whether it is known
func (r Recommendation) Get() (AlgorithmSet, bool) {
	if !r.known {
		return nil, false
	}
	return r.set.Clone(), true
}

func (r Recommendation) clone() Recommendation {
	if !r.known {
		return Unspecified
	}
	return Recommendation{set: r.set.Clone(), known: true}
}

func (r Recommendation) IsKnown() bool {
	return r.known
}

func (r Recommendation) Equal(o Recommendation) bool {
	if r.known != o.known || len(r.set) != len(o.set) {
		return false
	}
	for i := range r.set {
		if r.set[i] != o.set[i] {
			return false
		}
	}
	return true
}

func (r Recommendation) String() string {
	if !r.known {
		return "unspecified"
	}
	return r.set.String()
}

func (r Recommendation) MarshalJSON() ([]byte, error) {
	if !r.known {
		return []byte("null"), nil
	}
	return json.Marshal([]string(r.set))
}

func (r Recommendation) MarshalYAML() (interface{}, error) {
	if !r.known {
		return nil, nil
	}
	return []string(r.set), nil
}

// PrivilegeSeparation is the recommended UsePrivilegeSeparation value
type PrivilegeSeparation int

const (
	// PrivilegeSeparationUnspecified means the option should not be set,
	// either because sshd is too old or because it is no longer configurable
	PrivilegeSeparationUnspecified PrivilegeSeparation = iota
	PrivilegeSeparationYes
	PrivilegeSeparationSandbox
)

func (p PrivilegeSeparation) String() string {
	switch p {
	case PrivilegeSeparationYes:
		return "yes"
	case PrivilegeSeparationSandbox:
		return "sandbox"
	default:
		return ""
	}
}

func (p PrivilegeSeparation) IsKnown() bool {
	return p != PrivilegeSeparationUnspecified
}

func (p PrivilegeSeparation) MarshalJSON() ([]byte, error) {
	if !p.IsKnown() {
		return []byte("null"), nil
	}
	return json.Marshal(p.String())
}

func (p PrivilegeSeparation) MarshalYAML() (interface{}, error) {
	if !p.IsKnown() {
		return nil, nil
	}
	return p.String(), nil
}

// ParsePrivilegeSeparation reads a configured UsePrivilegeSeparation value.
// Anything other than yes or sandbox is unspecified.
func ParsePrivilegeSeparation(s string) PrivilegeSeparation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return PrivilegeSeparationYes
	case "sandbox":
		return PrivilegeSeparationSandbox
	default:
		return PrivilegeSeparationUnspecified
	}
}

// HostKeyFamily is the public key type of a host key
type HostKeyFamily string

const (
	HostKeyRSA     HostKeyFamily = "rsa"
	HostKeyECDSA   HostKeyFamily = "ecdsa"
	HostKeyED25519 HostKeyFamily = "ed25519"
)

// KeyAlgorithms returns the host key algorithm names sshd offers for keys
// of this family, strongest first.
func (h HostKeyFamily) KeyAlgorithms() []string {
	switch h {
	case HostKeyRSA:
		return []string{ssh.KeyAlgoRSASHA512, ssh.KeyAlgoRSASHA256, ssh.KeyAlgoRSA}
	case HostKeyECDSA:
		return []string{ssh.KeyAlgoECDSA256, ssh.KeyAlgoECDSA384, ssh.KeyAlgoECDSA521}
	case HostKeyED25519:
		return []string{ssh.KeyAlgoED25519}
	default:
		return nil
	}
}

// ParseHostKeyFamily maps a family name ("rsa") or a key algorithm name
// ("ssh-ed25519", "ecdsa-sha2-nistp256") onto its family.
func ParseHostKeyFamily(s string) (HostKeyFamily, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range []HostKeyFamily{HostKeyRSA, HostKeyECDSA, HostKeyED25519} {
		if name == string(f) {
			return f, true
		}
		for _, algo := range f.KeyAlgorithms() {
			if name == algo {
				return f, true
			}
		}
	}
	return "", false
}
