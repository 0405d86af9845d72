// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package policy

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Bundle holds the known-good SSH parameters for one platform and sshd
// version. Every Resolve call returns freshly allocated slices; copy a bundle
// with Clone before changing it.
type Bundle struct {
	Ciphers             AlgorithmSet        `json:"ciphers" yaml:"ciphers"`
	KeyExchanges        Recommendation      `json:"kexs" yaml:"kexs"`
	MACs                AlgorithmSet        `json:"macs" yaml:"macs"`
	HostKeyAlgorithms   []HostKeyFamily     `json:"hostkey_algorithms" yaml:"hostkey_algorithms"`
	PrivilegeSeparation PrivilegeSeparation `json:"privilege_separation" yaml:"privilege_separation"`
}

func (b Bundle) Clone() Bundle {
	return Bundle{
		Ciphers:             b.Ciphers.Clone(),
		KeyExchanges:        b.KeyExchanges,
		MACs:                b.MACs.Clone(),
		HostKeyAlgorithms:   cloneHostKeys(b.HostKeyAlgorithms),
		PrivilegeSeparation: b.PrivilegeSeparation,
	}
}

func (b Bundle) Equal(o Bundle) bool {
	if !equalSets(b.Ciphers, o.Ciphers) || !equalSets(b.MACs, o.MACs) {
		return false
	}
	if !b.KeyExchanges.Equal(o.KeyExchanges) || b.PrivilegeSeparation != o.PrivilegeSeparation {
		return false
	}
	if len(b.HostKeyAlgorithms) != len(o.HostKeyAlgorithms) {
		return false
	}
	for i := range b.HostKeyAlgorithms {
		if b.HostKeyAlgorithms[i] != o.HostKeyAlgorithms[i] {
			return false
		}
	}
	return true
}

// HostKeySignatureAlgorithms expands the host key families into the
// algorithm names used for HostKeyAlgorithms in sshd_config
func (b Bundle) HostKeySignatureAlgorithms() AlgorithmSet {
	res := AlgorithmSet{}
	for i := range b.HostKeyAlgorithms {
		res = append(res, b.HostKeyAlgorithms[i].KeyAlgorithms()...)
	}
	return res
}

func equalSets(a, b AlgorithmSet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneHostKeys(h []HostKeyFamily) []HostKeyFamily {
	if h == nil {
		return nil
	}
	res := make([]HostKeyFamily, len(h))
	copy(res, h)
	return res
}

// Ciphers returns the acceptable ciphers for the sshd version
func Ciphers(v *Version) AlgorithmSet {
	return firstMatch(cipherRules, input{version: v}, ciphers53).Clone()
}

// KeyExchanges returns the acceptable key exchange algorithms for the
// platform. It is Unspecified for platforms and releases without a
// calibrated policy.
func KeyExchanges(os OSDescriptor, v *Version) Recommendation {
	rules, ok := kexRules[os.Family]
	if !ok {
		return Unspecified
	}
	return firstMatch(rules, input{os: os, version: v}, Unspecified).clone()
}

// MACs returns the acceptable message authentication codes for the sshd version
func MACs(v *Version) AlgorithmSet {
	return firstMatch(macRules, input{version: v}, macs53).Clone()
}

func PrivilegeSeparationMode(v *Version) PrivilegeSeparation {
	return firstMatch(privSepRules, input{version: v}, PrivilegeSeparationUnspecified)
}

// HostKeyAlgorithms returns the host key families sshd should serve
func HostKeyAlgorithms(v *Version) []HostKeyFamily {
	return cloneHostKeys(firstMatch(hostKeyRules, input{version: v}, hostKeys53))
}

// Resolve computes all five policy categories. It never fails: unknown
// platforms and unparsable versions resolve to the most conservative or
// unspecified result of each rule.
func Resolve(os OSDescriptor, v *Version) Bundle {
	return Bundle{
		Ciphers:             Ciphers(v),
		KeyExchanges:        KeyExchanges(os, v),
		MACs:                MACs(v),
		HostKeyAlgorithms:   HostKeyAlgorithms(v),
		PrivilegeSeparation: PrivilegeSeparationMode(v),
	}
}

// ResolveConcurrent evaluates the rules on separate goroutines. The result
// is identical to Resolve; it only returns an error if ctx is already done.
func ResolveConcurrent(ctx context.Context, os OSDescriptor, v *Version) (Bundle, error) {
	if err := ctx.Err(); err != nil {
		return Bundle{}, err
	}

	var res Bundle
	var g errgroup.Group

	// every goroutine writes its own field
	g.Go(func() error { res.Ciphers = Ciphers(v); return nil })
	g.Go(func() error { res.KeyExchanges = KeyExchanges(os, v); return nil })
	g.Go(func() error { res.MACs = MACs(v); return nil })
	g.Go(func() error { res.HostKeyAlgorithms = HostKeyAlgorithms(v); return nil })
	g.Go(func() error { res.PrivilegeSeparation = PrivilegeSeparationMode(v); return nil })

	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}
	return res, nil
}
