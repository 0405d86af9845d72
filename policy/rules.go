// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package policy

import (
	"regexp"
	"strings"
)

// input is what a single rule gets to look at
type input struct {
	os      OSDescriptor
	version *Version
}

type predicate func(in input) bool

// rule pairs a predicate with its result. Rule tables are evaluated top-down
// and the first matching rule wins.
type rule[T any] struct {
	when   predicate
	result T
}

func firstMatch[T any](rules []rule[T], in input, fallback T) T {
	for i := range rules {
		if rules[i].when(in) {
			return rules[i].result
		}
	}
	return fallback
}

func always(in input) bool { return true }

func sshAtLeast(threshold string) predicate {
	t := MustVersion(threshold)
	return func(in input) bool {
		return in.version.AtLeast(t)
	}
}

// releaseMatches checks the raw release against a regular expression
func releaseMatches(expr string) predicate {
	re := regexp.MustCompile(expr)
	return func(in input) bool {
		return re.MatchString(in.os.Release)
	}
}

func releaseHasPrefix(prefixes ...string) predicate {
	return func(in input) bool {
		for i := range prefixes {
			if strings.HasPrefix(in.os.Release, prefixes[i]) {
				return true
			}
		}
		return false
	}
}

// releaseYearAtLeast compares the first two characters of the release
// lexically, e.g. "22" of "22.04". This is how ubuntu releases have always
// been matched; it is not a numeric comparison.
func releaseYearAtLeast(year string) predicate {
	return func(in input) bool {
		prefix := []rune(in.os.Release)
		if len(prefix) > 2 {
			prefix = prefix[:2]
		}
		return string(prefix) >= year
	}
}

// ciphers

var (
	ciphers66 = AlgorithmSet{
		"chacha20-poly1305@openssh.com",
		"aes256-gcm@openssh.com",
		"aes128-gcm@openssh.com",
		"aes256-ctr",
		"aes192-ctr",
		"aes128-ctr",
	}
	ciphers53 = AlgorithmSet{"aes256-ctr", "aes192-ctr", "aes128-ctr"}
)

var cipherRules = []rule[AlgorithmSet]{
	{when: sshAtLeast("6.6"), result: ciphers66},
	{when: always, result: ciphers53},
}

// key exchange

var (
	kex85 = AlgorithmSet{
		"sntrup761x25519-sha512@openssh.com",
		"curve25519-sha256@libssh.org",
		"diffie-hellman-group-exchange-sha256",
	}
	kex80 = AlgorithmSet{
		"sntrup4591761x25519-sha512@tinyssh.org",
		"curve25519-sha256@libssh.org",
		"diffie-hellman-group-exchange-sha256",
	}
	kex66 = AlgorithmSet{
		"curve25519-sha256@libssh.org",
		"diffie-hellman-group-exchange-sha256",
	}
	kex59 = AlgorithmSet{"diffie-hellman-group-exchange-sha256"}
)

func unspecifiedWhen(p predicate) rule[Recommendation] {
	return rule[Recommendation]{when: p, result: Unspecified}
}

func kexWhen(p predicate, set AlgorithmSet) rule[Recommendation] {
	return rule[Recommendation]{when: p, result: Known(set)}
}

// Distributions backport or hold back key exchange algorithms independently
// of the upstream OpenSSH version, so most families are keyed on the release.
// https://packages.ubuntu.com/search?keywords=openssh-server
// https://packages.debian.org/search?keywords=openssh-server
// https://pkgs.alpinelinux.org/packages?name=openssh
// https://src.fedoraproject.org/rpms/openssh
// https://software.opensuse.org/package/openssh
var kexRules = map[Family][]rule[Recommendation]{
	FamilyUbuntu: {
		kexWhen(releaseYearAtLeast("22"), kex85),
		kexWhen(releaseYearAtLeast("19"), kex80),
		kexWhen(always, kex66),
	},
	FamilyDebian: {
		unspecifiedWhen(releaseMatches(`^6(\.|$)`)),
		kexWhen(releaseMatches(`^7(\.|$)`), kex59),
		kexWhen(releaseMatches(`^(8|9|10)(\.|$)`), kex66),
		kexWhen(releaseMatches(`^11(\.|$)`), kex80),
	},
	FamilyRedhat: {
		unspecifiedWhen(releaseMatches(`^6(\.|$)`)),
		kexWhen(releaseMatches(`^7(\.|$)`), kex66),
		kexWhen(releaseMatches(`^(8|9)`), kex80),
	},
	FamilyRolling: {
		kexWhen(sshAtLeast("8.5"), kex85),
		kexWhen(sshAtLeast("8.0"), kex80),
		kexWhen(sshAtLeast("6.6"), kex66),
	},
	FamilyAmazon: {
		kexWhen(always, kex66),
	},
	FamilyMacOS: {
		kexWhen(releaseHasPrefix("10.9."), kex59),
		kexWhen(releaseHasPrefix("10.10.", "10.11.", "10.12."), kex66),
		kexWhen(releaseHasPrefix("10.15."), kex80),
	},
}

// macs

var (
	macs66 = AlgorithmSet{
		"hmac-sha2-512-etm@openssh.com",
		"hmac-sha2-256-etm@openssh.com",
		"umac-128-etm@openssh.com",
		"hmac-sha2-512",
		"hmac-sha2-256",
	}
	macs59 = AlgorithmSet{"hmac-sha2-512", "hmac-sha2-256", "hmac-ripemd160"}
	macs53 = AlgorithmSet{"hmac-ripemd160", "hmac-sha1"}
)

var macRules = []rule[AlgorithmSet]{
	{when: sshAtLeast("6.6"), result: macs66},
	{when: sshAtLeast("5.9"), result: macs59},
	{when: always, result: macs53},
}

// privilege separation

// From 7.5 on privilege separation is mandatory and the option is gone.
var privSepRules = []rule[PrivilegeSeparation]{
	{when: sshAtLeast("7.5"), result: PrivilegeSeparationUnspecified},
	{when: sshAtLeast("5.9"), result: PrivilegeSeparationSandbox},
	{when: sshAtLeast("5.3"), result: PrivilegeSeparationYes},
}

// host key algorithms

var (
	hostKeys66 = []HostKeyFamily{HostKeyRSA, HostKeyECDSA, HostKeyED25519}
	hostKeys60 = []HostKeyFamily{HostKeyRSA, HostKeyECDSA}
	hostKeys53 = []HostKeyFamily{HostKeyRSA}
)

var hostKeyRules = []rule[[]HostKeyFamily]{
	{when: sshAtLeast("6.6"), result: hostKeys66},
	{when: sshAtLeast("6.0"), result: hostKeys60},
	{when: always, result: hostKeys53},
}
