// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package audit compares configured sshd parameters against the baseline
// resolved for the platform.
package audit

import (
	"strings"

	"go.mondoo.com/sshcrypto/policy"
)

type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusSkipped Status = "skipped"
)

type Category string

const (
	CategoryCiphers             Category = "ciphers"
	CategoryKeyExchanges        Category = "kexs"
	CategoryMACs                Category = "macs"
	CategoryHostKeys            Category = "hostkey_algorithms"
	CategoryPrivilegeSeparation Category = "privilege_separation"
)

// Categories lists all categories in report order
var Categories = []Category{
	CategoryCiphers,
	CategoryKeyExchanges,
	CategoryMACs,
	CategoryHostKeys,
	CategoryPrivilegeSeparation,
}

// Configured holds the values an sshd is configured with. Empty fields are
// not configured and their category is skipped.
type Configured struct {
	Ciphers             []string `json:"ciphers,omitempty" yaml:"ciphers,omitempty"`
	KeyExchanges        []string `json:"kexs,omitempty" yaml:"kexs,omitempty"`
	MACs                []string `json:"macs,omitempty" yaml:"macs,omitempty"`
	HostKeys            []string `json:"hostkey_algorithms,omitempty" yaml:"hostkey_algorithms,omitempty"`
	PrivilegeSeparation string   `json:"privilege_separation,omitempty" yaml:"privilege_separation,omitempty"`
}

type Finding struct {
	Category   Category `json:"category" yaml:"category"`
	Status     Status   `json:"status" yaml:"status"`
	Expected   []string `json:"expected" yaml:"expected"`
	Violations []string `json:"violations,omitempty" yaml:"violations,omitempty"`
	Message    string   `json:"message,omitempty" yaml:"message,omitempty"`
}

type Report struct {
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Passed is true if no category failed. Skipped categories do not fail.
func (r Report) Passed() bool {
	for i := range r.Findings {
		if r.Findings[i].Status == StatusFail {
			return false
		}
	}
	return true
}

// Count returns the number of findings with the given status
func (r Report) Count(status Status) int {
	n := 0
	for i := range r.Findings {
		if r.Findings[i].Status == status {
			n++
		}
	}
	return n
}

func (r Report) Finding(c Category) (Finding, bool) {
	for i := range r.Findings {
		if r.Findings[i].Category == c {
			return r.Findings[i], true
		}
	}
	return Finding{}, false
}

// Check produces one finding per category, in the order of Categories
func Check(baseline policy.Bundle, cfg Configured) Report {
	kexs, kexKnown := baseline.KeyExchanges.Get()

	return Report{Findings: []Finding{
		checkSet(CategoryCiphers, baseline.Ciphers, true, cfg.Ciphers),
		checkSet(CategoryKeyExchanges, kexs, kexKnown, cfg.KeyExchanges),
		checkSet(CategoryMACs, baseline.MACs, true, cfg.MACs),
		checkHostKeys(baseline.HostKeyAlgorithms, cfg.HostKeys),
		checkPrivilegeSeparation(baseline.PrivilegeSeparation, cfg.PrivilegeSeparation),
	}}
}

func skipped(c Category, expected []string, msg string) Finding {
	return Finding{Category: c, Status: StatusSkipped, Expected: expected, Message: msg}
}

func verdict(f Finding) Finding {
	if len(f.Violations) == 0 {
		f.Status = StatusPass
	} else {
		f.Status = StatusFail
		f.Message = "not in the recommended set: " + strings.Join(f.Violations, ", ")
	}
	return f
}

func checkSet(c Category, expected policy.AlgorithmSet, known bool, configured []string) Finding {
	if !known {
		return skipped(c, nil, "no recommendation for this platform")
	}
	configured = normalize(configured)
	if len(configured) == 0 {
		return skipped(c, expected, "not configured")
	}

	f := Finding{Category: c, Expected: expected}
	for _, name := range configured {
		if !expected.Contains(name) {
			f.Violations = append(f.Violations, name)
		}
	}
	return verdict(f)
}

func checkHostKeys(expected []policy.HostKeyFamily, configured []string) Finding {
	names := make([]string, len(expected))
	for i := range expected {
		names[i] = string(expected[i])
	}

	configured = normalize(configured)
	if len(configured) == 0 {
		return skipped(CategoryHostKeys, names, "not configured")
	}

	f := Finding{Category: CategoryHostKeys, Expected: names}
	for _, entry := range configured {
		family, ok := policy.ParseHostKeyFamily(entry)
		if !ok || !containsFamily(expected, family) {
			f.Violations = append(f.Violations, entry)
		}
	}
	return verdict(f)
}

func checkPrivilegeSeparation(expected policy.PrivilegeSeparation, configured string) Finding {
	if !expected.IsKnown() {
		return skipped(CategoryPrivilegeSeparation, nil, "no recommendation for this ssh version")
	}

	configured = strings.TrimSpace(configured)
	if configured == "" {
		return skipped(CategoryPrivilegeSeparation, []string{expected.String()}, "not configured")
	}

	f := Finding{Category: CategoryPrivilegeSeparation, Expected: []string{expected.String()}}
	if policy.ParsePrivilegeSeparation(configured) != expected {
		f.Violations = []string{configured}
	}
	return verdict(f)
}

func containsFamily(list []policy.HostKeyFamily, f policy.HostKeyFamily) bool {
	for i := range list {
		if list[i] == f {
			return true
		}
	}
	return false
}

// normalize splits comma separated entries and drops blanks, so both
// []string{"a,b"} and []string{"a", "b"} are accepted
func normalize(entries []string) []string {
	var res []string
	for _, entry := range entries {
		for _, part := range strings.Split(entry, ",") {
			if part = strings.TrimSpace(part); part != "" {
				res = append(res, part)
			}
		}
	}
	return res
}
