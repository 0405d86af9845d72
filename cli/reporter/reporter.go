// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.mondoo.com/sshcrypto/audit"
	"go.mondoo.com/sshcrypto/cli/theme/colors"
	"go.mondoo.com/sshcrypto/platform"
	"go.mondoo.com/sshcrypto/policy"
)

type Format byte

const (
	Table Format = iota + 1
	JSON
	YAML
	CSV
)

// Formats that are supported by the reporter
var Formats = map[string]Format{
	"table": Table,
	"json":  JSON,
	"yaml":  YAML,
	"yml":   YAML,
	"csv":   CSV,
}

func AllFormats() string {
	res := make([]string, 0, len(Formats))
	for k := range Formats {
		if k == "yml" {
			continue
		}
		res = append(res, k)
	}
	sort.Strings(res)
	return strings.Join(res, ", ")
}

func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Table, nil
	}
	f, ok := Formats[strings.ToLower(s)]
	if !ok {
		return 0, errors.Newf("unknown output format %q, available formats: %s", s, AllFormats())
	}
	return f, nil
}

// Resolution is a resolved policy together with the inputs it was resolved for
type Resolution struct {
	Platform   string        `json:"platform" yaml:"platform"`
	Family     string        `json:"family" yaml:"family"`
	Release    string        `json:"release" yaml:"release"`
	SSHVersion string        `json:"ssh_version" yaml:"ssh_version"`
	Policy     policy.Bundle `json:"policy" yaml:"policy"`
}

func NewResolution(os policy.OSDescriptor, v *policy.Version, bundle policy.Bundle) *Resolution {
	return &Resolution{
		Platform:   os.Name,
		Family:     os.Family.String(),
		Release:    os.Release,
		SSHVersion: v.String(),
		Policy:     bundle,
	}
}

// Detection is what was found on the local system
type Detection struct {
	Platform   *platform.Platform `json:"platform" yaml:"platform"`
	SSHVersion string             `json:"ssh_version" yaml:"ssh_version"`
	SSHBanner  string             `json:"ssh_banner,omitempty" yaml:"ssh_banner,omitempty"`
}

func NewDetection(p *platform.Platform, v *policy.Version) *Detection {
	return &Detection{Platform: p, SSHVersion: v.String(), SSHBanner: v.Raw()}
}

type AuditResult struct {
	Target   *Resolution     `json:"target" yaml:"target"`
	Passed   bool            `json:"passed" yaml:"passed"`
	Failed   int             `json:"failed" yaml:"failed"`
	Findings []audit.Finding `json:"findings" yaml:"findings"`
}

func NewAuditResult(target *Resolution, report audit.Report) *AuditResult {
	return &AuditResult{
		Target:   target,
		Passed:   report.Passed(),
		Failed:   report.Count(audit.StatusFail),
		Findings: report.Findings,
	}
}

type Reporter struct {
	Format Format
	Colors colors.Theme
	out    io.Writer
}

func New(format string, out io.Writer) (*Reporter, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return &Reporter{
		Format: f,
		Colors: colors.DefaultColorTheme,
		out:    out,
	}, nil
}

func (r *Reporter) PrintResolution(res *Resolution) error {
	switch r.Format {
	case JSON:
		return writeJSON(r.out, res)
	case YAML:
		return writeYAML(r.out, res)
	case CSV:
		return resolutionToCSV(res, r.out)
	default:
		return r.cli().printResolution(res)
	}
}

func (r *Reporter) PrintDetection(d *Detection) error {
	switch r.Format {
	case JSON:
		return writeJSON(r.out, d)
	case YAML:
		return writeYAML(r.out, d)
	case CSV:
		return detectionToCSV(d, r.out)
	default:
		return r.cli().printDetection(d)
	}
}

func (r *Reporter) PrintAudit(res *AuditResult) error {
	switch r.Format {
	case JSON:
		return writeJSON(r.out, res)
	case YAML:
		return writeYAML(r.out, res)
	case CSV:
		return auditToCSV(res, r.out)
	default:
		return r.cli().printAudit(res)
	}
}

func (r *Reporter) cli() *cliReporter {
	return &cliReporter{Reporter: r, out: r.out}
}

const missingValue = "-"

type policyRow struct {
	category audit.Category
	// nil if unspecified
	values []string
}

func policyRows(b policy.Bundle) []policyRow {
	kexs, _ := b.KeyExchanges.Get()

	var hostKeys []string
	for i := range b.HostKeyAlgorithms {
		hostKeys = append(hostKeys, string(b.HostKeyAlgorithms[i]))
	}

	var privsep []string
	if b.PrivilegeSeparation.IsKnown() {
		privsep = []string{b.PrivilegeSeparation.String()}
	}

	return []policyRow{
		{audit.CategoryCiphers, b.Ciphers},
		{audit.CategoryKeyExchanges, kexs},
		{audit.CategoryMACs, b.MACs},
		{audit.CategoryHostKeys, hostKeys},
		{audit.CategoryPrivilegeSeparation, privsep},
	}
}
