// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"encoding/csv"
	"io"
	"strings"
)

type csvPolicyEntry struct {
	Platform   string
	Family     string
	Release    string
	SSHVersion string
	Category   string
	Value      string
}

func (c csvPolicyEntry) toSlice() []string {
	return []string{c.Platform, c.Family, c.Release, c.SSHVersion, c.Category, c.Value}
}

type csvAuditEntry struct {
	Category   string
	Status     string
	Expected   string
	Violations string
}

func (c csvAuditEntry) toSlice() []string {
	return []string{c.Category, c.Status, c.Expected, c.Violations}
}

func csvList(values []string) string {
	if values == nil {
		return missingValue
	}
	return strings.Join(values, ",")
}

func resolutionToCSV(res *Resolution, out io.Writer) error {
	w := csv.NewWriter(out)

	err := w.Write(csvPolicyEntry{
		"Platform",
		"Family",
		"Release",
		"SSH Version",
		"Category",
		"Value",
	}.toSlice())
	if err != nil {
		return err
	}

	for _, row := range policyRows(res.Policy) {
		err := w.Write(csvPolicyEntry{
			Platform:   res.Platform,
			Family:     res.Family,
			Release:    res.Release,
			SSHVersion: res.SSHVersion,
			Category:   string(row.category),
			Value:      csvList(row.values),
		}.toSlice())
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func detectionToCSV(d *Detection, out io.Writer) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"Name", "Title", "Release", "Arch", "Family", "SSH Version"}); err != nil {
		return err
	}

	row := []string{missingValue, "", "", "", "", d.SSHVersion}
	if p := d.Platform; p != nil {
		row = []string{p.Name, p.Title, p.Release, p.Arch, strings.Join(p.Family, ","), d.SSHVersion}
	}
	if err := w.Write(row); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func auditToCSV(res *AuditResult, out io.Writer) error {
	w := csv.NewWriter(out)

	err := w.Write(csvAuditEntry{"Category", "Status", "Expected", "Violations"}.toSlice())
	if err != nil {
		return err
	}

	for _, f := range res.Findings {
		err := w.Write(csvAuditEntry{
			Category:   string(f.Category),
			Status:     string(f.Status),
			Expected:   csvList(f.Expected),
			Violations: strings.Join(f.Violations, ","),
		}.toSlice())
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
