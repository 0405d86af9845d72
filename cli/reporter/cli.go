// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"github.com/olekukonko/tablewriter"
	"go.mondoo.com/sshcrypto/audit"
	"go.mondoo.com/sshcrypto/cli/theme"
)

// cells longer than this are wrapped at word boundaries
const wrapWidth = 50

type cliReporter struct {
	*Reporter
	out io.Writer
}

func (r *cliReporter) printTarget(res *Resolution) {
	name := res.Platform
	if name == "" {
		name = "unknown"
	}
	fmt.Fprintln(r.out, termenv.String(fmt.Sprintf("Platform:     %s %s (%s)", name, res.Release, res.Family)).Foreground(r.Colors.Primary).String())
	fmt.Fprintln(r.out, termenv.String(fmt.Sprintf("SSH version:  %s", res.SSHVersion)).Foreground(r.Colors.Primary).String())
	fmt.Fprintln(r.out)
}

func (r *cliReporter) newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetRowLine(true)
	return table
}

func (r *cliReporter) cellList(values []string) string {
	if values == nil {
		return termenv.String(missingValue).Foreground(r.Colors.Disabled).String()
	}
	return strings.Join(values, "\n")
}

func (r *cliReporter) printResolution(res *Resolution) error {
	r.printTarget(res)

	table := r.newTable("Category", "Recommendation")
	for _, row := range policyRows(res.Policy) {
		table.Append([]string{string(row.category), r.cellList(row.values)})
	}
	table.Render()
	return nil
}

func (r *cliReporter) printDetection(d *Detection) error {
	table := r.newTable("Property", "Value")
	table.SetRowLine(false)

	if p := d.Platform; p != nil {
		table.Append([]string{"name", p.Name})
		table.Append([]string{"title", p.Title})
		table.Append([]string{"release", p.Release})
		table.Append([]string{"arch", p.Arch})
		table.Append([]string{"family", strings.Join(p.Family, ", ")})
	} else {
		table.Append([]string{"name", r.cellList(nil)})
	}
	table.Append([]string{"ssh version", d.SSHVersion})
	if d.SSHBanner != "" {
		table.Append([]string{"ssh banner", wordwrap.String(d.SSHBanner, wrapWidth)})
	}
	table.Render()
	return nil
}

func (r *cliReporter) status(s audit.Status) string {
	switch s {
	case audit.StatusPass:
		return termenv.String(theme.DefaultTheme.Pass + " pass").Foreground(r.Colors.Good).String()
	case audit.StatusFail:
		return termenv.String(theme.DefaultTheme.Fail + " fail").Foreground(r.Colors.Failed).String()
	default:
		return termenv.String(theme.DefaultTheme.Skip + " skipped").Foreground(r.Colors.Unknown).String()
	}
}

func (r *cliReporter) printAudit(res *AuditResult) error {
	if res.Target != nil {
		r.printTarget(res.Target)
	}

	table := r.newTable("Category", "Status", "Violations")
	for _, f := range res.Findings {
		violations := strings.Join(f.Violations, "\n")
		if f.Status == audit.StatusSkipped {
			violations = termenv.String(wordwrap.String(f.Message, wrapWidth)).Foreground(r.Colors.Disabled).String()
		}
		table.Append([]string{string(f.Category), r.status(f.Status), violations})
	}
	table.Render()
	fmt.Fprintln(r.out)

	if res.Passed {
		fmt.Fprintln(r.out, termenv.String("Passed: the configuration matches the recommended baseline").Foreground(r.Colors.Success).String())
	} else {
		fmt.Fprintln(r.out, termenv.String(fmt.Sprintf("Failed: %d categories deviate from the recommended baseline", res.Failed)).Foreground(r.Colors.Error).String())
	}
	return nil
}
