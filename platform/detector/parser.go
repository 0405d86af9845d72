// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package detector

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"howett.net/plist"
)

var keyValueLine = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*?)\s*$`)

// ParseOsRelease parses /etc/os-release
//
//	NAME="Ubuntu"
//	VERSION="16.04.3 LTS (Xenial Xerus)"
//	ID=ubuntu
//	ID_LIKE=debian
//	VERSION_ID="16.04"
func ParseOsRelease(content string) (map[string]string, error) {
	return parseKeyValues(content)
}

// ParseLsbRelease parses /etc/lsb-release
//
//	DISTRIB_ID=Ubuntu
//	DISTRIB_RELEASE=16.04
//	DISTRIB_CODENAME=xenial
//	DISTRIB_DESCRIPTION="Ubuntu 16.04.3 LTS"
func ParseLsbRelease(content string) (map[string]string, error) {
	return parseKeyValues(content)
}

func parseKeyValues(content string) (map[string]string, error) {
	res := map[string]string{}

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		m := keyValueLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		res[m[1]] = unquote(m[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, errors.New("no key value pairs found")
	}
	return res, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

var rhelRelease = regexp.MustCompile(`^(.+?)\s+release\s+([\d.]+)`)

// ParseRhelVersion parses /etc/redhat-release, e.g.
// "CentOS Linux release 7.9.2009 (Core)" returns "CentOS Linux" and "7.9.2009"
func ParseRhelVersion(content string) (string, string, error) {
	m := rhelRelease.FindStringSubmatch(strings.TrimSpace(content))
	if m == nil {
		return "", "", errors.New("cannot parse redhat release: " + content)
	}
	return m[1], m[2], nil
}

// ParseDarwinRelease parses the output of /usr/bin/sw_vers
//
//	ProductName:	Mac OS X
//	ProductVersion:	10.13.2
//	BuildVersion:	17C88
func ParseDarwinRelease(content string) (map[string]string, error) {
	res := map[string]string{}

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		res[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(res["ProductName"]) == 0 {
		return nil, errors.New("sw_vers output has no ProductName")
	}
	return res, nil
}

// ParseDarwinSystemVersion parses /System/Library/CoreServices/SystemVersion.plist
// into the same keys sw_vers prints
func ParseDarwinSystemVersion(content []byte) (map[string]string, error) {
	var raw map[string]any
	if _, err := plist.Unmarshal(content, &raw); err != nil {
		return nil, errors.Wrap(err, "could not parse SystemVersion.plist")
	}

	res := map[string]string{}
	for _, key := range []string{"ProductName", "ProductVersion", "ProductBuildVersion"} {
		if v, ok := raw[key].(string); ok {
			res[key] = v
		}
	}
	if len(res["ProductName"]) == 0 {
		return nil, errors.New("SystemVersion.plist has no ProductName")
	}
	return res, nil
}
