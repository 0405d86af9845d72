// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package detector

import (
	"strings"

	"go.mondoo.com/sshcrypto/logger"
	"go.mondoo.com/sshcrypto/platform"
)

// nameIs builds a leaf that matches the ID found in os-release or lsb-release
func nameIs(name string, aliases ...string) *PlatformResolver {
	return &PlatformResolver{
		Name:     name,
		IsFamily: false,
		Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
			if pf.Name == name {
				return true, nil
			}
			for i := range aliases {
				if pf.Name == aliases[i] {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

// Operating Systems
var macOS = &PlatformResolver{
	Name:     "macos",
	IsFamily: false,
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		// the darwin family already read sw_vers into the title
		title := strings.ToLower(pf.Title)
		if !strings.Contains(title, "mac os x") && !strings.Contains(title, "macos") {
			return false, nil
		}

		pf.Name = "mac_os_x"
		return true, nil
	},
}

// is part of the darwin platform and fallback for non-known darwin systems
var otherDarwin = &PlatformResolver{
	Name:     "darwin",
	IsFamily: false,
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		return true, nil
	},
}

var alpine = &PlatformResolver{
	Name:     "alpine",
	IsFamily: false,
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		if pf.Name == "alpine" {
			return true, nil
		}

		c, err := osrd.file("/etc/alpine-release")
		if err != nil || len(c) == 0 {
			return false, nil
		}

		pf.Name = "alpine"
		pf.Title = "Alpine Linux"
		if len(pf.Release) == 0 {
			pf.Release = strings.TrimSpace(c)
		}
		return true, nil
	},
}

var debian = &PlatformResolver{
	Name:     "debian",
	IsFamily: false,
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		if pf.Name != "debian" {
			return false, nil
		}

		// os-release only carries the major version, debian_version has
		// the point release the key exchange rules match on
		c, err := osrd.file("/etc/debian_version")
		if err == nil && len(strings.TrimSpace(c)) > 0 {
			pf.Release = strings.TrimSpace(c)
		}
		return true, nil
	},
}

var (
	ubuntu   = nameIs("ubuntu")
	raspbian = nameIs("raspbian")
	kali     = nameIs("kali")
	arch     = nameIs("arch")
	manjaro  = nameIs("manjaro")
	opensuse = nameIs("opensuse", "opensuse-leap", "opensuse-tumbleweed")
	sles     = nameIs("sles")
	rocky    = nameIs("rockylinux", "rocky")
	alma     = nameIs("almalinux")
	amazon   = nameIs("amazonlinux", "amzn")
)

var rhel = &PlatformResolver{
	Name:     "redhat",
	IsFamily: false,
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		// etc redhat release was parsed by the family already,
		// we reuse that information here
		// e.g. Red Hat Linux, Red Hat Enterprise Linux Server
		if strings.Contains(pf.Title, "Red Hat") || pf.Name == "redhat" || pf.Name == "rhel" {
			pf.Name = "redhat"
			return true, nil
		}
		return false, nil
	},
}

var centos = &PlatformResolver{
	Name:     "centos",
	IsFamily: false,
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		if strings.Contains(pf.Title, "CentOS") || pf.Name == "centos" {
			pf.Name = "centos"
			return true, nil
		}
		return false, nil
	},
}

var fedora = &PlatformResolver{
	Name:     "fedora",
	IsFamily: false,
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		if strings.Contains(pf.Title, "Fedora") || pf.Name == "fedora" {
			pf.Name = "fedora"
			return true, nil
		}
		return false, nil
	},
}

var oracle = &PlatformResolver{
	Name:     "oracle",
	IsFamily: false,
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		if pf.Name == "ol" || pf.Name == "oracle" {
			return true, nil
		}

		c, err := osrd.file("/etc/oracle-release")
		if err != nil || len(c) == 0 {
			return false, nil
		}

		pf.Name = "ol"
		return true, nil
	},
}

// fallback linux detection, since we do not know the system, the family detection may not be correct
var defaultLinux = &PlatformResolver{
	Name:     "generic-linux",
	IsFamily: false,
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		// if we reach here, we know that we detected linux already
		logger.FromContext(osrd.ctx).Debug().Msg("platform> we do not know the linux system, but we do our best in guessing")
		return true, nil
	},
}

var unknownOperatingSystem = &PlatformResolver{
	Name:     "unknown-os",
	IsFamily: false,
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		// if we reach here, we really do not know the system
		logger.FromContext(osrd.ctx).Debug().Msg("platform> we do not know the operating system")
		return true, nil
	},
}

// Families
var darwinFamily = &PlatformResolver{
	Name:     platform.FAMILY_DARWIN,
	IsFamily: true,
	Children: []*PlatformResolver{macOS, otherDarwin},
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		unames, err := osrd.unames()
		if err != nil || !strings.Contains(strings.ToLower(unames), "darwin") {
			return false, nil
		}
		// from here we know it is a darwin system
		pf.Name = "darwin"
		pf.Title = unames

		unamem, err := osrd.unamem()
		if err == nil {
			pf.Arch = unamem
		}

		dsv, err := osrd.darwinSwVersion()
		// ignore dsv config if we got an error
		if err != nil {
			logger.FromContext(osrd.ctx).Debug().Err(err).Msg("platform> cannot read sw_vers on this darwin system")
			return true, nil
		}
		if len(dsv["ProductName"]) > 0 {
			pf.Title = dsv["ProductName"]
		}
		if len(dsv["ProductVersion"]) > 0 {
			pf.Release = dsv["ProductVersion"]
		}

		return true, nil
	},
}

var redhatFamily = &PlatformResolver{
	Name:     "redhat",
	IsFamily: true,
	Children: []*PlatformResolver{rhel, centos, fedora, oracle, rocky, alma},
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		c, err := osrd.file("/etc/redhat-release")
		if err != nil || len(c) == 0 {
			return false, nil
		}

		title, release, err := ParseRhelVersion(c)
		if err == nil {
			logger.FromContext(osrd.ctx).Debug().Str("title", title).Str("release", release).Msg("platform> detected rhelish platform")
			// only set title if not already properly detected by lsb or os-release
			if len(pf.Title) == 0 {
				pf.Title = title
			}

			// always override the version from the release file, since it is
			// more accurate
			if len(release) > 0 {
				pf.Release = release
			}
		}

		return true, nil
	},
}

var debianFamily = &PlatformResolver{
	Name:     "debian",
	IsFamily: true,
	Children: []*PlatformResolver{debian, ubuntu, raspbian, kali},
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		return true, nil
	},
}

var suseFamily = &PlatformResolver{
	Name:     "suse",
	IsFamily: true,
	Children: []*PlatformResolver{opensuse, sles},
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		return true, nil
	},
}

var archFamily = &PlatformResolver{
	Name:     "arch",
	IsFamily: true,
	Children: []*PlatformResolver{arch, manjaro},
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		// if the file exists, we are on arch or one of its derivates
		c, err := osrd.file("/etc/arch-release")
		if err != nil {
			return false, nil
		}

		// on arch containers, /etc/os-release may not be present
		if len(pf.Name) == 0 && strings.Contains(strings.ToLower(c), "manjaro") {
			pf.Name = "manjaro"
			pf.Title = strings.TrimSpace(c)
			return true, nil
		}

		if len(pf.Name) == 0 {
			// fallback to arch
			pf.Name = "arch"
			pf.Title = "Arch Linux"
		}
		return true, nil
	},
}

var linuxFamily = &PlatformResolver{
	Name:     platform.FAMILY_LINUX,
	IsFamily: true,
	Children: []*PlatformResolver{archFamily, redhatFamily, debianFamily, suseFamily, amazon, alpine, defaultLinux},
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		detected := false
		log := logger.FromContext(osrd.ctx)

		lsb, err := osrd.lsbconfig()
		// ignore lsb config if we got an error
		if err == nil {
			if len(lsb["DISTRIB_ID"]) > 0 {
				pf.Name = strings.ToLower(lsb["DISTRIB_ID"])
				pf.Title = lsb["DISTRIB_ID"]
			}
			if len(lsb["DISTRIB_RELEASE"]) > 0 {
				pf.Release = lsb["DISTRIB_RELEASE"]
			}

			detected = true
		} else {
			log.Debug().Err(err).Msg("platform> cannot parse lsb config on this linux system")
		}

		osr, err := osrd.osrelease()
		// ignore os release if we have an error
		if err != nil {
			log.Debug().Err(err).Msg("platform> cannot parse os-release on this linux system")
		} else {
			if len(osr["ID"]) > 0 {
				pf.Name = osr["ID"]
			}
			if len(osr["NAME"]) > 0 {
				pf.Title = osr["NAME"]
			}
			if len(osr["VERSION_ID"]) > 0 {
				pf.Release = osr["VERSION_ID"]
			}

			detected = true
		}

		// Centos 6 does not include /etc/os-release or /etc/lsb-release, but
		// it can be identified by the availability of /etc/redhat-release
		if _, err := osrd.file("/etc/redhat-release"); err == nil {
			detected = true
		}

		unamem, err := osrd.unamem()
		if err == nil {
			pf.Arch = unamem
		}

		// abort if os-release or lsb config was available, we don't need uname -s then
		if detected {
			return true, nil
		}

		unames, err := osrd.unames()
		if err != nil {
			return false, nil
		}

		return strings.Contains(strings.ToLower(unames), "linux"), nil
	},
}

var unixFamily = &PlatformResolver{
	Name:     platform.FAMILY_UNIX,
	IsFamily: true,
	Children: []*PlatformResolver{darwinFamily, linuxFamily},
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		// in order to support linux container image detection, we cannot run
		// processes here, lets just read files to detect a system
		return true, nil
	},
}

var operatingSystems = &PlatformResolver{
	Name:     "os",
	IsFamily: true,
	Children: []*PlatformResolver{unixFamily, unknownOperatingSystem},
	Detect: func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error) {
		return true, nil
	},
}
