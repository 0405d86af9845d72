// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package detector

import (
	"go.mondoo.com/sshcrypto/logger"
	"go.mondoo.com/sshcrypto/platform"
)

type detect func(r *PlatformResolver, pf *platform.Platform, osrd *OSReleaseDetector) (bool, error)

type PlatformResolver struct {
	Name     string
	IsFamily bool
	Children []*PlatformResolver
	Detect   detect
}

func (r *PlatformResolver) Resolve(osrd *OSReleaseDetector) (*platform.Platform, bool) {
	// prepare detect info object
	di := &platform.Platform{}
	di.Family = make([]string, 0)

	// start recursive platform resolution
	pi, resolved := r.resolvePlatform(di, osrd)

	logger.FromContext(osrd.ctx).Debug().Str("platform", pi.Name).Strs("family", pi.Family).Msg("platform> detected os")
	return pi, resolved
}

// resolvePlatform tries to find recursively all
// platforms until a leaf (operating systems) detect
// mechanism is returning true
func (r *PlatformResolver) resolvePlatform(pf *platform.Platform, osrd *OSReleaseDetector) (*platform.Platform, bool) {
	detected, err := r.Detect(r, pf, osrd)
	if err != nil {
		return pf, false
	}

	// if detection is true but we have a family
	if detected && r.IsFamily {
		// we are a family and we may have children to try
		for _, c := range r.Children {
			detected, resolved := c.resolvePlatform(pf, osrd)
			if resolved {
				// add family hierarchy
				detected.Family = append(pf.Family, r.Name)
				return detected, resolved
			}
		}
	}

	// return if the detect is true and we have a leaf
	if detected && !r.IsFamily {
		return pf, true
	}

	// could not find it
	return pf, false
}
