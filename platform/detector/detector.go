// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package detector

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.mondoo.com/sshcrypto/connection"
	"go.mondoo.com/sshcrypto/platform"
)

var ErrUnknownPlatform = errors.New("could not detect the operating system")

type Detector struct {
	conn connection.Connection
}

func New(conn connection.Connection) *Detector {
	return &Detector{conn: conn}
}

// Platform detects the operating system behind the connection. Systems that
// cannot be identified resolve to the unknown-os platform together with
// ErrUnknownPlatform.
func (d *Detector) Platform(ctx context.Context) (*platform.Platform, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	osrd := NewOSReleaseDetector(ctx, d.conn)
	pf, resolved := operatingSystems.Resolve(osrd)
	if !resolved {
		return pf, ErrUnknownPlatform
	}

	if len(pf.Name) == 0 {
		pf.Name = "unknown-os"
		return pf, ErrUnknownPlatform
	}

	return pf, nil
}
