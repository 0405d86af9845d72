// Copyright (c) Mondoo, Inc.
// SPDX-License-Identifier: BUSL-1.1

package detector

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mondoo.com/sshcrypto/connection/mock"
	"go.mondoo.com/sshcrypto/platform"
	"go.mondoo.com/sshcrypto/policy"
)

type OsDetectTestSuite struct {
	suite.Suite
}

func TestOsDetectTestSuite(t *testing.T) {
	suite.Run(t, new(OsDetectTestSuite))
}

func (suite *OsDetectTestSuite) detect(fixture string) (*platform.Platform, error) {
	conn, err := mock.NewFromToml(filepath.Join("testdata", fixture))
	require.NoError(suite.T(), err, "was able to create the connection")
	return New(conn).Platform(context.Background())
}

func (suite *OsDetectTestSuite) TestUbuntu2204Detector() {
	di, err := suite.detect("detect-ubuntu2204.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "ubuntu", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "Ubuntu", di.Title, "os title should be identified")
	assert.Equal(suite.T(), "22.04", di.Release, "os version should be identified")
	assert.Equal(suite.T(), "x86_64", di.Arch, "os arch should be identified")
	assert.Equal(suite.T(), []string{"debian", "linux", "unix", "os"}, di.Family)
}

func (suite *OsDetectTestSuite) TestDebian11Detector() {
	di, err := suite.detect("detect-debian11.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "debian", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "Debian GNU/Linux", di.Title, "os title should be identified")
	assert.Equal(suite.T(), "11.7", di.Release, "os version should be identified")
	assert.Equal(suite.T(), "aarch64", di.Arch, "os arch should be identified")
}

func (suite *OsDetectTestSuite) TestCentos7Detector() {
	di, err := suite.detect("detect-centos7.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "centos", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "CentOS Linux", di.Title, "os title should be identified")
	assert.Equal(suite.T(), "7.9.2009", di.Release, "os version should be identified")
	assert.True(suite.T(), di.IsFamily("redhat"))
}

func (suite *OsDetectTestSuite) TestCentos6Detector() {
	di, err := suite.detect("detect-centos6.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "centos", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "CentOS", di.Title, "os title should be identified")
	assert.Equal(suite.T(), "6.10", di.Release, "os version should be identified")
}

func (suite *OsDetectTestSuite) TestRocky9Detector() {
	di, err := suite.detect("detect-rocky9.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "rocky", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "9.2", di.Release, "os version should be identified")
}

func (suite *OsDetectTestSuite) TestOracle7Detector() {
	di, err := suite.detect("detect-oracle7.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "ol", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "Oracle Linux Server", di.Title, "os title should be identified")
	assert.Equal(suite.T(), "7.9", di.Release, "os version should be identified")
	assert.Equal(suite.T(), "", di.Arch)
}

func (suite *OsDetectTestSuite) TestAmazon2Detector() {
	di, err := suite.detect("detect-amazon2.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "amzn", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "Amazon Linux", di.Title, "os title should be identified")
	assert.Equal(suite.T(), "2", di.Release, "os version should be identified")
}

func (suite *OsDetectTestSuite) TestAlpineDetector() {
	di, err := suite.detect("detect-alpine318.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "alpine", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "Alpine Linux", di.Title, "os title should be identified")
	assert.Equal(suite.T(), "3.18.4", di.Release, "os version should be identified")
}

func (suite *OsDetectTestSuite) TestOpenSuseLeapDetector() {
	di, err := suite.detect("detect-opensuse-leap.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "opensuse-leap", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "15.5", di.Release, "os version should be identified")
	assert.True(suite.T(), di.IsFamily("suse"))
}

func (suite *OsDetectTestSuite) TestMacOSDetector() {
	di, err := suite.detect("detect-macos1015.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "mac_os_x", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "Mac OS X", di.Title, "os title should be identified")
	assert.Equal(suite.T(), "10.15.7", di.Release, "os version should be identified")
	assert.Equal(suite.T(), []string{"darwin", "unix", "os"}, di.Family)
}

func (suite *OsDetectTestSuite) TestMacOSSystemVersionPlist() {
	di, err := suite.detect("detect-macos13.toml")
	require.NoError(suite.T(), err, "platform should be resolvable")

	assert.Equal(suite.T(), "mac_os_x", di.Name, "os name should be identified")
	assert.Equal(suite.T(), "macOS", di.Title, "os title should be identified")
	assert.Equal(suite.T(), "13.5.2", di.Release, "os version should be identified")
	assert.Equal(suite.T(), "arm64", di.Arch)
}

func (suite *OsDetectTestSuite) TestUnknownDetector() {
	di, err := suite.detect("detect-unknown.toml")
	assert.ErrorIs(suite.T(), err, ErrUnknownPlatform)
	assert.Equal(suite.T(), "unknown-os", di.Name)
}

func TestDetectedDescriptors(t *testing.T) {
	tests := map[string]policy.Family{
		"detect-ubuntu2204.toml":    policy.FamilyUbuntu,
		"detect-debian11.toml":      policy.FamilyDebian,
		"detect-centos7.toml":       policy.FamilyRedhat,
		"detect-rocky9.toml":        policy.FamilyRedhat,
		"detect-oracle7.toml":       policy.FamilyRedhat,
		"detect-amazon2.toml":       policy.FamilyAmazon,
		"detect-alpine318.toml":     policy.FamilyRolling,
		"detect-opensuse-leap.toml": policy.FamilyRolling,
		"detect-macos1015.toml":     policy.FamilyMacOS,
		"detect-unknown.toml":       policy.FamilyUnknown,
	}

	for fixture, family := range tests {
		conn, err := mock.NewFromToml(filepath.Join("testdata", fixture))
		require.NoError(t, err)
		pf, _ := New(conn).Platform(context.Background())
		assert.Equal(t, family, pf.Descriptor().Family, fixture)
	}
}

func TestDetectorCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(mock.New()).Platform(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
