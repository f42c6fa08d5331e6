// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 Canonical Ltd.

package factory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mmecfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitConfigFactory(t *testing.T) {
	path := writeConfig(t, `
info:
  version: 1.0.0
configuration:
  mmeName: MME
  esm:
    subscriptionCheck: enabled
    ipv4: true
    ipv6: false
`)

	require.NoError(t, InitConfigFactory(path))
	require.NoError(t, CheckConfigVersion())

	cfg := MmeConfig.Configuration
	assert.Equal(t, "MME", cfg.MmeName)
	assert.Equal(t, SubscriptionCheckEnabled, cfg.Esm.SubscriptionCheck)
	assert.True(t, cfg.Esm.IPv4)
	assert.False(t, cfg.Esm.IPv6)

	// Given no ports are set in the configuration, the defaults apply.
	assert.Equal(t, MME_DEFAULT_METRICS_PORT, cfg.Metrics.Port)
	assert.Equal(t, MME_DEFAULT_OAM_PORT, cfg.Oam.Port)
}

func TestInitConfigFactoryInvalidMode(t *testing.T) {
	path := writeConfig(t, `
info:
  version: 1.0.0
configuration:
  esm:
    subscriptionCheck: sometimes
    ipv4: true
`)

	assert.Error(t, InitConfigFactory(path))
}

func TestInitConfigFactoryNoIPCapability(t *testing.T) {
	path := writeConfig(t, `
info:
  version: 1.0.0
configuration:
  esm:
    subscriptionCheck: enabled
`)

	assert.Error(t, InitConfigFactory(path))
}

func TestCheckConfigVersionMismatch(t *testing.T) {
	path := writeConfig(t, `
info:
  version: 0.9.0
configuration:
  esm:
    subscriptionCheck: bypassed
`)

	require.NoError(t, InitConfigFactory(path))
	assert.Error(t, CheckConfigVersion())
}
