package main

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("pfx-file", "", "")
	cmd.Flags().Duration("timeout", 0, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SWIFTPASS_MERCHANT_ID", "7551000001")
	t.Setenv("SWIFTPASS_KEY", "secret")

	config, err := loadConfig(testCommand(t))
	require.NoError(t, err)
	assert.Equal(t, "7551000001", config.MerchantID)
	assert.Equal(t, "secret", config.Key)
}

func TestLoadConfig_FileAndPFX(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "swiftpass.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("merchantId: \"7551000002\"\nkey: k\n"), 0o600))
	pfxPath := filepath.Join(dir, "client.p12")
	require.NoError(t, os.WriteFile(pfxPath, []byte("pfx-bytes"), 0o600))

	config, err := loadConfig(testCommand(t, "--config", cfgPath, "--pfx-file", pfxPath))
	require.NoError(t, err)
	assert.Equal(t, "7551000002", config.MerchantID)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pfx-bytes")), config.PFX)
}

func TestNewRefundNo(t *testing.T) {
	a, b := newRefundNo(), newRefundNo()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
