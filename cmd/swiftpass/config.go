package main

import (
	"encoding/base64"
	"os"

	"github.com/mirror-media/swiftpass-go/pkg/gateway/swiftpass"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var envKeys = map[string]string{
	"merchantId":     "SWIFTPASS_MERCHANT_ID",
	"subMerchantId":  "SWIFTPASS_SUB_MERCHANT_ID",
	"subAppId":       "SWIFTPASS_SUB_APP_ID",
	"key":            "SWIFTPASS_KEY",
	"notifyUrl":      "SWIFTPASS_NOTIFY_URL",
	"operatorUserId": "SWIFTPASS_OPERATOR_USER_ID",
	"signType":       "SWIFTPASS_SIGN_TYPE",
	"gatewayUrl":     "SWIFTPASS_GATEWAY_URL",
	"billUrl":        "SWIFTPASS_BILL_URL",
	"timeout":        "SWIFTPASS_TIMEOUT",
	"pfx":            "SWIFTPASS_PFX",
	"passphrase":     "SWIFTPASS_PASSPHRASE",
}

// loadConfig merges the config file, SWIFTPASS_* variables and flags.
func loadConfig(cmd *cobra.Command) (swiftpass.Config, error) {
	var config swiftpass.Config
	v := viper.New()
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return config, errors.Wrapf(err, "bind %s", env)
		}
	}
	if err := v.BindPFlag("timeout", cmd.Flags().Lookup("timeout")); err != nil {
		return config, errors.Wrap(err, "bind timeout flag")
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config, errors.Wrapf(err, "reading config %s", path)
		}
	}
	if err := v.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "unmarshalling config")
	}

	if path, _ := cmd.Flags().GetString("pfx-file"); path != "" {
		pfx, err := os.ReadFile(path)
		if err != nil {
			return config, errors.Wrapf(err, "reading %s", path)
		}
		config.PFX = base64.StdEncoding.EncodeToString(pfx)
	}
	return config, nil
}

func newClient(cmd *cobra.Command) (*swiftpass.Client, error) {
	config, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return swiftpass.NewClient(config)
}
