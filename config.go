package payment

import (
	"bytes"
	"context"
	"os"

	"github.com/mirror-media/swiftpass-go/pkg/gateway"
	"github.com/mirror-media/swiftpass-go/pkg/gateway/swiftpass"
	"github.com/mirror-media/swiftpass-go/pkg/gcpsecret"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
			logrus.FieldKeyTime:  "timestamp",
		},
	})
	logrus.SetReportCaller(true)
}

// newProvider is swapped out in tests.
var newProvider = func(ctx context.Context) (gateway.Provider, error) {
	config, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return gateway.NewSwiftPassProvider(config)
}

func loadConfig(ctx context.Context) (swiftpass.Config, error) {
	projectID := os.Getenv("MM_PROJECT_ID")
	secretID := os.Getenv("MM_CONFIG_SECRET")
	secretVersion := os.Getenv("MM_CONFIG_SECRET_VERSION")

	configValue, err := gcpsecret.Get(ctx, projectID, secretID, secretVersion)
	if err != nil {
		return swiftpass.Config{}, err
	}
	return parseConfig(configValue)
}

// parseConfig reads an env formatted config blob.
func parseConfig(configValue []byte) (swiftpass.Config, error) {
	config := swiftpass.Config{}
	v := viper.New()
	v.SetConfigType("env")
	if err := v.ReadConfig(bytes.NewBuffer(configValue)); err != nil {
		return config, errors.Wrap(err, "reading config")
	}
	if err := v.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "unmarshalling config")
	}
	return config, nil
}
