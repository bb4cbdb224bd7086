package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd := &cobra.Command{
		Use:           "swiftpass",
		Short:         "Run SwiftPass gateway operations for one merchant",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Config file (env, yaml or json)")
	rootCmd.PersistentFlags().String("pfx-file", "", "PKCS#12 client certificate for refunds")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP timeout")

	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(refundCmd())
	rootCmd.AddCommand(queryRefundCmd())
	rootCmd.AddCommand(closeCmd())
	rootCmd.AddCommand(billCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
