// Command primordia is the kernel's command-line tool: keypair generation,
// MSR/AMR issuance, manual netting/default calls, and the settlement
// kernel's HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oerc-s/primordia/core"
)

var logger = logrus.StandardLogger()

func initMiddleware(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()
	lvl := os.Getenv("LOG_LEVEL")
	if lvl == "" {
		lvl = "info"
	}
	l, err := logrus.ParseLevel(lvl)
	if err != nil {
		return err
	}
	logger.SetLevel(l)
	core.SetLogger(logger)
	return nil
}

var rootCmd = &cobra.Command{
	Use:               "primordia",
	Short:             "Inter-agent settlement kernel: records, netting, and defaults",
	PersistentPreRunE: initMiddleware,
}

func main() {
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(msrCmd)
	rootCmd.AddCommand(amrCmd)
	rootCmd.AddCommand(netCmd)
	rootCmd.AddCommand(defaultCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
