package main

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oerc-s/primordia/kernelserver/controllers"
	"github.com/oerc-s/primordia/kernelserver/routes"
	"github.com/oerc-s/primordia/kernelserver/services"
	pkgconfig "github.com/oerc-s/primordia/pkg/config"
)

var serveFlags struct {
	env               string
	kernelPrivateKey  string
	kernelPublicKey   string
	arbiterPrivateKey string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the settlement kernel's HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := pkgconfig.Load(serveFlags.env)
		if err != nil {
			return err
		}

		svc := services.NewKernelService(
			serveFlags.kernelPrivateKey,
			serveFlags.kernelPublicKey,
			serveFlags.arbiterPrivateKey,
			cfg.Arbiter.AgentID,
		)
		nc := controllers.NewNetController(svc)
		dc := controllers.NewDefaultController(svc)
		handler := routes.Register(nc, dc)

		logger.WithFields(logrus.Fields{
			"addr": cfg.Server.ListenAddr,
		}).Info("kernel server listening")
		return http.ListenAndServe(cfg.Server.ListenAddr, handler)
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.env, "env", "", "named config environment to merge over default.yaml")
	f.StringVar(&serveFlags.kernelPrivateKey, "kernel-private-key", "", "kernel's IAN-signing private key")
	f.StringVar(&serveFlags.kernelPublicKey, "kernel-public-key", "", "kernel's IAN-signing public key")
	f.StringVar(&serveFlags.arbiterPrivateKey, "arbiter-private-key", "", "arbiter's DBP-signing private key")
}
