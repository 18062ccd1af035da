package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oerc-s/primordia/pkg/pcrypto"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an Ed25519 keypair (agent id = public key)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		priv, pub, err := pcrypto.GenerateKeypair()
		if err != nil {
			return err
		}
		short, err := pcrypto.ShortID(pub)
		if err != nil {
			return err
		}
		out, _ := json.MarshalIndent(map[string]string{
			"private_key": priv,
			"agent_id":    pub,
			"short_id":    short,
		}, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
