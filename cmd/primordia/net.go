package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oerc-s/primordia/core"
	"github.com/oerc-s/primordia/kernelserver"
)

var netCmd = &cobra.Command{
	Use:   "net",
	Short: "Netting of machine settlement receipts",
}

var netSettleFlags struct {
	epochID        string
	receiptsFile   string
	kernelPrivKey  string
}

var netSettleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Net a JSON array of MSRs into a signed IAN",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		raw, err := os.ReadFile(netSettleFlags.receiptsFile)
		if err != nil {
			return err
		}
		var wire []kernelserver.MSRWire
		if err := json.Unmarshal(raw, &wire); err != nil {
			return err
		}
		receipts := make([]core.MSR, len(wire))
		for i, w := range wire {
			receipts[i] = w.ToCore()
		}

		ian, err := core.MakeIAN(netSettleFlags.epochID, receipts, netSettleFlags.kernelPrivKey)
		if err != nil {
			return err
		}
		out, _ := json.MarshalIndent(kernelserver.FromCoreIAN(ian), "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	f := netSettleCmd.Flags()
	f.StringVar(&netSettleFlags.epochID, "epoch", "", "epoch identifier")
	f.StringVar(&netSettleFlags.receiptsFile, "receipts", "", "path to a JSON array of MSRs")
	f.StringVar(&netSettleFlags.kernelPrivKey, "kernel-private-key", "", "kernel's signing private key")
	netCmd.AddCommand(netSettleCmd)
}
