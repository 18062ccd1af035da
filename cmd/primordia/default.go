package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oerc-s/primordia/core"
	"github.com/oerc-s/primordia/kernelserver"
)

var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Default and bankruptcy declarations",
}

type defaultTriggerInput struct {
	Creditors []kernelserver.CreditorWire `json:"creditors"`
	Assets    []kernelserver.AssetWire    `json:"assets"`
}

var defaultTriggerFlags struct {
	agent              string
	declarationType    string
	triggerType        string
	triggerReferenceID string
	liquidationMethod  string
	inputFile          string
	arbiter            string
	arbiterPrivateKey  string
}

var defaultTriggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Declare a default for an agent, computing and signing a DBP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		raw, err := os.ReadFile(defaultTriggerFlags.inputFile)
		if err != nil {
			return err
		}
		var in defaultTriggerInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return err
		}
		creditors := make([]core.Creditor, len(in.Creditors))
		for i, c := range in.Creditors {
			creditors[i] = core.Creditor(c)
		}
		assets := make([]core.DBPAsset, len(in.Assets))
		for i, a := range in.Assets {
			assets[i] = core.DBPAsset(a)
		}

		d, err := core.MakeDBP(core.MakeDBPParams{
			DefaultingAgentID: defaultTriggerFlags.agent,
			DeclarationType:   core.DeclarationType(defaultTriggerFlags.declarationType),
			TriggerType:       core.TriggerType(defaultTriggerFlags.triggerType),
			TriggerReferenceID: defaultTriggerFlags.triggerReferenceID,
			Creditors:         creditors,
			Assets:            assets,
			LiquidationMethod: core.LiquidationMethod(defaultTriggerFlags.liquidationMethod),
			ArbiterAgentID:    defaultTriggerFlags.arbiter,
			ArbiterPrivateKey: defaultTriggerFlags.arbiterPrivateKey,
		})
		if err != nil {
			return err
		}
		out, _ := json.MarshalIndent(kernelserver.FromCoreDBP(d), "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	f := defaultTriggerCmd.Flags()
	f.StringVar(&defaultTriggerFlags.agent, "agent", "", "defaulting agent id")
	f.StringVar(&defaultTriggerFlags.declarationType, "declaration-type", "VOLUNTARY", "VOLUNTARY, INVOLUNTARY, or AUTOMATIC")
	f.StringVar(&defaultTriggerFlags.triggerType, "trigger-type", "", "MISSED_FC, NEGATIVE_MBS, MARGIN_CALL, or TIMEOUT")
	f.StringVar(&defaultTriggerFlags.triggerReferenceID, "trigger-reference-id", "", "id of the record that triggered the default")
	f.StringVar(&defaultTriggerFlags.liquidationMethod, "liquidation-method", "PRO_RATA", "PRO_RATA, PRIORITY, or AUCTION")
	f.StringVar(&defaultTriggerFlags.inputFile, "input", "", "path to a JSON file of {creditors, assets}")
	f.StringVar(&defaultTriggerFlags.arbiter, "arbiter", "", "arbiter agent id")
	f.StringVar(&defaultTriggerFlags.arbiterPrivateKey, "arbiter-private-key", "", "arbiter's signing private key")
	defaultCmd.AddCommand(defaultTriggerCmd)
}
