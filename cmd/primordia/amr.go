package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oerc-s/primordia/core"
)

var amrCmd = &cobra.Command{
	Use:   "amr",
	Short: "Attested metering records",
}

var amrMeterFlags struct {
	consumer, provider, resourceClass, resourceSubtype string
	unit                                                string
	quantity, startMs, endMs, rateMicrosPerUnit         int64
	requestHash, responseHash, privateKey               string
}

var amrMeterCmd = &cobra.Command{
	Use:   "meter",
	Short: "Create and sign a new AMR as the provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := core.MakeAMR(core.MakeAMRParams{
			ConsumerAgentID:   amrMeterFlags.consumer,
			ProviderAgentID:   amrMeterFlags.provider,
			ResourceClass:     core.ResourceClass(amrMeterFlags.resourceClass),
			ResourceSubtype:   amrMeterFlags.resourceSubtype,
			Quantity:          amrMeterFlags.quantity,
			Unit:              amrMeterFlags.unit,
			StartMs:           amrMeterFlags.startMs,
			EndMs:             amrMeterFlags.endMs,
			AttestationMethod: core.AttestationSignedMeter,
			RateMicrosPerUnit: amrMeterFlags.rateMicrosPerUnit,
			RequestHash:       amrMeterFlags.requestHash,
			ResponseHash:      amrMeterFlags.responseHash,
			ProviderPrivKey:   amrMeterFlags.privateKey,
		})
		if err != nil {
			return err
		}
		out, _ := json.MarshalIndent(a, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	f := amrMeterCmd.Flags()
	f.StringVar(&amrMeterFlags.consumer, "consumer", "", "consumer agent id")
	f.StringVar(&amrMeterFlags.provider, "provider", "", "provider agent id")
	f.StringVar(&amrMeterFlags.resourceClass, "resource-class", "COMPUTE", "resource class")
	f.StringVar(&amrMeterFlags.resourceSubtype, "resource-subtype", "", "resource subtype")
	f.StringVar(&amrMeterFlags.unit, "unit", "", "unit of measure")
	f.Int64Var(&amrMeterFlags.quantity, "quantity", 0, "quantity consumed")
	f.Int64Var(&amrMeterFlags.startMs, "start-ms", 0, "window start (ms)")
	f.Int64Var(&amrMeterFlags.endMs, "end-ms", 0, "window end (ms)")
	f.Int64Var(&amrMeterFlags.rateMicrosPerUnit, "rate-micros-per-unit", 0, "rate in USD micros per unit")
	f.StringVar(&amrMeterFlags.requestHash, "request-hash", "", "request hash")
	f.StringVar(&amrMeterFlags.responseHash, "response-hash", "", "response hash")
	f.StringVar(&amrMeterFlags.privateKey, "private-key", "", "provider's private key")
	amrCmd.AddCommand(amrMeterCmd)
}
