package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oerc-s/primordia/core"
	"github.com/oerc-s/primordia/kernelserver"
)

var msrCmd = &cobra.Command{
	Use:   "msr",
	Short: "Machine settlement receipts",
}

var msrIssueFlags struct {
	payer, payee, resourceType, unitType  string
	units, price                           int64
	scopeHash, requestHash, responseHash   string
	privateKey                             string
}

var msrIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Create and sign a new MSR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, err := core.MakeMSR(core.MakeMSRParams{
			PayerAgentID:   msrIssueFlags.payer,
			PayeeAgentID:   msrIssueFlags.payee,
			ResourceType:   msrIssueFlags.resourceType,
			Units:          msrIssueFlags.units,
			UnitType:       msrIssueFlags.unitType,
			PriceUSDMicros: msrIssueFlags.price,
			ScopeHash:      msrIssueFlags.scopeHash,
			RequestHash:    msrIssueFlags.requestHash,
			ResponseHash:   msrIssueFlags.responseHash,
			PrivateKey:     msrIssueFlags.privateKey,
		})
		if err != nil {
			return err
		}
		// MSRWire has core.MSR's fields plus JSON tags, so a conversion suffices.
		out, _ := json.MarshalIndent(kernelserver.MSRWire(m), "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	f := msrIssueCmd.Flags()
	f.StringVar(&msrIssueFlags.payer, "payer", "", "payer agent id (public key)")
	f.StringVar(&msrIssueFlags.payee, "payee", "", "payee agent id (public key)")
	f.StringVar(&msrIssueFlags.resourceType, "resource-type", "", "resource type")
	f.StringVar(&msrIssueFlags.unitType, "unit-type", "", "unit type")
	f.Int64Var(&msrIssueFlags.units, "units", 0, "units consumed")
	f.Int64Var(&msrIssueFlags.price, "price-usd-micros", 0, "price in USD micros")
	f.StringVar(&msrIssueFlags.scopeHash, "scope-hash", "", "scope hash")
	f.StringVar(&msrIssueFlags.requestHash, "request-hash", "", "request hash")
	f.StringVar(&msrIssueFlags.responseHash, "response-hash", "", "response hash")
	f.StringVar(&msrIssueFlags.privateKey, "private-key", "", "payer's private key")
	msrCmd.AddCommand(msrIssueCmd)
}
