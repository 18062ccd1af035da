// Package kernelserver exposes the netting kernel and arbiter over HTTP.
// The wire shapes here are additive sugar over core's Go-native types —
// core itself never depends on encoding/json.
package kernelserver

import (
	"github.com/oerc-s/primordia/core"
)

// MSRWire is the on-wire JSON shape of an MSR (spec §6.2).
type MSRWire struct {
	MsrVersion       string  `json:"msr_version"`
	PayerAgentID     string  `json:"payer_agent_id"`
	PayeeAgentID     string  `json:"payee_agent_id"`
	ResourceType     string  `json:"resource_type"`
	Units            int64   `json:"units"`
	UnitType         string  `json:"unit_type"`
	PriceUSDMicros   int64   `json:"price_usd_micros"`
	TimestampMs      int64   `json:"timestamp_ms"`
	Nonce            string  `json:"nonce"`
	ScopeHash        string  `json:"scope_hash"`
	RequestHash      string  `json:"request_hash"`
	ResponseHash     string  `json:"response_hash"`
	PrevReceiptHash  *string `json:"prev_receipt_hash"`
	SignatureEd25519 string  `json:"signature_ed25519"`
}

func (w MSRWire) ToCore() core.MSR {
	return core.MSR{
		MsrVersion:       w.MsrVersion,
		PayerAgentID:     w.PayerAgentID,
		PayeeAgentID:     w.PayeeAgentID,
		ResourceType:     w.ResourceType,
		Units:            w.Units,
		UnitType:         w.UnitType,
		PriceUSDMicros:   w.PriceUSDMicros,
		TimestampMs:      w.TimestampMs,
		Nonce:            w.Nonce,
		ScopeHash:        w.ScopeHash,
		RequestHash:      w.RequestHash,
		ResponseHash:     w.ResponseHash,
		PrevReceiptHash:  w.PrevReceiptHash,
		SignatureEd25519: w.SignatureEd25519,
	}
}

// NetObligationWire is the on-wire shape of a net obligation.
type NetObligationWire struct {
	From            string `json:"from"`
	To              string `json:"to"`
	AmountUSDMicros int64  `json:"amount_usd_micros"`
}

// IANWire is the on-wire JSON shape of an IAN (spec §6.2).
type IANWire struct {
	IanVersion            string              `json:"ian_version"`
	EpochID               string              `json:"epoch_id"`
	Participants          []string            `json:"participants"`
	IncludedReceiptHashes []string            `json:"included_receipt_hashes"`
	NetObligations        []NetObligationWire `json:"net_obligations"`
	NettingHash           string              `json:"netting_hash"`
	SignatureEd25519      string              `json:"signature_ed25519"`
}

func FromCoreIAN(ian core.IAN) IANWire {
	obligations := make([]NetObligationWire, len(ian.NetObligations))
	for i, o := range ian.NetObligations {
		obligations[i] = NetObligationWire{From: o.FromAgent, To: o.ToAgent, AmountUSDMicros: o.AmountUSDMicros}
	}
	return IANWire{
		IanVersion:            ian.IanVersion,
		EpochID:               ian.EpochID,
		Participants:          ian.Participants,
		IncludedReceiptHashes: ian.IncludedReceiptHashes,
		NetObligations:        obligations,
		NettingHash:           ian.NettingHash,
		SignatureEd25519:      ian.SignatureEd25519,
	}
}

// NetRequest is the POST /v1/net request body (spec §6.3): a submitter
// payload — here, an epoch id and the receipts to net — plus a signature
// over it. Transport-level signature verification is left to deployments
// that need it; the kernel always independently verifies every receipt's
// own embedded signature before netting.
type NetRequest struct {
	Payload struct {
		EpochID  string    `json:"epoch_id"`
		Receipts []MSRWire `json:"receipts"`
	} `json:"payload"`
	Signature string `json:"signature"`
}

// DefaultRequest is the POST /v1/default/{agent} request body.
type DefaultRequest struct {
	DeclarationType    core.DeclarationType `json:"declaration_type"`
	TriggerType        core.TriggerType     `json:"trigger_type"`
	TriggerReferenceID string               `json:"trigger_reference_id"`
	Creditors          []CreditorWire       `json:"creditors"`
	Assets             []AssetWire          `json:"assets"`
	LiquidationMethod  core.LiquidationMethod `json:"liquidation_method"`
}

type CreditorWire struct {
	AgentID        string `json:"agent_id"`
	AmountMicros   int64  `json:"amount_micros"`
	Priority       int64  `json:"priority"`
	Collateralized bool   `json:"collateralized"`
}

type AssetWire struct {
	AssetType   string `json:"asset_type"`
	ValueMicros int64  `json:"value_micros"`
	Liquid      bool   `json:"liquid"`
}

type DistributionWire struct {
	CreditorID     string `json:"creditor_id"`
	ReceivesMicros int64  `json:"receives_micros"`
	RecoveryBps    int64  `json:"recovery_bps"`
}

// DBPWire is the on-wire JSON shape of a DBP (spec §6.2, §4.9).
type DBPWire struct {
	DbpVersion        string             `json:"dbp_version"`
	DefaultID         string             `json:"default_id"`
	DefaultingAgentID string             `json:"defaulting_agent_id"`
	DeclarationType   string             `json:"declaration_type"`
	RecoveryRateBps   int64              `json:"recovery_rate_bps"`
	LiquidationMethod string             `json:"liquidation_method"`
	Distributions     []DistributionWire `json:"distributions"`
	TimestampMs       int64              `json:"timestamp_ms"`
	ArbiterAgentID    string             `json:"arbiter_agent_id"`
	SignatureEd25519  string             `json:"signature_ed25519"`
}

func FromCoreDBP(d core.DBP) DBPWire {
	distributions := make([]DistributionWire, len(d.LiquidationPlan.Distributions))
	for i, dist := range d.LiquidationPlan.Distributions {
		distributions[i] = DistributionWire{
			CreditorID:     dist.CreditorID,
			ReceivesMicros: dist.ReceivesMicros,
			RecoveryBps:    dist.RecoveryBps,
		}
	}
	return DBPWire{
		DbpVersion:        d.DbpVersion,
		DefaultID:         d.DefaultID,
		DefaultingAgentID: d.DefaultingAgentID,
		DeclarationType:   string(d.DeclarationType),
		RecoveryRateBps:   d.RecoveryRateBps,
		LiquidationMethod: string(d.LiquidationPlan.Method),
		Distributions:     distributions,
		TimestampMs:       d.TimestampMs,
		ArbiterAgentID:    d.ArbiterAgentID,
		SignatureEd25519:  d.SignatureEd25519,
	}
}
