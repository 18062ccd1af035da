package core

import (
	"sort"
	"time"

	"github.com/oerc-s/primordia/pkg/canonical"
	"github.com/oerc-s/primordia/pkg/pcrypto"
	"github.com/oerc-s/primordia/pkg/perrors"
)

type DeclarationType string

const (
	DeclarationVoluntary   DeclarationType = "VOLUNTARY"
	DeclarationInvoluntary DeclarationType = "INVOLUNTARY"
	DeclarationAutomatic   DeclarationType = "AUTOMATIC"
)

type TriggerType string

const (
	TriggerMissedFC     TriggerType = "MISSED_FC"
	TriggerNegativeMBS  TriggerType = "NEGATIVE_MBS"
	TriggerMarginCall   TriggerType = "MARGIN_CALL"
	TriggerTimeout      TriggerType = "TIMEOUT"
)

type LiquidationMethod string

const (
	LiquidationProRata  LiquidationMethod = "PRO_RATA"
	LiquidationPriority LiquidationMethod = "PRIORITY"
	LiquidationAuction  LiquidationMethod = "AUCTION"
)

// DBPStatus tracks the state-machine position of a DBP (spec §4.11).
// It is not part of the signed record's wire content — it is
// implementation bookkeeping a producer/arbiter keeps alongside the record.
type DBPStatus string

const (
	DBPProposed DBPStatus = "PROPOSED"
	DBPSigned   DBPStatus = "SIGNED"
	DBPResolved DBPStatus = "RESOLVED"
)

type Creditor struct {
	AgentID         string
	AmountMicros    int64
	Priority        int64
	Collateralized  bool
}

type DBPAsset struct {
	AssetType    string
	ValueMicros  int64
	Liquid       bool
}

type Distribution struct {
	CreditorID      string
	ReceivesMicros  int64
	RecoveryBps     int64
}

type Trigger struct {
	Type               TriggerType
	ReferenceID        string
	TriggerTimestampMs int64
}

type ObligationsSnapshot struct {
	TotalOwedMicros int64
	Creditors       []Creditor
}

type AssetsSnapshot struct {
	TotalValueMicros int64
	Assets           []DBPAsset
}

type LiquidationPlan struct {
	Method        LiquidationMethod
	Distributions []Distribution
}

// DBP is a Default/Bankruptcy Primitive: a signed declaration of default,
// with snapshots of obligations and assets and a liquidation plan, signed
// by the arbiter.
type DBP struct {
	DbpVersion          string
	DefaultID           string
	DefaultingAgentID   string
	DeclarationType     DeclarationType
	Trigger             Trigger
	ObligationsSnapshot ObligationsSnapshot
	AssetsSnapshot      AssetsSnapshot
	RecoveryRateBps     int64
	LiquidationPlan     LiquidationPlan
	TimestampMs         int64
	ArbiterAgentID      string
	DbpHash             string
	SignatureEd25519    string
}

// ComputeDistributions computes liquidation distributions for creditors
// given totalAssets micros available, per method. Empty creditors yield
// empty distributions; zero total owed yields zero-receive distributions
// with recovery_bps=0.
func ComputeDistributions(creditors []Creditor, totalAssets int64, method LiquidationMethod) []Distribution {
	if len(creditors) == 0 {
		return nil
	}

	var totalOwed int64
	for _, c := range creditors {
		totalOwed += c.AmountMicros
	}
	if totalOwed == 0 {
		out := make([]Distribution, len(creditors))
		for i, c := range creditors {
			out[i] = Distribution{CreditorID: c.AgentID, ReceivesMicros: 0, RecoveryBps: 0}
		}
		return out
	}

	switch method {
	case LiquidationPriority:
		sorted := make([]Creditor, len(creditors))
		copy(sorted, creditors)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

		remaining := totalAssets
		out := make([]Distribution, len(sorted))
		for i, c := range sorted {
			receives := c.AmountMicros
			if remaining < receives {
				receives = remaining
			}
			if receives < 0 {
				receives = 0
			}
			remaining -= receives
			out[i] = Distribution{
				CreditorID:     c.AgentID,
				ReceivesMicros: receives,
				RecoveryBps:    recoveryBps(receives, c.AmountMicros),
			}
		}
		return out

	default: // PRO_RATA and AUCTION (degrades to PRO_RATA, spec §4.9/§9)
		out := make([]Distribution, len(creditors))
		for i, c := range creditors {
			receives := (c.AmountMicros * totalAssets) / totalOwed
			out[i] = Distribution{
				CreditorID:     c.AgentID,
				ReceivesMicros: receives,
				RecoveryBps:    recoveryBps(receives, c.AmountMicros),
			}
		}
		return out
	}
}

func recoveryBps(receives, amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return (receives * 10000) / amount
}

func sortedCreditors(creditors []Creditor) []Creditor {
	out := make([]Creditor, len(creditors))
	copy(out, creditors)
	sort.Slice(out, func(i, j int) bool { return out[i].AgentID < out[j].AgentID })
	return out
}

func sortedAssets(assets []DBPAsset) []DBPAsset {
	out := make([]DBPAsset, len(assets))
	copy(out, assets)
	sort.Slice(out, func(i, j int) bool { return out[i].AssetType < out[j].AssetType })
	return out
}

func sortedDistributions(distributions []Distribution) []Distribution {
	out := make([]Distribution, len(distributions))
	copy(out, distributions)
	sort.Slice(out, func(i, j int) bool { return out[i].CreditorID < out[j].CreditorID })
	return out
}

func creditorsContent(creditors []Creditor) []canonical.Value {
	vs := make([]canonical.Value, len(creditors))
	for i, c := range creditors {
		vs[i] = canonical.NewMapBuilder().
			Set("agent_id", canonical.String(c.AgentID)).
			Set("amount_micros", canonical.Int(c.AmountMicros)).
			Set("priority", canonical.Int(c.Priority)).
			Set("collateralized", canonical.Bool(c.Collateralized)).
			Build()
	}
	return vs
}

func assetsContent(assets []DBPAsset) []canonical.Value {
	vs := make([]canonical.Value, len(assets))
	for i, a := range assets {
		vs[i] = canonical.NewMapBuilder().
			Set("asset_type", canonical.String(a.AssetType)).
			Set("value_micros", canonical.Int(a.ValueMicros)).
			Set("liquid", canonical.Bool(a.Liquid)).
			Build()
	}
	return vs
}

func distributionsContent(distributions []Distribution) []canonical.Value {
	vs := make([]canonical.Value, len(distributions))
	for i, d := range distributions {
		vs[i] = canonical.NewMapBuilder().
			Set("creditor_id", canonical.String(d.CreditorID)).
			Set("receives_micros", canonical.Int(d.ReceivesMicros)).
			Set("recovery_bps", canonical.Int(d.RecoveryBps)).
			Build()
	}
	return vs
}

// content builds the hashable map, excluding DefaultID, DbpHash, and
// SignatureEd25519 (DefaultID and DbpHash are both set to the content hash
// after the fact — the same self-referential placeholder pattern as AMR's
// record_id/amr_hash, §9 Design Notes).
func (d DBP) content() canonical.Value {
	creditors := sortedCreditors(d.ObligationsSnapshot.Creditors)
	assets := sortedAssets(d.AssetsSnapshot.Assets)
	distributions := sortedDistributions(d.LiquidationPlan.Distributions)

	trigger := canonical.NewMapBuilder().
		Set("type", canonical.String(string(d.Trigger.Type))).
		Set("reference_id", canonical.String(d.Trigger.ReferenceID)).
		Set("trigger_timestamp_ms", canonical.Int(d.Trigger.TriggerTimestampMs)).
		Build()

	obligations := canonical.NewMapBuilder().
		Set("total_owed_micros", canonical.Int(d.ObligationsSnapshot.TotalOwedMicros)).
		Set("creditors", canonical.Array(creditorsContent(creditors)...)).
		Build()

	assetsSnap := canonical.NewMapBuilder().
		Set("total_value_micros", canonical.Int(d.AssetsSnapshot.TotalValueMicros)).
		Set("assets", canonical.Array(assetsContent(assets)...)).
		Build()

	plan := canonical.NewMapBuilder().
		Set("method", canonical.String(string(d.LiquidationPlan.Method))).
		Set("distributions", canonical.Array(distributionsContent(distributions)...)).
		Build()

	return canonical.NewMapBuilder().
		Set("dbp_version", canonical.String(d.DbpVersion)).
		Set("defaulting_agent_id", canonical.String(d.DefaultingAgentID)).
		Set("declaration_type", canonical.String(string(d.DeclarationType))).
		Set("trigger", trigger).
		Set("obligations_snapshot", obligations).
		Set("assets_snapshot", assetsSnap).
		Set("recovery_rate_bps", canonical.Int(d.RecoveryRateBps)).
		Set("liquidation_plan", plan).
		Set("timestamp_ms", canonical.Int(d.TimestampMs)).
		Set("arbiter_agent_id", canonical.String(d.ArbiterAgentID)).
		Build()
}

// Hash returns the DBP's content identity hash.
func (d DBP) Hash() (string, error) {
	return contentHash(d.content())
}

// MakeDBPParams bundles the inputs an arbiter supplies to declare a default.
type MakeDBPParams struct {
	DefaultingAgentID   string
	DeclarationType     DeclarationType
	TriggerType         TriggerType
	TriggerReferenceID  string
	Creditors           []Creditor
	Assets              []DBPAsset
	LiquidationMethod   LiquidationMethod
	ArbiterAgentID      string
	ArbiterPrivateKey   string
}

// MakeDBP computes distributions and the aggregate recovery rate, then
// builds and signs a new DBP as the arbiter.
func MakeDBP(p MakeDBPParams) (DBP, error) {
	now := time.Now().UnixMilli()

	var totalOwed int64
	for _, c := range p.Creditors {
		totalOwed += c.AmountMicros
	}
	var totalAssets int64
	for _, a := range p.Assets {
		totalAssets += a.ValueMicros
	}

	distributions := ComputeDistributions(p.Creditors, totalAssets, p.LiquidationMethod)
	var totalDistributed int64
	for _, dist := range distributions {
		totalDistributed += dist.ReceivesMicros
	}
	recoveryRateBps := aggregateRecoveryBps(totalDistributed, totalOwed)

	d := DBP{
		DbpVersion:        SupportedVersion,
		DefaultingAgentID: p.DefaultingAgentID,
		DeclarationType:   p.DeclarationType,
		Trigger: Trigger{
			Type:               p.TriggerType,
			ReferenceID:        p.TriggerReferenceID,
			TriggerTimestampMs: now,
		},
		ObligationsSnapshot: ObligationsSnapshot{
			TotalOwedMicros: totalOwed,
			Creditors:       sortedCreditors(p.Creditors),
		},
		AssetsSnapshot: AssetsSnapshot{
			TotalValueMicros: totalAssets,
			Assets:           sortedAssets(p.Assets),
		},
		RecoveryRateBps: recoveryRateBps,
		LiquidationPlan: LiquidationPlan{
			Method:        p.LiquidationMethod,
			Distributions: sortedDistributions(distributions),
		},
		TimestampMs:    now,
		ArbiterAgentID: p.ArbiterAgentID,
	}

	h, err := d.Hash()
	if err != nil {
		return DBP{}, err
	}
	d.DefaultID = h
	d.DbpHash = h

	sig, err := signHash(h, p.ArbiterPrivateKey)
	if err != nil {
		return DBP{}, err
	}
	d.SignatureEd25519 = sig
	return d, nil
}

func aggregateRecoveryBps(totalDistributed, totalOwed int64) int64 {
	if totalOwed <= 0 {
		return 0
	}
	return (totalDistributed * 10000) / totalOwed
}

// ShouldAutoDefault reports whether runwaySeconds falls below
// thresholdSeconds, triggering an AUTOMATIC default (spec §4.9).
func ShouldAutoDefault(runwaySeconds, thresholdSeconds float64) bool {
	return runwaySeconds < thresholdSeconds
}

// TriggerDefault is a documented alias of MakeDBP with default-triggering
// semantics — it exists purely for call-site clarity at the point a default
// is initiated, mirroring dbp.py's trigger_default wrapper over make_dbp.
func TriggerDefault(p MakeDBPParams) (DBP, error) {
	return MakeDBP(p)
}

// ResolveResult is the outcome of resolving a DBP (spec §4.11: SIGNED ->
// RESOLVED on valid=true, remains SIGNED otherwise).
type ResolveResult struct {
	Valid           bool
	Distributions   []Distribution
	RecoveryRateBps int64
	Status          DBPStatus
	Err             error
}

// ResolveDefault verifies the arbiter signature and checks that
// distributions do not exceed assets and that the embedded recovery rate
// matches the recomputed value (spec §4.9).
func ResolveDefault(d DBP, arbiterPublicKey string) ResolveResult {
	h, err := d.Hash()
	if err != nil {
		return ResolveResult{Status: DBPSigned, Err: err}
	}
	if !pcrypto.Verify(h, d.SignatureEd25519, arbiterPublicKey) {
		return ResolveResult{
			Status: DBPSigned,
			Err:    perrors.New(perrors.KindSignature, "invalid arbiter signature"),
		}
	}

	var totalDistributed int64
	for _, dist := range d.LiquidationPlan.Distributions {
		totalDistributed += dist.ReceivesMicros
	}
	if totalDistributed > d.AssetsSnapshot.TotalValueMicros {
		return ResolveResult{
			Status: DBPSigned,
			Err:    perrors.New(perrors.KindInvariant, "distributions exceed available assets"),
		}
	}

	expectedRecovery := aggregateRecoveryBps(totalDistributed, d.ObligationsSnapshot.TotalOwedMicros)
	if expectedRecovery != d.RecoveryRateBps {
		return ResolveResult{
			Status: DBPSigned,
			Err:    perrors.New(perrors.KindInvariant, "recovery rate mismatch: expected %d got %d", expectedRecovery, d.RecoveryRateBps),
		}
	}

	return ResolveResult{
		Valid:           true,
		Distributions:   d.LiquidationPlan.Distributions,
		RecoveryRateBps: d.RecoveryRateBps,
		Status:          DBPResolved,
	}
}
