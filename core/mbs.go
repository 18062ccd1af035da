package core

import (
	"math"
	"time"

	"github.com/oerc-s/primordia/pkg/canonical"
	"github.com/oerc-s/primordia/pkg/pcrypto"
	"github.com/oerc-s/primordia/pkg/perrors"
)

// MaxSolvencyRatio is the sentinel solvency ratio reported when an agent
// carries zero liabilities.
const MaxSolvencyRatio int64 = 999999

type Asset struct {
	AssetType string
	Amount    int64
}

type Liability struct {
	LiabilityType string
	Amount        int64
}

// MBS is a Machine Balance Sheet: a signed snapshot of one agent's assets,
// liabilities, and burn rate, with a derived solvency ratio.
type MBS struct {
	MbsVersion             string
	AgentID                string
	Assets                 []Asset
	Liabilities            []Liability
	BurnRateUSDMicrosPerS  int64
	SolvencyRatio          int64
	TimestampMs            int64
	SignatureEd25519       string
}

// ComputeSolvencyRatio returns floor(assets*10000/liabilities) in basis
// points, or MaxSolvencyRatio when liabilities sum to zero.
func ComputeSolvencyRatio(assets []Asset, liabilities []Liability) int64 {
	var a, l int64
	for _, x := range assets {
		a += x.Amount
	}
	for _, x := range liabilities {
		l += x.Amount
	}
	if l == 0 {
		return MaxSolvencyRatio
	}
	return (a * 10000) / l
}

func (m MBS) content() canonical.Value {
	assets := make([]canonical.Value, len(m.Assets))
	for i, a := range m.Assets {
		assets[i] = canonical.NewMapBuilder().
			Set("asset_type", canonical.String(a.AssetType)).
			Set("amount", canonical.Int(a.Amount)).
			Build()
	}
	liabs := make([]canonical.Value, len(m.Liabilities))
	for i, l := range m.Liabilities {
		liabs[i] = canonical.NewMapBuilder().
			Set("liability_type", canonical.String(l.LiabilityType)).
			Set("amount", canonical.Int(l.Amount)).
			Build()
	}
	return canonical.NewMapBuilder().
		Set("mbs_version", canonical.String(m.MbsVersion)).
		Set("agent_id", canonical.String(m.AgentID)).
		Set("assets", canonical.Array(assets...)).
		Set("liabilities", canonical.Array(liabs...)).
		Set("burn_rate_usd_micros_per_s", canonical.Int(m.BurnRateUSDMicrosPerS)).
		Set("solvency_ratio", canonical.Int(m.SolvencyRatio)).
		Set("timestamp_ms", canonical.Int(m.TimestampMs)).
		Build()
}

// Hash returns the MBS's content identity hash (signature excluded).
func (m MBS) Hash() (string, error) {
	return contentHash(m.content())
}

// MakeMBSParams bundles the inputs an agent supplies to create an MBS.
type MakeMBSParams struct {
	AgentID               string
	Assets                []Asset
	Liabilities           []Liability
	BurnRateUSDMicrosPerS int64
	PrivateKey            string
	TimestampMs           int64 // 0 means "now"
}

// MakeMBS builds and signs a new MBS as the agent.
func MakeMBS(p MakeMBSParams) (MBS, error) {
	ts := p.TimestampMs
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}
	m := MBS{
		MbsVersion:            SupportedVersion,
		AgentID:               p.AgentID,
		Assets:                p.Assets,
		Liabilities:           p.Liabilities,
		BurnRateUSDMicrosPerS: p.BurnRateUSDMicrosPerS,
		SolvencyRatio:         ComputeSolvencyRatio(p.Assets, p.Liabilities),
		TimestampMs:           ts,
	}
	h, err := m.Hash()
	if err != nil {
		return MBS{}, err
	}
	sig, err := signHash(h, p.PrivateKey)
	if err != nil {
		return MBS{}, err
	}
	m.SignatureEd25519 = sig
	return m, nil
}

// VerifyMBS checks MBS invariants, the solvency ratio, and the agent's
// signature.
func VerifyMBS(m MBS, agentPublicKey string) (valid bool, err error) {
	if m.MbsVersion != SupportedVersion {
		return false, perrors.New(perrors.KindSchema, "unsupported mbs_version %q", m.MbsVersion)
	}
	for _, a := range m.Assets {
		if a.Amount < 0 {
			return false, perrors.New(perrors.KindInvariant, "asset amount cannot be negative")
		}
	}
	for _, l := range m.Liabilities {
		if l.Amount < 0 {
			return false, perrors.New(perrors.KindInvariant, "liability amount cannot be negative")
		}
	}
	if m.BurnRateUSDMicrosPerS < 0 {
		return false, perrors.New(perrors.KindInvariant, "burn rate cannot be negative")
	}

	expected := ComputeSolvencyRatio(m.Assets, m.Liabilities)
	if expected != m.SolvencyRatio {
		return false, perrors.New(perrors.KindInvariant, "solvency ratio mismatch: expected %d got %d", expected, m.SolvencyRatio)
	}

	h, err := m.Hash()
	if err != nil {
		return false, err
	}
	if !pcrypto.Verify(h, m.SignatureEd25519, agentPublicKey) {
		return false, perrors.New(perrors.KindSignature, "invalid signature")
	}
	return true, nil
}

// ComputeRunwaySeconds returns seconds until insolvency at the MBS's burn
// rate: +Inf when burn rate is zero and assets exceed liabilities, 0 when
// burn rate is zero and assets do not exceed liabilities, otherwise
// max(0, (assets-liabilities)/burn_rate).
func ComputeRunwaySeconds(m MBS) float64 {
	var a, l int64
	for _, x := range m.Assets {
		a += x.Amount
	}
	for _, x := range m.Liabilities {
		l += x.Amount
	}
	net := a - l

	if m.BurnRateUSDMicrosPerS == 0 {
		if net > 0 {
			return math.Inf(1)
		}
		return 0
	}
	runway := float64(net) / float64(m.BurnRateUSDMicrosPerS)
	if runway < 0 {
		return 0
	}
	return runway
}
