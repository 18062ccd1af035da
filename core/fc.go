package core

import (
	"github.com/oerc-s/primordia/pkg/canonical"
	"github.com/oerc-s/primordia/pkg/pcrypto"
	"github.com/oerc-s/primordia/pkg/perrors"
)

type DeliveryWindow struct {
	StartMs int64
	EndMs   int64
}

func (w DeliveryWindow) content() canonical.Value {
	return canonical.NewMapBuilder().
		Set("start_ms", canonical.Int(w.StartMs)).
		Set("end_ms", canonical.Int(w.EndMs)).
		Build()
}

type Penalty struct {
	PenaltyUSDMicros int64
	RuleHash         string
}

func (p Penalty) content() canonical.Value {
	return canonical.NewMapBuilder().
		Set("penalty_usd_micros", canonical.Int(p.PenaltyUSDMicros)).
		Set("rule_hash", canonical.String(p.RuleHash)).
		Build()
}

// FC is a Future Commitment: a signed promise by Issuer to deliver Units of
// a resource to Counterparty within DeliveryWindow, backed by Penalty and
// optional Collateral.
type FC struct {
	FcVersion           string
	IssuerAgentID       string
	CounterpartyAgentID string
	ResourceType        string
	Units               int64
	UnitType            string
	DeliveryWindow      DeliveryWindow
	Penalty             Penalty
	// Collateral is nil when absent.
	Collateral          *int64
	CommitmentHash      string
	SignatureEd25519    string
}

// computeCommitmentHash hashes only the economic terms of the commitment:
// issuer, counterparty, resource, units, window. This gives FC two levels
// of identity — the commitment (terms) and the full signed record (terms +
// penalty + collateral + version).
func computeCommitmentHash(issuer, counterparty, resource string, units int64, window DeliveryWindow) (string, error) {
	v := canonical.NewMapBuilder().
		Set("issuer", canonical.String(issuer)).
		Set("counterparty", canonical.String(counterparty)).
		Set("resource", canonical.String(resource)).
		Set("units", canonical.Int(units)).
		Set("window", window.content()).
		Build()
	return contentHash(v)
}

// content builds the hashable map, excluding SignatureEd25519 (CommitmentHash
// is included — it is part of the outer FC's content, per spec §4.3's
// exception for FC).
func (f FC) content() canonical.Value {
	b := canonical.NewMapBuilder().
		Set("fc_version", canonical.String(f.FcVersion)).
		Set("issuer_agent_id", canonical.String(f.IssuerAgentID)).
		Set("counterparty_agent_id", canonical.String(f.CounterpartyAgentID)).
		Set("resource_type", canonical.String(f.ResourceType)).
		Set("units", canonical.Int(f.Units)).
		Set("unit_type", canonical.String(f.UnitType)).
		Set("delivery_window", f.DeliveryWindow.content()).
		Set("penalty", f.Penalty.content()).
		Set("commitment_hash", canonical.String(f.CommitmentHash))
	if f.Collateral != nil {
		b.Set("collateral", canonical.Int(*f.Collateral))
	} else {
		b.Set("collateral", canonical.Null())
	}
	return b.Build()
}

// Hash returns the FC's full content identity hash (signature excluded).
func (f FC) Hash() (string, error) {
	return contentHash(f.content())
}

// MakeFCParams bundles the inputs an issuer supplies to create an FC.
type MakeFCParams struct {
	IssuerAgentID       string
	CounterpartyAgentID string
	ResourceType        string
	Units               int64
	UnitType            string
	DeliveryWindow      DeliveryWindow
	Penalty             Penalty
	PrivateKey          string
	Collateral          *int64
}

// MakeFC builds and signs a new FC as the issuer.
func MakeFC(p MakeFCParams) (FC, error) {
	commitmentHash, err := computeCommitmentHash(p.IssuerAgentID, p.CounterpartyAgentID, p.ResourceType, p.Units, p.DeliveryWindow)
	if err != nil {
		return FC{}, err
	}

	f := FC{
		FcVersion:           SupportedVersion,
		IssuerAgentID:       p.IssuerAgentID,
		CounterpartyAgentID: p.CounterpartyAgentID,
		ResourceType:        p.ResourceType,
		Units:               p.Units,
		UnitType:            p.UnitType,
		DeliveryWindow:      p.DeliveryWindow,
		Penalty:             p.Penalty,
		Collateral:          p.Collateral,
		CommitmentHash:      commitmentHash,
	}

	h, err := f.Hash()
	if err != nil {
		return FC{}, err
	}
	sig, err := signHash(h, p.PrivateKey)
	if err != nil {
		return FC{}, err
	}
	f.SignatureEd25519 = sig
	return f, nil
}

// VerifyFC checks FC invariants, the commitment hash, and the issuer's
// signature, in that order (spec §4.6: commitment hash is checked before
// the outer signature).
func VerifyFC(f FC, issuerPublicKey string) (valid bool, hash string, err error) {
	if f.FcVersion != SupportedVersion {
		return false, "", perrors.New(perrors.KindSchema, "unsupported fc_version %q", f.FcVersion)
	}
	if f.IssuerAgentID == f.CounterpartyAgentID {
		return false, "", perrors.New(perrors.KindInvariant, "issuer and counterparty must differ")
	}
	if f.Units <= 0 {
		return false, "", perrors.New(perrors.KindInvariant, "units must be positive")
	}
	if f.DeliveryWindow.StartMs >= f.DeliveryWindow.EndMs {
		return false, "", perrors.New(perrors.KindInvariant, "delivery window malformed")
	}
	if f.Penalty.PenaltyUSDMicros <= 0 {
		return false, "", perrors.New(perrors.KindInvariant, "penalty must be positive")
	}

	expectedCommitment, err := computeCommitmentHash(f.IssuerAgentID, f.CounterpartyAgentID, f.ResourceType, f.Units, f.DeliveryWindow)
	if err != nil {
		return false, "", err
	}
	if expectedCommitment != f.CommitmentHash {
		return false, "", perrors.New(perrors.KindInvariant, "commitment hash mismatch")
	}

	h, err := f.Hash()
	if err != nil {
		return false, "", err
	}
	if !pcrypto.Verify(h, f.SignatureEd25519, issuerPublicKey) {
		return false, h, perrors.New(perrors.KindSignature, "invalid signature")
	}
	return true, h, nil
}
