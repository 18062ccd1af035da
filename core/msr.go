package core

import (
	"time"

	"github.com/oerc-s/primordia/pkg/canonical"
	"github.com/oerc-s/primordia/pkg/pcrypto"
	"github.com/oerc-s/primordia/pkg/perrors"
	log "github.com/sirupsen/logrus"
)

// MSR is a Machine Settlement Receipt: a signed record of a single
// payer-to-payee resource transfer. Immutable once signed; identity is the
// hash of every field below except Signature.
type MSR struct {
	MsrVersion     string
	PayerAgentID   string
	PayeeAgentID   string
	ResourceType   string
	Units          int64
	UnitType       string
	PriceUSDMicros int64
	TimestampMs    int64
	Nonce          string
	ScopeHash      string
	RequestHash    string
	ResponseHash   string
	// PrevReceiptHash is nil when absent, a non-nil pointer when the
	// receipt chains from a prior one for the same payer.
	PrevReceiptHash *string
	SignatureEd25519 string
}

func (m MSR) content() canonical.Value {
	b := canonical.NewMapBuilder().
		Set("msr_version", canonical.String(m.MsrVersion)).
		Set("payer_agent_id", canonical.String(m.PayerAgentID)).
		Set("payee_agent_id", canonical.String(m.PayeeAgentID)).
		Set("resource_type", canonical.String(m.ResourceType)).
		Set("units", canonical.Int(m.Units)).
		Set("unit_type", canonical.String(m.UnitType)).
		Set("price_usd_micros", canonical.Int(m.PriceUSDMicros)).
		Set("timestamp_ms", canonical.Int(m.TimestampMs)).
		Set("nonce", canonical.String(m.Nonce)).
		Set("scope_hash", canonical.String(m.ScopeHash)).
		Set("request_hash", canonical.String(m.RequestHash)).
		Set("response_hash", canonical.String(m.ResponseHash))
	if m.PrevReceiptHash != nil {
		b.Set("prev_receipt_hash", canonical.String(*m.PrevReceiptHash))
	} else {
		b.Set("prev_receipt_hash", canonical.Null())
	}
	return b.Build()
}

// Hash returns the MSR's content identity hash (signature excluded).
func (m MSR) Hash() (string, error) {
	return contentHash(m.content())
}

// MakeMSRParams bundles the inputs a payer supplies to create an MSR.
type MakeMSRParams struct {
	PayerAgentID    string
	PayeeAgentID    string
	ResourceType    string
	Units           int64
	UnitType        string
	PriceUSDMicros  int64
	ScopeHash       string
	RequestHash     string
	ResponseHash    string
	PrivateKey      string
	TimestampMs     int64   // 0 means "now"
	Nonce           string  // "" means generate
	PrevReceiptHash *string // nil means no chain
}

// MakeMSR builds and signs a new MSR as the payer.
func MakeMSR(p MakeMSRParams) (MSR, error) {
	ts := p.TimestampMs
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}
	nonce := p.Nonce
	if nonce == "" {
		n, err := pcrypto.RandomNonceHex(16)
		if err != nil {
			return MSR{}, err
		}
		nonce = n
	}

	m := MSR{
		MsrVersion:      SupportedVersion,
		PayerAgentID:    p.PayerAgentID,
		PayeeAgentID:    p.PayeeAgentID,
		ResourceType:    p.ResourceType,
		Units:           p.Units,
		UnitType:        p.UnitType,
		PriceUSDMicros:  p.PriceUSDMicros,
		TimestampMs:     ts,
		Nonce:           nonce,
		ScopeHash:       p.ScopeHash,
		RequestHash:     p.RequestHash,
		ResponseHash:    p.ResponseHash,
		PrevReceiptHash: p.PrevReceiptHash,
	}

	h, err := m.Hash()
	if err != nil {
		return MSR{}, err
	}
	sig, err := signHash(h, p.PrivateKey)
	if err != nil {
		return MSR{}, err
	}
	m.SignatureEd25519 = sig

	logger.WithFields(log.Fields{
		"payer": p.PayerAgentID, "payee": p.PayeeAgentID, "hash": h,
	}).Debug("msr: signed")
	return m, nil
}

// VerifyMSR recomputes the MSR's hash and checks its invariants and
// signature under the payer's public key (payer_agent_id, by protocol
// convention, equals the payer's Ed25519 public key in hex).
func VerifyMSR(m MSR) (valid bool, hash string, err error) {
	if m.MsrVersion != SupportedVersion {
		return false, "", perrors.New(perrors.KindSchema, "unsupported msr_version %q", m.MsrVersion)
	}
	if m.PayerAgentID == m.PayeeAgentID {
		return false, "", perrors.New(perrors.KindInvariant, "payer and payee must differ")
	}
	if m.Units <= 0 {
		return false, "", perrors.New(perrors.KindInvariant, "units must be positive")
	}
	if m.PriceUSDMicros < 0 {
		return false, "", perrors.New(perrors.KindInvariant, "price cannot be negative")
	}
	if m.TimestampMs <= 0 {
		return false, "", perrors.New(perrors.KindInvariant, "invalid timestamp")
	}

	h, err := m.Hash()
	if err != nil {
		return false, "", err
	}

	if !pcrypto.Verify(h, m.SignatureEd25519, m.PayerAgentID) {
		return false, h, perrors.New(perrors.KindSignature, "invalid signature")
	}
	return true, h, nil
}
