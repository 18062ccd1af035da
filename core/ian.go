package core

import (
	"github.com/oerc-s/primordia/pkg/canonical"
	"github.com/oerc-s/primordia/pkg/pcrypto"
	"github.com/oerc-s/primordia/pkg/perrors"
)

// IAN is an Inter-Agent Netting record: a signed compression of a set of
// MSRs into minimal bilateral obligations for one epoch, produced and
// signed by the kernel.
type IAN struct {
	IanVersion             string
	EpochID                string
	Participants           []string
	IncludedReceiptHashes  []string
	NetObligations         []NetObligation
	NettingHash            string
	SignatureEd25519       string
}

func obligationsContent(obligations []NetObligation) []canonical.Value {
	vs := make([]canonical.Value, len(obligations))
	for i, o := range obligations {
		vs[i] = o.content()
	}
	return vs
}

// computeNettingHash binds epoch, the sorted receipt-hash set, and the
// obligations list.
func computeNettingHash(epochID string, receiptHashes []string, obligations []NetObligation) (string, error) {
	hashVals := make([]canonical.Value, len(receiptHashes))
	for i, h := range receiptHashes {
		hashVals[i] = canonical.String(h)
	}
	v := canonical.NewMapBuilder().
		Set("epoch", canonical.String(epochID)).
		Set("receipts", canonical.Array(hashVals...)).
		Set("obligations", canonical.Array(obligationsContent(obligations)...)).
		Build()
	return contentHash(v)
}

func (ian IAN) content() canonical.Value {
	participants := make([]canonical.Value, len(ian.Participants))
	for i, p := range ian.Participants {
		participants[i] = canonical.String(p)
	}
	hashes := make([]canonical.Value, len(ian.IncludedReceiptHashes))
	for i, h := range ian.IncludedReceiptHashes {
		hashes[i] = canonical.String(h)
	}
	return canonical.NewMapBuilder().
		Set("ian_version", canonical.String(ian.IanVersion)).
		Set("epoch_id", canonical.String(ian.EpochID)).
		Set("participants", canonical.Array(participants...)).
		Set("included_receipt_hashes", canonical.Array(hashes...)).
		Set("net_obligations", canonical.Array(obligationsContent(ian.NetObligations)...)).
		Set("netting_hash", canonical.String(ian.NettingHash)).
		Build()
}

// Hash returns the IAN's content identity hash (signature excluded).
func (ian IAN) Hash() (string, error) {
	return contentHash(ian.content())
}

// MakeIAN nets receipts and produces a signed IAN for epochID, signed by
// the kernel's private key.
func MakeIAN(epochID string, receipts []MSR, kernelPrivateKey string) (IAN, error) {
	result, err := NetReceipts(receipts)
	if err != nil {
		return IAN{}, err
	}
	nettingHash, err := computeNettingHash(epochID, result.ReceiptHashes, result.Obligations)
	if err != nil {
		return IAN{}, err
	}

	ian := IAN{
		IanVersion:            SupportedVersion,
		EpochID:               epochID,
		Participants:          result.Participants,
		IncludedReceiptHashes: result.ReceiptHashes,
		NetObligations:        result.Obligations,
		NettingHash:           nettingHash,
	}

	h, err := ian.Hash()
	if err != nil {
		return IAN{}, err
	}
	sig, err := signHash(h, kernelPrivateKey)
	if err != nil {
		return IAN{}, err
	}
	ian.SignatureEd25519 = sig
	return ian, nil
}

// VerifyIAN checks obligation endpoint membership, per-obligation
// invariants, the netting hash, and the kernel's signature.
func VerifyIAN(ian IAN, kernelPublicKey string) (valid bool, err error) {
	if ian.IanVersion != SupportedVersion {
		return false, perrors.New(perrors.KindSchema, "unsupported ian_version %q", ian.IanVersion)
	}

	participantSet := make(map[string]struct{}, len(ian.Participants))
	for _, p := range ian.Participants {
		participantSet[p] = struct{}{}
	}
	for _, o := range ian.NetObligations {
		if _, ok := participantSet[o.FromAgent]; !ok {
			return false, perrors.New(perrors.KindInvariant, "unknown participant: %s", o.FromAgent)
		}
		if _, ok := participantSet[o.ToAgent]; !ok {
			return false, perrors.New(perrors.KindInvariant, "unknown participant: %s", o.ToAgent)
		}
		if o.FromAgent == o.ToAgent {
			return false, perrors.New(perrors.KindInvariant, "self-obligation not allowed")
		}
		if o.AmountUSDMicros <= 0 {
			return false, perrors.New(perrors.KindInvariant, "obligation amount must be positive")
		}
	}

	expectedHash, err := computeNettingHash(ian.EpochID, ian.IncludedReceiptHashes, ian.NetObligations)
	if err != nil {
		return false, err
	}
	if expectedHash != ian.NettingHash {
		return false, perrors.New(perrors.KindInvariant, "netting hash mismatch")
	}

	h, err := ian.Hash()
	if err != nil {
		return false, err
	}
	if !pcrypto.Verify(h, ian.SignatureEd25519, kernelPublicKey) {
		return false, perrors.New(perrors.KindSignature, "invalid kernel signature")
	}
	return true, nil
}
