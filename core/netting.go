package core

import (
	"sort"

	"github.com/oerc-s/primordia/pkg/canonical"
)

// NetObligation is a single directed bilateral debt produced by netting:
// From owes To AmountUSDMicros.
type NetObligation struct {
	FromAgent       string
	ToAgent         string
	AmountUSDMicros int64
}

func (o NetObligation) content() canonical.Value {
	return canonical.NewMapBuilder().
		Set("from", canonical.String(o.FromAgent)).
		Set("to", canonical.String(o.ToAgent)).
		Set("amount_usd_micros", canonical.Int(o.AmountUSDMicros)).
		Build()
}

// NettingResult is the deterministic output of netting a set of MSRs.
type NettingResult struct {
	Obligations   []NetObligation
	Participants  []string
	ReceiptHashes []string
	TotalVolume   int64
}

// NetReceipts reduces a set of MSRs to the minimal set of bilateral net
// obligations. The result is deterministic and independent of input order:
// permuting receipts yields a field-for-field identical NettingResult
// (spec §4.8, §8).
func NetReceipts(receipts []MSR) (NettingResult, error) {
	type hashedMSR struct {
		msr  MSR
		hash string
	}
	hashed := make([]hashedMSR, 0, len(receipts))
	for _, r := range receipts {
		h, err := r.Hash()
		if err != nil {
			return NettingResult{}, err
		}
		hashed = append(hashed, hashedMSR{msr: r, hash: h})
	}
	sort.Slice(hashed, func(i, j int) bool { return hashed[i].hash < hashed[j].hash })

	receiptHashes := make([]string, len(hashed))
	for i, h := range hashed {
		receiptHashes[i] = h.hash
	}

	// Step 2: gross flows, keyed "payer|payee".
	gross := make(map[string]int64)
	var totalVolume int64
	participantSet := make(map[string]struct{})
	for _, h := range hashed {
		key := h.msr.PayerAgentID + "|" + h.msr.PayeeAgentID
		gross[key] += h.msr.PriceUSDMicros
		totalVolume += h.msr.PriceUSDMicros
		participantSet[h.msr.PayerAgentID] = struct{}{}
		participantSet[h.msr.PayeeAgentID] = struct{}{}
	}

	grossKeys := make([]string, 0, len(gross))
	for k := range gross {
		grossKeys = append(grossKeys, k)
	}
	sort.Strings(grossKeys)

	// Step 3: net bilateral pairs, visiting in sorted key order and
	// skipping pairs already processed.
	processed := make(map[string]struct{})
	var obligations []NetObligation
	for _, key := range grossKeys {
		a, b := splitPayerPayee(key)
		pairKey := sortedPairKey(a, b)
		if _, done := processed[pairKey]; done {
			continue
		}
		processed[pairKey] = struct{}{}

		aToB := gross[a+"|"+b]
		bToA := gross[b+"|"+a]

		switch {
		case aToB > bToA:
			obligations = append(obligations, NetObligation{FromAgent: a, ToAgent: b, AmountUSDMicros: aToB - bToA})
		case bToA > aToB:
			obligations = append(obligations, NetObligation{FromAgent: b, ToAgent: a, AmountUSDMicros: bToA - aToB})
		}
	}

	sort.Slice(obligations, func(i, j int) bool {
		if obligations[i].FromAgent != obligations[j].FromAgent {
			return obligations[i].FromAgent < obligations[j].FromAgent
		}
		return obligations[i].ToAgent < obligations[j].ToAgent
	})

	participants := make([]string, 0, len(participantSet))
	for p := range participantSet {
		participants = append(participants, p)
	}
	sort.Strings(participants)

	return NettingResult{
		Obligations:   obligations,
		Participants:  participants,
		ReceiptHashes: receiptHashes,
		TotalVolume:   totalVolume,
	}, nil
}

func splitPayerPayee(key string) (string, string) {
	for i := 0; i < len(key); i++ {
		if key[i] == '|' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

func sortedPairKey(a, b string) string {
	if a <= b {
		return a + "|" + b
	}
	return b + "|" + a
}
