package core

import (
	"testing"

	"github.com/oerc-s/primordia/pkg/pcrypto"
)

func mustMSR(t *testing.T, payerPriv, payer, payee string, priceMicros int64) MSR {
	t.Helper()
	m, err := MakeMSR(MakeMSRParams{
		PayerAgentID:   payer,
		PayeeAgentID:   payee,
		ResourceType:   "gpu_h100",
		Units:          1,
		UnitType:       "gpu_seconds",
		PriceUSDMicros: priceMicros,
		PrivateKey:     payerPriv,
	})
	if err != nil {
		t.Fatalf("MakeMSR: %v", err)
	}
	return m
}

func TestNetReceiptsBilateralNetting(t *testing.T) {
	aPriv, a, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	bPriv, b, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	receipts := []MSR{
		mustMSR(t, aPriv, a, b, 1000),
		mustMSR(t, bPriv, b, a, 400),
	}

	result, err := NetReceipts(receipts)
	if err != nil {
		t.Fatalf("NetReceipts: %v", err)
	}
	if len(result.Obligations) != 1 {
		t.Fatalf("len(Obligations) = %d, want 1", len(result.Obligations))
	}
	o := result.Obligations[0]
	if o.FromAgent != a || o.ToAgent != b || o.AmountUSDMicros != 600 {
		t.Fatalf("obligation = %+v, want from=%s to=%s amount=600", o, a, b)
	}
	if result.TotalVolume != 1400 {
		t.Fatalf("TotalVolume = %d, want 1400", result.TotalVolume)
	}
	if len(result.Participants) != 2 {
		t.Fatalf("len(Participants) = %d, want 2", len(result.Participants))
	}
}

func TestNetReceiptsOrderIndependent(t *testing.T) {
	aPriv, a, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	bPriv, b, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	cPriv, c, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	r1 := mustMSR(t, aPriv, a, b, 500)
	r2 := mustMSR(t, bPriv, b, c, 300)
	r3 := mustMSR(t, cPriv, c, a, 200)

	forward, err := NetReceipts([]MSR{r1, r2, r3})
	if err != nil {
		t.Fatalf("NetReceipts: %v", err)
	}
	reversed, err := NetReceipts([]MSR{r3, r2, r1})
	if err != nil {
		t.Fatalf("NetReceipts: %v", err)
	}

	if len(forward.Obligations) != len(reversed.Obligations) {
		t.Fatalf("obligation count differs by input order: %d vs %d", len(forward.Obligations), len(reversed.Obligations))
	}
	for i := range forward.Obligations {
		if forward.Obligations[i] != reversed.Obligations[i] {
			t.Fatalf("obligation %d differs by input order: %+v vs %+v", i, forward.Obligations[i], reversed.Obligations[i])
		}
	}
	if forward.TotalVolume != reversed.TotalVolume {
		t.Fatalf("TotalVolume differs by input order: %d vs %d", forward.TotalVolume, reversed.TotalVolume)
	}
}

func TestNetReceiptsEqualFlowsCancel(t *testing.T) {
	aPriv, a, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	bPriv, b, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	receipts := []MSR{
		mustMSR(t, aPriv, a, b, 500),
		mustMSR(t, bPriv, b, a, 500),
	}
	result, err := NetReceipts(receipts)
	if err != nil {
		t.Fatalf("NetReceipts: %v", err)
	}
	if len(result.Obligations) != 0 {
		t.Fatalf("expected equal bilateral flows to net to zero obligations, got %+v", result.Obligations)
	}
}

func TestNetReceiptsEmpty(t *testing.T) {
	result, err := NetReceipts(nil)
	if err != nil {
		t.Fatalf("NetReceipts: %v", err)
	}
	if len(result.Obligations) != 0 || result.TotalVolume != 0 {
		t.Fatalf("expected empty result for no receipts, got %+v", result)
	}
}
