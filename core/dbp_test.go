package core

import (
	"testing"

	"github.com/oerc-s/primordia/pkg/pcrypto"
)

func TestComputeDistributionsProRataFloorDivision(t *testing.T) {
	creditors := []Creditor{
		{AgentID: "c1", AmountMicros: 100},
		{AgentID: "c2", AmountMicros: 200},
		{AgentID: "c3", AmountMicros: 300},
	}
	dists := ComputeDistributions(creditors, 300, LiquidationProRata)
	if len(dists) != 3 {
		t.Fatalf("len(dists) = %d, want 3", len(dists))
	}
	byID := map[string]Distribution{}
	for _, d := range dists {
		byID[d.CreditorID] = d
	}
	// totalOwed = 600; (amount*300)/600 for each.
	if byID["c1"].ReceivesMicros != 50 {
		t.Fatalf("c1 receives = %d, want 50", byID["c1"].ReceivesMicros)
	}
	if byID["c2"].ReceivesMicros != 100 {
		t.Fatalf("c2 receives = %d, want 100", byID["c2"].ReceivesMicros)
	}
	if byID["c3"].ReceivesMicros != 150 {
		t.Fatalf("c3 receives = %d, want 150", byID["c3"].ReceivesMicros)
	}
	if byID["c1"].RecoveryBps != 5000 {
		t.Fatalf("c1 recovery bps = %d, want 5000", byID["c1"].RecoveryBps)
	}
}

func TestComputeDistributionsPriorityWaterfall(t *testing.T) {
	creditors := []Creditor{
		{AgentID: "low", AmountMicros: 100, Priority: 2},
		{AgentID: "high", AmountMicros: 150, Priority: 1},
	}
	dists := ComputeDistributions(creditors, 200, LiquidationPriority)
	byID := map[string]Distribution{}
	for _, d := range dists {
		byID[d.CreditorID] = d
	}
	if byID["high"].ReceivesMicros != 150 {
		t.Fatalf("high-priority creditor receives = %d, want 150 (paid first in full)", byID["high"].ReceivesMicros)
	}
	if byID["low"].ReceivesMicros != 50 {
		t.Fatalf("low-priority creditor receives = %d, want 50 (remainder)", byID["low"].ReceivesMicros)
	}
}

func TestComputeDistributionsAuctionDegradesToProRata(t *testing.T) {
	creditors := []Creditor{
		{AgentID: "c1", AmountMicros: 100},
		{AgentID: "c2", AmountMicros: 100},
	}
	proRata := ComputeDistributions(creditors, 100, LiquidationProRata)
	auction := ComputeDistributions(creditors, 100, LiquidationAuction)
	if len(proRata) != len(auction) {
		t.Fatalf("expected AUCTION and PRO_RATA to produce the same shape")
	}
	for i := range proRata {
		if proRata[i] != auction[i] {
			t.Fatalf("AUCTION[%d] = %+v, want equal to PRO_RATA[%d] = %+v", i, auction[i], i, proRata[i])
		}
	}
}

func TestComputeDistributionsZeroTotalOwed(t *testing.T) {
	creditors := []Creditor{{AgentID: "c1", AmountMicros: 0}}
	dists := ComputeDistributions(creditors, 500, LiquidationProRata)
	if len(dists) != 1 || dists[0].ReceivesMicros != 0 || dists[0].RecoveryBps != 0 {
		t.Fatalf("expected zero-receive distribution for zero total owed, got %+v", dists)
	}
}

func TestComputeDistributionsEmptyCreditors(t *testing.T) {
	if dists := ComputeDistributions(nil, 100, LiquidationProRata); dists != nil {
		t.Fatalf("expected nil distributions for no creditors, got %+v", dists)
	}
}

func TestMakeDBPAndResolveRoundTrip(t *testing.T) {
	arbiterPriv, arbiterPub, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	d, err := MakeDBP(MakeDBPParams{
		DefaultingAgentID: "agent-x",
		DeclarationType:   DeclarationInvoluntary,
		TriggerType:       TriggerNegativeMBS,
		TriggerReferenceID: "mbs-1",
		Creditors: []Creditor{
			{AgentID: "c1", AmountMicros: 100},
			{AgentID: "c2", AmountMicros: 300},
		},
		Assets:            []DBPAsset{{AssetType: "cash", ValueMicros: 200, Liquid: true}},
		LiquidationMethod: LiquidationProRata,
		ArbiterAgentID:    arbiterPub,
		ArbiterPrivateKey: arbiterPriv,
	})
	if err != nil {
		t.Fatalf("MakeDBP: %v", err)
	}
	if d.DefaultID != d.DbpHash {
		t.Fatalf("DefaultID (%s) should equal DbpHash (%s)", d.DefaultID, d.DbpHash)
	}
	// totalOwed=400, totalAssets=200 -> recovery rate 5000bps (50%).
	if d.RecoveryRateBps != 5000 {
		t.Fatalf("RecoveryRateBps = %d, want 5000", d.RecoveryRateBps)
	}

	result := ResolveDefault(d, arbiterPub)
	if result.Err != nil {
		t.Fatalf("ResolveDefault: %v", result.Err)
	}
	if !result.Valid {
		t.Fatalf("expected DBP to resolve as valid")
	}
	if result.Status != DBPResolved {
		t.Fatalf("Status = %v, want %v", result.Status, DBPResolved)
	}
}

func TestResolveDefaultRejectsWrongArbiterKey(t *testing.T) {
	arbiterPriv, _, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	_, otherPub, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	d, err := MakeDBP(MakeDBPParams{
		DefaultingAgentID: "agent-x",
		DeclarationType:   DeclarationVoluntary,
		TriggerType:       TriggerTimeout,
		Creditors:         []Creditor{{AgentID: "c1", AmountMicros: 100}},
		Assets:            []DBPAsset{{AssetType: "cash", ValueMicros: 100}},
		LiquidationMethod: LiquidationProRata,
		ArbiterPrivateKey: arbiterPriv,
	})
	if err != nil {
		t.Fatalf("MakeDBP: %v", err)
	}

	result := ResolveDefault(d, otherPub)
	if result.Valid || result.Err == nil {
		t.Fatalf("expected resolution to fail under a non-matching arbiter public key")
	}
	if result.Status != DBPSigned {
		t.Fatalf("Status = %v, want %v (should not transition to RESOLVED on failure)", result.Status, DBPSigned)
	}
}

func TestResolveDefaultDetectsDistributionTampering(t *testing.T) {
	arbiterPriv, arbiterPub, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	d, err := MakeDBP(MakeDBPParams{
		DefaultingAgentID: "agent-x",
		DeclarationType:   DeclarationVoluntary,
		TriggerType:       TriggerTimeout,
		Creditors:         []Creditor{{AgentID: "c1", AmountMicros: 100}},
		Assets:            []DBPAsset{{AssetType: "cash", ValueMicros: 100}},
		LiquidationMethod: LiquidationProRata,
		ArbiterAgentID:    arbiterPub,
		ArbiterPrivateKey: arbiterPriv,
	})
	if err != nil {
		t.Fatalf("MakeDBP: %v", err)
	}

	d.LiquidationPlan.Distributions[0].ReceivesMicros = 99999
	result := ResolveDefault(d, arbiterPub)
	if result.Valid || result.Err == nil {
		t.Fatalf("expected resolution to fail once the signed hash no longer matches tampered content")
	}
}

func TestShouldAutoDefault(t *testing.T) {
	if !ShouldAutoDefault(100, 900) {
		t.Fatalf("expected ShouldAutoDefault(100, 900) to be true")
	}
	if ShouldAutoDefault(1000, 900) {
		t.Fatalf("expected ShouldAutoDefault(1000, 900) to be false")
	}
}
