package core

import (
	"testing"

	"github.com/oerc-s/primordia/pkg/pcrypto"
)

func TestMakeFCAndVerifyRoundTrip(t *testing.T) {
	priv, issuer, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	_, counterparty, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	collateral := int64(5000)
	f, err := MakeFC(MakeFCParams{
		IssuerAgentID:       issuer,
		CounterpartyAgentID: counterparty,
		ResourceType:        "gpu_h100",
		Units:               10,
		UnitType:            "gpu_seconds",
		DeliveryWindow:      DeliveryWindow{StartMs: 1000, EndMs: 2000},
		Penalty:             Penalty{PenaltyUSDMicros: 500, RuleHash: "rule"},
		PrivateKey:          priv,
		Collateral:          &collateral,
	})
	if err != nil {
		t.Fatalf("MakeFC: %v", err)
	}

	valid, _, err := VerifyFC(f, issuer)
	if err != nil {
		t.Fatalf("VerifyFC: %v", err)
	}
	if !valid {
		t.Fatalf("expected FC to verify")
	}
}

func TestVerifyFCRejectsMalformedWindow(t *testing.T) {
	priv, issuer, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	_, counterparty, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	f, err := MakeFC(MakeFCParams{
		IssuerAgentID:       issuer,
		CounterpartyAgentID: counterparty,
		ResourceType:        "gpu_h100",
		Units:               10,
		UnitType:            "gpu_seconds",
		DeliveryWindow:      DeliveryWindow{StartMs: 2000, EndMs: 1000},
		Penalty:             Penalty{PenaltyUSDMicros: 500, RuleHash: "rule"},
		PrivateKey:          priv,
	})
	if err != nil {
		t.Fatalf("MakeFC: %v", err)
	}
	if valid, _, err := VerifyFC(f, issuer); err == nil || valid {
		t.Fatalf("expected verification to reject a malformed delivery window")
	}
}

func TestVerifyFCDetectsCommitmentHashTampering(t *testing.T) {
	priv, issuer, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	_, counterparty, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	f, err := MakeFC(MakeFCParams{
		IssuerAgentID:       issuer,
		CounterpartyAgentID: counterparty,
		ResourceType:        "gpu_h100",
		Units:               10,
		UnitType:            "gpu_seconds",
		DeliveryWindow:      DeliveryWindow{StartMs: 1000, EndMs: 2000},
		Penalty:             Penalty{PenaltyUSDMicros: 500, RuleHash: "rule"},
		PrivateKey:          priv,
	})
	if err != nil {
		t.Fatalf("MakeFC: %v", err)
	}

	f.Units = 999
	if valid, _, err := VerifyFC(f, issuer); err == nil || valid {
		t.Fatalf("expected verification to reject a commitment-hash mismatch after tampering")
	}
}

func TestVerifyFCRequiresPositivePenalty(t *testing.T) {
	priv, issuer, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	_, counterparty, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	f, err := MakeFC(MakeFCParams{
		IssuerAgentID:       issuer,
		CounterpartyAgentID: counterparty,
		ResourceType:        "gpu_h100",
		Units:               10,
		UnitType:            "gpu_seconds",
		DeliveryWindow:      DeliveryWindow{StartMs: 1000, EndMs: 2000},
		Penalty:             Penalty{PenaltyUSDMicros: 0, RuleHash: "rule"},
		PrivateKey:          priv,
	})
	if err != nil {
		t.Fatalf("MakeFC: %v", err)
	}
	if valid, _, err := VerifyFC(f, issuer); err == nil || valid {
		t.Fatalf("expected verification to reject a non-positive penalty")
	}
}

func TestFCNoCollateral(t *testing.T) {
	priv, issuer, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	_, counterparty, err := pcrypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	f, err := MakeFC(MakeFCParams{
		IssuerAgentID:       issuer,
		CounterpartyAgentID: counterparty,
		ResourceType:        "gpu_h100",
		Units:               10,
		UnitType:            "gpu_seconds",
		DeliveryWindow:      DeliveryWindow{StartMs: 1000, EndMs: 2000},
		Penalty:             Penalty{PenaltyUSDMicros: 500, RuleHash: "rule"},
		PrivateKey:          priv,
	})
	if err != nil {
		t.Fatalf("MakeFC: %v", err)
	}
	valid, _, err := VerifyFC(f, issuer)
	if err != nil || !valid {
		t.Fatalf("expected a collateral-free FC to verify, err=%v valid=%v", err, valid)
	}
}
