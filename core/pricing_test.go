package core

import "testing"

func TestLookupTariffKnownSubtype(t *testing.T) {
	tariff, ok := LookupTariff("gpu_h100")
	if !ok {
		t.Fatalf("expected gpu_h100 to have a default tariff")
	}
	if tariff.Unit != "gpu_seconds" {
		t.Fatalf("Unit = %q, want gpu_seconds", tariff.Unit)
	}
	if tariff.RateMicrosPerUnit != 1000 {
		t.Fatalf("RateMicrosPerUnit = %d, want 1000", tariff.RateMicrosPerUnit)
	}
}

func TestLookupTariffUnknownSubtype(t *testing.T) {
	if _, ok := LookupTariff("unknown-resource"); ok {
		t.Fatalf("expected an unknown subtype to report ok=false")
	}
}

func TestResourcePricingCoversExpectedSubtypes(t *testing.T) {
	for _, subtype := range []string{
		"gpt-4o", "gpt-4-turbo", "claude-opus", "claude-sonnet",
		"gpu_h100", "gpu_a100", "s3_standard", "egress", "grid_power",
	} {
		if _, ok := LookupTariff(subtype); !ok {
			t.Fatalf("expected a default tariff for %q", subtype)
		}
	}
}
