package core

import (
	"time"

	"github.com/oerc-s/primordia/pkg/canonical"
	"github.com/oerc-s/primordia/pkg/pcrypto"
	"github.com/oerc-s/primordia/pkg/perrors"
)

// ResourceClass enumerates the metered resource categories.
type ResourceClass string

const (
	ResourceCompute   ResourceClass = "COMPUTE"
	ResourceInference ResourceClass = "INFERENCE"
	ResourceEnergy    ResourceClass = "ENERGY"
	ResourceStorage   ResourceClass = "STORAGE"
	ResourceBandwidth ResourceClass = "BANDWIDTH"
)

// AttestationMethod enumerates how consumption was attested.
type AttestationMethod string

const (
	AttestationTEE          AttestationMethod = "TEE"
	AttestationSignedMeter  AttestationMethod = "SIGNED_METER"
	AttestationOracle       AttestationMethod = "ORACLE"
	AttestationSelfReport   AttestationMethod = "SELF_REPORT"
)

// confidenceBps maps an attestation method to its fixed confidence score.
func confidenceBps(method AttestationMethod) int64 {
	switch method {
	case AttestationTEE:
		return 9999
	case AttestationSignedMeter:
		return 9500
	case AttestationOracle:
		return 9000
	case AttestationSelfReport:
		return 5000
	default:
		return 5000
	}
}

type Metering struct {
	Quantity   int64
	Unit       string
	StartMs    int64
	EndMs      int64
	DurationMs int64
	Breakdown  map[string]int64 // nil when absent
}

type Attestation struct {
	Method        AttestationMethod
	ConfidenceBps int64
	TeeQuote      string // "" when absent
	TeeType       string
	MeterID       string
	OracleID      string
}

type Pricing struct {
	RateMicrosPerUnit int64
	TotalMicros       int64
	Currency          string
}

type AMRContext struct {
	RequestHash  string
	ResponseHash string
	SessionID    string
	ParentAMRID  string
}

// AMR is an Attested Metering Record: a signed measurement of resource
// consumption, with a pluggable attestation method and confidence score.
type AMR struct {
	AmrVersion         string
	RecordID           string
	ConsumerAgentID    string
	ProviderAgentID    string
	ResourceClass      ResourceClass
	ResourceSubtype    string
	Metering           Metering
	Attestation        Attestation
	Pricing            Pricing
	Context            AMRContext
	TimestampMs        int64
	AmrHash            string
	ProviderSignature  string
	ConsumerSignature  string // "" when not co-signed
}

// content builds the hashable map, excluding RecordID, AmrHash, and both
// signatures (§9 Design Notes: identity/signature overlay over content).
func (a AMR) content() canonical.Value {
	metering := canonical.NewMapBuilder().
		Set("quantity", canonical.Int(a.Metering.Quantity)).
		Set("unit", canonical.String(a.Metering.Unit)).
		Set("start_ms", canonical.Int(a.Metering.StartMs)).
		Set("end_ms", canonical.Int(a.Metering.EndMs)).
		Set("duration_ms", canonical.Int(a.Metering.DurationMs))
	if len(a.Metering.Breakdown) > 0 {
		bm := make(map[string]canonical.Value, len(a.Metering.Breakdown))
		for k, v := range a.Metering.Breakdown {
			bm[k] = canonical.Int(v)
		}
		metering.Set("breakdown", canonical.Map(bm))
	}

	attestation := canonical.NewMapBuilder().
		Set("method", canonical.String(string(a.Attestation.Method))).
		Set("confidence_bps", canonical.Int(a.Attestation.ConfidenceBps))
	if a.Attestation.TeeQuote != "" {
		attestation.Set("tee_quote", canonical.String(a.Attestation.TeeQuote))
	}
	if a.Attestation.TeeType != "" {
		attestation.Set("tee_type", canonical.String(a.Attestation.TeeType))
	}
	if a.Attestation.MeterID != "" {
		attestation.Set("meter_id", canonical.String(a.Attestation.MeterID))
	}
	if a.Attestation.OracleID != "" {
		attestation.Set("oracle_id", canonical.String(a.Attestation.OracleID))
	}

	pricing := canonical.NewMapBuilder().
		Set("rate_micros_per_unit", canonical.Int(a.Pricing.RateMicrosPerUnit)).
		Set("total_micros", canonical.Int(a.Pricing.TotalMicros)).
		Set("currency", canonical.String(a.Pricing.Currency))

	ctx := canonical.NewMapBuilder().
		Set("request_hash", canonical.String(a.Context.RequestHash)).
		Set("response_hash", canonical.String(a.Context.ResponseHash))
	if a.Context.SessionID != "" {
		ctx.Set("session_id", canonical.String(a.Context.SessionID))
	}
	if a.Context.ParentAMRID != "" {
		ctx.Set("parent_amr_id", canonical.String(a.Context.ParentAMRID))
	}

	return canonical.NewMapBuilder().
		Set("amr_version", canonical.String(a.AmrVersion)).
		Set("consumer_agent_id", canonical.String(a.ConsumerAgentID)).
		Set("provider_agent_id", canonical.String(a.ProviderAgentID)).
		Set("resource_class", canonical.String(string(a.ResourceClass))).
		Set("resource_subtype", canonical.String(a.ResourceSubtype)).
		Set("metering", metering.Build()).
		Set("attestation", attestation.Build()).
		Set("pricing", pricing.Build()).
		Set("context", ctx.Build()).
		Set("timestamp_ms", canonical.Int(a.TimestampMs)).
		Build()
}

// Hash returns the AMR's content identity hash.
func (a AMR) Hash() (string, error) {
	return contentHash(a.content())
}

// MakeAMRParams bundles the inputs a provider supplies to create an AMR.
type MakeAMRParams struct {
	ConsumerAgentID   string
	ProviderAgentID   string
	ResourceClass     ResourceClass
	ResourceSubtype   string
	Quantity          int64
	Unit              string
	StartMs           int64
	EndMs             int64
	AttestationMethod AttestationMethod
	RateMicrosPerUnit int64
	RequestHash       string
	ResponseHash      string
	ProviderPrivKey   string

	TeeQuote    string
	TeeType     string
	MeterID     string
	OracleID    string
	SessionID   string
	ParentAMRID string
}

// MakeAMR builds and signs a new AMR as the provider.
func MakeAMR(p MakeAMRParams) (AMR, error) {
	duration := p.EndMs - p.StartMs
	total := p.Quantity * p.RateMicrosPerUnit

	a := AMR{
		AmrVersion:      SupportedVersion,
		ConsumerAgentID: p.ConsumerAgentID,
		ProviderAgentID: p.ProviderAgentID,
		ResourceClass:   p.ResourceClass,
		ResourceSubtype: p.ResourceSubtype,
		Metering: Metering{
			Quantity:   p.Quantity,
			Unit:       p.Unit,
			StartMs:    p.StartMs,
			EndMs:      p.EndMs,
			DurationMs: duration,
		},
		Attestation: Attestation{
			Method:        p.AttestationMethod,
			ConfidenceBps: confidenceBps(p.AttestationMethod),
			TeeQuote:      p.TeeQuote,
			TeeType:       p.TeeType,
			MeterID:       p.MeterID,
			OracleID:      p.OracleID,
		},
		Pricing: Pricing{
			RateMicrosPerUnit: p.RateMicrosPerUnit,
			TotalMicros:       total,
			Currency:          "USD",
		},
		Context: AMRContext{
			RequestHash:  p.RequestHash,
			ResponseHash: p.ResponseHash,
			SessionID:    p.SessionID,
			ParentAMRID:  p.ParentAMRID,
		},
		TimestampMs: time.Now().UnixMilli(),
	}

	h, err := a.Hash()
	if err != nil {
		return AMR{}, err
	}
	a.RecordID = h
	a.AmrHash = h

	sig, err := signHash(h, p.ProviderPrivKey)
	if err != nil {
		return AMR{}, err
	}
	a.ProviderSignature = sig
	return a, nil
}

// CosignAMR appends the consumer's signature over the existing AmrHash
// without rebuilding or re-hashing the record.
func CosignAMR(a AMR, consumerPrivKey string) (AMR, error) {
	sig, err := signHash(a.AmrHash, consumerPrivKey)
	if err != nil {
		return AMR{}, err
	}
	a.ConsumerSignature = sig
	return a, nil
}

// AMRVerification reports the per-signer verification outcome for an AMR.
type AMRVerification struct {
	ProviderValid bool
	// ConsumerChecked is false when the AMR carries no consumer signature.
	ConsumerChecked bool
	ConsumerValid   bool
}

// VerifyAMR recomputes the content hash and returns a KindInvariant error
// when it differs from AmrHash or RecordID. It then checks the provider
// signature (and the consumer signature, if present) against AmrHash and
// reports each outcome in the returned AMRVerification.
func VerifyAMR(a AMR) (AMRVerification, error) {
	if a.AmrVersion != SupportedVersion {
		return AMRVerification{}, perrors.New(perrors.KindSchema, "unsupported amr_version %q", a.AmrVersion)
	}
	expected, err := a.Hash()
	if err != nil {
		return AMRVerification{}, err
	}
	if expected != a.AmrHash || expected != a.RecordID {
		return AMRVerification{}, perrors.New(perrors.KindInvariant, "amr_hash/record_id does not match recomputed content hash")
	}

	v := AMRVerification{
		ProviderValid: pcrypto.Verify(a.AmrHash, a.ProviderSignature, a.ProviderAgentID),
	}
	if a.ConsumerSignature != "" {
		v.ConsumerChecked = true
		v.ConsumerValid = pcrypto.Verify(a.AmrHash, a.ConsumerSignature, a.ConsumerAgentID)
	}
	return v, nil
}

// MeetsConfidenceThreshold reports whether a's attestation confidence is at
// least minConfidenceBps.
func MeetsConfidenceThreshold(a AMR, minConfidenceBps int64) bool {
	return a.Attestation.ConfidenceBps >= minConfidenceBps
}

// AMRResourceTotals accumulates quantity and spend for one resource class.
type AMRResourceTotals struct {
	Quantity    int64
	TotalMicros int64
}

// AMRSummary is the result of aggregating a batch of AMRs.
type AMRSummary struct {
	TotalQuantity    int64
	TotalMicros      int64
	ByResourceClass  map[ResourceClass]AMRResourceTotals
	AvgConfidenceBps int64
}

// AggregateAMR reduces a batch of AMRs to totals, a per-resource-class
// breakdown, and mean confidence (integer truncation).
func AggregateAMR(amrs []AMR) AMRSummary {
	s := AMRSummary{ByResourceClass: make(map[ResourceClass]AMRResourceTotals)}
	if len(amrs) == 0 {
		return s
	}
	var totalConfidence int64
	for _, a := range amrs {
		s.TotalQuantity += a.Metering.Quantity
		s.TotalMicros += a.Pricing.TotalMicros
		totalConfidence += a.Attestation.ConfidenceBps

		t := s.ByResourceClass[a.ResourceClass]
		t.Quantity += a.Metering.Quantity
		t.TotalMicros += a.Pricing.TotalMicros
		s.ByResourceClass[a.ResourceClass] = t
	}
	s.AvgConfidenceBps = totalConfidence / int64(len(amrs))
	return s
}
