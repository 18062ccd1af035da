package core

import (
	"math"
	"sort"
	"time"

	"github.com/oerc-s/primordia/pkg/perrors"
)

const dayMs = 86_400_000

// ACRDimensions holds the six-dimensional credit-rating summary.
type ACRDimensions struct {
	Volume               int64
	Velocity             float64
	SettlementRatio      float64
	CounterpartyEntropy  float64
	NettingEfficiency    float64
	TemporalConsistency  float64
}

// ACR is an Agent Credit Rating: a streaming-computed summary over a window
// of MSRs for one tracked agent. It is not individually signed.
type ACR struct {
	AgentID      string
	AcrVersion   string
	ComputedAtMs int64
	WindowStartMs int64
	WindowEndMs  int64
	MsrCount     int64
	Dimensions   ACRDimensions
	RawDataHash  string
}

// ACRComputer accumulates MSR observations for one agent in a single pass
// and finalizes them into an ACR. It is not safe for concurrent use by more
// than one caller.
type ACRComputer struct {
	agentID       string
	totalVolume   int64
	settledCount  int64
	count         int64
	minTs         int64
	maxTs         int64
	counterparty  map[string]int64
	daily         map[int64]int64
}

// NewACRComputer creates a computer tracking agentID.
func NewACRComputer(agentID string) *ACRComputer {
	return &ACRComputer{
		agentID:      agentID,
		counterparty: make(map[string]int64),
		daily:        make(map[int64]int64),
	}
}

// AddMSR folds one MSR into the running aggregate. settled indicates
// whether this receipt has cleared settlement (e.g. included in an IAN).
func (c *ACRComputer) AddMSR(m MSR, settled bool) {
	var other string
	if m.PayerAgentID == c.agentID {
		other = m.PayeeAgentID
	} else {
		other = m.PayerAgentID
	}

	c.totalVolume += m.PriceUSDMicros
	c.counterparty[other]++
	day := m.TimestampMs / dayMs
	c.daily[day] += m.PriceUSDMicros
	if settled {
		c.settledCount++
	}
	if c.count == 0 || m.TimestampMs < c.minTs {
		c.minTs = m.TimestampMs
	}
	if c.count == 0 || m.TimestampMs > c.maxTs {
		c.maxTs = m.TimestampMs
	}
	c.count++
}

// Reset clears all accumulated state, ready to track a new window.
func (c *ACRComputer) Reset() {
	c.totalVolume = 0
	c.settledCount = 0
	c.count = 0
	c.minTs = 0
	c.maxTs = 0
	c.counterparty = make(map[string]int64)
	c.daily = make(map[int64]int64)
}

func shannonEntropy(counterparty map[string]int64, count int64) float64 {
	if count == 0 {
		return 0
	}
	var h float64
	for _, n := range counterparty {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(count)
		h -= p * math.Log2(p)
	}
	return h
}

func temporalConsistency(daily map[int64]int64) float64 {
	if len(daily) < 2 {
		return 1.0
	}
	values := make([]float64, 0, len(daily))
	var sum float64
	for _, v := range daily {
		values = append(values, float64(v))
		sum += float64(v)
	}
	mean := sum / float64(len(values))
	if mean <= 0 {
		return 1.0
	}
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	stddev := math.Sqrt(variance)
	return 1 - stddev/mean
}

// Compute finalizes the current accumulator into an ACR. rawDataHash should
// identify the underlying receipt set (e.g. a hash of their receipt hashes).
func (c *ACRComputer) Compute(rawDataHash string) ACR {
	var velocity float64
	if c.count > 0 {
		spanDays := float64(c.maxTs-c.minTs) / float64(dayMs)
		if spanDays < 1 {
			spanDays = 1
		}
		velocity = float64(c.count) / spanDays
	}

	settlementRatio := 1.0
	if c.count > 0 {
		settlementRatio = float64(c.settledCount) / float64(c.count)
	}

	return ACR{
		AgentID:       c.agentID,
		AcrVersion:    SupportedVersion,
		ComputedAtMs:  time.Now().UnixMilli(),
		WindowStartMs: c.minTs,
		WindowEndMs:   c.maxTs,
		MsrCount:      c.count,
		Dimensions: ACRDimensions{
			Volume:              c.totalVolume,
			Velocity:            velocity,
			SettlementRatio:     settlementRatio,
			CounterpartyEntropy: shannonEntropy(c.counterparty, c.count),
			NettingEfficiency:   0,
			TemporalConsistency: temporalConsistency(c.daily),
		},
		RawDataHash: rawDataHash,
	}
}

// ComputeACR is a convenience one-shot wrapper over ACRComputer for a fixed
// MSR slice. settled reports, by index, whether each receipt has cleared.
func ComputeACR(agentID string, receipts []MSR, settled []bool, rawDataHash string) ACR {
	c := NewACRComputer(agentID)
	for i, r := range receipts {
		s := false
		if i < len(settled) {
			s = settled[i]
		}
		c.AddMSR(r, s)
	}
	return c.Compute(rawDataHash)
}

// MergeACR combines K partial ACRs for the same agent into one, weighting
// entropy and temporal consistency by msr_count. Volume and count are
// summed; velocity and settlement ratio are recomputed from the merged
// totals. Merged ACRs carry raw_data_hash="merged".
func MergeACR(acrs []ACR) (ACR, error) {
	if len(acrs) == 0 {
		return ACR{}, perrors.New(perrors.KindInput, "cannot merge an empty ACR list")
	}

	agentID := acrs[0].AgentID
	var totalVolume, totalCount int64
	var entropyWeighted, temporalWeighted, settlementWeighted float64
	minStart := acrs[0].WindowStartMs
	maxEnd := acrs[0].WindowEndMs

	for _, a := range acrs {
		totalVolume += a.Dimensions.Volume
		totalCount += a.MsrCount
		settlementWeighted += a.Dimensions.SettlementRatio * float64(a.MsrCount)
		entropyWeighted += a.Dimensions.CounterpartyEntropy * float64(a.MsrCount)
		temporalWeighted += a.Dimensions.TemporalConsistency * float64(a.MsrCount)
		if a.WindowStartMs < minStart {
			minStart = a.WindowStartMs
		}
		if a.WindowEndMs > maxEnd {
			maxEnd = a.WindowEndMs
		}
	}

	var entropy, temporal, velocity float64
	settlementRatio := 1.0
	if totalCount > 0 {
		entropy = entropyWeighted / float64(totalCount)
		temporal = temporalWeighted / float64(totalCount)
		settlementRatio = settlementWeighted / float64(totalCount)

		spanDays := float64(maxEnd-minStart) / float64(dayMs)
		if spanDays < 1 {
			spanDays = 1
		}
		velocity = float64(totalCount) / spanDays
	} else {
		temporal = 1.0
	}

	return ACR{
		AgentID:       agentID,
		AcrVersion:    SupportedVersion,
		ComputedAtMs:  time.Now().UnixMilli(),
		WindowStartMs: minStart,
		WindowEndMs:   maxEnd,
		MsrCount:      totalCount,
		Dimensions: ACRDimensions{
			Volume:              totalVolume,
			Velocity:            velocity,
			SettlementRatio:     settlementRatio,
			CounterpartyEntropy: entropy,
			NettingEfficiency:   0,
			TemporalConsistency: temporal,
		},
		RawDataHash: "merged",
	}, nil
}

// ACRPolicy lists optional per-dimension minima. A zero-value pointer means
// "no floor" for that dimension.
type ACRPolicy struct {
	MinVolume              *int64
	MinVelocity            *float64
	MinSettlementRatio     *float64
	MinCounterpartyEntropy *float64
	MinNettingEfficiency   *float64
	MinTemporalConsistency *float64
}

// EvaluateACR returns false on the first dimension that falls below its
// policy floor; true if every set floor is met.
func EvaluateACR(a ACR, p ACRPolicy) bool {
	d := a.Dimensions
	if p.MinVolume != nil && d.Volume < *p.MinVolume {
		return false
	}
	if p.MinVelocity != nil && d.Velocity < *p.MinVelocity {
		return false
	}
	if p.MinSettlementRatio != nil && d.SettlementRatio < *p.MinSettlementRatio {
		return false
	}
	if p.MinCounterpartyEntropy != nil && d.CounterpartyEntropy < *p.MinCounterpartyEntropy {
		return false
	}
	if p.MinNettingEfficiency != nil && d.NettingEfficiency < *p.MinNettingEfficiency {
		return false
	}
	if p.MinTemporalConsistency != nil && d.TemporalConsistency < *p.MinTemporalConsistency {
		return false
	}
	return true
}

// sortedCounterpartyKeys is a small helper retained for deterministic
// diagnostic output (e.g. logging top counterparties); not used in the
// hot aggregation path.
func sortedCounterpartyKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
