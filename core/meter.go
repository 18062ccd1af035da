package core

// MakeComputeMeterParams bundles the inputs for a COMPUTE AMR.
type MakeComputeMeterParams struct {
	ConsumerAgentID   string
	ProviderAgentID   string
	ResourceSubtype   string
	Quantity          int64
	Unit              string
	StartMs           int64
	EndMs             int64
	RateMicrosPerUnit int64
	RequestHash       string
	ResponseHash      string
	ProviderPrivKey   string
	AttestationMethod AttestationMethod // "" defaults to SIGNED_METER
	MeterID           string
	SessionID         string
	ParentAMRID       string
}

// MakeComputeMeter creates an AMR for CPU/GPU/vCPU-class compute consumption.
func MakeComputeMeter(p MakeComputeMeterParams) (AMR, error) {
	method := p.AttestationMethod
	if method == "" {
		method = AttestationSignedMeter
	}
	return MakeAMR(MakeAMRParams{
		ConsumerAgentID:   p.ConsumerAgentID,
		ProviderAgentID:   p.ProviderAgentID,
		ResourceClass:     ResourceCompute,
		ResourceSubtype:   p.ResourceSubtype,
		Quantity:          p.Quantity,
		Unit:              p.Unit,
		StartMs:           p.StartMs,
		EndMs:             p.EndMs,
		AttestationMethod: method,
		RateMicrosPerUnit: p.RateMicrosPerUnit,
		RequestHash:       p.RequestHash,
		ResponseHash:      p.ResponseHash,
		ProviderPrivKey:   p.ProviderPrivKey,
		MeterID:           p.MeterID,
		SessionID:         p.SessionID,
		ParentAMRID:       p.ParentAMRID,
	})
}

// MakeEnergyMeterParams bundles the inputs for an ENERGY AMR.
type MakeEnergyMeterParams struct {
	ConsumerAgentID   string
	ProviderAgentID   string
	ResourceSubtype   string
	Quantity          int64
	Unit              string
	StartMs           int64
	EndMs             int64
	RateMicrosPerUnit int64
	RequestHash       string
	ResponseHash      string
	ProviderPrivKey   string
	AttestationMethod AttestationMethod // "" defaults to ORACLE
	OracleID          string
	MeterID           string
	SessionID         string
}

// MakeEnergyMeter creates an AMR for grid-power and other energy
// consumption, defaulting to oracle attestation (utility metering).
func MakeEnergyMeter(p MakeEnergyMeterParams) (AMR, error) {
	method := p.AttestationMethod
	if method == "" {
		method = AttestationOracle
	}
	return MakeAMR(MakeAMRParams{
		ConsumerAgentID:   p.ConsumerAgentID,
		ProviderAgentID:   p.ProviderAgentID,
		ResourceClass:     ResourceEnergy,
		ResourceSubtype:   p.ResourceSubtype,
		Quantity:          p.Quantity,
		Unit:              p.Unit,
		StartMs:           p.StartMs,
		EndMs:             p.EndMs,
		AttestationMethod: method,
		RateMicrosPerUnit: p.RateMicrosPerUnit,
		RequestHash:       p.RequestHash,
		ResponseHash:      p.ResponseHash,
		ProviderPrivKey:   p.ProviderPrivKey,
		OracleID:          p.OracleID,
		MeterID:           p.MeterID,
		SessionID:         p.SessionID,
	})
}

// MakeStorageMeterParams bundles the inputs for a STORAGE AMR.
type MakeStorageMeterParams struct {
	ConsumerAgentID   string
	ProviderAgentID   string
	ResourceSubtype   string
	Quantity          int64
	Unit              string
	StartMs           int64
	EndMs             int64
	RateMicrosPerUnit int64
	RequestHash       string
	ResponseHash      string
	ProviderPrivKey   string
	AttestationMethod AttestationMethod // "" defaults to SIGNED_METER
	MeterID           string
	SessionID         string
}

// MakeStorageMeter creates an AMR for storage consumption (object storage,
// databases, filesystems).
func MakeStorageMeter(p MakeStorageMeterParams) (AMR, error) {
	method := p.AttestationMethod
	if method == "" {
		method = AttestationSignedMeter
	}
	return MakeAMR(MakeAMRParams{
		ConsumerAgentID:   p.ConsumerAgentID,
		ProviderAgentID:   p.ProviderAgentID,
		ResourceClass:     ResourceStorage,
		ResourceSubtype:   p.ResourceSubtype,
		Quantity:          p.Quantity,
		Unit:              p.Unit,
		StartMs:           p.StartMs,
		EndMs:             p.EndMs,
		AttestationMethod: method,
		RateMicrosPerUnit: p.RateMicrosPerUnit,
		RequestHash:       p.RequestHash,
		ResponseHash:      p.ResponseHash,
		ProviderPrivKey:   p.ProviderPrivKey,
		MeterID:           p.MeterID,
		SessionID:         p.SessionID,
	})
}

// MakeBandwidthMeterParams bundles the inputs for a BANDWIDTH AMR.
type MakeBandwidthMeterParams struct {
	ConsumerAgentID   string
	ProviderAgentID   string
	ResourceSubtype   string
	Quantity          int64
	Unit              string
	StartMs           int64
	EndMs             int64
	RateMicrosPerUnit int64
	RequestHash       string
	ResponseHash      string
	ProviderPrivKey   string
	AttestationMethod AttestationMethod // "" defaults to SIGNED_METER
	MeterID           string
	SessionID         string
}

// MakeBandwidthMeter creates an AMR for network/egress consumption.
func MakeBandwidthMeter(p MakeBandwidthMeterParams) (AMR, error) {
	method := p.AttestationMethod
	if method == "" {
		method = AttestationSignedMeter
	}
	return MakeAMR(MakeAMRParams{
		ConsumerAgentID:   p.ConsumerAgentID,
		ProviderAgentID:   p.ProviderAgentID,
		ResourceClass:     ResourceBandwidth,
		ResourceSubtype:   p.ResourceSubtype,
		Quantity:          p.Quantity,
		Unit:              p.Unit,
		StartMs:           p.StartMs,
		EndMs:             p.EndMs,
		AttestationMethod: method,
		RateMicrosPerUnit: p.RateMicrosPerUnit,
		RequestHash:       p.RequestHash,
		ResponseHash:      p.ResponseHash,
		ProviderPrivKey:   p.ProviderPrivKey,
		MeterID:           p.MeterID,
		SessionID:         p.SessionID,
	})
}

// MakeInferenceMeterParams bundles the inputs for an INFERENCE AMR. Tokens
// are converted to thousands for standard tokens_1k pricing; any quantity
// under 1000 tokens is billed as a minimum 1 unit.
type MakeInferenceMeterParams struct {
	ConsumerAgentID        string
	ProviderAgentID        string
	ModelName              string
	Tokens                 int64
	StartMs                int64
	EndMs                  int64
	RateMicrosPer1kTokens  int64
	RequestHash            string
	ResponseHash           string
	ProviderPrivKey        string
	AttestationMethod      AttestationMethod // "" defaults to SIGNED_METER
	SessionID              string
}

// MakeInferenceMeter creates an AMR for LLM inference token consumption.
func MakeInferenceMeter(p MakeInferenceMeterParams) (AMR, error) {
	method := p.AttestationMethod
	if method == "" {
		method = AttestationSignedMeter
	}
	quantity := p.Tokens / 1000
	if p.Tokens < 1000 {
		quantity = 1
	}
	return MakeAMR(MakeAMRParams{
		ConsumerAgentID:   p.ConsumerAgentID,
		ProviderAgentID:   p.ProviderAgentID,
		ResourceClass:     ResourceInference,
		ResourceSubtype:   p.ModelName,
		Quantity:          quantity,
		Unit:              "tokens_1k",
		StartMs:           p.StartMs,
		EndMs:             p.EndMs,
		AttestationMethod: method,
		RateMicrosPerUnit: p.RateMicrosPer1kTokens,
		RequestHash:       p.RequestHash,
		ResponseHash:      p.ResponseHash,
		ProviderPrivKey:   p.ProviderPrivKey,
		SessionID:         p.SessionID,
	})
}
