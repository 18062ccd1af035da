package core

// Tariff is a named default rate for a resource subtype.
type Tariff struct {
	RateMicrosPerUnit int64
	Unit              string
}

// ResourcePricing holds common resource-subtype default rates. The meter
// helpers do not read it; they use the rate the caller passes in.
var ResourcePricing = map[string]Tariff{
	"gpt-4o":         {RateMicrosPerUnit: 5, Unit: "tokens_1k"},
	"gpt-4-turbo":    {RateMicrosPerUnit: 10, Unit: "tokens_1k"},
	"claude-opus":    {RateMicrosPerUnit: 15, Unit: "tokens_1k"},
	"claude-sonnet":  {RateMicrosPerUnit: 3, Unit: "tokens_1k"},
	"gpu_h100":       {RateMicrosPerUnit: 1000, Unit: "gpu_seconds"},
	"gpu_a100":       {RateMicrosPerUnit: 500, Unit: "gpu_seconds"},
	"s3_standard":    {RateMicrosPerUnit: 23000, Unit: "gb_month"},
	"egress":         {RateMicrosPerUnit: 90000, Unit: "gb"},
	"grid_power":     {RateMicrosPerUnit: 100000, Unit: "kwh"},
}

// LookupTariff returns the default tariff for subtype, if one is known.
func LookupTariff(subtype string) (Tariff, bool) {
	t, ok := ResourcePricing[subtype]
	return t, ok
}
