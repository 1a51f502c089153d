package matching

// SourceConfig parameterizes the engine for one data source. Keeping a
// single engine with per-source thresholds replaces the per-source matcher
// copies that used to drift apart.
type SourceConfig struct {
	// Source is the provenance label stored with accepted evidence.
	Source string
	// Threshold is the minimum fuzzy score a source must clear. Less
	// reliable sources get higher thresholds.
	Threshold float64
}

// Default per-source configurations. Thresholds were tuned against live
// data; override via MATCH_THRESHOLD_* env vars, not by editing these.
var (
	VancouverFoodiesConfig = SourceConfig{Source: "Vancouver Foodies", Threshold: 0.86}
	GoogleMapsListConfig   = SourceConfig{Source: "Google Maps List", Threshold: 0.88}
)

// Decide thresholds a resolver verdict with this source's threshold.
func (c SourceConfig) Decide(result MatchResult) Decision {
	return ApplyThreshold(result, c.Threshold)
}
