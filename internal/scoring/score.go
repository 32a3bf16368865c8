package scoring

import (
	"math"

	"github.com/mattergrade/mattergrade-core/internal/spec"
)

// ScoreBreakdown holds the per-axis sub-scores, each on a 0 to 100
// scale before weighting.
type ScoreBreakdown struct {
	MandatoryServer float64 `json:"mandatoryServer"`
	MandatoryClient float64 `json:"mandatoryClient"`
	OptionalServer  float64 `json:"optionalServer"`
	OptionalClient  float64 `json:"optionalClient"`
	KeyClientBonus  float64 `json:"keyClientBonus"`
}

// DeviceTypeScore is the scored result for one device type on a device.
type DeviceTypeScore struct {
	DeviceType spec.DeviceTypeID `json:"deviceType"`
	Name       string            `json:"name,omitempty"`
	Score      float64           `json:"score"`
	Stars      int               `json:"stars"`
	Compliant  bool              `json:"compliant"`
	Breakdown  ScoreBreakdown    `json:"breakdown"`
	Gap        GapResult         `json:"gap"`

	// raw is the score before rounding; star thresholds and tie
	// breaking use it so that 89.96 does not round its way into five
	// stars.
	raw float64
}

// round1 rounds to one decimal place for storage and display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// mandatoryAxis returns the percentage of mandatory clusters present.
// An axis with nothing required scores 100: there was nothing to violate.
func mandatoryAxis(required, missing int) float64 {
	if required == 0 {
		return 100
	}
	return float64(required-missing) / float64(required) * 100
}

// optionalAxis returns the percentage of optional clusters implemented.
// An axis with nothing defined scores 0: optional completeness is
// earned, never assumed.
func optionalAxis(defined, implemented int) float64 {
	if defined == 0 {
		return 0
	}
	return float64(implemented) / float64(defined) * 100
}

// ScoreToStars maps a 0 to 100 score to a 1 to 5 star rating.
// Non-compliant devices are capped at two stars regardless of score.
func ScoreToStars(score float64, compliant bool) int {
	var stars int
	switch {
	case score >= 90:
		stars = 5
	case score >= 75:
		stars = 4
	case score >= 60:
		stars = 3
	case score >= 40:
		stars = 2
	default:
		stars = 1
	}
	if !compliant && stars > 2 {
		stars = 2
	}
	return stars
}

// ScoreDeviceType scores one device type from its gap analysis and the
// observed cluster sets. Weights come from the type's specification,
// merged over the defaults.
func ScoreDeviceType(registry *spec.Registry, gap GapResult, sets ClusterSets) DeviceTypeScore {
	weights := spec.DefaultWeights()
	var keyClusters []spec.ClusterID
	if dt, ok := registry.DeviceType(gap.DeviceType); ok {
		weights = dt.ScoringWeights()
		if dt.Weights != nil {
			keyClusters = dt.Weights.KeyClientClusters
		}
	}

	breakdown := ScoreBreakdown{
		MandatoryServer: mandatoryAxis(gap.RequiredMandatoryServer, len(gap.MissingMandatoryServer)),
		MandatoryClient: mandatoryAxis(gap.RequiredMandatoryClient, len(gap.MissingMandatoryClient)),
		OptionalServer:  optionalAxis(gap.RequiredOptionalServer, len(gap.ImplementedOptionalServer)),
		OptionalClient:  optionalAxis(gap.RequiredOptionalClient, len(gap.ImplementedOptionalClient)),
	}

	// Only axes with clusters actually defined enter the composite.
	// The vacuous sub-scores above are reported for display, but a
	// device type with no client requirements is not dragged down (or
	// propped up) by axes that cannot apply to it.
	weightSum := 0.0
	composite := 0.0
	if gap.RequiredMandatoryServer > 0 {
		composite += breakdown.MandatoryServer * weights.MandatoryServer
		weightSum += weights.MandatoryServer
	}
	if gap.RequiredMandatoryClient > 0 {
		composite += breakdown.MandatoryClient * weights.MandatoryClient
		weightSum += weights.MandatoryClient
	}
	if gap.RequiredOptionalServer > 0 {
		composite += breakdown.OptionalServer * weights.OptionalServer
		weightSum += weights.OptionalServer
	}
	if gap.RequiredOptionalClient > 0 {
		composite += breakdown.OptionalClient * weights.OptionalClient
		weightSum += weights.OptionalClient
	}
	if weightSum > 0 {
		composite /= weightSum
	}

	if len(keyClusters) > 0 && weights.KeyClientBonus > 0 {
		observed := 0
		for _, id := range keyClusters {
			if sets.Client[id] {
				observed++
			}
		}
		breakdown.KeyClientBonus = float64(observed) / float64(len(keyClusters)) * weights.KeyClientBonus * 100
		composite += breakdown.KeyClientBonus
	}
	if composite > 100 {
		composite = 100
	}

	compliant := gap.Compliant()

	// Stored values are rounded for display; the star thresholds above
	// already used the unrounded composite.
	breakdown.MandatoryServer = round1(breakdown.MandatoryServer)
	breakdown.MandatoryClient = round1(breakdown.MandatoryClient)
	breakdown.OptionalServer = round1(breakdown.OptionalServer)
	breakdown.OptionalClient = round1(breakdown.OptionalClient)
	breakdown.KeyClientBonus = round1(breakdown.KeyClientBonus)

	return DeviceTypeScore{
		DeviceType: gap.DeviceType,
		Name:       gap.Name,
		Score:      round1(composite),
		Stars:      ScoreToStars(composite, compliant),
		Compliant:  compliant,
		Breakdown:  breakdown,
		Gap:        gap,
		raw:        composite,
	}
}
