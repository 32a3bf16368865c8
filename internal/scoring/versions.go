package scoring

import (
	"github.com/mattergrade/mattergrade-core/internal/spec"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

// upgradeMargin is how many points a historical version must beat the
// latest one by before it is worth recommending. Small score deltas are
// usually collector noise, not a genuinely better firmware.
const upgradeMargin = 5.0

// VersionScore summarises one stored firmware/hardware snapshot.
type VersionScore struct {
	Version   string  `json:"version"`
	Score     float64 `json:"score"`
	Stars     int     `json:"stars"`
	Compliant bool    `json:"compliant"`
}

// VersionEvaluation compares a device's latest version against the best
// of its stored history.
type VersionEvaluation struct {
	Latest *VersionScore `json:"latest,omitempty"`
	Best   *VersionScore `json:"best,omitempty"`

	// Recommended is true when the best version outscores the latest
	// by more than the upgrade margin.
	Recommended bool `json:"recommended"`
}

// EvaluateVersions re-scores every stored version of a device and
// reports whether a past version clearly beat the current one. Versions
// must be ordered oldest first; the last entry is taken as latest. Ties
// on score resolve to the earliest version.
func EvaluateVersions(registry *spec.Registry, versions []telemetry.Version) VersionEvaluation {
	if len(versions) == 0 {
		return VersionEvaluation{}
	}

	var (
		latest  VersionScore
		best    VersionScore
		bestRaw float64
		haveAny bool
	)
	for i, v := range versions {
		agg := AggregateDevice(registry, v.DeviceID, v.Endpoints)
		vs := VersionScore{
			Version:   v.Label(),
			Score:     agg.Score,
			Stars:     agg.Stars,
			Compliant: agg.Compliant,
		}
		if i == len(versions)-1 {
			latest = vs
		}
		if !haveAny || agg.Score > bestRaw {
			best = vs
			bestRaw = agg.Score
			haveAny = true
		}
	}

	return VersionEvaluation{
		Latest:      &latest,
		Best:        &best,
		Recommended: best.Score > latest.Score+upgradeMargin,
	}
}
