package scoring

import (
	"github.com/mattergrade/mattergrade-core/internal/spec"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

// DeviceScore is the headline result for one device across all of its
// scoreable device types.
type DeviceScore struct {
	DeviceID  string `json:"deviceId"`
	Score     float64 `json:"score"`
	Stars     int     `json:"stars"`
	Compliant bool    `json:"compliant"`

	// ScoresByType is keyed by the device type id in hex form.
	ScoresByType map[string]DeviceTypeScore `json:"scoresByType"`

	// BestVersion names the stored firmware version that scored best,
	// when a better one than the latest exists.
	BestVersion *string `json:"bestVersion,omitempty"`
}

// AggregateDevice scores every application device type a device exposes
// and folds them into one device-level result.
//
// Endpoint 0 and system device types describe node plumbing rather than
// application function, so they are excluded from scoring. Each device
// type is scored once even when several endpoints declare it; its
// observed clusters are pooled across every non-zero endpoint declaring
// it. The headline score is the best per-type score, ties resolved in
// favour of the type declared first, and the device is compliant only
// when every scored type is.
func AggregateDevice(registry *spec.Registry, deviceID string, endpoints []telemetry.EndpointObservation) DeviceScore {
	// Ordered, de-duplicated list of scoreable device types.
	var order []spec.DeviceTypeID
	seen := make(map[spec.DeviceTypeID]bool)
	for _, ep := range endpoints {
		if ep.EndpointID == 0 {
			continue
		}
		for _, dt := range ep.DeviceTypes {
			if spec.IsSystemDeviceType(dt) || seen[dt] {
				continue
			}
			seen[dt] = true
			order = append(order, dt)
		}
	}

	if len(order) == 0 {
		// Nothing scoreable. No requirements were violated, so the
		// device is vacuously compliant, but it has earned nothing.
		return DeviceScore{
			DeviceID:     deviceID,
			Score:        0,
			Stars:        0,
			Compliant:    true,
			ScoresByType: map[string]DeviceTypeScore{},
		}
	}

	// Pool observed clusters per device type across declaring endpoints.
	pools := make(map[spec.DeviceTypeID]ClusterSets, len(order))
	for _, dt := range order {
		pools[dt] = NewClusterSets()
	}
	for _, ep := range endpoints {
		if ep.EndpointID == 0 {
			continue
		}
		for _, dt := range ep.DeviceTypes {
			sets, ok := pools[dt]
			if !ok {
				continue
			}
			for _, c := range ep.ServerClusters {
				sets.Server[c] = true
			}
			for _, c := range ep.ClientClusters {
				sets.Client[c] = true
			}
		}
	}

	result := DeviceScore{
		DeviceID:     deviceID,
		Compliant:    true,
		ScoresByType: make(map[string]DeviceTypeScore, len(order)),
	}
	var (
		best    DeviceTypeScore
		haveAny bool
	)
	for _, dt := range order {
		ts := ScoreDeviceType(registry, AnalyzeGap(registry, dt, pools[dt]), pools[dt])
		result.ScoresByType[dt.Hex()] = ts
		result.Compliant = result.Compliant && ts.Compliant
		if !haveAny || ts.raw > best.raw {
			best = ts
			haveAny = true
		}
	}

	result.Score = best.Score
	result.Stars = ScoreToStars(best.raw, result.Compliant)
	return result
}
