package scoring

import (
	"testing"

	"github.com/mattergrade/mattergrade-core/internal/spec"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

func version(hw, sw string, servers []spec.ClusterID) telemetry.Version {
	return telemetry.Version{
		DeviceID:        "dev-1",
		HardwareVersion: hw,
		SoftwareVersion: sw,
		Endpoints: []telemetry.EndpointObservation{
			endpoint(1, []spec.DeviceTypeID{typeRichLight}, servers, nil),
		},
	}
}

// richServers returns cluster 3 plus the first n of the rich light's
// ten optional clusters (ids 10 through 19).
func richServers(n int) []spec.ClusterID {
	servers := []spec.ClusterID{3}
	for i := 0; i < n; i++ {
		servers = append(servers, spec.ClusterID(10+i))
	}
	return servers
}

func TestEvaluateVersions_Empty(t *testing.T) {
	registry := testRegistry()

	eval := EvaluateVersions(registry, nil)

	if eval.Latest != nil || eval.Best != nil || eval.Recommended {
		t.Errorf("got %+v, want the zero evaluation", eval)
	}
}

func TestEvaluateVersions_SingleVersion(t *testing.T) {
	registry := testRegistry()

	eval := EvaluateVersions(registry, []telemetry.Version{version("1.0", "1.0", richServers(10))})

	if eval.Latest == nil || eval.Best == nil {
		t.Fatal("latest and best must both be set")
	}
	if eval.Latest.Version != "1.0/1.0" || eval.Best.Version != "1.0/1.0" {
		t.Errorf("versions = %q/%q, want 1.0/1.0 for both", eval.Latest.Version, eval.Best.Version)
	}
	if eval.Recommended {
		t.Error("a single version cannot beat itself")
	}
}

func TestEvaluateVersions_RecommendsClearlyBetterPast(t *testing.T) {
	registry := testRegistry()
	versions := []telemetry.Version{
		version("1.0", "1.0", richServers(10)), // scores 100
		version("1.0", "2.0", richServers(5)),  // regression, scores ~81
	}

	eval := EvaluateVersions(registry, versions)

	if eval.Latest.Version != "1.0/2.0" {
		t.Errorf("Latest.Version = %q, want 1.0/2.0", eval.Latest.Version)
	}
	if eval.Best.Version != "1.0/1.0" {
		t.Errorf("Best.Version = %q, want 1.0/1.0", eval.Best.Version)
	}
	if !eval.Recommended {
		t.Error("a clearly better past version should be recommended")
	}
}

func TestEvaluateVersions_MarginSuppressesNoise(t *testing.T) {
	registry := testRegistry()
	// 100 vs ~96.2: inside the five point margin, so no recommendation.
	versions := []telemetry.Version{
		version("1.0", "1.0", richServers(10)),
		version("1.0", "2.0", richServers(9)),
	}

	eval := EvaluateVersions(registry, versions)

	if eval.Best.Version != "1.0/1.0" {
		t.Errorf("Best.Version = %q, want 1.0/1.0", eval.Best.Version)
	}
	if eval.Recommended {
		t.Error("marginal differences must not trigger a recommendation")
	}
}

func TestEvaluateVersions_TieResolvesToEarliest(t *testing.T) {
	registry := testRegistry()
	versions := []telemetry.Version{
		version("1.0", "1.0", richServers(10)),
		version("1.0", "2.0", richServers(10)),
	}

	eval := EvaluateVersions(registry, versions)

	if eval.Best.Version != "1.0/1.0" {
		t.Errorf("Best.Version = %q, want the earliest of the tied versions", eval.Best.Version)
	}
	if eval.Latest.Version != "1.0/2.0" {
		t.Errorf("Latest.Version = %q, want 1.0/2.0", eval.Latest.Version)
	}
	if eval.Recommended {
		t.Error("equal scores must not recommend anything")
	}
}
