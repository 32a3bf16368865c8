package scoring

import (
	"testing"

	"github.com/mattergrade/mattergrade-core/internal/spec"
)

// ─── Fixtures ───────────────────────────────────────────────────────────────

const (
	typeBasicLight spec.DeviceTypeID = 0xE001
	typeThermo     spec.DeviceTypeID = 0xE002
	typeRichLight  spec.DeviceTypeID = 0xE003
	typeUnknown    spec.DeviceTypeID = 0xEFFF
)

func fraction(v float64) *float64 { return &v }

// testRegistry returns a registry with a handful of synthetic device
// types exercising each weight shape: mandatory-only, key-client bonus,
// and mixed mandatory/optional.
func testRegistry() *spec.Registry {
	return spec.NewRegistry([]spec.DeviceTypeSpec{
		{
			ID:              typeBasicLight,
			Name:            "Basic Light",
			Category:        "lighting",
			MandatoryServer: []spec.ClusterID{3, 4, 6, 98},
		},
		{
			ID:              typeThermo,
			Name:            "Thermo",
			Category:        "climate",
			MandatoryServer: []spec.ClusterID{3, 513},
			OptionalClient:  []spec.ClusterID{514, 1026, 1029},
			Weights: &spec.WeightOverride{
				KeyClientClusters: []spec.ClusterID{514, 1026},
				KeyClientBonus:    fraction(0.1),
			},
		},
		{
			ID:              typeRichLight,
			Name:            "Rich Light",
			Category:        "lighting",
			MandatoryServer: []spec.ClusterID{3},
			OptionalServer:  []spec.ClusterID{10, 11, 12, 13, 14, 15, 16, 17, 18, 19},
		},
	}, nil)
}

func serverSets(ids ...spec.ClusterID) ClusterSets {
	sets := NewClusterSets()
	for _, id := range ids {
		sets.Server[id] = true
	}
	return sets
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestAnalyzeGap_AllMandatoryPresent(t *testing.T) {
	registry := testRegistry()

	gap := AnalyzeGap(registry, typeBasicLight, serverSets(3, 4, 6, 98))

	if !gap.Known {
		t.Fatal("device type should be known")
	}
	if !gap.Compliant() {
		t.Error("device with every mandatory cluster should be compliant")
	}
	if len(gap.MissingMandatoryServer) != 0 {
		t.Errorf("MissingMandatoryServer = %v, want empty", gap.MissingMandatoryServer)
	}
	if gap.RequiredMandatoryServer != 4 {
		t.Errorf("RequiredMandatoryServer = %d, want 4", gap.RequiredMandatoryServer)
	}
}

func TestAnalyzeGap_MissingPreservesDeclarationOrder(t *testing.T) {
	registry := testRegistry()

	// Only cluster 6 present: 3, 4, 98 missing, in spec order.
	gap := AnalyzeGap(registry, typeBasicLight, serverSets(6))

	want := []spec.ClusterID{3, 4, 98}
	if len(gap.MissingMandatoryServer) != len(want) {
		t.Fatalf("MissingMandatoryServer = %v, want %v", gap.MissingMandatoryServer, want)
	}
	for i, id := range want {
		if gap.MissingMandatoryServer[i] != id {
			t.Errorf("MissingMandatoryServer[%d] = %v, want %v", i, gap.MissingMandatoryServer[i], id)
		}
	}
	if gap.Compliant() {
		t.Error("device missing mandatory clusters must not be compliant")
	}
}

func TestAnalyzeGap_ImplementedOptional(t *testing.T) {
	registry := testRegistry()

	sets := NewClusterSets()
	sets.Server[3] = true
	sets.Server[513] = true
	sets.Client[1026] = true

	gap := AnalyzeGap(registry, typeThermo, sets)

	if !gap.Compliant() {
		t.Fatal("all mandatory clusters present, want compliant")
	}
	if len(gap.ImplementedOptionalClient) != 1 || gap.ImplementedOptionalClient[0] != 1026 {
		t.Errorf("ImplementedOptionalClient = %v, want [1026]", gap.ImplementedOptionalClient)
	}
	if gap.RequiredOptionalClient != 3 {
		t.Errorf("RequiredOptionalClient = %d, want 3", gap.RequiredOptionalClient)
	}
}

func TestAnalyzeGap_UnknownDeviceType(t *testing.T) {
	registry := testRegistry()

	gap := AnalyzeGap(registry, typeUnknown, serverSets(3, 4))

	if gap.Known {
		t.Error("Known = true for a type the registry has never seen")
	}
	if !gap.Compliant() {
		t.Error("an unknown type has no requirements, so it is compliant")
	}
	if gap.MissingMandatoryServer == nil || gap.ImplementedOptionalServer == nil {
		t.Error("result lists should be empty, not nil")
	}
	if gap.RequiredMandatoryServer != 0 || gap.RequiredOptionalClient != 0 {
		t.Error("unknown type must report zero requirements")
	}
}
