package telemetry

import (
	"encoding/json"
	"testing"

	"github.com/mattergrade/mattergrade-core/internal/spec"
)

func TestDeviceTypeList_UnmarshalBareNumbers(t *testing.T) {
	var list DeviceTypeList
	if err := json.Unmarshal([]byte(`[256, 257]`), &list); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(list) != 2 || list[0] != 0x0100 || list[1] != 0x0101 {
		t.Errorf("list = %v, want [0x0100 0x0101]", list)
	}
}

func TestDeviceTypeList_UnmarshalObjectEntries(t *testing.T) {
	var list DeviceTypeList
	data := `[{"deviceType": 256, "revision": 3}, {"deviceType": 769}]`
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(list) != 2 || list[0] != 0x0100 || list[1] != 0x0301 {
		t.Errorf("list = %v, want [0x0100 0x0301]", list)
	}
}

func TestDeviceTypeList_SkipsMalformedEntries(t *testing.T) {
	var list DeviceTypeList
	// One good bare id, one object without the id field, one string,
	// one good object. Bad entries drop out individually.
	data := `[256, {"revision": 2}, "nonsense", {"deviceType": 514}]`
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(list) != 2 || list[0] != 0x0100 || list[1] != 0x0202 {
		t.Errorf("list = %v, want the two well-formed entries", list)
	}
}

func TestDeviceTypeList_RejectsNonArray(t *testing.T) {
	var list DeviceTypeList
	if err := json.Unmarshal([]byte(`{"deviceType": 256}`), &list); err == nil {
		t.Error("a non-array payload should fail to decode")
	}
}

func TestClusterDetail_HasFeature(t *testing.T) {
	v := uint32(9) // bits 0 and 3
	detail := ClusterDetail{ClusterID: 0x0201, FeatureMap: &v}

	if !detail.HasFeature(0) || !detail.HasFeature(3) {
		t.Error("bits 0 and 3 are set, want HasFeature true")
	}
	if detail.HasFeature(1) {
		t.Error("bit 1 is clear, want HasFeature false")
	}

	unknown := ClusterDetail{ClusterID: 0x0201}
	if unknown.HasFeature(0) {
		t.Error("no feature map reported, want HasFeature false for any bit")
	}
}

func TestVersion_Label(t *testing.T) {
	v := Version{HardwareVersion: "2", SoftwareVersion: "1.4.1"}
	if v.Label() != "2/1.4.1" {
		t.Errorf("Label = %q, want 2/1.4.1", v.Label())
	}
}

func TestSubmission_DecodeWireShape(t *testing.T) {
	data := `{
		"deviceId": "dev-1",
		"hardwareVersion": "1.0",
		"softwareVersion": "2.3",
		"endpoints": [{
			"endpointId": 1,
			"deviceTypes": [256],
			"serverClusters": [3, 4, 6],
			"serverClusterDetails": [{
				"clusterId": 6,
				"featureMap": 1,
				"acceptedCommands": [0, 1, 2]
			}]
		}]
	}`

	var sub Submission
	if err := json.Unmarshal([]byte(data), &sub); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(sub.Endpoints) != 1 {
		t.Fatalf("endpoints = %d, want 1", len(sub.Endpoints))
	}
	ep := sub.Endpoints[0]
	if !ep.HasServerCluster(spec.ClusterID(6)) {
		t.Error("server cluster 6 missing after decode")
	}
	if len(ep.ServerClusterDetails) != 1 {
		t.Fatalf("details = %d, want 1", len(ep.ServerClusterDetails))
	}
	detail := ep.ServerClusterDetails[0]
	if detail.FeatureMap == nil || *detail.FeatureMap != 1 {
		t.Error("featureMap did not decode")
	}
}
