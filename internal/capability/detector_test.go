package capability

import (
	"testing"

	"github.com/mattergrade/mattergrade-core/internal/spec"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

func seedDetector() *Detector {
	registry := spec.NewRegistry(spec.SeedDeviceTypes(), spec.SeedClusters())
	return NewDetector(registry, nil)
}

func fm(v uint32) *uint32 { return &v }

func thermostatEndpoints(featureMap *uint32, withDetail bool) []telemetry.EndpointObservation {
	ep := telemetry.EndpointObservation{
		EndpointID:  1,
		DeviceTypes: telemetry.DeviceTypeList{0x0301},
	}
	if withDetail {
		ep.ServerClusterDetails = []telemetry.ClusterDetail{
			{ClusterID: 0x0201, FeatureMap: featureMap},
		}
	} else {
		ep.ServerClusters = []spec.ClusterID{0x0201}
	}
	return []telemetry.EndpointObservation{ep}
}

func TestDetect_SchedulingFeatureGate(t *testing.T) {
	d := seedDetector()

	tests := []struct {
		name      string
		endpoints []telemetry.EndpointObservation
		supported bool
	}{
		// Schedules need feature bit 3 in the thermostat cluster.
		{"feature bit clear", thermostatEndpoints(fm(1), true), false},
		{"feature bit set", thermostatEndpoints(fm(9), true), true},
		// No feature map means older telemetry: presence of the
		// cluster is all we can go on.
		{"feature map absent", thermostatEndpoints(nil, true), true},
		{"no detail at all", thermostatEndpoints(nil, false), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.Detect(tt.endpoints)

			if result.Category != "climate" {
				t.Errorf("Category = %q, want climate", result.Category)
			}
			_, supported := result.Supported["thermostat_scheduling"]
			if supported != tt.supported {
				t.Errorf("thermostat_scheduling supported = %v, want %v", supported, tt.supported)
			}
			// The ungated capability on the same cluster is unaffected.
			if _, ok := result.Supported["thermostat_control"]; !ok {
				t.Error("thermostat_control should be supported whenever the cluster is present")
			}
		})
	}
}

func TestDetect_TriggersCombineWithOR(t *testing.T) {
	d := seedDetector()
	// Only the second of remote_control's two trigger clusters is
	// present, and only as a client role.
	endpoints := []telemetry.EndpointObservation{{
		EndpointID:     1,
		DeviceTypes:    telemetry.DeviceTypeList{0xFFF0},
		ClientClusters: []spec.ClusterID{0x0008},
	}}

	result := d.Detect(endpoints)

	if result.Category != "" {
		t.Errorf("Category = %q, want none for an unknown device type", result.Category)
	}
	if _, ok := result.Supported["remote_control"]; !ok {
		t.Error("one present trigger cluster should be enough")
	}
	// Same cluster id as a server would mean dimming; the roles must
	// not bleed into each other.
	if _, ok := result.Supported["dimming"]; ok {
		t.Error("client-role cluster must not satisfy a server-role trigger")
	}
}

func TestDetect_CategoryNarrowsCatalog(t *testing.T) {
	d := seedDetector()
	endpoints := []telemetry.EndpointObservation{{
		EndpointID:     1,
		DeviceTypes:    telemetry.DeviceTypeList{0x0100},
		ServerClusters: []spec.ClusterID{0x0006, 0x0008},
	}}

	result := d.Detect(endpoints)

	if result.Category != "lighting" {
		t.Fatalf("Category = %q, want lighting", result.Category)
	}
	for cat := range result.ByCategory {
		if cat != "lighting" && cat != "general" {
			t.Errorf("ByCategory contains %q, want only lighting and general", cat)
		}
	}
	if _, ok := result.Supported["temperature_sensing"]; ok {
		t.Error("sensing capabilities are not relevant to a light")
	}
	if result.Summary.Total != 7 {
		t.Errorf("Summary.Total = %d, want 7", result.Summary.Total)
	}
	if result.Summary.Supported != 2 {
		t.Errorf("Summary.Supported = %d, want 2 (on/off and dimming)", result.Summary.Supported)
	}
	if result.Summary.Percentage != 28.6 {
		t.Errorf("Summary.Percentage = %v, want 28.6", result.Summary.Percentage)
	}
}

func TestDetect_EndpointZeroCountsForCapabilities(t *testing.T) {
	d := seedDetector()
	// Unlike scoring, capability detection unions every endpoint,
	// including the root.
	endpoints := []telemetry.EndpointObservation{
		{EndpointID: 0, ServerClusters: []spec.ClusterID{0x0006}},
		{EndpointID: 1, DeviceTypes: telemetry.DeviceTypeList{0x0100}, ServerClusters: []spec.ClusterID{0x0008}},
	}

	result := d.Detect(endpoints)

	if _, ok := result.Supported["on_off"]; !ok {
		t.Error("cluster on the root endpoint should still evidence the capability")
	}
}

func TestDetect_StandoutsAndMissing(t *testing.T) {
	d := seedDetector()

	t.Run("full featured light", func(t *testing.T) {
		endpoints := []telemetry.EndpointObservation{{
			EndpointID:     1,
			DeviceTypes:    telemetry.DeviceTypeList{0x010D},
			ServerClusters: []spec.ClusterID{0x0004, 0x0006, 0x0008, 0x0062},
			ServerClusterDetails: []telemetry.ClusterDetail{
				// Hue/saturation and color temperature bits both set.
				{ClusterID: 0x0300, FeatureMap: fm(1 | 16)},
			},
		}}

		result := d.Detect(endpoints)

		want := []string{"Full Color", "Tunable White", "Dimming"}
		if len(result.Standouts) != len(want) {
			t.Fatalf("Standouts = %v, want %v", result.Standouts, want)
		}
		for i, label := range want {
			if result.Standouts[i] != label {
				t.Errorf("Standouts[%d] = %q, want %q", i, result.Standouts[i], label)
			}
		}
		if len(result.Missing) != 0 {
			t.Errorf("Missing = %v, want empty for a fully featured light", result.Missing)
		}
	})

	t.Run("bare light", func(t *testing.T) {
		endpoints := []telemetry.EndpointObservation{{
			EndpointID:     1,
			DeviceTypes:    telemetry.DeviceTypeList{0x0100},
			ServerClusters: []spec.ClusterID{0x0006},
		}}

		result := d.Detect(endpoints)

		if len(result.Standouts) != 1 || result.Standouts[0] != "On/Off Control" {
			t.Errorf("Standouts = %v, want [On/Off Control]", result.Standouts)
		}
		// The priority list has more than three unsupported entries;
		// the list is capped.
		want := []string{"Full Color", "Tunable White", "Dimming"}
		if len(result.Missing) != len(want) {
			t.Fatalf("Missing = %v, want %v", result.Missing, want)
		}
		for i, label := range want {
			if result.Missing[i] != label {
				t.Errorf("Missing[%d] = %q, want %q", i, result.Missing[i], label)
			}
		}
	})
}

func TestDetect_DetailAgainstClusterCatalog(t *testing.T) {
	d := seedDetector()
	endpoints := []telemetry.EndpointObservation{{
		EndpointID:  1,
		DeviceTypes: telemetry.DeviceTypeList{0x0100},
		ServerClusterDetails: []telemetry.ClusterDetail{{
			ClusterID:        0x0006,
			AttributeList:    []uint32{0x0000},
			AcceptedCommands: []uint32{0x00, 0x01},
		}},
	}}

	result := d.Detect(endpoints)

	entry, ok := result.Supported["on_off"]
	if !ok {
		t.Fatal("on_off should be supported")
	}
	if entry.Detail == nil {
		t.Fatal("rich telemetry should produce a detail record")
	}
	if entry.Detail.Cluster != 0x0006 {
		t.Errorf("Detail.Cluster = %v, want 0x0006", entry.Detail.Cluster)
	}

	implemented := make(map[string]bool)
	for _, cmd := range entry.Detail.Commands {
		implemented[cmd.Name] = cmd.Implemented
	}
	if !implemented["Off"] || !implemented["On"] {
		t.Error("Off and On are in the accepted command list, want implemented")
	}
	if implemented["Toggle"] {
		t.Error("Toggle was not reported, want not implemented")
	}

	var onOffAttr *ElementStatus
	for i := range entry.Detail.Attributes {
		if entry.Detail.Attributes[i].Name == "OnOff" {
			onOffAttr = &entry.Detail.Attributes[i]
		}
	}
	if onOffAttr == nil || !onOffAttr.Implemented {
		t.Error("OnOff attribute reported in the attribute list, want implemented")
	}
}
