package spec

import (
	"context"
	"errors"
	"testing"
)

// ─── Mock Store ─────────────────────────────────────────────────────────────

type mockStore struct {
	deviceTypes []DeviceTypeSpec
	clusters    []ClusterSpec
	err         error
}

func (m *mockStore) ListDeviceTypes(context.Context) ([]DeviceTypeSpec, error) {
	return m.deviceTypes, m.err
}

func (m *mockStore) ListClusters(context.Context) ([]ClusterSpec, error) {
	return m.clusters, m.err
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestNewRegistry_LookupAndOrder(t *testing.T) {
	r := NewRegistry(
		[]DeviceTypeSpec{
			{ID: 0x0301, Name: "Thermostat"},
			{ID: 0x0100, Name: "On/Off Light"},
		},
		[]ClusterSpec{{ID: 6, Name: "On/Off"}},
	)

	dt, ok := r.DeviceType(0x0100)
	if !ok || dt.Name != "On/Off Light" {
		t.Errorf("DeviceType(0x0100) = %+v, %v", dt, ok)
	}
	if _, ok := r.DeviceType(0xFFFF); ok {
		t.Error("unknown id should not resolve")
	}

	// Iteration keeps insertion order, not id order.
	types := r.DeviceTypes()
	if len(types) != 2 || types[0].ID != 0x0301 || types[1].ID != 0x0100 {
		t.Errorf("DeviceTypes order = %v, want [0x0301 0x0100]", []DeviceTypeID{types[0].ID, types[1].ID})
	}
}

func TestNewRegistry_DuplicateReplacesInPlace(t *testing.T) {
	r := NewRegistry(
		[]DeviceTypeSpec{
			{ID: 0x0100, Name: "On/Off Light"},
			{ID: 0x0301, Name: "Thermostat"},
			{ID: 0x0100, Name: "On/Off Light (revised)"},
		},
		nil,
	)

	if r.DeviceTypeCount() != 2 {
		t.Errorf("DeviceTypeCount = %d, want 2", r.DeviceTypeCount())
	}
	dt, _ := r.DeviceType(0x0100)
	if dt.Name != "On/Off Light (revised)" {
		t.Errorf("Name = %q, want the later entry to win", dt.Name)
	}
	types := r.DeviceTypes()
	if types[0].ID != 0x0100 {
		t.Errorf("first entry = %v, want the original position kept", types[0].ID)
	}
}

func TestLoad_SyncedRowsOverrideSeed(t *testing.T) {
	store := &mockStore{
		deviceTypes: []DeviceTypeSpec{
			{ID: 0x0100, Name: "On/Off Light (synced)"},
			{ID: 0xF002, Name: "New Type B"},
			{ID: 0xF001, Name: "New Type A"},
		},
	}

	r, err := Load(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	dt, ok := r.DeviceType(0x0100)
	if !ok || dt.Name != "On/Off Light (synced)" {
		t.Errorf("synced row should override the seed entry, got %+v", dt)
	}

	// Synced additions land after the seed, in ascending id order.
	types := r.DeviceTypes()
	last, secondLast := types[len(types)-1], types[len(types)-2]
	if secondLast.ID != 0xF001 || last.ID != 0xF002 {
		t.Errorf("tail = [%v %v], want [0xF001 0xF002]", secondLast.ID, last.ID)
	}
}

func TestLoad_NilStoreUsesSeedOnly(t *testing.T) {
	r, err := Load(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.DeviceTypeCount() != len(SeedDeviceTypes()) {
		t.Errorf("DeviceTypeCount = %d, want %d", r.DeviceTypeCount(), len(SeedDeviceTypes()))
	}
	if r.ClusterCount() != len(SeedClusters()) {
		t.Errorf("ClusterCount = %d, want %d", r.ClusterCount(), len(SeedClusters()))
	}
}

func TestLoad_StoreFailure(t *testing.T) {
	store := &mockStore{err: errors.New("database locked")}

	if _, err := Load(context.Background(), store, nil); err == nil {
		t.Fatal("a failing store should fail the load")
	}
}

// Every mandatory cluster a seed device type references must itself be
// in the seed cluster catalogue, or gap analysis works from ids the
// capability detector cannot explain.
func TestSeed_MandatoryClustersResolve(t *testing.T) {
	r := NewRegistry(SeedDeviceTypes(), SeedClusters())

	for _, dt := range r.DeviceTypes() {
		for _, id := range dt.MandatoryServer {
			if _, ok := r.Cluster(id); !ok {
				t.Errorf("%s: mandatory server cluster %s not in seed catalogue", dt.Name, id.Hex())
			}
		}
		for _, id := range dt.MandatoryClient {
			if _, ok := r.Cluster(id); !ok {
				t.Errorf("%s: mandatory client cluster %s not in seed catalogue", dt.Name, id.Hex())
			}
		}
	}
}
