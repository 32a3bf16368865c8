package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/mattergrade/mattergrade-core/internal/scoring"
	"github.com/mattergrade/mattergrade-core/internal/spec"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

// ─── Mock Dependencies ──────────────────────────────────────────────────────

type mockStore struct {
	devices     map[string]telemetry.Device
	versions    []telemetry.Version
	saveVersErr error
}

func newMockStore() *mockStore {
	return &mockStore{devices: make(map[string]telemetry.Device)}
}

func (m *mockStore) UpsertDevice(_ context.Context, dev telemetry.Device) error {
	m.devices[dev.ID] = dev
	return nil
}

func (m *mockStore) SaveVersion(_ context.Context, v telemetry.Version) error {
	if m.saveVersErr != nil {
		return m.saveVersErr
	}
	m.versions = append(m.versions, v)
	return nil
}

type mockScorer struct {
	calls []string
	err   error
}

func (m *mockScorer) UpdateDeviceScore(_ context.Context, deviceID string) (*scoring.DeviceScore, error) {
	m.calls = append(m.calls, deviceID)
	if m.err != nil {
		return nil, m.err
	}
	return &scoring.DeviceScore{DeviceID: deviceID, Score: 80, Stars: 4, Compliant: true}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func testSubmission(deviceID string) telemetry.Submission {
	return telemetry.Submission{
		DeviceID:        deviceID,
		Name:            "Hallway Light",
		Vendor:          "Acme",
		HardwareVersion: "1.0",
		SoftwareVersion: "2.1",
		Endpoints: []telemetry.EndpointObservation{{
			EndpointID:     1,
			DeviceTypes:    telemetry.DeviceTypeList{0x0100},
			ServerClusters: []spec.ClusterID{3, 4, 6},
		}},
	}
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestHandleSubmission_PersistsAndScores(t *testing.T) {
	store := newMockStore()
	scorer := &mockScorer{}
	svc := NewService(store, scorer, noopLogger{})

	deviceID, err := svc.HandleSubmission(context.Background(), testSubmission("dev-1"))
	if err != nil {
		t.Fatalf("HandleSubmission: %v", err)
	}
	if deviceID != "dev-1" {
		t.Errorf("deviceID = %q, want dev-1", deviceID)
	}
	if _, ok := store.devices["dev-1"]; !ok {
		t.Error("device row not written")
	}
	if len(store.versions) != 1 {
		t.Fatalf("versions stored = %d, want 1", len(store.versions))
	}
	if store.versions[0].ReportedAt.IsZero() {
		t.Error("ReportedAt should default to now when the submission omits it")
	}
	if len(scorer.calls) != 1 || scorer.calls[0] != "dev-1" {
		t.Errorf("scorer calls = %v, want [dev-1]", scorer.calls)
	}
}

func TestHandleSubmission_AssignsDeviceID(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, &mockScorer{}, noopLogger{})

	deviceID, err := svc.HandleSubmission(context.Background(), testSubmission(""))
	if err != nil {
		t.Fatalf("HandleSubmission: %v", err)
	}
	if deviceID == "" {
		t.Fatal("an id should be minted for an anonymous submission")
	}
	if _, ok := store.devices[deviceID]; !ok {
		t.Errorf("device row not written under the minted id %q", deviceID)
	}
}

func TestHandleSubmission_RejectsEmptyEndpoints(t *testing.T) {
	svc := NewService(newMockStore(), &mockScorer{}, noopLogger{})

	sub := testSubmission("dev-1")
	sub.Endpoints = nil

	_, err := svc.HandleSubmission(context.Background(), sub)
	if !errors.Is(err, telemetry.ErrNoEndpoints) {
		t.Errorf("err = %v, want ErrNoEndpoints", err)
	}
}

func TestHandleSubmission_ScoringFailureIsNotFatal(t *testing.T) {
	store := newMockStore()
	scorer := &mockScorer{err: errors.New("cache offline")}
	svc := NewService(store, scorer, noopLogger{})

	deviceID, err := svc.HandleSubmission(context.Background(), testSubmission("dev-1"))
	if err != nil {
		t.Fatalf("HandleSubmission: %v", err)
	}
	if deviceID != "dev-1" {
		t.Errorf("deviceID = %q, want dev-1", deviceID)
	}
	if len(store.versions) != 1 {
		t.Error("observation should be persisted even when scoring fails")
	}
}

func TestHandleSubmission_StoreFailurePropagates(t *testing.T) {
	store := newMockStore()
	store.saveVersErr = errors.New("disk full")
	svc := NewService(store, &mockScorer{}, noopLogger{})

	_, err := svc.HandleSubmission(context.Background(), testSubmission("dev-1"))
	if err == nil {
		t.Fatal("expected an error when the version cannot be persisted")
	}
}
