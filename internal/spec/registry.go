package spec

import (
	"context"
	"fmt"
	"sort"
)

// Logger is the narrow logging interface the registry loader uses.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry is the immutable in-memory specification lookup.
//
// It is constructed once (seed catalogue plus synced overrides) and
// never mutated afterwards, so it is safe for concurrent use without
// locking. Returned specs must be treated as read-only.
//
// Iteration order is stable across runs: seed order first, synced
// additions appended in ascending id order. Consumers that render
// output rely on this determinism.
type Registry struct {
	deviceTypes map[DeviceTypeID]*DeviceTypeSpec
	typeOrder   []DeviceTypeID

	clusters     map[ClusterID]*ClusterSpec
	clusterOrder []ClusterID
}

// NewRegistry builds a registry from explicit catalogues. Later entries
// with a duplicate id replace earlier ones in place, keeping the
// original position in the iteration order.
func NewRegistry(deviceTypes []DeviceTypeSpec, clusters []ClusterSpec) *Registry {
	r := &Registry{
		deviceTypes: make(map[DeviceTypeID]*DeviceTypeSpec, len(deviceTypes)),
		clusters:    make(map[ClusterID]*ClusterSpec, len(clusters)),
	}
	for i := range deviceTypes {
		dt := deviceTypes[i]
		if _, exists := r.deviceTypes[dt.ID]; !exists {
			r.typeOrder = append(r.typeOrder, dt.ID)
		}
		r.deviceTypes[dt.ID] = &dt
	}
	for i := range clusters {
		cl := clusters[i]
		if _, exists := r.clusters[cl.ID]; !exists {
			r.clusterOrder = append(r.clusterOrder, cl.ID)
		}
		r.clusters[cl.ID] = &cl
	}
	return r
}

// DeviceType looks up a device type by id.
func (r *Registry) DeviceType(id DeviceTypeID) (*DeviceTypeSpec, bool) {
	dt, ok := r.deviceTypes[id]
	return dt, ok
}

// Cluster looks up a cluster by id.
func (r *Registry) Cluster(id ClusterID) (*ClusterSpec, bool) {
	cl, ok := r.clusters[id]
	return cl, ok
}

// DeviceTypes returns all device types in stable iteration order.
func (r *Registry) DeviceTypes() []*DeviceTypeSpec {
	out := make([]*DeviceTypeSpec, 0, len(r.typeOrder))
	for _, id := range r.typeOrder {
		out = append(out, r.deviceTypes[id])
	}
	return out
}

// Clusters returns all clusters in stable iteration order.
func (r *Registry) Clusters() []*ClusterSpec {
	out := make([]*ClusterSpec, 0, len(r.clusterOrder))
	for _, id := range r.clusterOrder {
		out = append(out, r.clusters[id])
	}
	return out
}

// DeviceTypeCount returns the number of known device types.
func (r *Registry) DeviceTypeCount() int { return len(r.deviceTypes) }

// ClusterCount returns the number of known clusters.
func (r *Registry) ClusterCount() int { return len(r.clusters) }

// Store supplies synced specification rows. The external sync job
// writes these rows; the registry only reads them.
type Store interface {
	ListDeviceTypes(ctx context.Context) ([]DeviceTypeSpec, error)
	ListClusters(ctx context.Context) ([]ClusterSpec, error)
}

// Load assembles the registry: the seed catalogue provides the
// baseline, then synced rows override matching ids or extend the
// catalogue. Synced additions are appended in ascending id order so
// the overall iteration order stays deterministic.
func Load(ctx context.Context, store Store, logger Logger) (*Registry, error) {
	if logger == nil {
		logger = noopLogger{}
	}

	deviceTypes := SeedDeviceTypes()
	clusters := SeedClusters()

	if store != nil {
		synced, err := store.ListDeviceTypes(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading synced device types: %w", err)
		}
		sort.Slice(synced, func(i, j int) bool { return synced[i].ID < synced[j].ID })
		deviceTypes = append(deviceTypes, synced...)

		syncedClusters, err := store.ListClusters(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading synced clusters: %w", err)
		}
		sort.Slice(syncedClusters, func(i, j int) bool { return syncedClusters[i].ID < syncedClusters[j].ID })
		clusters = append(clusters, syncedClusters...)

		logger.Info("specification registry loaded",
			"synced_device_types", len(synced),
			"synced_clusters", len(syncedClusters),
		)
	}

	r := NewRegistry(deviceTypes, clusters)
	logger.Debug("specification registry assembled",
		"device_types", r.DeviceTypeCount(),
		"clusters", r.ClusterCount(),
	)
	return r, nil
}
