package capability

import (
	"math"

	"github.com/mattergrade/mattergrade-core/internal/spec"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

const maxHighlights = 3

// ElementStatus reports one command or attribute from a cluster's
// catalogue against what the device actually implements.
type ElementStatus struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	Optional    bool   `json:"optional"`
	Implemented bool   `json:"implemented"`
}

// Detail is the fine-grained view of a capability, available only when
// the telemetry carried rich per-cluster records.
type Detail struct {
	Cluster    spec.ClusterID  `json:"cluster"`
	Commands   []ElementStatus `json:"commands,omitempty"`
	Attributes []ElementStatus `json:"attributes,omitempty"`
}

// Capability is one evaluated catalogue entry.
type Capability struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Supported   bool    `json:"supported"`
	Detail      *Detail `json:"detail,omitempty"`
}

// Summary gives the headline counts for a result.
type Summary struct {
	Total      int     `json:"total"`
	Supported  int     `json:"supported"`
	Percentage float64 `json:"percentage"`
}

// Result is the full capability evaluation for one device.
type Result struct {
	// Category is the inferred device category used to narrow the
	// catalogue, empty when none could be inferred.
	Category string `json:"category,omitempty"`

	Supported   map[string]Capability `json:"supported"`
	Unsupported map[string]Capability `json:"unsupported"`

	// ByCategory groups every evaluated capability; categories with no
	// entries are absent.
	ByCategory map[string][]Capability `json:"byCategory"`

	Summary Summary `json:"summary"`

	// Standouts and Missing are display labels, at most three each,
	// picked from the curated per-category priority lists.
	Standouts []string `json:"standouts"`
	Missing   []string `json:"missing"`
}

// Detector evaluates the capability catalogue against observations.
type Detector struct {
	registry *spec.Registry
	catalog  []Definition
}

// NewDetector creates a detector. Pass nil catalog to use the built-in one.
func NewDetector(registry *spec.Registry, catalog []Definition) *Detector {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Detector{registry: registry, catalog: catalog}
}

// observation is the flattened view of a device's endpoints: role
// unions plus pooled per-cluster detail records. When several endpoints
// report detail for the same cluster the last one wins; endpoints
// rarely disagree and a deterministic pick beats merging.
type observation struct {
	server        map[spec.ClusterID]bool
	client        map[spec.ClusterID]bool
	serverDetails map[spec.ClusterID]telemetry.ClusterDetail
	clientDetails map[spec.ClusterID]telemetry.ClusterDetail
}

func flatten(endpoints []telemetry.EndpointObservation) observation {
	obs := observation{
		server:        make(map[spec.ClusterID]bool),
		client:        make(map[spec.ClusterID]bool),
		serverDetails: make(map[spec.ClusterID]telemetry.ClusterDetail),
		clientDetails: make(map[spec.ClusterID]telemetry.ClusterDetail),
	}
	for _, ep := range endpoints {
		for _, c := range ep.ServerClusters {
			obs.server[c] = true
		}
		for _, c := range ep.ClientClusters {
			obs.client[c] = true
		}
		for _, d := range ep.ServerClusterDetails {
			obs.server[d.ClusterID] = true
			obs.serverDetails[d.ClusterID] = d
		}
		for _, d := range ep.ClientClusterDetails {
			obs.client[d.ClusterID] = true
			obs.clientDetails[d.ClusterID] = d
		}
	}
	return obs
}

func (o observation) present(t Trigger) bool {
	if t.Role == RoleClient {
		return o.client[t.Cluster]
	}
	return o.server[t.Cluster]
}

// detail returns the pooled detail record for a cluster, server role
// first, and whether one exists.
func (o observation) detail(id spec.ClusterID) (telemetry.ClusterDetail, bool) {
	if d, ok := o.serverDetails[id]; ok {
		return d, true
	}
	d, ok := o.clientDetails[id]
	return d, ok
}

// inferCategory derives a coarse device category from the first
// non-system device type, on the first non-zero endpoint, that the
// registry knows a category for.
func (d *Detector) inferCategory(endpoints []telemetry.EndpointObservation) string {
	for _, ep := range endpoints {
		if ep.EndpointID == 0 {
			continue
		}
		for _, id := range ep.DeviceTypes {
			if spec.IsSystemDeviceType(id) {
				continue
			}
			if dt, ok := d.registry.DeviceType(id); ok && dt.Category != "" {
				return dt.Category
			}
		}
	}
	return ""
}

// Detect evaluates the catalogue against a device's endpoints.
func (d *Detector) Detect(endpoints []telemetry.EndpointObservation) Result {
	obs := flatten(endpoints)
	category := d.inferCategory(endpoints)

	relevant := d.catalog
	if category != "" {
		relevant = make([]Definition, 0, len(d.catalog))
		for _, def := range d.catalog {
			if def.Category == category || def.Category == "general" {
				relevant = append(relevant, def)
			}
		}
	}

	result := Result{
		Category:    category,
		Supported:   make(map[string]Capability),
		Unsupported: make(map[string]Capability),
		ByCategory:  make(map[string][]Capability),
	}

	for _, def := range relevant {
		entry := d.evaluate(def, obs)
		if entry.Supported {
			result.Supported[def.Key] = entry
		} else {
			result.Unsupported[def.Key] = entry
		}
		result.ByCategory[def.Category] = append(result.ByCategory[def.Category], entry)
	}

	result.Summary = Summary{
		Total:     len(relevant),
		Supported: len(result.Supported),
	}
	if result.Summary.Total > 0 {
		pct := float64(result.Summary.Supported) / float64(result.Summary.Total) * 100
		result.Summary.Percentage = math.Round(pct*10) / 10
	}

	result.Standouts, result.Missing = d.highlights(category, result)
	return result
}

// evaluate decides support for one definition. Any present trigger
// suffices; feature requirements apply only when a feature map was
// actually reported for the cluster (the V2 fallback).
func (d *Detector) evaluate(def Definition, obs observation) Capability {
	entry := Capability{
		Key:         def.Key,
		Label:       def.Label,
		Icon:        def.Icon,
		Description: def.Description,
		Category:    def.Category,
	}

	var matched *Trigger
	for i, t := range def.Triggers {
		if obs.present(t) {
			matched = &def.Triggers[i]
			break
		}
	}
	if matched == nil {
		return entry
	}

	entry.Supported = true
	for _, req := range def.RequiredFeatures {
		detail, ok := obs.detail(req.Cluster)
		if !ok || detail.FeatureMap == nil {
			continue
		}
		if !detail.HasFeature(req.Bit) {
			entry.Supported = false
			break
		}
	}

	if detail, ok := obs.detail(matched.Cluster); ok {
		entry.Detail = d.buildDetail(matched.Cluster, detail)
	}
	return entry
}

// buildDetail checks each command and attribute the cluster's spec
// catalogues against the reported command and attribute lists.
func (d *Detector) buildDetail(id spec.ClusterID, detail telemetry.ClusterDetail) *Detail {
	cs, ok := d.registry.Cluster(id)
	if !ok {
		return nil
	}

	accepted := make(map[uint32]bool, len(detail.AcceptedCommands))
	for _, c := range detail.AcceptedCommands {
		accepted[c] = true
	}
	generated := make(map[uint32]bool, len(detail.GeneratedCommands))
	for _, c := range detail.GeneratedCommands {
		generated[c] = true
	}
	attrs := make(map[uint32]bool, len(detail.AttributeList))
	for _, a := range detail.AttributeList {
		attrs[a] = true
	}

	out := &Detail{Cluster: id}
	for _, cmd := range cs.Commands {
		implemented := accepted[cmd.ID]
		if cmd.Direction == spec.DirectionServerToClient {
			implemented = generated[cmd.ID]
		}
		out.Commands = append(out.Commands, ElementStatus{
			ID:          cmd.ID,
			Name:        cmd.Name,
			Optional:    cmd.Optional,
			Implemented: implemented,
		})
	}
	for _, attr := range cs.Attributes {
		out.Attributes = append(out.Attributes, ElementStatus{
			ID:          attr.ID,
			Name:        attr.Name,
			Optional:    attr.Optional,
			Implemented: attrs[attr.ID],
		})
	}
	return out
}

// highlights picks up to three standout labels and three notable gaps
// from the category's priority list.
func (d *Detector) highlights(category string, result Result) (standouts, missing []string) {
	priorities := categoryPriorities[category]
	if priorities == nil {
		priorities = categoryPriorities["general"]
	}
	standouts = []string{}
	missing = []string{}
	for _, key := range priorities {
		if entry, ok := result.Supported[key]; ok && len(standouts) < maxHighlights {
			standouts = append(standouts, entry.Label)
		}
		if entry, ok := result.Unsupported[key]; ok && len(missing) < maxHighlights {
			missing = append(missing, entry.Label)
		}
	}
	return standouts, missing
}
