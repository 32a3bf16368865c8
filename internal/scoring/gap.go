package scoring

import (
	"github.com/mattergrade/mattergrade-core/internal/spec"
)

// ClusterSets holds the observed clusters attributed to one device
// type, split by role.
type ClusterSets struct {
	Server map[spec.ClusterID]bool
	Client map[spec.ClusterID]bool
}

// NewClusterSets returns empty observed sets.
func NewClusterSets() ClusterSets {
	return ClusterSets{
		Server: make(map[spec.ClusterID]bool),
		Client: make(map[spec.ClusterID]bool),
	}
}

// GapResult describes how one device type's observed clusters compare
// to its specification. Missing lists preserve the specification's
// declaration order so output is stable across runs.
type GapResult struct {
	DeviceType spec.DeviceTypeID `json:"deviceType"`
	Name       string            `json:"name,omitempty"`

	// Known is false when the registry has no spec for the device
	// type. An unknown type has no requirements to violate, so it is
	// treated as compliant with everything missing lists empty.
	Known bool `json:"known"`

	MissingMandatoryServer    []spec.ClusterID `json:"missingMandatoryServer"`
	MissingMandatoryClient    []spec.ClusterID `json:"missingMandatoryClient"`
	ImplementedOptionalServer []spec.ClusterID `json:"implementedOptionalServer"`
	ImplementedOptionalClient []spec.ClusterID `json:"implementedOptionalClient"`

	// Required totals per axis, straight from the specification.
	RequiredMandatoryServer int `json:"requiredMandatoryServer"`
	RequiredMandatoryClient int `json:"requiredMandatoryClient"`
	RequiredOptionalServer  int `json:"requiredOptionalServer"`
	RequiredOptionalClient  int `json:"requiredOptionalClient"`
}

// Compliant reports whether every mandatory cluster is present.
func (g GapResult) Compliant() bool {
	return len(g.MissingMandatoryServer) == 0 && len(g.MissingMandatoryClient) == 0
}

func missingFrom(required []spec.ClusterID, observed map[spec.ClusterID]bool) []spec.ClusterID {
	missing := []spec.ClusterID{}
	for _, id := range required {
		if !observed[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func presentIn(optional []spec.ClusterID, observed map[spec.ClusterID]bool) []spec.ClusterID {
	present := []spec.ClusterID{}
	for _, id := range optional {
		if observed[id] {
			present = append(present, id)
		}
	}
	return present
}

// AnalyzeGap compares one device type's observed clusters against the
// registry's specification for it.
func AnalyzeGap(registry *spec.Registry, typeID spec.DeviceTypeID, sets ClusterSets) GapResult {
	dt, ok := registry.DeviceType(typeID)
	if !ok {
		return GapResult{
			DeviceType:                typeID,
			Known:                     false,
			MissingMandatoryServer:    []spec.ClusterID{},
			MissingMandatoryClient:    []spec.ClusterID{},
			ImplementedOptionalServer: []spec.ClusterID{},
			ImplementedOptionalClient: []spec.ClusterID{},
		}
	}

	return GapResult{
		DeviceType:                typeID,
		Name:                      dt.Name,
		Known:                     true,
		MissingMandatoryServer:    missingFrom(dt.MandatoryServer, sets.Server),
		MissingMandatoryClient:    missingFrom(dt.MandatoryClient, sets.Client),
		ImplementedOptionalServer: presentIn(dt.OptionalServer, sets.Server),
		ImplementedOptionalClient: presentIn(dt.OptionalClient, sets.Client),
		RequiredMandatoryServer:   len(dt.MandatoryServer),
		RequiredMandatoryClient:   len(dt.MandatoryClient),
		RequiredOptionalServer:    len(dt.OptionalServer),
		RequiredOptionalClient:    len(dt.OptionalClient),
	}
}
